package api

import (
	"net/http"

	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/api/handlers"
	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/api/middleware"
	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/config"
	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/service"
	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/websocket"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(services *service.Services, hub *websocket.Hub, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	teamHandler := handlers.NewTeamHandler(services.Team)
	matchHandler := handlers.NewMatchHandler(services.Match)
	growthHandler := handlers.NewGrowthHandler(services.Growth)
	wsHandler := handlers.NewWebSocketHandler(hub, services.Auth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			// Team routes
			r.Route("/teams", func(r chi.Router) {
				r.Get("/", teamHandler.List)
				r.Get("/{teamId}", teamHandler.Get)
				r.Get("/{teamId}/players", teamHandler.ListPlayers)
				r.Get("/{teamId}/matches", matchHandler.List)

				// Coach-only mutations
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireCoach)
					r.Post("/", teamHandler.Create)
					r.Post("/{teamId}/players", teamHandler.AddPlayer)
					r.Post("/{teamId}/matches", matchHandler.Create)
				})
			})

			// Match routes
			r.Route("/matches", func(r chi.Router) {
				r.Get("/{matchId}", matchHandler.Get)
			})

			// Player growth routes
			r.Route("/players/{playerId}", func(r chi.Router) {
				r.Get("/attributes", growthHandler.GetAttributes)
				r.Get("/growth", growthHandler.GetHistory)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireCoach)
					r.Post("/matches/{matchId}/stats", growthHandler.SubmitStats)
				})
			})
		})

		// WebSocket endpoint
		r.Get("/ws", wsHandler.Handle)
	})

	return r
}
