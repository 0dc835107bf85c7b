package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/api/middleware"
	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/domain"
	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type TeamHandler struct {
	teamService *service.TeamService
}

func NewTeamHandler(teamService *service.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

type CreateTeamRequest struct {
	Name string `json:"name"`
}

type AddPlayerRequest struct {
	Name         string  `json:"name"`
	Position     *string `json:"position"`
	JerseyNumber *int    `json:"jerseyNumber"`
	UserID       *string `json:"userId"`
}

func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "Team name is required", http.StatusBadRequest)
		return
	}

	team, err := h.teamService.CreateTeam(r.Context(), userID, service.CreateTeamInput{Name: req.Name})
	if err != nil {
		log.Printf("ERROR [team.Create] failed to create team: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(team)
}

func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	teams, err := h.teamService.ListTeamsByCoach(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR [team.List] failed to list teams: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(teams)
}

func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	teamID, err := uuid.Parse(chi.URLParam(r, "teamId"))
	if err != nil {
		http.Error(w, "Invalid team ID", http.StatusBadRequest)
		return
	}

	team, err := h.teamService.GetTeam(r.Context(), teamID)
	if err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			http.Error(w, "Team not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR [team.Get] failed to get team: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(team)
}

func (h *TeamHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	teamID, err := uuid.Parse(chi.URLParam(r, "teamId"))
	if err != nil {
		http.Error(w, "Invalid team ID", http.StatusBadRequest)
		return
	}

	players, err := h.teamService.ListPlayers(r.Context(), teamID)
	if err != nil {
		log.Printf("ERROR [team.ListPlayers] failed to list players: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(players)
}

func (h *TeamHandler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	teamID, err := uuid.Parse(chi.URLParam(r, "teamId"))
	if err != nil {
		http.Error(w, "Invalid team ID", http.StatusBadRequest)
		return
	}

	var req AddPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "Player name is required", http.StatusBadRequest)
		return
	}

	input := service.AddPlayerInput{
		Name:         req.Name,
		JerseyNumber: req.JerseyNumber,
	}
	if req.Position != nil {
		pos := domain.Position(*req.Position)
		input.Position = &pos
	}
	if req.UserID != nil {
		uid, err := uuid.Parse(*req.UserID)
		if err != nil {
			http.Error(w, "Invalid user ID", http.StatusBadRequest)
			return
		}
		input.UserID = &uid
	}

	player, err := h.teamService.AddPlayer(r.Context(), teamID, input)
	if err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			http.Error(w, "Team not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, domain.ErrInvalidPosition) {
			http.Error(w, "Invalid position", http.StatusBadRequest)
			return
		}
		log.Printf("ERROR [team.AddPlayer] failed to add player: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(player)
}
