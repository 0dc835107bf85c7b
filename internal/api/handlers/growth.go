package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/domain"
	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type GrowthHandler struct {
	growthService *service.GrowthService
}

func NewGrowthHandler(growthService *service.GrowthService) *GrowthHandler {
	return &GrowthHandler{growthService: growthService}
}

type SubmitStatsRequest struct {
	Goals          int `json:"goals"`
	Assists        int `json:"assists"`
	Saves          int `json:"saves"`
	Tackles        int `json:"tackles"`
	Interceptions  int `json:"interceptions"`
	ChancesCreated int `json:"chancesCreated"`
	MinutesPlayed  int `json:"minutesPlayed"`

	SuccessfulGoalieKicks  int `json:"successfulGoalieKicks"`
	FailedGoalieKicks      int `json:"failedGoalieKicks"`
	SuccessfulGoalieThrows int `json:"successfulGoalieThrows"`
	FailedGoalieThrows     int `json:"failedGoalieThrows"`

	CoachRating *int   `json:"coachRating"`
	Feedback    string `json:"feedback"`
}

// SnapshotResponse is one entry of a player's growth history.
type SnapshotResponse struct {
	MatchID    *string             `json:"matchId"`
	Sequence   int64               `json:"sequence"`
	Attributes domain.AttributeSet `json:"attributes"`
}

// SubmitStats records a stat line and runs the growth pipeline, returning
// the attribute movement it caused.
func (h *GrowthHandler) SubmitStats(w http.ResponseWriter, r *http.Request) {
	playerID, err := uuid.Parse(chi.URLParam(r, "playerId"))
	if err != nil {
		http.Error(w, "Invalid player ID", http.StatusBadRequest)
		return
	}
	matchID, err := uuid.Parse(chi.URLParam(r, "matchId"))
	if err != nil {
		http.Error(w, "Invalid match ID", http.StatusBadRequest)
		return
	}

	var req SubmitStatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.growthService.SubmitMatchStats(r.Context(), playerID, matchID, service.SubmitStatsInput{
		Goals:                  req.Goals,
		Assists:                req.Assists,
		Saves:                  req.Saves,
		Tackles:                req.Tackles,
		Interceptions:          req.Interceptions,
		ChancesCreated:         req.ChancesCreated,
		MinutesPlayed:          req.MinutesPlayed,
		SuccessfulGoalieKicks:  req.SuccessfulGoalieKicks,
		FailedGoalieKicks:      req.FailedGoalieKicks,
		SuccessfulGoalieThrows: req.SuccessfulGoalieThrows,
		FailedGoalieThrows:     req.FailedGoalieThrows,
		CoachRating:            req.CoachRating,
		Feedback:               req.Feedback,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlayerNotFound):
			http.Error(w, "Player not found", http.StatusNotFound)
		case errors.Is(err, service.ErrMatchNotFound):
			http.Error(w, "Match not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrPlayerNotOnTeam):
			http.Error(w, "Player does not belong to the match's team", http.StatusBadRequest)
		case errors.Is(err, domain.ErrNegativeStat),
			errors.Is(err, domain.ErrInvalidMinutes),
			errors.Is(err, domain.ErrInvalidCoachRating):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			log.Printf("ERROR [growth.SubmitStats] pipeline failed: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// GetHistory returns the player's full snapshot chain in order.
func (h *GrowthHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	playerID, err := uuid.Parse(chi.URLParam(r, "playerId"))
	if err != nil {
		http.Error(w, "Invalid player ID", http.StatusBadRequest)
		return
	}

	snapshots, err := h.growthService.GetGrowthHistory(r.Context(), playerID)
	if err != nil {
		if errors.Is(err, service.ErrPlayerNotFound) {
			http.Error(w, "Player not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR [growth.GetHistory] failed to get history: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]SnapshotResponse, 0, len(snapshots))
	for _, s := range snapshots {
		entry := SnapshotResponse{
			Sequence:   s.Sequence,
			Attributes: s.AttributeSet(),
		}
		if s.MatchID != nil {
			id := s.MatchID.String()
			entry.MatchID = &id
		}
		resp = append(resp, entry)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetAttributes returns the player's current attribute set, derived from
// the latest snapshot.
func (h *GrowthHandler) GetAttributes(w http.ResponseWriter, r *http.Request) {
	playerID, err := uuid.Parse(chi.URLParam(r, "playerId"))
	if err != nil {
		http.Error(w, "Invalid player ID", http.StatusBadRequest)
		return
	}

	attributes, err := h.growthService.GetCurrentAttributes(r.Context(), playerID)
	if err != nil {
		if errors.Is(err, service.ErrPlayerNotFound) {
			http.Error(w, "Player not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR [growth.GetAttributes] failed to get attributes: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(attributes)
}
