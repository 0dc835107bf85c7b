package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MatchReview is the authoritative raw stat line for one player in one
// match. A resubmission overwrites the row in place; the snapshot chain is
// the edit history, so no separate audit trail is kept here.
type MatchReview struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	PlayerID uuid.UUID `json:"playerId" gorm:"type:uuid;not null;uniqueIndex:idx_match_reviews_player_match"`
	MatchID  uuid.UUID `json:"matchId" gorm:"type:uuid;not null;uniqueIndex:idx_match_reviews_player_match"`

	Goals          int `json:"goals" gorm:"not null;default:0"`
	Assists        int `json:"assists" gorm:"not null;default:0"`
	Saves          int `json:"saves" gorm:"not null;default:0"`
	Tackles        int `json:"tackles" gorm:"not null;default:0"`
	Interceptions  int `json:"interceptions" gorm:"not null;default:0"`
	ChancesCreated int `json:"chancesCreated" gorm:"not null;default:0"`
	MinutesPlayed  int `json:"minutesPlayed" gorm:"not null;default:0"`

	SuccessfulGoalieKicks  int `json:"successfulGoalieKicks" gorm:"not null;default:0"`
	FailedGoalieKicks      int `json:"failedGoalieKicks" gorm:"not null;default:0"`
	SuccessfulGoalieThrows int `json:"successfulGoalieThrows" gorm:"not null;default:0"`
	FailedGoalieThrows     int `json:"failedGoalieThrows" gorm:"not null;default:0"`

	CoachRating int    `json:"coachRating" gorm:"not null;default:50"`
	Feedback    string `json:"feedback"`

	// Best-effort AI enrichment; absent until the enrichment pass runs.
	AIRating      *int           `json:"aiRating"`
	AIExplanation string         `json:"aiExplanation"`
	AISuggestions datatypes.JSON `json:"aiSuggestions"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Player *Player `json:"player,omitempty" gorm:"foreignKey:PlayerID"`
	Match  *Match  `json:"match,omitempty" gorm:"foreignKey:MatchID"`
}

// TableName returns the table name for GORM
func (MatchReview) TableName() string {
	return "match_reviews"
}

// TotalKicks returns the number of goalie kicks attempted.
func (r *MatchReview) TotalKicks() int {
	return r.SuccessfulGoalieKicks + r.FailedGoalieKicks
}

// TotalThrows returns the number of goalie throws attempted.
func (r *MatchReview) TotalThrows() int {
	return r.SuccessfulGoalieThrows + r.FailedGoalieThrows
}

// Validate checks the stat line for values that can never be produced by a
// real match. It runs before any state is mutated.
func (r *MatchReview) Validate() error {
	counts := []int{
		r.Goals, r.Assists, r.Saves, r.Tackles, r.Interceptions,
		r.ChancesCreated, r.MinutesPlayed,
		r.SuccessfulGoalieKicks, r.FailedGoalieKicks,
		r.SuccessfulGoalieThrows, r.FailedGoalieThrows,
	}
	for _, c := range counts {
		if c < 0 {
			return ErrNegativeStat
		}
	}
	if r.MinutesPlayed > 120 {
		return ErrInvalidMinutes
	}
	if r.CoachRating < 0 || r.CoachRating > 100 {
		return ErrInvalidCoachRating
	}
	return nil
}
