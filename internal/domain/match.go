package domain

import (
	"time"

	"github.com/google/uuid"
)

// Match is a recorded fixture for a team.
//
// Sequence is a per-team monotonic number assigned at creation time and is
// the authoritative chronological order key for the growth snapshot chain.
// MatchDate is display metadata only; equal or out-of-order dates never
// affect the chain.
type Match struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TeamID    uuid.UUID `json:"teamId" gorm:"type:uuid;not null;uniqueIndex:idx_matches_team_sequence"`
	Sequence  int64     `json:"sequence" gorm:"not null;uniqueIndex:idx_matches_team_sequence"`
	Opponent  string    `json:"opponent" gorm:"not null"`
	HomeGoals *int      `json:"homeGoals"`
	AwayGoals *int      `json:"awayGoals"`
	MatchDate time.Time `json:"matchDate" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Team *Team `json:"team,omitempty" gorm:"foreignKey:TeamID"`
}
