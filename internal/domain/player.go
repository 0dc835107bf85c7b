package domain

import (
	"time"

	"github.com/google/uuid"
)

// Player is a roster entry on a team. Current skill ratings are not stored
// here; they are derived from the player's latest growth snapshot.
type Player struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID       *uuid.UUID `json:"userId" gorm:"type:uuid"`
	TeamID       uuid.UUID  `json:"teamId" gorm:"type:uuid;not null;index"`
	Name         string     `json:"name" gorm:"not null"`
	Position     *Position  `json:"position" gorm:"type:varchar(5)"`
	JerseyNumber *int       `json:"jerseyNumber"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`

	// Relations
	Team *Team `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// IsGoalkeeper reports whether the player is registered as a goalkeeper.
// Players without an assigned position are treated as outfield.
func (p *Player) IsGoalkeeper() bool {
	return p.Position != nil && p.Position.IsGoalkeeper()
}
