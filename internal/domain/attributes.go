package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Rating bounds for every skill attribute. No growth step may push a
// rating outside this range.
const (
	RatingFloor   = 10
	RatingCeiling = 100
	DefaultRating = 50
)

// Overall rating weights. They sum to 1.0.
const (
	overallShootingWeight   = 0.18
	overallPassingWeight    = 0.20
	overallDribblingWeight  = 0.14
	overallDefenseWeight    = 0.22
	overallPhysicalWeight   = 0.16
	overallCoachGradeWeight = 0.10
)

// GoalkeeperSkills are the goalkeeper-only ratings. They exist only on
// goalkeepers; outfield players carry a nil pointer rather than dead
// default columns.
type GoalkeeperSkills struct {
	Diving   int `json:"diving"`
	Handling int `json:"handling"`
	Kicking  int `json:"kicking"`
}

// AttributeSet is the full collection of a player's skill ratings at a
// point in time. OverallRating is always the fixed weighted combination of
// the other ratings and is never grown independently.
type AttributeSet struct {
	Shooting      int `json:"shooting"`
	Passing       int `json:"passing"`
	Dribbling     int `json:"dribbling"`
	Defense       int `json:"defense"`
	Physical      int `json:"physical"`
	CoachGrade    int `json:"coachGrade"`
	OverallRating int `json:"overallRating"`

	Goalkeeper *GoalkeeperSkills `json:"goalkeeper,omitempty"`
}

// DefaultAttributeSet returns the baseline set for a player with no
// history: every rating at 50. Goalkeepers get the goalkeeper skills
// initialized as well.
func DefaultAttributeSet(pos *Position) AttributeSet {
	set := AttributeSet{
		Shooting:   DefaultRating,
		Passing:    DefaultRating,
		Dribbling:  DefaultRating,
		Defense:    DefaultRating,
		Physical:   DefaultRating,
		CoachGrade: DefaultRating,
	}
	if pos != nil && pos.IsGoalkeeper() {
		set.Goalkeeper = &GoalkeeperSkills{
			Diving:   DefaultRating,
			Handling: DefaultRating,
			Kicking:  DefaultRating,
		}
	}
	set.OverallRating = set.ComputeOverall()
	return set
}

// ComputeOverall returns the fixed weighted combination of the core
// ratings, rounded to the nearest integer.
func (a AttributeSet) ComputeOverall() int {
	sum := overallShootingWeight*float64(a.Shooting) +
		overallPassingWeight*float64(a.Passing) +
		overallDribblingWeight*float64(a.Dribbling) +
		overallDefenseWeight*float64(a.Defense) +
		overallPhysicalWeight*float64(a.Physical) +
		overallCoachGradeWeight*float64(a.CoachGrade)
	return int(math.Round(sum))
}

// Diff returns the per-attribute difference (other - a), keyed by
// attribute name. Goalkeeper skills appear only when both sets carry them.
func (a AttributeSet) Diff(other AttributeSet) map[string]int {
	d := map[string]int{
		"shooting":      other.Shooting - a.Shooting,
		"passing":       other.Passing - a.Passing,
		"dribbling":     other.Dribbling - a.Dribbling,
		"defense":       other.Defense - a.Defense,
		"physical":      other.Physical - a.Physical,
		"coachGrade":    other.CoachGrade - a.CoachGrade,
		"overallRating": other.OverallRating - a.OverallRating,
	}
	if a.Goalkeeper != nil && other.Goalkeeper != nil {
		d["diving"] = other.Goalkeeper.Diving - a.Goalkeeper.Diving
		d["handling"] = other.Goalkeeper.Handling - a.Goalkeeper.Handling
		d["kicking"] = other.Goalkeeper.Kicking - a.Goalkeeper.Kicking
	}
	return d
}

// ClampRating bounds a rating to [RatingFloor, RatingCeiling].
func ClampRating(v int) int {
	if v < RatingFloor {
		return RatingFloor
	}
	if v > RatingCeiling {
		return RatingCeiling
	}
	return v
}

// GrowthSnapshot freezes an AttributeSet for one (player, match) pair.
// Exactly one row per player has a nil MatchID: the initial snapshot
// created when the player first joins a team. Sequence mirrors the match's
// per-team sequence (0 for the initial snapshot) and orders the chain.
//
// Chain invariant: for every match M, the snapshot for M equals the result
// of growing the snapshot with the next-lower sequence using M's stat
// line. The growth service re-establishes this after any edit.
type GrowthSnapshot struct {
	ID       uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	PlayerID uuid.UUID  `json:"playerId" gorm:"type:uuid;not null;uniqueIndex:idx_growth_snapshots_player_seq"`
	MatchID  *uuid.UUID `json:"matchId" gorm:"type:uuid"`
	Sequence int64      `json:"sequence" gorm:"not null;uniqueIndex:idx_growth_snapshots_player_seq"`

	Shooting      int `json:"shooting" gorm:"not null"`
	Passing       int `json:"passing" gorm:"not null"`
	Dribbling     int `json:"dribbling" gorm:"not null"`
	Defense       int `json:"defense" gorm:"not null"`
	Physical      int `json:"physical" gorm:"not null"`
	CoachGrade    int `json:"coachGrade" gorm:"not null"`
	OverallRating int `json:"overallRating" gorm:"not null"`

	Diving   *int `json:"diving"`
	Handling *int `json:"handling"`
	Kicking  *int `json:"kicking"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Match *Match `json:"match,omitempty" gorm:"foreignKey:MatchID"`
}

// TableName returns the table name for GORM
func (GrowthSnapshot) TableName() string {
	return "growth_snapshots"
}

// NewGrowthSnapshot builds a snapshot row from an attribute set.
func NewGrowthSnapshot(playerID uuid.UUID, matchID *uuid.UUID, sequence int64, set AttributeSet) *GrowthSnapshot {
	s := &GrowthSnapshot{
		ID:            uuid.New(),
		PlayerID:      playerID,
		MatchID:       matchID,
		Sequence:      sequence,
		Shooting:      set.Shooting,
		Passing:       set.Passing,
		Dribbling:     set.Dribbling,
		Defense:       set.Defense,
		Physical:      set.Physical,
		CoachGrade:    set.CoachGrade,
		OverallRating: set.OverallRating,
	}
	if gk := set.Goalkeeper; gk != nil {
		diving, handling, kicking := gk.Diving, gk.Handling, gk.Kicking
		s.Diving = &diving
		s.Handling = &handling
		s.Kicking = &kicking
	}
	return s
}

// AttributeSet reconstructs the value type from the stored columns.
func (s *GrowthSnapshot) AttributeSet() AttributeSet {
	set := AttributeSet{
		Shooting:      s.Shooting,
		Passing:       s.Passing,
		Dribbling:     s.Dribbling,
		Defense:       s.Defense,
		Physical:      s.Physical,
		CoachGrade:    s.CoachGrade,
		OverallRating: s.OverallRating,
	}
	if s.Diving != nil && s.Handling != nil && s.Kicking != nil {
		set.Goalkeeper = &GoalkeeperSkills{
			Diving:   *s.Diving,
			Handling: *s.Handling,
			Kicking:  *s.Kicking,
		}
	}
	return set
}
