package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	email    string
	password string
	name     string
	role     domain.UserRole
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		email:    fmt.Sprintf("user_%s@test.local", uuid.New().String()[:8]),
		password: "testpassword123",
		name:     "Test User",
		role:     domain.UserRoleCoach,
	}
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithName sets the display name
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

// WithRole sets the account role
func (b *UserBuilder) WithRole(role domain.UserRole) *UserBuilder {
	b.role = role
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		Name:         b.name,
		Role:         b.role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// TeamBuilder creates test teams
type TeamBuilder struct {
	name      string
	createdBy *uuid.UUID
}

// NewTeamBuilder creates a new TeamBuilder with default values
func NewTeamBuilder() *TeamBuilder {
	return &TeamBuilder{
		name: fmt.Sprintf("Team %s", uuid.New().String()[:8]),
	}
}

// WithName sets the team name
func (b *TeamBuilder) WithName(name string) *TeamBuilder {
	b.name = name
	return b
}

// WithCreator sets the coach who owns the team
func (b *TeamBuilder) WithCreator(userID uuid.UUID) *TeamBuilder {
	b.createdBy = &userID
	return b
}

// Build creates the team in the database
func (b *TeamBuilder) Build(t *testing.T, db *gorm.DB) *domain.Team {
	t.Helper()

	createdBy := b.createdBy
	if createdBy == nil {
		coach, _ := NewUserBuilder().Build(t, db)
		createdBy = &coach.ID
	}

	team := &domain.Team{
		ID:        uuid.New(),
		Name:      b.name,
		CreatedBy: *createdBy,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := db.Create(team).Error; err != nil {
		t.Fatalf("failed to create team: %v", err)
	}

	return team
}

// PlayerBuilder creates test players with their initial snapshot
type PlayerBuilder struct {
	teamID   *uuid.UUID
	name     string
	position *domain.Position
}

// NewPlayerBuilder creates a new PlayerBuilder with default values
func NewPlayerBuilder() *PlayerBuilder {
	return &PlayerBuilder{
		name: fmt.Sprintf("Player %s", uuid.New().String()[:8]),
	}
}

// WithTeam sets the player's team
func (b *PlayerBuilder) WithTeam(teamID uuid.UUID) *PlayerBuilder {
	b.teamID = &teamID
	return b
}

// WithName sets the player name
func (b *PlayerBuilder) WithName(name string) *PlayerBuilder {
	b.name = name
	return b
}

// WithPosition sets the player position
func (b *PlayerBuilder) WithPosition(pos domain.Position) *PlayerBuilder {
	b.position = &pos
	return b
}

// Build creates the player and their initial growth snapshot
func (b *PlayerBuilder) Build(t *testing.T, db *gorm.DB) *domain.Player {
	t.Helper()

	teamID := b.teamID
	if teamID == nil {
		team := NewTeamBuilder().Build(t, db)
		teamID = &team.ID
	}

	player := &domain.Player{
		ID:        uuid.New(),
		TeamID:    *teamID,
		Name:      b.name,
		Position:  b.position,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := db.Create(player).Error; err != nil {
		t.Fatalf("failed to create player: %v", err)
	}

	initial := domain.NewGrowthSnapshot(player.ID, nil, 0, domain.DefaultAttributeSet(b.position))
	if err := db.Create(initial).Error; err != nil {
		t.Fatalf("failed to create initial snapshot: %v", err)
	}

	return player
}

// MatchBuilder creates test matches with sequential per-team ordering
type MatchBuilder struct {
	teamID    *uuid.UUID
	opponent  string
	matchDate time.Time
	sequence  *int64
}

// NewMatchBuilder creates a new MatchBuilder with default values
func NewMatchBuilder() *MatchBuilder {
	return &MatchBuilder{
		opponent:  fmt.Sprintf("Opponent %s", uuid.New().String()[:8]),
		matchDate: time.Now(),
	}
}

// WithTeam sets the match's team
func (b *MatchBuilder) WithTeam(teamID uuid.UUID) *MatchBuilder {
	b.teamID = &teamID
	return b
}

// WithOpponent sets the opponent name
func (b *MatchBuilder) WithOpponent(opponent string) *MatchBuilder {
	b.opponent = opponent
	return b
}

// WithDate sets the match date
func (b *MatchBuilder) WithDate(date time.Time) *MatchBuilder {
	b.matchDate = date
	return b
}

// WithSequence overrides the assigned sequence number
func (b *MatchBuilder) WithSequence(seq int64) *MatchBuilder {
	b.sequence = &seq
	return b
}

// Build creates the match in the database, assigning the next sequence
// for the team unless one was given explicitly
func (b *MatchBuilder) Build(t *testing.T, db *gorm.DB) *domain.Match {
	t.Helper()

	teamID := b.teamID
	if teamID == nil {
		team := NewTeamBuilder().Build(t, db)
		teamID = &team.ID
	}

	seq := int64(0)
	if b.sequence != nil {
		seq = *b.sequence
	} else {
		var maxSeq int64
		if err := db.Model(&domain.Match{}).
			Where("team_id = ?", teamID).
			Select("COALESCE(MAX(sequence), 0)").
			Scan(&maxSeq).Error; err != nil {
			t.Fatalf("failed to read max sequence: %v", err)
		}
		seq = maxSeq + 1
	}

	match := &domain.Match{
		ID:        uuid.New(),
		TeamID:    *teamID,
		Sequence:  seq,
		Opponent:  b.opponent,
		MatchDate: b.matchDate,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := db.Create(match).Error; err != nil {
		t.Fatalf("failed to create match: %v", err)
	}

	return match
}
