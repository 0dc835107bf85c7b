package repository

import (
	"context"

	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.UserSession) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Team, error)
	GetByCreator(ctx context.Context, userID uuid.UUID) ([]*domain.Team, error)
	Update(ctx context.Context, team *domain.Team) error
}

type PlayerRepository interface {
	Create(ctx context.Context, player *domain.Player) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Player, error)
	// GetByIDForUpdate locks the player row for the duration of the
	// surrounding transaction, serializing concurrent growth pipelines
	// for the same player.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Player, error)
	GetByTeamID(ctx context.Context, teamID uuid.UUID) ([]*domain.Player, error)
	Update(ctx context.Context, player *domain.Player) error
}

type MatchRepository interface {
	// Create inserts the match and assigns its per-team sequence number.
	Create(ctx context.Context, match *domain.Match) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Match, error)
	GetByTeamID(ctx context.Context, teamID uuid.UUID) ([]*domain.Match, error)
}

type MatchReviewRepository interface {
	Upsert(ctx context.Context, review *domain.MatchReview) error
	GetByPlayerMatch(ctx context.Context, playerID, matchID uuid.UUID) (*domain.MatchReview, error)
	// ListByPlayerAfterSequence returns the player's stat lines for
	// matches with a sequence strictly greater than seq, ascending, with
	// the Match relation populated.
	ListByPlayerAfterSequence(ctx context.Context, playerID uuid.UUID, seq int64) ([]*domain.MatchReview, error)
	UpdateAIFields(ctx context.Context, review *domain.MatchReview) error
}

type SnapshotRepository interface {
	// CreateInitial inserts the player's no-match baseline snapshot. It
	// is a no-op if the initial snapshot already exists.
	CreateInitial(ctx context.Context, snapshot *domain.GrowthSnapshot) error
	GetLatestBefore(ctx context.Context, playerID uuid.UUID, seq int64) (*domain.GrowthSnapshot, error)
	GetLatest(ctx context.Context, playerID uuid.UUID) (*domain.GrowthSnapshot, error)
	ListByPlayer(ctx context.Context, playerID uuid.UUID) ([]*domain.GrowthSnapshot, error)
	UpsertMany(ctx context.Context, snapshots []*domain.GrowthSnapshot) error
}

// TxManager runs a function inside a single database transaction, handing
// it transaction-scoped repositories. The growth pipeline uses it so a
// review write and the whole snapshot cascade commit or roll back as one.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(repos *Repositories) error) error
}

type Repositories struct {
	User        UserRepository
	Session     SessionRepository
	Team        TeamRepository
	Player      PlayerRepository
	Match       MatchRepository
	MatchReview MatchReviewRepository
	Snapshot    SnapshotRepository
}
