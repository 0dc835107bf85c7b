package postgres

import (
	"context"

	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type matchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) *matchRepository {
	return &matchRepository{db: db}
}

// Create inserts the match with the next per-team sequence number. The
// team row is locked while the sequence is assigned so two concurrent
// creations for the same team can never draw the same number.
func (r *matchRepository) Create(ctx context.Context, match *domain.Match) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var team domain.Team
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&team, "id = ?", match.TeamID).Error; err != nil {
			return err
		}

		var maxSeq int64
		if err := tx.Model(&domain.Match{}).
			Where("team_id = ?", match.TeamID).
			Select("COALESCE(MAX(sequence), 0)").
			Scan(&maxSeq).Error; err != nil {
			return err
		}

		match.Sequence = maxSeq + 1
		return tx.Create(match).Error
	})
}

func (r *matchRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Match, error) {
	var match domain.Match
	err := r.db.WithContext(ctx).First(&match, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) GetByTeamID(ctx context.Context, teamID uuid.UUID) ([]*domain.Match, error) {
	var matches []*domain.Match
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("sequence ASC").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}
