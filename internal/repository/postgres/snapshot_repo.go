package postgres

import (
	"context"

	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type snapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) *snapshotRepository {
	return &snapshotRepository{db: db}
}

// CreateInitial inserts the sequence-0 baseline row for a player. A
// conflict on (player_id, sequence) means the initial snapshot already
// exists, in which case nothing is written.
func (r *snapshotRepository) CreateInitial(ctx context.Context, snapshot *domain.GrowthSnapshot) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "player_id"}, {Name: "sequence"}},
		DoNothing: true,
	}).Create(snapshot).Error
}

func (r *snapshotRepository) GetLatestBefore(ctx context.Context, playerID uuid.UUID, seq int64) (*domain.GrowthSnapshot, error) {
	var snapshot domain.GrowthSnapshot
	err := r.db.WithContext(ctx).
		Where("player_id = ? AND sequence < ?", playerID, seq).
		Order("sequence DESC").
		First(&snapshot).Error
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (r *snapshotRepository) GetLatest(ctx context.Context, playerID uuid.UUID) (*domain.GrowthSnapshot, error) {
	var snapshot domain.GrowthSnapshot
	err := r.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("sequence DESC").
		First(&snapshot).Error
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (r *snapshotRepository) ListByPlayer(ctx context.Context, playerID uuid.UUID) ([]*domain.GrowthSnapshot, error) {
	var snapshots []*domain.GrowthSnapshot
	err := r.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("sequence ASC").
		Preload("Match").
		Find(&snapshots).Error
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}

func (r *snapshotRepository) UpsertMany(ctx context.Context, snapshots []*domain.GrowthSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "player_id"}, {Name: "sequence"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"shooting", "passing", "dribbling", "defense", "physical",
			"coach_grade", "overall_rating",
			"diving", "handling", "kicking",
			"updated_at",
		}),
	}).Create(snapshots).Error
}
