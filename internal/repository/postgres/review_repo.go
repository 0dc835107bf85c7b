package postgres

import (
	"context"

	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type matchReviewRepository struct {
	db *gorm.DB
}

func NewMatchReviewRepository(db *gorm.DB) *matchReviewRepository {
	return &matchReviewRepository{db: db}
}

// Upsert overwrites the stat line for the (player, match) pair. AI
// enrichment columns are left alone; they are written by UpdateAIFields
// after the enrichment pass.
func (r *matchReviewRepository) Upsert(ctx context.Context, review *domain.MatchReview) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "player_id"}, {Name: "match_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"goals", "assists", "saves", "tackles", "interceptions",
			"chances_created", "minutes_played",
			"successful_goalie_kicks", "failed_goalie_kicks",
			"successful_goalie_throws", "failed_goalie_throws",
			"coach_rating", "feedback", "updated_at",
		}),
	}).Create(review).Error
}

func (r *matchReviewRepository) GetByPlayerMatch(ctx context.Context, playerID, matchID uuid.UUID) (*domain.MatchReview, error) {
	var review domain.MatchReview
	err := r.db.WithContext(ctx).
		First(&review, "player_id = ? AND match_id = ?", playerID, matchID).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *matchReviewRepository) ListByPlayerAfterSequence(ctx context.Context, playerID uuid.UUID, seq int64) ([]*domain.MatchReview, error) {
	var reviews []*domain.MatchReview
	err := r.db.WithContext(ctx).
		Joins("JOIN matches ON matches.id = match_reviews.match_id").
		Where("match_reviews.player_id = ? AND matches.sequence > ?", playerID, seq).
		Order("matches.sequence ASC").
		Preload("Match").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *matchReviewRepository) UpdateAIFields(ctx context.Context, review *domain.MatchReview) error {
	return r.db.WithContext(ctx).
		Model(&domain.MatchReview{}).
		Where("player_id = ? AND match_id = ?", review.PlayerID, review.MatchID).
		Updates(map[string]interface{}{
			"ai_rating":      review.AIRating,
			"ai_explanation": review.AIExplanation,
			"ai_suggestions": review.AISuggestions,
		}).Error
}
