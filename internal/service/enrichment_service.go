package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/ai"
	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/domain"
	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/metrics"
	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/repository"
	"gorm.io/datatypes"
)

const enrichmentTimeout = 45 * time.Second

// EnrichmentService attaches best-effort AI output to a stored match
// review: a grade with an explanation, and training suggestions when the
// player left reflection text. It is an independent failure domain from
// the growth pipeline: every error here is logged and swallowed.
type EnrichmentService struct {
	client     ai.Client
	reviewRepo repository.MatchReviewRepository
}

func NewEnrichmentService(client ai.Client, reviewRepo repository.MatchReviewRepository) *EnrichmentService {
	return &EnrichmentService{
		client:     client,
		reviewRepo: reviewRepo,
	}
}

// EnrichReview runs after the growth transaction has committed, on its own
// deadline. Partial success is written; total failure writes nothing.
func (s *EnrichmentService) EnrichReview(review *domain.MatchReview, playerName string, pos *domain.Position) {
	ctx, cancel := context.WithTimeout(context.Background(), enrichmentTimeout)
	defer cancel()

	enriched := false

	grade, err := s.client.GenerateGrade(ctx, *review, pos)
	if err != nil {
		log.Printf("ERROR [enrichment.EnrichReview] grade generation failed for review %s: %v", review.ID, err)
		metrics.EnrichmentFailures.Inc()
	} else {
		score := grade.Score
		review.AIRating = &score
		review.AIExplanation = grade.Explanation
		enriched = true
	}

	if review.Feedback != "" {
		suggestions, err := s.client.GenerateSuggestions(ctx, review.Feedback, *review, playerName, pos)
		if err != nil {
			log.Printf("ERROR [enrichment.EnrichReview] suggestion generation failed for review %s: %v", review.ID, err)
			metrics.EnrichmentFailures.Inc()
		} else if len(suggestions) > 0 {
			payload, err := json.Marshal(suggestions)
			if err == nil {
				review.AISuggestions = datatypes.JSON(payload)
				enriched = true
			}
		}
	}

	if !enriched {
		return
	}

	if err := s.reviewRepo.UpdateAIFields(ctx, review); err != nil {
		log.Printf("ERROR [enrichment.EnrichReview] failed to store AI fields for review %s: %v", review.ID, err)
		metrics.EnrichmentFailures.Inc()
	}
}
