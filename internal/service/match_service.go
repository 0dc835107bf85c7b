package service

import (
	"context"
	"errors"
	"time"

	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/domain"
	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchService struct {
	teamRepo  repository.TeamRepository
	matchRepo repository.MatchRepository
}

func NewMatchService(teamRepo repository.TeamRepository, matchRepo repository.MatchRepository) *MatchService {
	return &MatchService{
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
	}
}

type CreateMatchInput struct {
	Opponent  string
	MatchDate time.Time
	HomeGoals *int
	AwayGoals *int
}

func (s *MatchService) CreateMatch(ctx context.Context, teamID uuid.UUID, input CreateMatchInput) (*domain.Match, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	match := &domain.Match{
		ID:        uuid.New(),
		TeamID:    teamID,
		Opponent:  input.Opponent,
		HomeGoals: input.HomeGoals,
		AwayGoals: input.AwayGoals,
		MatchDate: input.MatchDate,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.matchRepo.Create(ctx, match); err != nil {
		return nil, err
	}
	return match, nil
}

func (s *MatchService) GetMatch(ctx context.Context, id uuid.UUID) (*domain.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (s *MatchService) ListMatches(ctx context.Context, teamID uuid.UUID) ([]*domain.Match, error) {
	return s.matchRepo.GetByTeamID(ctx, teamID)
}
