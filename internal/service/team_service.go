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

var (
	ErrTeamNotFound = errors.New("team not found")
	ErrNotTeamCoach = errors.New("only the team's coach can perform this action")
)

type TeamService struct {
	teamRepo     repository.TeamRepository
	playerRepo   repository.PlayerRepository
	snapshotRepo repository.SnapshotRepository
}

func NewTeamService(teamRepo repository.TeamRepository, playerRepo repository.PlayerRepository, snapshotRepo repository.SnapshotRepository) *TeamService {
	return &TeamService{
		teamRepo:     teamRepo,
		playerRepo:   playerRepo,
		snapshotRepo: snapshotRepo,
	}
}

type CreateTeamInput struct {
	Name string
}

func (s *TeamService) CreateTeam(ctx context.Context, coachID uuid.UUID, input CreateTeamInput) (*domain.Team, error) {
	team := &domain.Team{
		ID:        uuid.New(),
		Name:      input.Name,
		CreatedBy: coachID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *TeamService) GetTeam(ctx context.Context, id uuid.UUID) (*domain.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

func (s *TeamService) ListTeamsByCoach(ctx context.Context, coachID uuid.UUID) ([]*domain.Team, error) {
	return s.teamRepo.GetByCreator(ctx, coachID)
}

func (s *TeamService) ListPlayers(ctx context.Context, teamID uuid.UUID) ([]*domain.Player, error) {
	return s.playerRepo.GetByTeamID(ctx, teamID)
}

type AddPlayerInput struct {
	Name         string
	Position     *domain.Position
	JerseyNumber *int
	UserID       *uuid.UUID
}

// AddPlayer attaches a player to a team and creates their initial growth
// snapshot. The initial snapshot is created exactly once; a retried call
// never resets an existing baseline.
func (s *TeamService) AddPlayer(ctx context.Context, teamID uuid.UUID, input AddPlayerInput) (*domain.Player, error) {
	if _, err := s.GetTeam(ctx, teamID); err != nil {
		return nil, err
	}
	if input.Position != nil && !input.Position.IsValid() {
		return nil, domain.ErrInvalidPosition
	}

	player := &domain.Player{
		ID:           uuid.New(),
		UserID:       input.UserID,
		TeamID:       teamID,
		Name:         input.Name,
		Position:     input.Position,
		JerseyNumber: input.JerseyNumber,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, err
	}

	initial := domain.NewGrowthSnapshot(player.ID, nil, 0, domain.DefaultAttributeSet(input.Position))
	if err := s.snapshotRepo.CreateInitial(ctx, initial); err != nil {
		return nil, err
	}

	return player, nil
}
