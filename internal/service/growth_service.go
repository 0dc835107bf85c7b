package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/domain"
	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/metrics"
	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrPlayerNotFound = errors.New("player not found")

// AttributeNotifier receives the final attribute set after a committed
// recalculation. Implemented by the websocket hub; may be nil.
type AttributeNotifier interface {
	NotifyAttributesUpdated(teamID, playerID uuid.UUID, attributes domain.AttributeSet)
}

// GrowthService runs the attribute growth pipeline: it owns the baseline
// resolution, the chain recalculation that follows any stat edit, and the
// derived read of a player's current attributes.
type GrowthService struct {
	txm      repository.TxManager
	repos    *repository.Repositories
	enricher *EnrichmentService
	notifier AttributeNotifier
}

func NewGrowthService(txm repository.TxManager, repos *repository.Repositories, enricher *EnrichmentService, notifier AttributeNotifier) *GrowthService {
	return &GrowthService{
		txm:      txm,
		repos:    repos,
		enricher: enricher,
		notifier: notifier,
	}
}

// SubmitStatsInput is one raw stat line for a (player, match) pair. A nil
// CoachRating defaults to 50.
type SubmitStatsInput struct {
	Goals          int
	Assists        int
	Saves          int
	Tackles        int
	Interceptions  int
	ChancesCreated int
	MinutesPlayed  int

	SuccessfulGoalieKicks  int
	FailedGoalieKicks      int
	SuccessfulGoalieThrows int
	FailedGoalieThrows     int

	CoachRating *int
	Feedback    string
}

// GrowthResult reports one pipeline run: the attributes before the
// submission, the set computed directly for the edited match, the final
// set after replaying every later match, and the per-attribute change
// between previous and final.
type GrowthResult struct {
	PreviousAttributes      domain.AttributeSet `json:"previousAttributes"`
	MatchComputedAttributes domain.AttributeSet `json:"matchComputedAttributes"`
	FinalAttributes         domain.AttributeSet `json:"finalAttributes"`
	Growth                  map[string]int      `json:"growth"`
}

// SubmitMatchStats upserts the stat line for (player, match) and
// re-derives the snapshot chain from that match forward. The review write
// and every snapshot write commit atomically; on any persistence error the
// whole cascade rolls back and no partial state is observable. Concurrent
// submissions for the same player serialize on the player row lock.
func (s *GrowthService) SubmitMatchStats(ctx context.Context, playerID, matchID uuid.UUID, input SubmitStatsInput) (*GrowthResult, error) {
	start := time.Now()

	review := buildReview(playerID, matchID, input)
	if err := review.Validate(); err != nil {
		metrics.StatSubmissions.WithLabelValues(metrics.OutcomeRejected).Inc()
		return nil, err
	}

	var (
		result     GrowthResult
		teamID     uuid.UUID
		playerName string
		position   *domain.Position
	)

	err := s.txm.WithinTransaction(ctx, func(repos *repository.Repositories) error {
		player, err := repos.Player.GetByIDForUpdate(ctx, playerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPlayerNotFound
			}
			return err
		}

		match, err := repos.Match.GetByID(ctx, matchID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMatchNotFound
			}
			return err
		}
		if match.TeamID != player.TeamID {
			return domain.ErrPlayerNotOnTeam
		}

		teamID = player.TeamID
		playerName = player.Name
		position = player.Position

		previous := s.latestAttributes(ctx, repos, player)

		if err := repos.MatchReview.Upsert(ctx, review); err != nil {
			return err
		}

		// Snapshot for the edited match, grown directly from its
		// chronological baseline rather than from the stale chain.
		baseline := s.resolveBaseline(ctx, repos, player, match.Sequence)
		computed := domain.ComputeGrowth(baseline, *review, player.Position)

		snapshots := []*domain.GrowthSnapshot{
			domain.NewGrowthSnapshot(playerID, &match.ID, match.Sequence, computed),
		}

		// Replay every later match in order, each result feeding the next.
		later, err := repos.MatchReview.ListByPlayerAfterSequence(ctx, playerID, match.Sequence)
		if err != nil {
			return err
		}

		carried := computed
		for _, lr := range later {
			carried = domain.ComputeGrowth(carried, *lr, player.Position)
			matchRef := lr.MatchID
			snapshots = append(snapshots, domain.NewGrowthSnapshot(playerID, &matchRef, lr.Match.Sequence, carried))
		}

		if err := repos.Snapshot.UpsertMany(ctx, snapshots); err != nil {
			return err
		}
		metrics.SnapshotsReplayed.Add(float64(len(later)))

		result = GrowthResult{
			PreviousAttributes:      previous,
			MatchComputedAttributes: computed,
			FinalAttributes:         carried,
			Growth:                  previous.Diff(carried),
		}
		return nil
	})

	metrics.PipelineDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		outcome := metrics.OutcomeError
		if errors.Is(err, ErrPlayerNotFound) || errors.Is(err, ErrMatchNotFound) || errors.Is(err, domain.ErrPlayerNotOnTeam) {
			outcome = metrics.OutcomeRejected
		}
		metrics.StatSubmissions.WithLabelValues(outcome).Inc()
		return nil, err
	}
	metrics.StatSubmissions.WithLabelValues(metrics.OutcomeOK).Inc()

	if s.notifier != nil {
		s.notifier.NotifyAttributesUpdated(teamID, playerID, result.FinalAttributes)
	}

	// Enrichment runs outside the transaction on its own deadline. Its
	// failure never affects the committed growth state.
	if s.enricher != nil {
		go s.enricher.EnrichReview(review, playerName, position)
	}

	return &result, nil
}

// GetGrowthHistory returns the full snapshot chain for a player, initial
// snapshot first, then match snapshots in sequence order.
func (s *GrowthService) GetGrowthHistory(ctx context.Context, playerID uuid.UUID) ([]*domain.GrowthSnapshot, error) {
	if _, err := s.repos.Player.GetByID(ctx, playerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return s.repos.Snapshot.ListByPlayer(ctx, playerID)
}

// GetCurrentAttributes derives the player's current attribute set from the
// latest snapshot. There is no separately stored current record to drift.
func (s *GrowthService) GetCurrentAttributes(ctx context.Context, playerID uuid.UUID) (domain.AttributeSet, error) {
	player, err := s.repos.Player.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.AttributeSet{}, ErrPlayerNotFound
		}
		return domain.AttributeSet{}, err
	}
	return s.latestAttributes(ctx, s.repos, player), nil
}

// latestAttributes reads the player's newest snapshot, falling back to the
// default set when none exists.
func (s *GrowthService) latestAttributes(ctx context.Context, repos *repository.Repositories, player *domain.Player) domain.AttributeSet {
	snapshot, err := repos.Snapshot.GetLatest(ctx, player.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("ERROR [growth.latestAttributes] lookup failed for player %s: %v", player.ID, err)
		}
		return domain.DefaultAttributeSet(player.Position)
	}
	return snapshot.AttributeSet()
}

// resolveBaseline finds the attribute set a growth computation starts
// from: the most recent snapshot strictly before the match, which includes
// the initial (sequence 0) snapshot. Lookup failures degrade to the
// default set rather than failing the pipeline; a real error is logged so
// data problems stay visible.
func (s *GrowthService) resolveBaseline(ctx context.Context, repos *repository.Repositories, player *domain.Player, matchSeq int64) domain.AttributeSet {
	snapshot, err := repos.Snapshot.GetLatestBefore(ctx, player.ID, matchSeq)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("ERROR [growth.resolveBaseline] lookup failed for player %s: %v", player.ID, err)
		}
		return domain.DefaultAttributeSet(player.Position)
	}
	return snapshot.AttributeSet()
}

func buildReview(playerID, matchID uuid.UUID, input SubmitStatsInput) *domain.MatchReview {
	coachRating := domain.DefaultRating
	if input.CoachRating != nil {
		coachRating = *input.CoachRating
	}

	return &domain.MatchReview{
		ID:                     uuid.New(),
		PlayerID:               playerID,
		MatchID:                matchID,
		Goals:                  input.Goals,
		Assists:                input.Assists,
		Saves:                  input.Saves,
		Tackles:                input.Tackles,
		Interceptions:          input.Interceptions,
		ChancesCreated:         input.ChancesCreated,
		MinutesPlayed:          input.MinutesPlayed,
		SuccessfulGoalieKicks:  input.SuccessfulGoalieKicks,
		FailedGoalieKicks:      input.FailedGoalieKicks,
		SuccessfulGoalieThrows: input.SuccessfulGoalieThrows,
		FailedGoalieThrows:     input.FailedGoalieThrows,
		CoachRating:            coachRating,
		Feedback:               input.Feedback,
		CreatedAt:              time.Now(),
		UpdatedAt:              time.Now(),
	}
}
