package service_test

import (
	"context"
	"testing"

	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/domain"
	repoPostgres "github.com/Evolv11-Capstone/Evolv11-sub001/internal/repository/postgres"
	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/service"
	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedNotification struct {
	teamID     uuid.UUID
	playerID   uuid.UUID
	attributes domain.AttributeSet
}

type fakeNotifier struct {
	notifications []capturedNotification
}

func (f *fakeNotifier) NotifyAttributesUpdated(teamID, playerID uuid.UUID, attributes domain.AttributeSet) {
	f.notifications = append(f.notifications, capturedNotification{teamID, playerID, attributes})
}

func intPtr(v int) *int { return &v }

func TestGrowthService_SubmitMatchStats(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := testutil.NewTestDB(t)
	repos := repoPostgres.NewRepositories(testDB.DB)
	txm := repoPostgres.NewTxManager(testDB.DB)
	ctx := context.Background()

	newService := func(notifier service.AttributeNotifier) *service.GrowthService {
		return service.NewGrowthService(txm, repos, nil, notifier)
	}

	t.Run("first submission grows from the initial snapshot", func(t *testing.T) {
		testDB.Truncate(t)
		svc := newService(nil)
		player := testutil.NewPlayerBuilder().Build(t, testDB.DB)
		match := testutil.NewMatchBuilder().WithTeam(player.TeamID).Build(t, testDB.DB)

		result, err := svc.SubmitMatchStats(ctx, player.ID, match.ID, service.SubmitStatsInput{
			Goals: 2, MinutesPlayed: 90,
		})
		require.NoError(t, err)

		assert.Equal(t, domain.DefaultAttributeSet(nil), result.PreviousAttributes)
		assert.Equal(t, 52, result.FinalAttributes.Shooting)
		assert.Equal(t, result.MatchComputedAttributes, result.FinalAttributes)
		assert.Equal(t, 2, result.Growth["shooting"])

		current, err := svc.GetCurrentAttributes(ctx, player.ID)
		require.NoError(t, err)
		assert.Equal(t, result.FinalAttributes, current)

		history, err := svc.GetGrowthHistory(ctx, player.ID)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, int64(0), history[0].Sequence)
		assert.Equal(t, match.Sequence, history[1].Sequence)
	})

	t.Run("editing an early match recomputes every later snapshot", func(t *testing.T) {
		testDB.Truncate(t)
		svc := newService(nil)
		player := testutil.NewPlayerBuilder().Build(t, testDB.DB)

		matches := make([]*domain.Match, 3)
		inputs := []service.SubmitStatsInput{
			{Goals: 1, MinutesPlayed: 90},
			{Assists: 2, ChancesCreated: 1, MinutesPlayed: 90},
			{Tackles: 3, Interceptions: 2, MinutesPlayed: 90},
		}
		for i, input := range inputs {
			matches[i] = testutil.NewMatchBuilder().WithTeam(player.TeamID).Build(t, testDB.DB)
			_, err := svc.SubmitMatchStats(ctx, player.ID, matches[i].ID, input)
			require.NoError(t, err)
		}

		// Rewrite the first stat line; matches 2 and 3 were not touched
		// but their snapshots depend on match 1's result.
		edited := service.SubmitStatsInput{Goals: 4, ChancesCreated: 2, MinutesPlayed: 90}
		result, err := svc.SubmitMatchStats(ctx, player.ID, matches[0].ID, edited)
		require.NoError(t, err)

		// Replay the whole chain by hand through the pure calculator.
		expected := domain.ComputeGrowth(domain.DefaultAttributeSet(nil), domain.MatchReview{
			Goals: 4, ChancesCreated: 2, MinutesPlayed: 90, CoachRating: 50,
		}, nil)
		expected = domain.ComputeGrowth(expected, domain.MatchReview{
			Assists: 2, ChancesCreated: 1, MinutesPlayed: 90, CoachRating: 50,
		}, nil)
		expected = domain.ComputeGrowth(expected, domain.MatchReview{
			Tackles: 3, Interceptions: 2, MinutesPlayed: 90, CoachRating: 50,
		}, nil)

		assert.Equal(t, expected, result.FinalAttributes)

		history, err := svc.GetGrowthHistory(ctx, player.ID)
		require.NoError(t, err)
		require.Len(t, history, 4)
		assert.Equal(t, expected, history[3].AttributeSet())

		current, err := svc.GetCurrentAttributes(ctx, player.ID)
		require.NoError(t, err)
		assert.Equal(t, expected, current)
	})

	t.Run("resubmitting identical stats changes nothing", func(t *testing.T) {
		testDB.Truncate(t)
		svc := newService(nil)
		player := testutil.NewPlayerBuilder().Build(t, testDB.DB)
		match1 := testutil.NewMatchBuilder().WithTeam(player.TeamID).Build(t, testDB.DB)
		match2 := testutil.NewMatchBuilder().WithTeam(player.TeamID).Build(t, testDB.DB)

		input := service.SubmitStatsInput{Goals: 1, Assists: 1, MinutesPlayed: 80, CoachRating: intPtr(70)}
		_, err := svc.SubmitMatchStats(ctx, player.ID, match1.ID, input)
		require.NoError(t, err)
		_, err = svc.SubmitMatchStats(ctx, player.ID, match2.ID, service.SubmitStatsInput{MinutesPlayed: 90})
		require.NoError(t, err)

		before, err := svc.GetGrowthHistory(ctx, player.ID)
		require.NoError(t, err)

		_, err = svc.SubmitMatchStats(ctx, player.ID, match1.ID, input)
		require.NoError(t, err)

		after, err := svc.GetGrowthHistory(ctx, player.ID)
		require.NoError(t, err)
		require.Len(t, after, len(before))
		for i := range before {
			assert.Equal(t, before[i].AttributeSet(), after[i].AttributeSet(), "snapshot %d", i)
			assert.Equal(t, before[i].Sequence, after[i].Sequence)
		}
	})

	t.Run("filling in an earlier match feeds later snapshots", func(t *testing.T) {
		testDB.Truncate(t)
		svc := newService(nil)
		player := testutil.NewPlayerBuilder().Build(t, testDB.DB)
		match1 := testutil.NewMatchBuilder().WithTeam(player.TeamID).Build(t, testDB.DB)
		match2 := testutil.NewMatchBuilder().WithTeam(player.TeamID).Build(t, testDB.DB)

		// Stats arrive out of order: the later match is reviewed first.
		_, err := svc.SubmitMatchStats(ctx, player.ID, match2.ID, service.SubmitStatsInput{
			Goals: 1, MinutesPlayed: 90,
		})
		require.NoError(t, err)

		result, err := svc.SubmitMatchStats(ctx, player.ID, match1.ID, service.SubmitStatsInput{
			Assists: 3, MinutesPlayed: 90,
		})
		require.NoError(t, err)

		expected := domain.ComputeGrowth(domain.DefaultAttributeSet(nil), domain.MatchReview{
			Assists: 3, MinutesPlayed: 90, CoachRating: 50,
		}, nil)
		assert.Equal(t, expected, result.MatchComputedAttributes)

		expected = domain.ComputeGrowth(expected, domain.MatchReview{
			Goals: 1, MinutesPlayed: 90, CoachRating: 50,
		}, nil)
		assert.Equal(t, expected, result.FinalAttributes)
	})

	t.Run("goalkeeper chain carries keeper skills", func(t *testing.T) {
		testDB.Truncate(t)
		svc := newService(nil)
		player := testutil.NewPlayerBuilder().WithPosition(domain.PositionGK).Build(t, testDB.DB)
		match := testutil.NewMatchBuilder().WithTeam(player.TeamID).Build(t, testDB.DB)

		result, err := svc.SubmitMatchStats(ctx, player.ID, match.ID, service.SubmitStatsInput{
			Saves: 6, MinutesPlayed: 90,
			SuccessfulGoalieKicks: 8, FailedGoalieKicks: 2,
		})
		require.NoError(t, err)

		require.NotNil(t, result.FinalAttributes.Goalkeeper)
		assert.Greater(t, result.FinalAttributes.Goalkeeper.Diving, domain.DefaultRating)

		history, err := svc.GetGrowthHistory(ctx, player.ID)
		require.NoError(t, err)
		require.Len(t, history, 2)
		require.NotNil(t, history[1].Diving)
	})

	t.Run("invalid stat lines are rejected before any write", func(t *testing.T) {
		testDB.Truncate(t)
		svc := newService(nil)
		player := testutil.NewPlayerBuilder().Build(t, testDB.DB)
		match := testutil.NewMatchBuilder().WithTeam(player.TeamID).Build(t, testDB.DB)

		tests := []struct {
			name    string
			input   service.SubmitStatsInput
			wantErr error
		}{
			{"negative goals", service.SubmitStatsInput{Goals: -1}, domain.ErrNegativeStat},
			{"impossible minutes", service.SubmitStatsInput{MinutesPlayed: 130}, domain.ErrInvalidMinutes},
			{"coach rating out of range", service.SubmitStatsInput{CoachRating: intPtr(150)}, domain.ErrInvalidCoachRating},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.SubmitMatchStats(ctx, player.ID, match.ID, tt.input)
				assert.ErrorIs(t, err, tt.wantErr)
			})
		}

		var count int64
		require.NoError(t, testDB.DB.Model(&domain.MatchReview{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("unknown player and match are rejected", func(t *testing.T) {
		testDB.Truncate(t)
		svc := newService(nil)
		player := testutil.NewPlayerBuilder().Build(t, testDB.DB)
		match := testutil.NewMatchBuilder().WithTeam(player.TeamID).Build(t, testDB.DB)

		_, err := svc.SubmitMatchStats(ctx, uuid.New(), match.ID, service.SubmitStatsInput{MinutesPlayed: 90})
		assert.ErrorIs(t, err, service.ErrPlayerNotFound)

		_, err = svc.SubmitMatchStats(ctx, player.ID, uuid.New(), service.SubmitStatsInput{MinutesPlayed: 90})
		assert.ErrorIs(t, err, service.ErrMatchNotFound)
	})

	t.Run("match from another team is rejected", func(t *testing.T) {
		testDB.Truncate(t)
		svc := newService(nil)
		player := testutil.NewPlayerBuilder().Build(t, testDB.DB)
		otherTeam := testutil.NewTeamBuilder().Build(t, testDB.DB)
		foreignMatch := testutil.NewMatchBuilder().WithTeam(otherTeam.ID).Build(t, testDB.DB)

		_, err := svc.SubmitMatchStats(ctx, player.ID, foreignMatch.ID, service.SubmitStatsInput{MinutesPlayed: 90})
		assert.ErrorIs(t, err, domain.ErrPlayerNotOnTeam)

		var count int64
		require.NoError(t, testDB.DB.Model(&domain.MatchReview{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("notifier receives the committed final attributes", func(t *testing.T) {
		testDB.Truncate(t)
		notifier := &fakeNotifier{}
		svc := newService(notifier)
		player := testutil.NewPlayerBuilder().Build(t, testDB.DB)
		match := testutil.NewMatchBuilder().WithTeam(player.TeamID).Build(t, testDB.DB)

		result, err := svc.SubmitMatchStats(ctx, player.ID, match.ID, service.SubmitStatsInput{
			Goals: 1, MinutesPlayed: 90,
		})
		require.NoError(t, err)

		require.Len(t, notifier.notifications, 1)
		assert.Equal(t, player.TeamID, notifier.notifications[0].teamID)
		assert.Equal(t, player.ID, notifier.notifications[0].playerID)
		assert.Equal(t, result.FinalAttributes, notifier.notifications[0].attributes)
	})

	t.Run("rejected submissions do not notify", func(t *testing.T) {
		testDB.Truncate(t)
		notifier := &fakeNotifier{}
		svc := newService(notifier)
		player := testutil.NewPlayerBuilder().Build(t, testDB.DB)
		match := testutil.NewMatchBuilder().WithTeam(player.TeamID).Build(t, testDB.DB)

		_, err := svc.SubmitMatchStats(ctx, player.ID, match.ID, service.SubmitStatsInput{Goals: -1})
		require.Error(t, err)
		assert.Empty(t, notifier.notifications)
	})
}

func TestGrowthService_Reads(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := testutil.NewTestDB(t)
	repos := repoPostgres.NewRepositories(testDB.DB)
	txm := repoPostgres.NewTxManager(testDB.DB)
	svc := service.NewGrowthService(txm, repos, nil, nil)
	ctx := context.Background()

	t.Run("unknown player", func(t *testing.T) {
		testDB.Truncate(t)

		_, err := svc.GetGrowthHistory(ctx, uuid.New())
		assert.ErrorIs(t, err, service.ErrPlayerNotFound)

		_, err = svc.GetCurrentAttributes(ctx, uuid.New())
		assert.ErrorIs(t, err, service.ErrPlayerNotFound)
	})

	t.Run("player without snapshots falls back to defaults", func(t *testing.T) {
		testDB.Truncate(t)
		player := testutil.NewPlayerBuilder().Build(t, testDB.DB)
		// Simulate legacy data created before initial snapshots existed.
		require.NoError(t, testDB.DB.
			Where("player_id = ?", player.ID).
			Delete(&domain.GrowthSnapshot{}).Error)

		current, err := svc.GetCurrentAttributes(ctx, player.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultAttributeSet(nil), current)
	})

	t.Run("history for a fresh player is the initial snapshot only", func(t *testing.T) {
		testDB.Truncate(t)
		player := testutil.NewPlayerBuilder().Build(t, testDB.DB)

		history, err := svc.GetGrowthHistory(ctx, player.ID)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, int64(0), history[0].Sequence)
		assert.Nil(t, history[0].MatchID)
		assert.Equal(t, domain.DefaultAttributeSet(nil), history[0].AttributeSet())
	})
}
