package domain

import "math"

// Growth tuning constants. Each facet delta is a weighted combination of
// the counting stats most relevant to it; the dominant stat carries the
// highest weight.
const (
	shootingGoalWeight   = 2.0
	shootingChanceWeight = 0.3

	passingAssistWeight = 1.5
	passingChanceWeight = 0.5

	dribblingChanceWeight = 0.8
	dribblingAssistWeight = 0.4

	defenseInterceptionWeight = 1.2
	defenseTackleWeight       = 0.9
	defenseSaveWeight         = 0.3

	divingSaveWeight = 1.1

	// A facet with zero relevant stats regresses when the player was on
	// the pitch long enough to have contributed.
	inactivityPenalty      = -1.5
	inactivityMinutes      = 45
	inactivityMinutesShort = 30

	// Physical growth is full-game credit: playing the whole match is
	// worth physicalFullGameCredit before the diminishing transform.
	physicalFullGameCredit   = 0.8
	physicalShortGamePenalty = -1.0
	physicalMinMinutes       = 30
	fullMatchMinutes         = 90

	// Coach grade is pulled toward the subjective rating, with flat
	// penalties for poor ratings.
	coachGradePullFactor    = 0.15
	coachLowRatingThreshold = 40
	coachLowRatingPenalty   = -1.0
	coachVeryLowThreshold   = 30
	coachVeryLowPenalty     = -2.0

	// Goalkeeper distribution is judged against expected success rates.
	kickSuccessExpectation  = 0.75
	throwSuccessExpectation = 0.85
	distributionRateWeight  = 6.0
	distributionVolumeBonus = 0.1
	distributionVolumeCap   = 10
)

// ComputeGrowth derives the attribute set after one match from the set
// before it. Pure and deterministic: same inputs always produce the same
// output, and no input combination errors. Missing stats are zeros and a
// missing position means outfield.
func ComputeGrowth(current AttributeSet, stats MatchReview, pos *Position) AttributeSet {
	next := current

	next.Shooting = applyGrowth(current.Shooting, shootingDelta(stats))
	next.Passing = applyGrowth(current.Passing, passingDelta(stats))
	next.Dribbling = applyGrowth(current.Dribbling, dribblingDelta(stats))
	next.Defense = applyGrowth(current.Defense, defenseDelta(stats))
	next.Physical = applyGrowth(current.Physical, physicalDelta(stats))
	next.CoachGrade = growCoachGrade(current.CoachGrade, stats.CoachRating)

	if pos != nil && pos.IsGoalkeeper() {
		gk := GoalkeeperSkills{
			Diving:   DefaultRating,
			Handling: DefaultRating,
			Kicking:  DefaultRating,
		}
		if current.Goalkeeper != nil {
			gk = *current.Goalkeeper
		}
		gk.Diving = applyGrowth(gk.Diving, divingDelta(stats))
		gk.Kicking = applyGrowth(gk.Kicking, kickingDelta(stats))
		gk.Handling = applyGrowth(gk.Handling, handlingDelta(stats))
		next.Goalkeeper = &gk
	}

	next.OverallRating = next.ComputeOverall()
	return next
}

// applyGrowth passes a raw delta through the asymmetric diminishing-returns
// transform and adds it to the current rating. Gains shrink as the rating
// approaches 100; losses shrink as it approaches the floor.
func applyGrowth(current int, delta float64) int {
	var scaled float64
	if delta >= 0 {
		scaled = delta * math.Max(0.1, float64(RatingCeiling-current)/100)
	} else {
		scaled = delta * math.Max(0.5, float64(current)/100)
	}
	return ClampRating(int(math.Round(float64(current) + scaled)))
}

func shootingDelta(stats MatchReview) float64 {
	if stats.Goals == 0 && stats.ChancesCreated == 0 && stats.MinutesPlayed > inactivityMinutes {
		return inactivityPenalty
	}
	return shootingGoalWeight*float64(stats.Goals) + shootingChanceWeight*float64(stats.ChancesCreated)
}

func passingDelta(stats MatchReview) float64 {
	if stats.Assists == 0 && stats.ChancesCreated == 0 && stats.MinutesPlayed > inactivityMinutes {
		return inactivityPenalty
	}
	return passingAssistWeight*float64(stats.Assists) + passingChanceWeight*float64(stats.ChancesCreated)
}

func dribblingDelta(stats MatchReview) float64 {
	if stats.ChancesCreated == 0 && stats.Assists == 0 && stats.MinutesPlayed > inactivityMinutesShort {
		return inactivityPenalty
	}
	return dribblingChanceWeight*float64(stats.ChancesCreated) + dribblingAssistWeight*float64(stats.Assists)
}

func defenseDelta(stats MatchReview) float64 {
	if stats.Interceptions == 0 && stats.Tackles == 0 && stats.Saves == 0 && stats.MinutesPlayed > inactivityMinutes {
		return inactivityPenalty
	}
	return defenseInterceptionWeight*float64(stats.Interceptions) +
		defenseTackleWeight*float64(stats.Tackles) +
		defenseSaveWeight*float64(stats.Saves)
}

func physicalDelta(stats MatchReview) float64 {
	if stats.MinutesPlayed < physicalMinMinutes {
		return physicalShortGamePenalty
	}
	return float64(stats.MinutesPlayed) / fullMatchMinutes * physicalFullGameCredit
}

// growCoachGrade pulls the grade toward the coach's subjective rating. The
// pull term already shrinks with distance, so the diminishing-returns
// transform is not applied here.
func growCoachGrade(current, coachRating int) int {
	delta := float64(coachRating-current) * coachGradePullFactor
	switch {
	case coachRating < coachVeryLowThreshold:
		delta += coachVeryLowPenalty
	case coachRating < coachLowRatingThreshold:
		delta += coachLowRatingPenalty
	}
	return ClampRating(int(math.Round(float64(current) + delta)))
}

func divingDelta(stats MatchReview) float64 {
	if stats.Saves == 0 && stats.MinutesPlayed > inactivityMinutes {
		return inactivityPenalty
	}
	return divingSaveWeight * float64(stats.Saves)
}

func kickingDelta(stats MatchReview) float64 {
	return distributionDelta(stats.SuccessfulGoalieKicks, stats.TotalKicks(), kickSuccessExpectation, stats.MinutesPlayed)
}

func handlingDelta(stats MatchReview) float64 {
	return distributionDelta(stats.SuccessfulGoalieThrows, stats.TotalThrows(), throwSuccessExpectation, stats.MinutesPlayed)
}

// distributionDelta scores distribution quality against an expected
// success rate, with a small volume bonus. The rate branch is only entered
// when at least one attempt exists, so it can never divide by zero.
func distributionDelta(successful, attempts int, expectation float64, minutes int) float64 {
	if attempts == 0 {
		if minutes > inactivityMinutes {
			return inactivityPenalty
		}
		return 0
	}
	rate := float64(successful) / float64(attempts)
	volume := math.Min(float64(attempts), distributionVolumeCap) * distributionVolumeBonus
	return (rate-expectation)*distributionRateWeight + volume
}
