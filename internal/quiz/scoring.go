package quiz

import "math"

// Base points derive from the time limit: 10 s is the reference round worth
// 100 points, shorter rounds are worth more, longer rounds less.
const (
	referenceLimitSeconds = 10
	referencePoints       = 100
	shortRoundBonus       = 20 // per second under the reference limit
	longRoundMalus        = 10 // per second over the reference limit
	minBasePoints         = 10

	wrongGuessFraction = 0.05 // of base points, percent penalty policy
	flatPenaltyPoints  = 10
)

// BasePoints computes the maximum score obtainable for a round with the
// given time limit. The long-limit branch is clamped at minBasePoints so a
// generous limit never produces a negative-scoring round.
func BasePoints(timeLimitSeconds int) float64 {
	switch {
	case timeLimitSeconds == referenceLimitSeconds:
		return referencePoints
	case timeLimitSeconds < referenceLimitSeconds:
		return referencePoints + float64(referenceLimitSeconds-timeLimitSeconds)*shortRoundBonus
	default:
		return max(referencePoints-float64(timeLimitSeconds-referenceLimitSeconds)*longRoundMalus, minBasePoints)
	}
}

// penalty returns the deduction for one wrong guess under the given policy.
func penalty(policy PenaltyPolicy, basePoints float64) float64 {
	if policy == PenaltyFlat {
		return flatPenaltyPoints
	}
	return basePoints * wrongGuessFraction
}

// resultMessage grades a frozen round score against its base points.
func resultMessage(score, basePoints float64) string {
	switch {
	case score > 0.8*basePoints:
		return "Excellent"
	case score > 0.5*basePoints:
		return "Great"
	case score > 0.2*basePoints:
		return "Not bad"
	default:
		return "Better luck next time."
	}
}

// displayScore rounds an accumulated score for presentation. Accumulation
// itself stays at full precision.
func displayScore(score float64) int {
	return int(math.Round(score))
}
