// Package memorypower implements the Memory Power spaced-repetition model:
// a mastery estimate, an exponential forgetting curve, and the answer
// state machine that combines them. Everything here is pure: no I/O, no
// clock reads, no shared mutable state.
package memorypower

import (
	"math"
	"time"

	"github.com/heartmarshall/memorypower/internal/domain"
)

// MasteryFloor is the lowest mastery an item can have once it has left new.
const MasteryFloor = 0.10

// dueDecay sets the forgetting curve so that retention at the scheduled due
// time is exp(-0.105) ≈ 0.90.
const dueDecay = 0.105

const (
	learningBase     = 0.10
	learningPerRep   = 0.06
	reviewingBase    = 0.60
	reviewingPerRep  = 0.057
	repGrowthCap     = 7
	streakBonusAfter = 5
	streakBonusStep  = 0.02
	incorrectPenalty = 0.15
)

// Mastery estimates how strongly an item is encoded, independent of time.
//
//	new:       0
//	learning:  0.10 + min(reps,7)*0.06
//	reviewing: 0.60 + min(reps,7)*0.057 + max(0, streak-5)*0.02
//	           - min(incorrect*0.15, raw-0.10)
func Mastery(status domain.ProgressStatus, repetitions, correctStreak, incorrectStreak int) float64 {
	reps := float64(min(max(repetitions, 0), repGrowthCap))

	switch status {
	case domain.ProgressStatusLearning:
		return clamp01(learningBase + reps*learningPerRep)

	case domain.ProgressStatusReviewing:
		raw := reviewingBase + reps*reviewingPerRep
		raw += float64(max(0, correctStreak-streakBonusAfter)) * streakBonusStep
		if incorrectStreak > 0 {
			// Never crosses the floor in a single step.
			penalty := math.Min(float64(incorrectStreak)*incorrectPenalty, raw-MasteryFloor)
			raw -= penalty
		}
		return clamp01(raw)

	default:
		return 0
	}
}

// Retention is the probability of recall at now, given the last review and
// the scheduled interval.
//
//	R = exp(-(0.105/interval) * elapsed)
//
// A never-reviewed item or a non-positive interval has no basis for an
// estimate and yields 0.
func Retention(lastReviewed *time.Time, intervalMinutes int, now time.Time) float64 {
	if lastReviewed == nil || intervalMinutes <= 0 {
		return 0
	}

	elapsed := math.Max(0, now.Sub(*lastReviewed).Minutes())
	decay := dueDecay / float64(intervalMinutes)

	return clamp01(math.Exp(-decay * elapsed))
}

// Power combines mastery and retention into the memory power score.
func Power(mastery, retention float64) float64 {
	return clamp01(mastery * retention)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
