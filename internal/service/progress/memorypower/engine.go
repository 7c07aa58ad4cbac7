package memorypower

import (
	"fmt"
	"math"
	"time"

	"github.com/heartmarshall/memorypower/internal/domain"
)

// Outcome is the result of processing one answer.
type Outcome struct {
	State domain.ProgressState
	// Retention is reported as of the moment of update (1.0 right after a
	// review), while State.IntervalMinutes drives future decay.
	Retention   float64
	MemoryPower float64
	// Graduated is set when the answer promoted learning to reviewing.
	Graduated bool
	// Lapsed is set when the answer hard-reset reviewing back to learning.
	Lapsed bool
}

// ProcessAnswer applies one answer to state and returns the new state with
// its memory power. It is the only transition function for ProgressState.
// The input state is never modified. An invalid policy is rejected before
// the quality is looked at.
func ProcessAnswer(policy Policy, state domain.ProgressState, quality domain.Quality, now time.Time) (Outcome, error) {
	if err := policy.Validate(); err != nil {
		return Outcome{}, fmt.Errorf("invalid memory power policy: %w", err)
	}
	return processAnswer(policy, state, quality, now)
}

// processAnswer is ProcessAnswer for a policy that is known to be valid.
func processAnswer(policy Policy, state domain.ProgressState, quality domain.Quality, now time.Time) (Outcome, error) {
	if !quality.IsValid() {
		return Outcome{}, fmt.Errorf("quality %d: %w", quality, domain.ErrInvalidQuality)
	}

	var out Outcome

	switch state.Status {
	case domain.ProgressStatusNew:
		out = reviewNew(policy, state, quality)
	case domain.ProgressStatusLearning:
		out = reviewLearning(policy, state, quality)
	case domain.ProgressStatusReviewing:
		out = reviewReviewing(policy, state, quality)
	default:
		return Outcome{}, fmt.Errorf("unknown progress status: %q", state.Status)
	}

	reviewed := now
	out.State.LastReviewed = &reviewed

	out.State.Mastery = Mastery(out.State.Status, out.State.Repetitions, out.State.CorrectStreak, out.State.IncorrectStreak)
	if out.Lapsed {
		out.State.Mastery = math.Max(MasteryFloor, out.State.Mastery)
	}

	out.Retention = Retention(out.State.LastReviewed, out.State.IntervalMinutes, now)
	out.MemoryPower = Power(out.State.Mastery, out.Retention)

	return out, nil
}

// reviewNew handles the first answer to an item. Both outcomes move it to
// learning at step 0; a failure simply starts the incorrect streak.
func reviewNew(policy Policy, state domain.ProgressState, quality domain.Quality) Outcome {
	state.Status = domain.ProgressStatusLearning
	state.IntervalMinutes = policy.learningStep(1)

	if quality.IsPass() {
		state.Repetitions = 1
		state.CorrectStreak = 1
		state.IncorrectStreak = 0
	} else {
		state.Repetitions = 0
		state.CorrectStreak = 0
		state.IncorrectStreak = 1
	}

	return Outcome{State: state}
}

// reviewLearning handles learning items: passes walk the learning steps
// until the graduation streak, failures restart at step 0.
func reviewLearning(policy Policy, state domain.ProgressState, quality domain.Quality) Outcome {
	if !quality.IsPass() {
		state.IncorrectStreak++
		state.CorrectStreak = 0
		state.IntervalMinutes = policy.learningStep(1)
		return Outcome{State: state}
	}

	state.Repetitions++
	state.CorrectStreak++
	state.IncorrectStreak = 0

	if state.CorrectStreak >= policy.GraduationStreak {
		state.Status = domain.ProgressStatusReviewing
		state.Repetitions = 0
		state.IntervalMinutes = minutes(policy.GraduatingInterval)
		return Outcome{State: state, Graduated: true}
	}

	state.IntervalMinutes = policy.learningStep(state.CorrectStreak)
	return Outcome{State: state}
}

// reviewReviewing handles reviewing items: passes grow the interval by a
// quality-indexed multiplier, failures shorten it until the lapse threshold
// forces a hard reset.
func reviewReviewing(policy Policy, state domain.ProgressState, quality domain.Quality) Outcome {
	base := state.IntervalMinutes
	if base <= 0 {
		base = minutes(policy.GraduatingInterval)
	}
	maxMinutes := minutes(policy.MaxInterval)

	if quality.IsPass() {
		state.Repetitions++
		state.CorrectStreak++
		state.IncorrectStreak = 0

		growth := policy.Growth[int(quality-domain.PassThreshold)]
		next := int(math.Round(float64(base) * growth))
		next = max(next, base+1)
		state.IntervalMinutes = min(next, maxMinutes)
		return Outcome{State: state}
	}

	state.IncorrectStreak++
	state.CorrectStreak = 0

	if state.IncorrectStreak >= policy.LapseThreshold {
		state.Status = domain.ProgressStatusLearning
		state.Repetitions = 0
		state.IntervalMinutes = minutes(policy.RelearningInterval)
		return Outcome{State: state, Lapsed: true}
	}

	shortened := int(math.Round(float64(base) * policy.LapseMultiplier))
	state.IntervalMinutes = min(max(shortened, minutes(policy.RelearningInterval)), maxMinutes)
	return Outcome{State: state}
}

// Project computes the read-only memory power view of state at the given
// time. It never changes state.
func Project(state domain.ProgressState, at time.Time) domain.Projection {
	mastery := clamp01(state.Mastery)
	if state.Status == domain.ProgressStatusNew {
		mastery = 0
	}
	retention := Retention(state.LastReviewed, state.IntervalMinutes, at)

	return domain.Projection{
		UserID:       state.UserID,
		ItemID:       state.ItemID,
		Status:       state.Status,
		Mastery:      mastery,
		Retention:    retention,
		MemoryPower:  Power(mastery, retention),
		NextReviewAt: state.NextReviewAt(),
	}
}

// Engine binds a validated Policy to the pure functions above.
type Engine struct {
	policy Policy
}

// New creates an Engine after validating the policy.
func New(policy Policy) (*Engine, error) {
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid memory power policy: %w", err)
	}
	steps := make([]time.Duration, len(policy.LearningSteps))
	copy(steps, policy.LearningSteps)
	policy.LearningSteps = steps

	return &Engine{policy: policy}, nil
}

// Policy returns the engine's policy.
func (e *Engine) Policy() Policy { return e.policy }

// Process applies one answer to state. See ProcessAnswer; the policy was
// validated by New.
func (e *Engine) Process(state domain.ProgressState, quality domain.Quality, now time.Time) (Outcome, error) {
	return processAnswer(e.policy, state, quality, now)
}

// Project returns the memory power view of state at the given time.
func (e *Engine) Project(state domain.ProgressState, at time.Time) domain.Projection {
	return Project(state, at)
}
