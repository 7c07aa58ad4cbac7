package memorypower

import (
	"errors"
	"fmt"
	"time"
)

// Policy holds the tunable scheduling constants. Mastery and retention
// formulas are fixed; only intervals and thresholds are configurable.
type Policy struct {
	// LearningSteps are the intervals used while in learning, indexed by the
	// current run of consecutive passes (first pass uses step 0).
	LearningSteps []time.Duration
	// GraduationStreak is the number of consecutive passes that promotes a
	// learning item to reviewing.
	GraduationStreak int
	// GraduatingInterval is the first interval after graduation.
	GraduatingInterval time.Duration
	// RelearningInterval is set on a hard reset and is also the floor for a
	// shortened reviewing interval.
	RelearningInterval time.Duration
	// LapseThreshold is the consecutive-failure count that hard-resets a
	// reviewing item back to learning.
	LapseThreshold int
	// Growth holds the reviewing interval multipliers for qualities 2..5.
	Growth [4]float64
	// LapseMultiplier shortens the interval on a reviewing failure that does
	// not yet reach LapseThreshold.
	LapseMultiplier float64
	// MaxInterval caps every interval.
	MaxInterval time.Duration
}

// DefaultPolicy returns the reference scheduling constants.
func DefaultPolicy() Policy {
	return Policy{
		LearningSteps:      []time.Duration{time.Minute, 10 * time.Minute},
		GraduationStreak:   2,
		GraduatingInterval: 24 * time.Hour,
		RelearningInterval: 10 * time.Minute,
		LapseThreshold:     3,
		Growth:             [4]float64{1.3, 1.8, 2.2, 2.5},
		LapseMultiplier:    0.5,
		MaxInterval:        365 * 24 * time.Hour,
	}
}

// Validate checks that the policy can drive the state machine.
func (p Policy) Validate() error {
	var errs []error

	if len(p.LearningSteps) == 0 {
		errs = append(errs, errors.New("learning_steps: at least one step required"))
	}
	for i, step := range p.LearningSteps {
		if step < time.Minute {
			errs = append(errs, fmt.Errorf("learning_steps[%d]: must be >= 1m (got %s)", i, step))
		}
	}
	if p.GraduationStreak < 1 {
		errs = append(errs, fmt.Errorf("graduation_streak: must be >= 1 (got %d)", p.GraduationStreak))
	}
	if p.GraduatingInterval < time.Minute {
		errs = append(errs, fmt.Errorf("graduating_interval: must be >= 1m (got %s)", p.GraduatingInterval))
	}
	if p.RelearningInterval < time.Minute {
		errs = append(errs, fmt.Errorf("relearning_interval: must be >= 1m (got %s)", p.RelearningInterval))
	}
	if p.LapseThreshold < 1 {
		errs = append(errs, fmt.Errorf("lapse_threshold: must be >= 1 (got %d)", p.LapseThreshold))
	}
	for i, g := range p.Growth {
		if g <= 1 {
			errs = append(errs, fmt.Errorf("growth[%d]: must be > 1 (got %v)", i, g))
		}
		if i > 0 && g < p.Growth[i-1] {
			errs = append(errs, fmt.Errorf("growth[%d]: must not be lower than growth[%d]", i, i-1))
		}
	}
	if p.LapseMultiplier <= 0 || p.LapseMultiplier >= 1 {
		errs = append(errs, fmt.Errorf("lapse_multiplier: must be in (0,1) (got %v)", p.LapseMultiplier))
	}
	if p.MaxInterval < p.GraduatingInterval {
		errs = append(errs, fmt.Errorf("max_interval: must be >= graduating_interval (got %s)", p.MaxInterval))
	}

	return errors.Join(errs...)
}

// learningStep returns the learning interval, in minutes, for the given run
// of consecutive passes. Runs past the last step reuse it.
func (p Policy) learningStep(streak int) int {
	idx := min(max(streak-1, 0), len(p.LearningSteps)-1)
	return minutes(p.LearningSteps[idx])
}

func minutes(d time.Duration) int {
	return max(1, int(d/time.Minute))
}
