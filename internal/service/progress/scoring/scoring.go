// Package scoring maps answer outcomes to gamification points. It never sees
// scheduling state beyond the quality, first-time flag and correct streak.
package scoring

import (
	"errors"
	"fmt"

	"github.com/heartmarshall/memorypower/internal/domain"
)

// Rules holds the point values for a single answer.
type Rules struct {
	CorrectPoints  int
	FirstTimeBonus int
	GoodBonus      int
	EasyBonus      int
	StreakBonus    int // per consecutive correct answer beyond the first
	MaxStreakBonus int
}

// DefaultRules returns the reference point table.
func DefaultRules() Rules {
	return Rules{
		CorrectPoints:  10,
		FirstTimeBonus: 5,
		GoodBonus:      2,
		EasyBonus:      5,
		StreakBonus:    1,
		MaxStreakBonus: 5,
	}
}

// Validate rejects negative point values.
func (r Rules) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"correct_points", r.CorrectPoints},
		{"first_time_bonus", r.FirstTimeBonus},
		{"good_bonus", r.GoodBonus},
		{"easy_bonus", r.EasyBonus},
		{"streak_bonus", r.StreakBonus},
		{"max_streak_bonus", r.MaxStreakBonus},
	}

	var errs []error
	for _, f := range fields {
		if f.value < 0 {
			errs = append(errs, fmt.Errorf("%s must be >= 0 (got %d)", f.name, f.value))
		}
	}
	return errors.Join(errs...)
}

// Award is the point delta for one answer plus the reason passed on to the
// gamification ledger.
type Award struct {
	Points int
	Reason domain.PointsReason
}

// Score computes the award for one answer. Incorrect answers earn 0, never
// a negative amount. correctStreak is the streak after the answer.
func Score(rules Rules, quality domain.Quality, isFirstTime bool, correctStreak int) Award {
	if !quality.IsPass() {
		return Award{Points: 0, Reason: domain.PointsReasonIncorrect}
	}

	points := rules.CorrectPoints

	switch quality.Label() {
	case domain.QualityLabelGood:
		points += rules.GoodBonus
	case domain.QualityLabelEasy:
		points += rules.EasyBonus
	}

	if correctStreak > 1 {
		points += min((correctStreak-1)*rules.StreakBonus, rules.MaxStreakBonus)
	}

	reason := domain.PointsReasonCorrect
	if isFirstTime {
		points += rules.FirstTimeBonus
		reason = domain.PointsReasonFirstCorrect
	}

	return Award{Points: max(0, points), Reason: reason}
}
