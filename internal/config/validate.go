package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case StoragePostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for the postgres backend")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("storage.backend must be postgres or memory (got %q)", c.Storage.Backend)
	}

	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := c.Engine.validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if err := c.Scoring.validate(); err != nil {
		return fmt.Errorf("scoring: %w", err)
	}
	if err := c.Progress.validate(); err != nil {
		return fmt.Errorf("progress: %w", err)
	}

	return nil
}

func (l *LogConfig) validate() error {
	switch strings.ToLower(l.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("format must be json or text (got %q)", l.Format)
	}
	return nil
}

func (e *EngineConfig) validate() error {
	if e.Strategy != StrategyMemoryPower {
		return fmt.Errorf("unsupported strategy %q", e.Strategy)
	}

	steps, err := ParseLearningSteps(e.LearningStepsRaw)
	if err != nil {
		return fmt.Errorf("learning_steps: %w", err)
	}
	if len(steps) == 0 {
		return fmt.Errorf("learning_steps must not be empty")
	}
	e.LearningSteps = steps

	growth, err := ParseGrowth(e.GrowthRaw)
	if err != nil {
		return fmt.Errorf("growth: %w", err)
	}
	e.Growth = growth

	if e.GraduationStreak < 1 {
		return fmt.Errorf("graduation_streak must be >= 1 (got %d)", e.GraduationStreak)
	}
	if e.LapseThreshold < 1 {
		return fmt.Errorf("lapse_threshold must be >= 1 (got %d)", e.LapseThreshold)
	}
	if e.LapseMultiplier <= 0 || e.LapseMultiplier >= 1 {
		return fmt.Errorf("lapse_multiplier must be in (0, 1) (got %v)", e.LapseMultiplier)
	}
	if e.MaxInterval < e.GraduatingInterval {
		return fmt.Errorf("max_interval %v must be >= graduating_interval %v", e.MaxInterval, e.GraduatingInterval)
	}

	return nil
}

func (s *ScoringConfig) validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"correct_points", s.CorrectPoints},
		{"first_time_bonus", s.FirstTimeBonus},
		{"good_bonus", s.GoodBonus},
		{"easy_bonus", s.EasyBonus},
		{"streak_bonus", s.StreakBonus},
		{"max_streak_bonus", s.MaxStreakBonus},
	}
	for _, f := range fields {
		if f.value < 0 {
			return fmt.Errorf("%s must be >= 0 (got %d)", f.name, f.value)
		}
	}
	return nil
}

func (p *ProgressConfig) validate() error {
	if p.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be >= 0 (got %d)", p.MaxRetries)
	}
	if p.StorageTimeout < 0 {
		return fmt.Errorf("storage_timeout must be >= 0 (got %v)", p.StorageTimeout)
	}
	if _, err := time.LoadLocation(p.DefaultTimezone); err != nil {
		return fmt.Errorf("default_timezone: %w", err)
	}
	if p.DefaultLimit <= 0 || p.DefaultLimit > p.MaxLimit {
		return fmt.Errorf("default_limit must be in [1, max_limit] (got %d, max %d)", p.DefaultLimit, p.MaxLimit)
	}
	if p.ScanLimit <= 0 {
		return fmt.Errorf("scan_limit must be > 0 (got %d)", p.ScanLimit)
	}
	return nil
}

// ParseLearningSteps parses a comma-separated string of durations (e.g. "1m,10m")
// into a slice of time.Duration. An empty string returns a nil slice.
func ParseLearningSteps(raw string) ([]time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	steps := make([]time.Duration, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		d, err := time.ParseDuration(p)
		if err != nil {
			return nil, fmt.Errorf("invalid duration %q: %w", p, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("duration %q must be positive", p)
		}
		steps = append(steps, d)
	}

	return steps, nil
}

// ParseGrowth parses exactly four comma-separated multipliers, one for each
// passing quality from 2 to 5.
func ParseGrowth(raw string) ([4]float64, error) {
	var out [4]float64

	parts := strings.Split(strings.TrimSpace(raw), ",")
	if len(parts) != len(out) {
		return out, fmt.Errorf("want %d multipliers, got %d", len(out), len(parts))
	}

	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return out, fmt.Errorf("invalid multiplier %q: %w", p, err)
		}
		out[i] = v
	}
	return out, nil
}
