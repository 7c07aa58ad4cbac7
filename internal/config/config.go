package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`
	Engine   EngineConfig   `yaml:"engine"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Progress ProgressConfig `yaml:"progress"`
}

// StorageBackend selects where progress data lives.
type StorageBackend string

const (
	StoragePostgres StorageBackend = "postgres"
	StorageMemory   StorageBackend = "memory"
)

// Strategy selects the scheduling engine.
type Strategy string

const (
	StrategyMemoryPower Strategy = "memory_power"
)

// StorageConfig holds the storage backend selection.
type StorageConfig struct {
	Backend StorageBackend `yaml:"backend" env:"STORAGE_BACKEND" env-default:"postgres"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	// StatementTimeout is set as the session statement_timeout. Zero disables it.
	StatementTimeout time.Duration `yaml:"statement_timeout" env:"DATABASE_STATEMENT_TIMEOUT" env-default:"10s"`
	ApplicationName  string        `yaml:"application_name"  env:"DATABASE_APPLICATION_NAME"  env-default:"memorypower"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// EngineConfig holds the scheduling policy.
type EngineConfig struct {
	Strategy           Strategy      `yaml:"strategy"            env:"ENGINE_STRATEGY"            env-default:"memory_power"`
	LearningStepsRaw   string        `yaml:"learning_steps"      env:"ENGINE_LEARNING_STEPS"      env-default:"1m,10m"`
	GraduationStreak   int           `yaml:"graduation_streak"   env:"ENGINE_GRADUATION_STREAK"   env-default:"2"`
	GraduatingInterval time.Duration `yaml:"graduating_interval" env:"ENGINE_GRADUATING_INTERVAL" env-default:"24h"`
	RelearningInterval time.Duration `yaml:"relearning_interval" env:"ENGINE_RELEARNING_INTERVAL" env-default:"10m"`
	LapseThreshold     int           `yaml:"lapse_threshold"     env:"ENGINE_LAPSE_THRESHOLD"     env-default:"3"`
	GrowthRaw          string        `yaml:"growth"              env:"ENGINE_GROWTH"              env-default:"1.3,1.8,2.2,2.5"`
	LapseMultiplier    float64       `yaml:"lapse_multiplier"    env:"ENGINE_LAPSE_MULTIPLIER"    env-default:"0.5"`
	MaxInterval        time.Duration `yaml:"max_interval"        env:"ENGINE_MAX_INTERVAL"        env-default:"8760h"`

	// LearningSteps is parsed from LearningStepsRaw during validation.
	LearningSteps []time.Duration `yaml:"-" env:"-"`
	// Growth is parsed from GrowthRaw during validation; one multiplier per
	// passing quality 2..5.
	Growth [4]float64 `yaml:"-" env:"-"`
}

// ScoringConfig holds the gamification point table.
type ScoringConfig struct {
	CorrectPoints  int `yaml:"correct_points"   env:"SCORING_CORRECT_POINTS"   env-default:"10"`
	FirstTimeBonus int `yaml:"first_time_bonus" env:"SCORING_FIRST_TIME_BONUS" env-default:"5"`
	GoodBonus      int `yaml:"good_bonus"       env:"SCORING_GOOD_BONUS"       env-default:"2"`
	EasyBonus      int `yaml:"easy_bonus"       env:"SCORING_EASY_BONUS"       env-default:"5"`
	StreakBonus    int `yaml:"streak_bonus"     env:"SCORING_STREAK_BONUS"     env-default:"1"`
	MaxStreakBonus int `yaml:"max_streak_bonus" env:"SCORING_MAX_STREAK_BONUS" env-default:"5"`
}

// ProgressConfig holds orchestrator settings.
type ProgressConfig struct {
	MaxRetries      int           `yaml:"max_retries"      env:"PROGRESS_MAX_RETRIES"      env-default:"3"`
	RetryBackoff    time.Duration `yaml:"retry_backoff"    env:"PROGRESS_RETRY_BACKOFF"    env-default:"20ms"`
	StorageTimeout  time.Duration `yaml:"storage_timeout"  env:"PROGRESS_STORAGE_TIMEOUT"  env-default:"5s"`
	DefaultTimezone string        `yaml:"default_timezone" env:"PROGRESS_DEFAULT_TIMEZONE" env-default:"UTC"`
	DefaultLimit    int           `yaml:"default_limit"    env:"PROGRESS_DEFAULT_LIMIT"    env-default:"20"`
	MaxLimit        int           `yaml:"max_limit"        env:"PROGRESS_MAX_LIMIT"        env-default:"200"`
	ScanLimit       int           `yaml:"scan_limit"       env:"PROGRESS_SCAN_LIMIT"       env-default:"5000"`
}
