package progress

import (
	"time"

	"github.com/heartmarshall/memorypower/internal/domain"
)

// AnswerResult is returned to the caller after an answer is persisted.
type AnswerResult struct {
	NewStatus     domain.ProgressStatus
	NextReviewAt  *time.Time
	MemoryPower   float64
	Mastery       float64
	PointsAwarded int
	Lapsed        bool
	Graduated     bool
}

// HistoryResult is one page of an item's review logs, newest first.
type HistoryResult struct {
	Logs  []domain.ReviewLog
	Total int
}
