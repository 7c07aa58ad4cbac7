package domain

import "time"

// StatusCounts holds the number of progress rows per status.
type StatusCounts struct {
	New       int
	Learning  int
	Reviewing int
	Total     int
}

// DayReviewCount holds the review count for a specific date.
type DayReviewCount struct {
	Date  time.Time
	Count int
}

// Dashboard holds aggregated progress statistics for a user.
type Dashboard struct {
	StatusCounts   StatusCounts
	DueCount       int
	ReviewedToday  int
	Streak         int
	TotalPoints    int
	AvgMemoryPower float64
}
