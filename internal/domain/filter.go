package domain

import "time"

// ProgressFilter narrows a listing of a user's progress rows.
type ProgressFilter struct {
	Status    *ProgressStatus
	DueBefore *time.Time
	Limit     int
}
