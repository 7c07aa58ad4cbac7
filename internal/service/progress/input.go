package progress

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/memorypower/internal/domain"
)

// UpdateInput holds one learner answer.
type UpdateInput struct {
	UserID     uuid.UUID
	ItemID     uuid.UUID
	Quality    domain.Quality
	DurationMs *int
	// Now is the answer time. Zero means the service clock.
	Now time.Time
}

// Validate rejects out-of-range quality first, then collects field errors.
func (i *UpdateInput) Validate() error {
	if !i.Quality.IsValid() {
		return fmt.Errorf("quality %d: %w", i.Quality, domain.ErrInvalidQuality)
	}

	var errs []domain.FieldError

	if i.UserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	if i.ItemID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "item_id", Message: "required"})
	}
	if i.DurationMs != nil && *i.DurationMs < 0 {
		errs = append(errs, domain.FieldError{Field: "duration_ms", Message: "must be non-negative"})
	}
	if i.DurationMs != nil && *i.DurationMs > 600_000 {
		errs = append(errs, domain.FieldError{Field: "duration_ms", Message: "max 10 minutes"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// HistoryInput selects a page of review logs for one item.
type HistoryInput struct {
	UserID uuid.UUID
	ItemID uuid.UUID
	Limit  int
	Offset int
}

// Validate checks all fields and collects all errors.
func (i *HistoryInput) Validate() error {
	var errs []domain.FieldError

	if i.UserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	if i.ItemID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "item_id", Message: "required"})
	}
	if i.Limit < 0 || i.Limit > 200 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 200"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func requireUser(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return domain.NewValidationError("user_id", "required")
	}
	return nil
}
