package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/memorypower/internal/domain"
)

// MapError converts pgx/pgconn errors to domain errors.
// context.DeadlineExceeded and context.Canceled are not mapped and pass through.
func MapError(err error, entity string, id string) error {
	if err == nil {
		return nil
	}

	prefix := entity
	if id != "" {
		prefix = entity + " " + id
	}

	// context errors pass through as-is
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", prefix, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", prefix, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505": // unique_violation: lost a first-insert race
			return fmt.Errorf("%s: %w", prefix, domain.ErrConflict)
		case pgErr.Code == "40001", pgErr.Code == "40P01": // serialization_failure, deadlock_detected
			return fmt.Errorf("%s: %w", prefix, domain.ErrConflict)
		case pgErr.Code == "23514", pgErr.Code == "22P02": // check_violation, invalid_text_representation
			return fmt.Errorf("%s: %w", prefix, domain.ErrValidation)
		case strings.HasPrefix(pgErr.Code, "08"), strings.HasPrefix(pgErr.Code, "57P"): // connection_exception, operator_intervention
			return fmt.Errorf("%s: %w: %v", prefix, domain.ErrUnavailable, err)
		}
	}

	if pgconn.SafeToRetry(err) || isNetError(err) {
		return fmt.Errorf("%s: %w: %v", prefix, domain.ErrUnavailable, err)
	}

	return fmt.Errorf("%s: %w", prefix, err)
}

func isNetError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var connectErr *pgconn.ConnectError
	return errors.As(err, &connectErr)
}
