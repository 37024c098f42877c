package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgconn"

	commonerrors "github.com/kariua-parish/parish-site/internal/common/errors"
	"github.com/kariua-parish/parish-site/internal/observability/metrics"
)

const integrityConstraintClass = "23"

// IsConstraintViolation reports whether err is a postgres integrity
// constraint violation (SQLSTATE class 23).
func IsConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, integrityConstraintClass)
}

// IsUniqueViolation reports whether err is a unique_violation (23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// ClassifyError maps a driver error to StoreConstraint or StoreUnavailable.
// Errors that are already domain errors pass through unchanged.
func ClassifyError(err error, operation string) error {
	if err == nil {
		return nil
	}
	if commonerrors.IsDomainError(err) && !errors.Is(err, commonerrors.ErrCircuitOpen) {
		return err
	}
	if IsConstraintViolation(err) {
		return commonerrors.ErrStoreConstraint.WithCause(fmt.Errorf("failed to %s: %w", operation, err))
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return commonerrors.ErrStoreUnavailable.WithCause(fmt.Errorf("failed to %s: timed out: %w", operation, err))
	}
	return commonerrors.ErrStoreUnavailable.WithCause(fmt.Errorf("failed to %s: %w", operation, err))
}

// ObserveQuery records the duration and, on failure, the error type of a
// single statement against table.
func ObserveQuery(operation, table string, startTime time.Time, err error) {
	metrics.DBQueryDurationSeconds.WithLabelValues(operation, table).Observe(time.Since(startTime).Seconds())
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues(operation, table, fmt.Sprintf("%T", err)).Inc()
	}
}
