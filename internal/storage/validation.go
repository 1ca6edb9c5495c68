package storage

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"riskwatch/internal/model"
)

// Validation errors.
var (
	ErrEmptyString     = errors.New("string parameter cannot be empty")
	ErrNilParameter    = errors.New("parameter cannot be nil")
	ErrInvalidDate     = errors.New("invalid date")
	ErrStaleAggregates = errors.New("aggregates are stale; recompute before persisting")
)

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateDate ensures a date string is an ISO calendar date. Snapshot
// files are keyed by this form, so anything else would corrupt archive
// ordering.
func validateDate(date string) error {
	if _, err := time.Parse(model.DateFormat, date); err != nil {
		return fmt.Errorf("%w: %q is not a %s date", ErrInvalidDate, date, model.DateFormat)
	}
	return nil
}
