package utils

import (
	"strconv"
	"time"

	"github.com/questlog/questlog/internal/constants"
	apperrors "github.com/questlog/questlog/internal/errors"
)

var errRatingRange = apperrors.Validation("Rating must be a number between 1 and 5.")

// ParseRating parses a rating form value. An empty string means "no rating"
// and yields nil rather than a zero sentinel.
func ParseRating(raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}

	rating, err := strconv.Atoi(raw)
	if err != nil || rating < constants.MinRating || rating > constants.MaxRating {
		return nil, errRatingRange
	}
	return &rating, nil
}

// ParseDate parses an HTML date input value. Empty means "not submitted".
func ParseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}

	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, apperrors.Validation("Date Added must be a valid date.")
	}
	return &date, nil
}
