package services

import (
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate validates a YYYY-MM-DD form value. An empty value yields the
// fallback; malformed text is a validation error.
func ParseDate(value, fallback string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	parsed, err := time.Parse(DateLayout, trimmed)
	if err != nil {
		return "", ErrValidation("Invalid date, expected YYYY-MM-DD.")
	}
	return parsed.Format(DateLayout), nil
}

// ParseDecimal reads an optional decimal form value. Comma decimal
// separators are accepted, empty input maps to absent.
func ParseDecimal(value string) (*float64, error) {
	trimmed := strings.ReplaceAll(strings.TrimSpace(value), ",", ".")
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil, ErrValidation("Invalid number: " + value)
	}
	return &parsed, nil
}

// ParseInteger reads an optional integer form value; empty input maps to
// absent.
func ParseInteger(value string) (*int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return nil, ErrValidation("Invalid whole number: " + value)
	}
	return &parsed, nil
}

func today() string {
	return time.Now().UTC().Format(DateLayout)
}
