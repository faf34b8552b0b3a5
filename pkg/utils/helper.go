package utils

import (
	"strconv"
	"time"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD) in UTC.
func ParseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

// Today returns the current calendar day at midnight UTC.
func Today() time.Time {
	return DateOnly(time.Now().UTC())
}

// DateOnly truncates a timestamp to its calendar day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
