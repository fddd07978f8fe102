package domain

import "time"

// ParsePeriod validates a "YYYY-MM" return period and returns the first day
// of that month in UTC. Anything else fails with ErrInvalidPeriod before any
// aggregation runs.
func ParsePeriod(period string) (time.Time, error) {
	if len(period) != 7 {
		return time.Time{}, ErrInvalidPeriod
	}
	t, err := time.Parse("2006-01", period)
	if err != nil {
		return time.Time{}, ErrInvalidPeriod
	}
	return t.UTC(), nil
}
