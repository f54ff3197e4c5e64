package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInterval is returned when an interval would not satisfy end > start.
var ErrInvalidInterval = errors.New("domain: interval end must be after start")

// TimeInterval is a half-open span [Start, End).
type TimeInterval struct {
	Start time.Time
	End   time.Time
}

// NewTimeInterval builds [start, start+durationMinutes).
func NewTimeInterval(start time.Time, durationMinutes int) (TimeInterval, error) {
	if durationMinutes <= 0 {
		return TimeInterval{}, fmt.Errorf("%w: duration %d minutes", ErrInvalidInterval, durationMinutes)
	}
	return TimeInterval{
		Start: start,
		End:   start.Add(time.Duration(durationMinutes) * time.Minute),
	}, nil
}

// Overlaps reports whether two half-open intervals share any instant.
// Touching endpoints do not overlap.
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Contains reports whether other lies entirely inside i.
func (i TimeInterval) Contains(other TimeInterval) bool {
	return !other.Start.Before(i.Start) && !other.End.After(i.End)
}

func (i TimeInterval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// IsValid reports whether End is strictly after Start.
func (i TimeInterval) IsValid() bool {
	return i.End.After(i.Start)
}

// SameDay reports whether Start and End fall on the same calendar date in loc.
func (i TimeInterval) SameDay(loc *time.Location) bool {
	sy, sm, sd := i.Start.In(loc).Date()
	ey, em, ed := i.End.In(loc).Date()
	return sy == ey && sm == em && sd == ed
}

// CountOverlaps returns how many of the given intervals overlap i.
func (i TimeInterval) CountOverlaps(others []TimeInterval) int {
	count := 0
	for _, o := range others {
		if i.Overlaps(o) {
			count++
		}
	}
	return count
}
