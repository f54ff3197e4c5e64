package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// ErrInvalidSchedule is returned when slot policy values are out of range.
var ErrInvalidSchedule = errors.New("domain: invalid schedule")

// Schedule bundles business hours with the slot policy used by the
// slot generator and the availability validator.
type Schedule struct {
	Hours                BusinessHours
	StepMinutes          int
	MaxConcurrentPerSlot int
}

// DefaultSchedule is 07:00-12:00 and 14:00-19:00, 30-minute step, one booking per slot.
func DefaultSchedule(loc *time.Location) Schedule {
	hours, _ := NewBusinessHours([]BusinessWindow{
		{Start: types.TimeString("07:00"), End: types.TimeString("12:00")},
		{Start: types.TimeString("14:00"), End: types.TimeString("19:00")},
	}, loc)

	return Schedule{
		Hours:                hours,
		StepMinutes:          DefaultStepMinutes,
		MaxConcurrentPerSlot: DefaultMaxConcurrentPerSlot,
	}
}

// Validate checks the policy bounds.
func (s Schedule) Validate() error {
	if len(s.Hours.Windows) == 0 {
		return fmt.Errorf("%w: no business windows", ErrInvalidSchedule)
	}
	if s.StepMinutes < MinStepMinutes || s.StepMinutes > MaxStepMinutes {
		return fmt.Errorf("%w: step must be between %d and %d minutes, got %d",
			ErrInvalidSchedule, MinStepMinutes, MaxStepMinutes, s.StepMinutes)
	}
	if s.MaxConcurrentPerSlot < 1 || s.MaxConcurrentPerSlot > MaxConcurrentPerSlot {
		return fmt.Errorf("%w: max concurrent per slot must be between 1 and %d, got %d",
			ErrInvalidSchedule, MaxConcurrentPerSlot, s.MaxConcurrentPerSlot)
	}
	return nil
}

// Location returns the time zone all clock times are interpreted in.
func (s Schedule) Location() *time.Location {
	if s.Hours.Location == nil {
		return time.UTC
	}
	return s.Hours.Location
}
