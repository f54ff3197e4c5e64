package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidStatus is returned when a status string is not one of the known values.
var ErrInvalidStatus = errors.New("domain: invalid appointment status")

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusAttended  AppointmentStatus = "attended"
	StatusCancelled AppointmentStatus = "cancelled"
)

// ParseAppointmentStatus validates a canonical status value.
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	switch status := AppointmentStatus(s); status {
	case StatusScheduled, StatusAttended, StatusCancelled:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// Appointment is one booked service for one client.
// DurationMinutes and ServiceName are resolved from the service at read time;
// PriceAtBooking is frozen when the appointment is created.
type Appointment struct {
	ID              int64
	ClientID        int64
	ServiceID       int64
	StartAt         time.Time
	PriceAtBooking  decimal.Decimal
	Status          AppointmentStatus
	Notes           *string
	ServiceName     string
	DurationMinutes int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsActive returns true if the appointment still occupies its time span
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusScheduled
}

// CanBeRescheduled returns true if the appointment can be moved or edited
func (a *Appointment) CanBeRescheduled() bool {
	return a.Status == StatusScheduled
}

// CanBeAttended returns true if an operator can mark the appointment as attended
func (a *Appointment) CanBeAttended() bool {
	return a.Status == StatusScheduled
}

// IsOwnedBy returns true if the appointment belongs to the client
func (a *Appointment) IsOwnedBy(clientID int64) bool {
	return a.ClientID == clientID
}

// Interval is the occupied span [StartAt, StartAt+effective duration).
func (a *Appointment) Interval() TimeInterval {
	return TimeInterval{
		Start: a.StartAt,
		End:   a.StartAt.Add(time.Duration(EffectiveDuration(a.DurationMinutes)) * time.Minute),
	}
}

// OccupiedIntervals returns the intervals of active appointments only.
func OccupiedIntervals(appointments []*Appointment) []TimeInterval {
	intervals := make([]TimeInterval, 0, len(appointments))
	for _, a := range appointments {
		if a == nil || !a.IsActive() {
			continue
		}
		intervals = append(intervals, a.Interval())
	}
	return intervals
}
