package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Reasons a slot candidate is not available, in priority order.
const (
	ReasonDoesNotFit = "does not fit the time block"
	ReasonTimePassed = "time has passed"
	ReasonSlotTaken  = "slot taken"
)

// SlotCandidate is an ephemeral start time offered for booking.
type SlotCandidate struct {
	Start       time.Time
	Label       types.TimeString
	IsAvailable bool
	Reason      string // empty when available
}
