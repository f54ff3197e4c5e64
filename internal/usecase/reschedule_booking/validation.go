package reschedule_booking

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentId must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// mapPreCheckError переводит отказ валидатора в ошибку use case
func mapPreCheckError(err error) error {
	switch {
	case errors.Is(err, availability.ErrInvalidDuration):
		return ErrInvalidDuration
	case errors.Is(err, availability.ErrOutsideBusinessHours):
		return ErrOutsideBusinessHours
	case errors.Is(err, availability.ErrSlotOccupied):
		return ErrSlotNotAvailable
	default:
		return fmt.Errorf("%w: availability check: %w", ErrInternal, err)
	}
}
