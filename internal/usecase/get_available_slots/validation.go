package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationMinutes != nil && len(req.ServiceIDs) > 0 {
		return fmt.Errorf("%w: either duration or serviceIds must be set, not both", ErrInvalidInput)
	}

	if req.DurationMinutes != nil && *req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: %d minutes", ErrInvalidDuration, *req.DurationMinutes)
	}

	if req.DurationMinutes != nil && *req.DurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: at most %d minutes", ErrInvalidDuration, domain.MaxDurationMinutes)
	}

	if len(req.ServiceIDs) > domain.MaxServicesPerBooking {
		return fmt.Errorf("%w: at most %d services per booking", ErrInvalidInput, domain.MaxServicesPerBooking)
	}

	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
		}
	}

	return nil
}
