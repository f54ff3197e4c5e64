package create_booking

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}

	if len(req.ServiceIDs) > domain.MaxServicesPerBooking {
		return fmt.Errorf("%w: at most %d services per booking", ErrInvalidInput, domain.MaxServicesPerBooking)
	}

	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
		}
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}

	// Валидируем формат времени
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

// buildAppointments раскладывает услуги на последовательные интервалы начиная со start
// Цена фиксируется по каталогу на момент записи
func buildAppointments(req *Request, services []*domain.BookableService, interval domain.TimeInterval) []*domain.Appointment {
	appointments := make([]*domain.Appointment, 0, len(services))
	start := interval.Start

	for _, service := range services {
		duration := service.EffectiveDurationMinutes()
		appointments = append(appointments, &domain.Appointment{
			ClientID:        req.ClientID,
			ServiceID:       service.ID,
			StartAt:         start,
			PriceAtBooking:  service.Price,
			Status:          domain.StatusScheduled,
			Notes:           req.Notes,
			ServiceName:     service.Name,
			DurationMinutes: duration,
		})
		start = start.Add(time.Duration(duration) * time.Minute)
	}

	return appointments
}
