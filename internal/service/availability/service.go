package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Service единая точка проверки доступности времени
// Используется и для показа слотов, и для подтверждения/переноса записи
type Service struct {
	appointmentRepo AppointmentRepository
	schedule        domain.Schedule
	logger          Logger
}

// NewService создает сервис доступности с заданным расписанием
func NewService(appointmentRepo AppointmentRepository, schedule domain.Schedule, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		schedule:        schedule,
		logger:          logger,
	}
}

// Schedule возвращает действующее расписание
func (s *Service) Schedule() domain.Schedule {
	return s.schedule
}

// Location часовой пояс, в котором интерпретируются дата и время
func (s *Service) Location() *time.Location {
	return s.schedule.Location()
}

// Validate проверяет интервал-кандидат
// excludeID исключает запись из проверки (перенос записи на новое время)
// Если ctx содержит транзакцию, чтение идет через нее
func (s *Service) Validate(ctx context.Context, interval domain.TimeInterval, excludeID *int64) error {
	// 1. Длительность
	if !interval.IsValid() {
		return ErrInvalidDuration
	}

	// 2. Рабочие часы
	if !s.schedule.Hours.Fits(interval) {
		return ErrOutsideBusinessHours
	}

	// 3. Пересечения с активными записями того же дня
	occupied, err := s.occupiedOn(ctx, interval.Start.In(s.Location()), excludeID)
	if err != nil {
		return err
	}

	overlaps := interval.CountOverlaps(occupied)
	if overlaps >= s.schedule.MaxConcurrentPerSlot {
		s.logger.Info("Validate: %s-%s rejected, %d/%d overlaps",
			interval.Start.Format(time.RFC3339), interval.End.Format(time.RFC3339),
			overlaps, s.schedule.MaxConcurrentPerSlot)
		return ErrSlotOccupied
	}

	return nil
}

// Slots строит список слотов на календарную дату date для запрошенной длительности
func (s *Service) Slots(ctx context.Context, date time.Time, durationMinutes int, now time.Time) ([]domain.SlotCandidate, error) {
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	occupied, err := s.occupiedOn(ctx, date, nil)
	if err != nil {
		return nil, err
	}

	return buildSlots(s.schedule, date, durationMinutes, now, occupied), nil
}

// occupiedOn берет календарную дату из day (год, месяц, день) без перевода в часовой пояс
func (s *Service) occupiedOn(ctx context.Context, day time.Time, excludeID *int64) ([]domain.TimeInterval, error) {
	from, to := s.schedule.Hours.DayBounds(day)

	appointments, err := s.appointmentRepo.GetActiveInRange(ctx, from, to, excludeID)
	if err != nil {
		s.logger.Error("availability: failed to load appointments for %s: %v", from.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: load appointments: %w", ErrInternal, err)
	}

	return domain.OccupiedIntervals(appointments), nil
}
