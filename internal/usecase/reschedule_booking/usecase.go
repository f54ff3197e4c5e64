package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

// UseCase use case для переноса записи на другое время и/или услугу
type UseCase struct {
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	availability    AvailabilityValidator
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	availability AvailabilityValidator,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		availability:    availability,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute переносит запись. Сама запись исключается из проверки пересечений
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: appointment=%d, user=%d, service=%d, date=%s, time=%s",
		req.AppointmentID, req.Actor.UserID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Запись, права и статус
	current, err := uc.loadOwned(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3. Новая услуга должна быть активной
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("RescheduleBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("RescheduleBooking: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 4. Новое время не должно быть в прошлом
	start := req.StartTime.On(req.Date, uc.availability.Location())
	if start.Before(uc.timeProvider.Now()) {
		uc.logger.Warn("RescheduleBooking: start %s is in the past", start.Format(time.RFC3339))
		return nil, ErrTimeInPast
	}

	interval, err := domain.NewTimeInterval(start, service.EffectiveDurationMinutes())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDuration, err)
	}

	// 5. Первая проверка без учета самой записи
	if err := uc.availability.Validate(ctx, interval, &current.ID); err != nil {
		uc.logger.Warn("RescheduleBooking: pre-check rejected %s: %v", start.Format(time.RFC3339), err)
		return nil, mapPreCheckError(err)
	}

	// 6. Повторная проверка и обновление под блокировкой нового дня
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.appointmentRepo.LockDay(txCtx, start); err != nil {
			return fmt.Errorf("%w: lock day: %w", ErrRescheduleFailed, err)
		}

		if err := uc.availability.Validate(txCtx, interval, &current.ID); err != nil {
			if errors.Is(err, availability.ErrInternal) {
				return fmt.Errorf("%w: re-check: %w", ErrRescheduleFailed, err)
			}
			uc.logger.Warn("RescheduleBooking: re-check rejected %s: %v", start.Format(time.RFC3339), err)
			return ErrSlotTaken
		}

		err := uc.appointmentRepo.Reschedule(txCtx, current.ID, start, service.ID, service.Price, req.Notes)
		if errors.Is(err, appointmentRepo.ErrStatusConflict) {
			return ErrNotScheduled
		}
		if err != nil {
			return fmt.Errorf("%w: update appointment: %w", ErrRescheduleFailed, err)
		}

		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, txmanager.ErrSerializationFailure):
			uc.logger.Warn("RescheduleBooking: serialization conflict for appointment=%d: %v", current.ID, err)
			return nil, ErrSlotTaken
		case errors.Is(err, ErrSlotTaken), errors.Is(err, ErrNotScheduled):
			return nil, err
		case errors.Is(err, ErrRescheduleFailed):
			uc.logger.Error("RescheduleBooking: %v", err)
			return nil, err
		default:
			uc.logger.Error("RescheduleBooking: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %w", ErrRescheduleFailed, err)
		}
	}

	uc.logger.Info("RescheduleBooking: appointment=%d moved to %s, service=%d",
		current.ID, start.Format(time.RFC3339), service.ID)

	notes := current.Notes
	if req.Notes != nil {
		notes = req.Notes
	}

	return &Response{
		ID:              current.ID,
		ClientID:        current.ClientID,
		ServiceID:       service.ID,
		ServiceName:     service.Name,
		StartAt:         interval.Start,
		EndAt:           interval.End,
		DurationMinutes: service.EffectiveDurationMinutes(),
		PriceAtBooking:  service.Price,
		Status:          string(domain.StatusScheduled),
		Notes:           notes,
	}, nil
}

// loadOwned получает запись и проверяет, что актор может ее переносить
func (uc *UseCase) loadOwned(ctx context.Context, req *Request) (*domain.Appointment, error) {
	current, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("RescheduleBooking: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
	}

	if !req.Actor.CanAccess(current) {
		uc.logger.Warn("RescheduleBooking: user=%d has no access to appointment id=%d", req.Actor.UserID, current.ID)
		return nil, ErrAccessDenied
	}

	if !current.CanBeRescheduled() {
		uc.logger.Warn("RescheduleBooking: appointment id=%d has status %s", current.ID, current.Status)
		return nil, ErrNotScheduled
	}

	return current, nil
}
