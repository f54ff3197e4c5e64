package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

// UseCase use case для создания записи на одну или несколько услуг подряд
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

// Execute выполняет use case создания записи
// Интервал проверяется дважды: до транзакции и внутри нее под блокировкой дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%d, services=%v, date=%s, time=%s",
		req.ClientID, req.ServiceIDs, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем активные услуги в порядке запроса, повторы отбрасываем
	ids := domain.UniqueIDs(req.ServiceIDs)
	found, err := uc.serviceRepo.GetActiveByIDs(ctx, ids)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get services %v: %v", ids, err)
		return nil, fmt.Errorf("%w: failed to get services: %w", ErrInternal, err)
	}

	services, missing := domain.OrderServices(ids, found)
	if len(missing) > 0 {
		uc.logger.Warn("CreateBooking: services %v not found or inactive", missing)
		return nil, fmt.Errorf("%w: %v", ErrServiceNotFound, missing)
	}

	// 3. Время начала не должно быть в прошлом
	start := req.StartTime.On(req.Date, uc.availability.Location())
	if start.Before(uc.timeProvider.Now()) {
		uc.logger.Warn("CreateBooking: start %s is in the past", start.Format(time.RFC3339))
		return nil, ErrTimeInPast
	}

	// 4. Суммарная длительность и цена
	totalDuration := domain.TotalDuration(services)
	totalPrice := domain.TotalPrice(services)

	interval, err := domain.NewTimeInterval(start, totalDuration)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDuration, err)
	}

	// 5. Первая проверка (до транзакции)
	if err := uc.availability.Validate(ctx, interval, nil); err != nil {
		uc.logger.Warn("CreateBooking: pre-check rejected %s: %v", start.Format(time.RFC3339), err)
		return nil, mapPreCheckError(err)
	}

	var created []*domain.Appointment

	// 6. Повторная проверка и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Конкурентные записи на этот день ждут здесь
		if err := uc.appointmentRepo.LockDay(txCtx, start); err != nil {
			return fmt.Errorf("%w: lock day: %w", ErrBookingFailed, err)
		}

		// 6.2. Повторная проверка по зафиксированному набору записей
		if err := uc.availability.Validate(txCtx, interval, nil); err != nil {
			if errors.Is(err, availability.ErrInternal) {
				return fmt.Errorf("%w: re-check: %w", ErrBookingFailed, err)
			}
			uc.logger.Warn("CreateBooking: re-check rejected %s: %v", start.Format(time.RFC3339), err)
			return ErrSlotTaken
		}

		// 6.3. Создаем записи подряд, одну на услугу
		appointments, err := uc.appointmentRepo.CreateBatch(txCtx, buildAppointments(req, services, interval))
		if err != nil {
			return fmt.Errorf("%w: create appointments: %w", ErrBookingFailed, err)
		}

		created = appointments
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, txmanager.ErrSerializationFailure):
			uc.logger.Warn("CreateBooking: serialization conflict for %s: %v", start.Format(time.RFC3339), err)
			return nil, ErrSlotTaken
		case errors.Is(err, ErrSlotTaken):
			return nil, ErrSlotTaken
		case errors.Is(err, ErrBookingFailed):
			uc.logger.Error("CreateBooking: %v", err)
			return nil, err
		default:
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %w", ErrBookingFailed, err)
		}
	}

	uc.logger.Info("CreateBooking: created %d appointments for client=%d starting %s",
		len(created), req.ClientID, start.Format(time.RFC3339))

	return toResponse(req, created, interval, totalDuration, totalPrice), nil
}

func toResponse(
	req *Request,
	created []*domain.Appointment,
	interval domain.TimeInterval,
	totalDuration int,
	totalPrice decimal.Decimal,
) *Response {
	appointments := make([]Appointment, 0, len(created))
	for _, a := range created {
		appointments = append(appointments, Appointment{
			ID:              a.ID,
			ServiceID:       a.ServiceID,
			ServiceName:     a.ServiceName,
			StartAt:         a.StartAt,
			EndAt:           a.Interval().End,
			DurationMinutes: a.DurationMinutes,
			PriceAtBooking:  a.PriceAtBooking,
			Status:          string(a.Status),
		})
	}

	return &Response{
		ClientID:             req.ClientID,
		StartAt:              interval.Start,
		EndAt:                interval.End,
		TotalDurationMinutes: totalDuration,
		TotalPrice:           totalPrice,
		Notes:                req.Notes,
		Appointments:         appointments,
	}
}
