package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
)

// UseCase use case для получения слотов на дату
type UseCase struct {
	serviceRepo  ServiceRepository
	availability AvailabilityService
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	serviceRepo ServiceRepository,
	availability AvailabilityService,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceRepo:  serviceRepo,
		availability: availability,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute возвращает слоты на дату с признаком доступности и причиной
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Определяем длительность
	duration, err := uc.resolveDuration(ctx, req)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: date=%s, duration=%d, services=%v",
		req.Date.Format(domain.DateFormat), duration, req.ServiceIDs)

	// 3. Строим слоты
	candidates, err := uc.availability.Slots(ctx, req.Date, duration, uc.timeProvider.Now())
	if err != nil {
		if errors.Is(err, availability.ErrInvalidDuration) {
			return nil, ErrInvalidDuration
		}
		uc.logger.Error("GetAvailableSlots: failed to build slots: %v", err)
		return nil, fmt.Errorf("%w: failed to build slots: %w", ErrInternal, err)
	}

	slots := make([]Slot, 0, len(candidates))
	for _, c := range candidates {
		slots = append(slots, Slot{
			Time:      c.Label,
			Available: c.IsAvailable,
			Reason:    c.Reason,
		})
	}

	return &Response{
		Date:            req.Date,
		DurationMinutes: duration,
		Slots:           slots,
	}, nil
}

// resolveDuration явная длительность, сумма по услугам или длительность по умолчанию
func (uc *UseCase) resolveDuration(ctx context.Context, req *Request) (int, error) {
	if req.DurationMinutes != nil {
		return *req.DurationMinutes, nil
	}

	if len(req.ServiceIDs) == 0 {
		return domain.DefaultRequestDurationMinutes, nil
	}

	ids := domain.UniqueIDs(req.ServiceIDs)
	found, err := uc.serviceRepo.GetActiveByIDs(ctx, ids)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get services %v: %v", ids, err)
		return 0, fmt.Errorf("%w: failed to get services: %w", ErrInternal, err)
	}

	services, missing := domain.OrderServices(ids, found)
	if len(missing) > 0 {
		uc.logger.Warn("GetAvailableSlots: services %v not found or inactive", missing)
		return 0, fmt.Errorf("%w: %v", ErrServiceNotFound, missing)
	}

	return domain.TotalDuration(services), nil
}
