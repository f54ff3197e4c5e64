package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	LockDay(ctx context.Context, day time.Time) error
	CreateBatch(ctx context.Context, appointments []*domain.Appointment) ([]*domain.Appointment, error)
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetActiveByIDs(ctx context.Context, ids []int64) ([]*domain.BookableService, error)
}

// AvailabilityValidator интерфейс проверки доступности интервала
type AvailabilityValidator interface {
	Validate(ctx context.Context, interval domain.TimeInterval, excludeID *int64) error
	Location() *time.Location
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
