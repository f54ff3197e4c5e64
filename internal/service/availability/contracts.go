package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AppointmentRepository источник занятых интервалов
type AppointmentRepository interface {
	// GetActiveInRange возвращает неотмененные записи со стартом в [from, to)
	// Внутри транзакции строки блокируются (FOR UPDATE)
	GetActiveInRange(ctx context.Context, from, to time.Time, excludeID *int64) ([]*domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
