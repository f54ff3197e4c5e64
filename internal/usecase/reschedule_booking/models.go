package reschedule_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на перенос записи
type Request struct {
	Actor         domain.Actor     // Кто переносит (владелец или администратор)
	AppointmentID int64            // ID записи
	Date          time.Time        // Новая дата (без времени)
	StartTime     types.TimeString // Новое время начала
	ServiceID     int64            // Новая (или прежняя) услуга
	Notes         *string          // Новые заметки, nil оставляет прежние
}

// Response модель ответа с перенесенной записью
type Response struct {
	ID              int64
	ClientID        int64
	ServiceID       int64
	ServiceName     string
	StartAt         time.Time
	EndAt           time.Time
	DurationMinutes int
	PriceAtBooking  decimal.Decimal
	Status          string
	Notes           *string
}
