package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ClientID   int64            // ID клиента
	ServiceIDs []int64          // Услуги в порядке оказания
	Date       time.Time        // Дата записи (без времени)
	StartTime  types.TimeString // Время начала (например, "09:00")
	Notes      *string          // Заметки, общие для всех услуг (опционально)
}

// Response модель ответа с созданными записями
type Response struct {
	ClientID             int64
	StartAt              time.Time
	EndAt                time.Time
	TotalDurationMinutes int
	TotalPrice           decimal.Decimal
	Notes                *string
	Appointments         []Appointment
}

// Appointment одна созданная запись (одна услуга)
type Appointment struct {
	ID              int64
	ServiceID       int64
	ServiceName     string
	StartAt         time.Time
	EndAt           time.Time
	DurationMinutes int
	PriceAtBooking  decimal.Decimal
	Status          string
}
