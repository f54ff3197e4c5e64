package reschedule_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	rescheduleBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	Date      string  `json:"date"`      // "2025-10-16"
	Time      string  `json:"time"`      // "15:00"
	ServiceID int64   `json:"serviceId"` // новая или прежняя услуга
	Notes     *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64           `json:"id"`
	ClientID        int64           `json:"clientId"`
	ServiceID       int64           `json:"serviceId"`
	ServiceName     string          `json:"serviceName"`
	Date            string          `json:"date"`
	StartTime       string          `json:"startTime"`
	EndTime         string          `json:"endTime"`
	DurationMinutes int             `json:"durationMinutes"`
	PriceAtBooking  decimal.Decimal `json:"priceAtBooking"`
	Status          string          `json:"status"`
	Notes           *string         `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(actor domain.Actor, appointmentID int64) (*rescheduleBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	return &rescheduleBooking.Request{
		Actor:         actor,
		AppointmentID: appointmentID,
		Date:          date,
		StartTime:     startTime,
		ServiceID:     r.ServiceID,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response, loc *time.Location) *AppointmentResponse {
	start := resp.StartAt.In(loc)

	return &AppointmentResponse{
		ID:              resp.ID,
		ClientID:        resp.ClientID,
		ServiceID:       resp.ServiceID,
		ServiceName:     resp.ServiceName,
		Date:            start.Format(domain.DateFormat),
		StartTime:       start.Format(domain.TimeFormat),
		EndTime:         resp.EndAt.In(loc).Format(domain.TimeFormat),
		DurationMinutes: resp.DurationMinutes,
		PriceAtBooking:  resp.PriceAtBooking,
		Status:          resp.Status,
		Notes:           resp.Notes,
	}
}
