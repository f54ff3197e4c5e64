package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	createBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceIDs []int64 `json:"serviceIds"` // в порядке оказания
	Date       string  `json:"date"`       // "2025-10-15"
	Time       string  `json:"time"`       // "10:00"
	Notes      *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ClientID             int64                 `json:"clientId"`
	Date                 string                `json:"date"`
	StartTime            string                `json:"startTime"`
	EndTime              string                `json:"endTime"`
	TotalDurationMinutes int                   `json:"totalDurationMinutes"`
	TotalPrice           decimal.Decimal       `json:"totalPrice"`
	Notes                *string               `json:"notes,omitempty"`
	Appointments         []AppointmentResponse `json:"appointments"`
}

// AppointmentResponse одна созданная запись
type AppointmentResponse struct {
	ID              int64           `json:"id"`
	ServiceID       int64           `json:"serviceId"`
	ServiceName     string          `json:"serviceName"`
	StartTime       string          `json:"startTime"`
	EndTime         string          `json:"endTime"`
	DurationMinutes int             `json:"durationMinutes"`
	PriceAtBooking  decimal.Decimal `json:"priceAtBooking"`
	Status          string          `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(clientID int64) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ClientID:   clientID,
		ServiceIDs: r.ServiceIDs,
		Date:       date,
		StartTime:  startTime,
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
// Время отдается в часовом поясе расписания
func FromUseCaseResponse(resp *createBooking.Response, loc *time.Location) *BookingResponse {
	appointments := make([]AppointmentResponse, len(resp.Appointments))
	for i, a := range resp.Appointments {
		appointments[i] = AppointmentResponse{
			ID:              a.ID,
			ServiceID:       a.ServiceID,
			ServiceName:     a.ServiceName,
			StartTime:       a.StartAt.In(loc).Format(domain.TimeFormat),
			EndTime:         a.EndAt.In(loc).Format(domain.TimeFormat),
			DurationMinutes: a.DurationMinutes,
			PriceAtBooking:  a.PriceAtBooking,
			Status:          a.Status,
		}
	}

	return &BookingResponse{
		ClientID:             resp.ClientID,
		Date:                 resp.StartAt.In(loc).Format(domain.DateFormat),
		StartTime:            resp.StartAt.In(loc).Format(domain.TimeFormat),
		EndTime:              resp.EndAt.In(loc).Format(domain.TimeFormat),
		TotalDurationMinutes: resp.TotalDurationMinutes,
		TotalPrice:           resp.TotalPrice,
		Notes:                resp.Notes,
		Appointments:         appointments,
	}
}
