package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Response модели

// AppointmentResponse ответ с данными записи
// Дата и время приведены к часовому поясу расписания
type AppointmentResponse struct {
	ID              int64           `json:"id"`
	ClientID        int64           `json:"clientId"`
	ServiceID       int64           `json:"serviceId"`
	ServiceName     string          `json:"serviceName"`
	Date            string          `json:"date"`      // "2025-10-15"
	StartTime       string          `json:"startTime"` // "10:00"
	EndTime         string          `json:"endTime"`   // "10:45"
	DurationMinutes int             `json:"durationMinutes"`
	PriceAtBooking  decimal.Decimal `json:"priceAtBooking"`
	Status          string          `json:"status"`
	Notes           *string         `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment, loc *time.Location) *AppointmentResponse {
	if a == nil {
		return nil
	}

	interval := a.Interval()
	start := interval.Start.In(loc)
	end := interval.End.In(loc)

	return &AppointmentResponse{
		ID:              a.ID,
		ClientID:        a.ClientID,
		ServiceID:       a.ServiceID,
		ServiceName:     a.ServiceName,
		Date:            start.Format(domain.DateFormat),
		StartTime:       start.Format(domain.TimeFormat),
		EndTime:         end.Format(domain.TimeFormat),
		DurationMinutes: domain.EffectiveDuration(a.DurationMinutes),
		PriceAtBooking:  a.PriceAtBooking,
		Status:          string(a.Status),
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment, loc *time.Location) *AppointmentListResponse {
	result := make([]AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		if resp := FromDomainAppointment(a, loc); resp != nil {
			result = append(result, *resp)
		}
	}
	return &AppointmentListResponse{Appointments: result}
}
