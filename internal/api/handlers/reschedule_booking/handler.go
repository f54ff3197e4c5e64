package reschedule_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	rescheduleBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/reschedule_booking"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgUnauthorized         = "пользователь не определен"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateTime      = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "доступ запрещен"
	msgNotScheduled         = "перенести можно только запланированную запись"
	msgServiceNotFound      = "услуга не найдена или неактивна"
	msgInvalidInput         = "некорректные данные переноса"
	msgInvalidDuration      = "длительность услуги должна быть положительной"
	msgTimeInPast           = "выбранное время уже прошло"
	msgOutsideBusinessHours = "запись не помещается в рабочее время"
	msgSlotNotAvailable     = "выбранное время занято"
	msgSlotTaken            = "выбранное время только что заняли, выберите другое"
	msgRescheduleFailed     = "не удалось перенести запись, попробуйте еще раз"
)

type Handler struct {
	useCase  RescheduleBookingUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase RescheduleBookingUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle PUT /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathInt64(r, "appointmentId")
	if err != nil {
		h.logger.Warn("PUT /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /appointments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor, appointmentID)
	if err != nil {
		h.logger.Warn("PUT /appointments/{id} - Failed to parse date/time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrAppointmentNotFound):
			h.logger.Warn("PUT /appointments/{id} - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleBooking.ErrAccessDenied):
			h.logger.Warn("PUT /appointments/{id} - Access denied: appointment_id=%d, user_id=%d", appointmentID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rescheduleBooking.ErrNotScheduled):
			h.logger.Warn("PUT /appointments/{id} - Not scheduled: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgNotScheduled)

		case errors.Is(err, rescheduleBooking.ErrServiceNotFound):
			h.logger.Warn("PUT /appointments/{id} - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, rescheduleBooking.ErrInvalidDuration):
			h.logger.Warn("PUT /appointments/{id} - Invalid duration: service_id=%d", req.ServiceID)
			handlers.RespondErrorWithReason(w, http.StatusBadRequest, msgInvalidDuration, handlers.ReasonInvalidDuration)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("PUT /appointments/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, rescheduleBooking.ErrTimeInPast):
			h.logger.Warn("PUT /appointments/{id} - Time has passed: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondErrorWithReason(w, http.StatusBadRequest, msgTimeInPast, handlers.ReasonTimePassed)

		case errors.Is(err, rescheduleBooking.ErrOutsideBusinessHours):
			h.logger.Warn("PUT /appointments/{id} - Outside business hours: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondErrorWithReason(w, http.StatusBadRequest, msgOutsideBusinessHours, handlers.ReasonOutsideBusinessHours)

		case errors.Is(err, rescheduleBooking.ErrSlotNotAvailable):
			h.logger.Warn("PUT /appointments/{id} - Slot not available: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotNotAvailable, handlers.ReasonSlotOccupied)

		case errors.Is(err, rescheduleBooking.ErrSlotTaken):
			h.logger.Warn("PUT /appointments/{id} - Slot taken since checked: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotTaken, handlers.ReasonSlotTakenSinceChecked)

		case errors.Is(err, rescheduleBooking.ErrRescheduleFailed):
			h.logger.Error("PUT /appointments/{id} - Reschedule failed: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondErrorWithReason(w, http.StatusInternalServerError, msgRescheduleFailed, handlers.ReasonBookingFailed)

		default:
			h.logger.Error("PUT /appointments/{id} - Failed to reschedule: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /appointments/{id} - Appointment rescheduled successfully: appointment_id=%d, start=%s",
		appointmentID, result.StartAt.Format(time.RFC3339))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, h.location))
}
