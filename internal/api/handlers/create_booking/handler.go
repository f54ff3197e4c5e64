package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateTime      = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgNoClientProfile      = "у пользователя нет профиля клиента"
	msgServiceNotFound      = "услуга не найдена или неактивна"
	msgInvalidInput         = "некорректные данные записи"
	msgInvalidDuration      = "суммарная длительность услуг должна быть положительной"
	msgTimeInPast           = "выбранное время уже прошло"
	msgOutsideBusinessHours = "запись не помещается в рабочее время"
	msgSlotNotAvailable     = "выбранное время занято"
	msgSlotTaken            = "выбранное время только что заняли, выберите другое"
	msgBookingFailed        = "не удалось сохранить запись, попробуйте еще раз"
)

type Handler struct {
	useCase  CreateBookingUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CreateBookingUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/appointments
// Записывает текущего клиента на одну или несколько услуг подряд
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok || !actor.HasClient() {
		h.logger.Warn("POST /appointments - Actor without client profile: user_id=%d", actor.UserID)
		handlers.RespondForbidden(w, msgNoClientProfile)
		return
	}
	clientID := *actor.ClientID

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse date/time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidDuration):
			h.logger.Warn("POST /appointments - Invalid duration: client_id=%d", clientID)
			handlers.RespondErrorWithReason(w, http.StatusBadRequest, msgInvalidDuration, handlers.ReasonInvalidDuration)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: client_id=%d, error=%v", clientID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: client_id=%d, service_ids=%v", clientID, req.ServiceIDs)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrTimeInPast):
			h.logger.Warn("POST /appointments - Time has passed: client_id=%d, date=%s, time=%s", clientID, req.Date, req.Time)
			handlers.RespondErrorWithReason(w, http.StatusBadRequest, msgTimeInPast, handlers.ReasonTimePassed)

		case errors.Is(err, createBooking.ErrOutsideBusinessHours):
			h.logger.Warn("POST /appointments - Outside business hours: client_id=%d, date=%s, time=%s", clientID, req.Date, req.Time)
			handlers.RespondErrorWithReason(w, http.StatusBadRequest, msgOutsideBusinessHours, handlers.ReasonOutsideBusinessHours)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: client_id=%d, date=%s, time=%s", clientID, req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotNotAvailable, handlers.ReasonSlotOccupied)

		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /appointments - Slot taken since checked: client_id=%d, date=%s, time=%s", clientID, req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotTaken, handlers.ReasonSlotTakenSinceChecked)

		case errors.Is(err, createBooking.ErrBookingFailed):
			h.logger.Error("POST /appointments - Booking failed: client_id=%d, error=%v", clientID, err)
			handlers.RespondErrorWithReason(w, http.StatusInternalServerError, msgBookingFailed, handlers.ReasonBookingFailed)

		default:
			h.logger.Error("POST /appointments - Failed to create appointments: client_id=%d, error=%v", clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointments created successfully: client_id=%d, count=%d, start=%s",
		clientID, len(result.Appointments), result.StartAt.Format(time.RFC3339))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result, h.location))
}
