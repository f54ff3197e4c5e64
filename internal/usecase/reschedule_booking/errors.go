package reschedule_booking

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("reschedule_booking: appointment not found")

	// ErrAccessDenied возвращается, когда запись принадлежит другому клиенту
	ErrAccessDenied = errors.New("reschedule_booking: access denied")

	// ErrNotScheduled возвращается, когда запись уже отменена или оказана
	ErrNotScheduled = errors.New("reschedule_booking: only scheduled appointments can be rescheduled")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("reschedule_booking: service not found")

	// ErrTimeInPast возвращается, когда новое время уже прошло
	ErrTimeInPast = errors.New("reschedule_booking: time has passed")

	// ErrInvalidDuration возвращается при неположительной длительности
	ErrInvalidDuration = errors.New("reschedule_booking: invalid duration")

	// ErrOutsideBusinessHours возвращается, когда запись не помещается в рабочее окно
	ErrOutsideBusinessHours = errors.New("reschedule_booking: outside business hours")

	// ErrSlotNotAvailable возвращается, когда время занято (первая проверка)
	ErrSlotNotAvailable = errors.New("reschedule_booking: slot already occupied")

	// ErrSlotTaken возвращается, когда время заняли между проверкой и записью
	ErrSlotTaken = errors.New("reschedule_booking: slot was just taken")

	// ErrRescheduleFailed возвращается при ошибке сохранения
	ErrRescheduleFailed = errors.New("reschedule_booking: reschedule failed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
