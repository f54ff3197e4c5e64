package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrTimeInPast возвращается, когда время начала уже прошло
	ErrTimeInPast = errors.New("create_booking: time has passed")

	// ErrInvalidDuration возвращается при неположительной суммарной длительности
	ErrInvalidDuration = errors.New("create_booking: invalid duration")

	// ErrOutsideBusinessHours возвращается, когда запись не помещается в рабочее окно
	ErrOutsideBusinessHours = errors.New("create_booking: outside business hours")

	// ErrSlotNotAvailable возвращается, когда время занято (первая проверка)
	ErrSlotNotAvailable = errors.New("create_booking: slot already occupied")

	// ErrSlotTaken возвращается, когда время заняли между проверкой и записью
	ErrSlotTaken = errors.New("create_booking: slot was just taken")

	// ErrBookingFailed возвращается при ошибке сохранения, транзакция откатывается целиком
	ErrBookingFailed = errors.New("create_booking: booking failed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
