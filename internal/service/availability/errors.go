package availability

import "errors"

var (
	// ErrInvalidDuration возвращается при неположительной длительности
	ErrInvalidDuration = errors.New("invalid duration")

	// ErrOutsideBusinessHours возвращается, когда интервал не помещается целиком в рабочее окно
	ErrOutsideBusinessHours = errors.New("outside business hours")

	// ErrSlotOccupied возвращается, когда число пересечений достигло лимита
	ErrSlotOccupied = errors.New("slot already occupied")

	// ErrInternal возвращается при ошибках чтения записей
	ErrInternal = errors.New("availability: internal error")
)
