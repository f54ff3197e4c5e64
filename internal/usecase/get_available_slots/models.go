package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на получение слотов
// Длительность задается либо явно, либо суммой длительностей услуг
type Request struct {
	Date            time.Time // Календарная дата (без времени)
	ServiceIDs      []int64   // Выбранные услуги (опционально)
	DurationMinutes *int      // Явная длительность в минутах (опционально)
}

// Response модель ответа со списком слотов
type Response struct {
	Date            time.Time // Дата, на которую запрашивались слоты
	DurationMinutes int       // Длительность, по которой проверялись слоты
	Slots           []Slot
}

// Slot модель временного слота
type Slot struct {
	Time      types.TimeString // Время начала слота (например, "10:00")
	Available bool
	Reason    string // Причина недоступности, пусто для свободного слота
}
