package get_availability

import (
	"time"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
)

// Request модель запроса доступности на дату
type Request struct {
	Date      time.Time // Дата (без времени)
	ServiceID *int64    // Фильтр по услуге (опционально)
}

// Response модель ответа: слоты дня по порядку времени
type Response struct {
	Date      time.Time
	ServiceID *int64
	Slots     []domain.TimeSlot
}
