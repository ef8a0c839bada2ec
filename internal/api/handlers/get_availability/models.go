package get_availability

import (
	"time"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	getAvailability "github.com/m04kA/SMC-SlotCapacity/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date      string     `json:"date"`
	ServiceID *int64     `json:"serviceId,omitempty"`
	Slots     []TimeSlot `json:"slots"`
}

// TimeSlot модель временного слота
type TimeSlot struct {
	Time           string `json:"time"` // "14:00"
	TotalCapacity  int    `json:"totalCapacity"`
	BookedCount    int    `json:"bookedCount"`
	AvailableCount int    `json:"availableCount"`
	IsAvailable    bool   `json:"isAvailable"`
	Status         string `json:"status"` // available | limited | full | blocked
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(date time.Time, serviceID *int64) *getAvailability.Request {
	return &getAvailability.Request{
		Date:      date,
		ServiceID: serviceID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]TimeSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = TimeSlot{
			Time:           slot.Time.String(),
			TotalCapacity:  slot.TotalCapacity,
			BookedCount:    slot.BookedCount,
			AvailableCount: slot.AvailableCount,
			IsAvailable:    slot.IsAvailable,
			Status:         string(slot.Status),
		}
	}

	return &AvailabilityResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		ServiceID: resp.ServiceID,
		Slots:     slots,
	}
}
