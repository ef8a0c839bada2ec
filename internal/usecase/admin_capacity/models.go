package admin_capacity

import (
	"fmt"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/bookings/models"
)

// Result результат изменения вместимости.
// Applied == false вместе с Warning: изменение конфликтует с бронированиями и не подтверждено.
type Result struct {
	Applied  bool
	Warning  *Warning
	Override *domain.CapacityOverride // для операций с override
	Settings *domain.ShopSettings     // для изменения вместимости по умолчанию
}

// Warning бронирования, которые не помещаются в новую вместимость
type Warning struct {
	Message string
	Impacts []*models.ImpactResponse
}

// BookedCount максимум бронирований в конфликтующем слоте
func (w *Warning) BookedCount() int {
	top := 0
	for _, impact := range w.Impacts {
		if impact.BookedCount > top {
			top = impact.BookedCount
		}
	}
	return top
}

func newWarning(impacts []*models.ImpactResponse) *Warning {
	slots := 0
	for _, impact := range impacts {
		slots += len(impact.Slots)
	}
	return &Warning{
		Message: fmt.Sprintf("%d slot(s) on %d date(s) have more bookings than the new capacity; "+
			"existing bookings are kept, repeat with acknowledge to apply", slots, len(impacts)),
		Impacts: impacts,
	}
}
