// Package calendar - правила календаря магазина: вместимость по дню недели,
// окно бронирования и сетка слотов рабочего дня.
// Все функции чистые и работают только с переданными настройками.
package calendar

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	"github.com/m04kA/SMC-SlotCapacity/pkg/types"
)

var (
	// ErrInvalidDate возвращается для нулевой даты
	ErrInvalidDate = fmt.Errorf("calendar: %w", domain.ErrInvalidDate)

	// ErrInvalidSchedule возвращается, если часы работы и длительность слота не дают ни одного слота
	ErrInvalidSchedule = fmt.Errorf("calendar: %w: empty slot grid", domain.ErrValidation)
)

// Rules правила календаря для конкретных настроек магазина
type Rules struct {
	settings domain.ShopSettings
}

// New создает правила календаря
func New(settings domain.ShopSettings) *Rules {
	return &Rules{settings: settings}
}

// Settings настройки, из которых построены правила
func (r *Rules) Settings() domain.ShopSettings {
	return r.settings
}

// DefaultCapacity вместимость слота по умолчанию: Пн-Ср одно значение, Чт-Вс другое
func (r *Rules) DefaultCapacity(date time.Time) (int, error) {
	if date.IsZero() {
		return 0, ErrInvalidDate
	}
	return r.settings.Capacity.ForWeekday(date.Weekday()), nil
}

// IsBookable true, если date попадает в окно [today, today + booking_window_days],
// а для сегодняшней даты слот начинается не раньше now + same_day_cutoff_hours
func (r *Rules) IsBookable(date time.Time, slot types.TimeString, now time.Time) bool {
	if date.IsZero() {
		return false
	}

	today := Day(now)
	day := Day(date)
	lastDay := today.AddDate(0, 0, r.settings.BookingWindowDays)

	if day.Before(today) || day.After(lastDay) {
		return false
	}

	if day.Equal(today) {
		start := StartOf(date, slot, now.Location())
		cutoff := now.Add(time.Duration(r.settings.SameDayCutoffHours) * time.Hour)
		return !cutoff.After(start)
	}

	return true
}

// DaySlots возвращает времена начала слотов по порядку.
// Последний слот должен закончиться не позже close_time.
func (r *Rules) DaySlots() ([]types.TimeString, error) {
	return BuildSlots(r.settings.OpenTime, r.settings.CloseTime, r.settings.SlotDurationMinutes)
}

// HasSlot true, если slot входит в сетку рабочего дня
func (r *Rules) HasSlot(slot types.TimeString) (bool, error) {
	slots, err := r.DaySlots()
	if err != nil {
		return false, err
	}
	for _, s := range slots {
		if s == slot {
			return true, nil
		}
	}
	return false, nil
}

// BuildSlots строит сетку слотов [open, close) с шагом durationMinutes
func BuildSlots(open, close types.TimeString, durationMinutes int) ([]types.TimeString, error) {
	if durationMinutes <= 0 {
		return nil, ErrInvalidSchedule
	}

	openMin, err := open.Minutes()
	if err != nil {
		return nil, fmt.Errorf("calendar: open time: %w", err)
	}
	closeMin, err := close.Minutes()
	if err != nil {
		return nil, fmt.Errorf("calendar: close time: %w", err)
	}

	slots := make([]types.TimeString, 0, (closeMin-openMin)/durationMinutes+1)
	for start := openMin; start+durationMinutes <= closeMin; start += durationMinutes {
		slot, err := open.AddMinutes(start - openMin)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	if len(slots) == 0 {
		return nil, ErrInvalidSchedule
	}
	return slots, nil
}

// Day календарный день даты (полночь UTC), для сравнения дат без учёта времени
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// StartOf момент начала слота в указанной зоне
func StartOf(date time.Time, slot types.TimeString, loc *time.Location) time.Time {
	y, m, d := date.Date()
	minutes, err := slot.Minutes()
	if err != nil {
		minutes = 0
	}
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, loc)
}
