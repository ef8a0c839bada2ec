package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	"github.com/m04kA/SMC-SlotCapacity/internal/infra/storage/override"
	"github.com/m04kA/SMC-SlotCapacity/pkg/types"
)

// Overrides переопределения вместимости в памяти
type Overrides struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*domain.CapacityOverride
	now    func() time.Time
}

// NewOverrides создает пустое хранилище переопределений
func NewOverrides() *Overrides {
	return &Overrides{
		byID: make(map[int64]*domain.CapacityOverride),
		now:  time.Now,
	}
}

func (s *Overrides) Create(_ context.Context, o *domain.CapacityOverride) (*domain.CapacityOverride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if o.IsActive && s.activeConflict(0, o.Date, o.TimeSlot) {
		return nil, override.ErrDuplicateOverride
	}

	s.nextID++
	now := s.now()

	stored := *o
	stored.ID = s.nextID
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.byID[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (s *Overrides) GetByID(_ context.Context, id int64) (*domain.CapacityOverride, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.byID[id]
	if !ok {
		return nil, override.ErrOverrideNotFound
	}
	result := *o
	return &result, nil
}

func (s *Overrides) ListByRange(_ context.Context, from, to time.Time, activeOnly bool) ([]*domain.CapacityOverride, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.CapacityOverride, 0)
	for _, o := range s.byID {
		if dayBefore(o.Date, from) || dayBefore(to, o.Date) {
			continue
		}
		if activeOnly && !o.IsActive {
			continue
		}
		c := *o
		result = append(result, &c)
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !sameDay(a.Date, b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.TimeSlot != b.TimeSlot {
			return a.TimeSlot.IsBefore(b.TimeSlot)
		}
		return a.ID < b.ID
	})

	return result, nil
}

func (s *Overrides) ListActiveByDate(ctx context.Context, date time.Time) ([]*domain.CapacityOverride, error) {
	return s.ListByRange(ctx, date, date, true)
}

func (s *Overrides) Update(_ context.Context, o *domain.CapacityOverride) (*domain.CapacityOverride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.byID[o.ID]
	if !ok {
		return nil, override.ErrOverrideNotFound
	}
	if o.IsActive && s.activeConflict(o.ID, o.Date, o.TimeSlot) {
		return nil, override.ErrDuplicateOverride
	}

	stored.Date = o.Date
	stored.TimeSlot = o.TimeSlot
	stored.Capacity = o.Capacity
	stored.IsActive = o.IsActive
	stored.UpdatedAt = s.now()

	result := *stored
	return &result, nil
}

func (s *Overrides) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return override.ErrOverrideNotFound
	}
	delete(s.byID, id)
	return nil
}

// activeConflict есть ли другой активный override на ту же пару (date, time_slot)
func (s *Overrides) activeConflict(selfID int64, date time.Time, slot types.TimeString) bool {
	for id, o := range s.byID {
		if id != selfID && o.IsActive && sameDay(o.Date, date) && o.TimeSlot == slot {
			return true
		}
	}
	return false
}
