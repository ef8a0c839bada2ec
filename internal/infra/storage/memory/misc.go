package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
	"github.com/m04kA/SMC-SlotCapacity/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SlotCapacity/internal/infra/storage/notes"
	"github.com/m04kA/SMC-SlotCapacity/internal/infra/storage/settings"
)

// Settings настройки магазина в памяти
type Settings struct {
	mu       sync.RWMutex
	settings *domain.ShopSettings
}

func NewSettings() *Settings {
	return &Settings{}
}

func (s *Settings) Get(_ context.Context) (*domain.ShopSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.settings == nil {
		return nil, settings.ErrSettingsNotFound
	}
	result := *s.settings
	return &result, nil
}

func (s *Settings) Upsert(_ context.Context, value domain.ShopSettings) (*domain.ShopSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value.UpdatedAt = time.Now()
	s.settings = &value

	result := value
	return &result, nil
}

// Catalog каталог услуг в памяти
type Catalog struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*domain.Service
}

func NewCatalog() *Catalog {
	return &Catalog{byID: make(map[int64]*domain.Service)}
}

func (s *Catalog) Create(_ context.Context, svc *domain.Service) (*domain.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	now := time.Now()

	stored := *svc
	stored.ID = s.nextID
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.byID[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (s *Catalog) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	svc, ok := s.byID[id]
	if !ok {
		return nil, catalog.ErrServiceNotFound
	}
	result := *svc
	return &result, nil
}

func (s *Catalog) List(_ context.Context, activeOnly bool) ([]*domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Service, 0, len(s.byID))
	for _, svc := range s.byID {
		if activeOnly && !svc.IsActive {
			continue
		}
		c := *svc
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].DisplayOrder != result[j].DisplayOrder {
			return result[i].DisplayOrder < result[j].DisplayOrder
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (s *Catalog) Update(_ context.Context, svc *domain.Service) (*domain.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.byID[svc.ID]
	if !ok {
		return nil, catalog.ErrServiceNotFound
	}

	createdAt := stored.CreatedAt
	*stored = *svc
	stored.CreatedAt = createdAt
	stored.UpdatedAt = time.Now()

	result := *stored
	return &result, nil
}

// Notes заметки о клиентах в памяти
type Notes struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*domain.CustomerNote
}

func NewNotes() *Notes {
	return &Notes{byID: make(map[int64]*domain.CustomerNote)}
}

func (s *Notes) Create(_ context.Context, n *domain.CustomerNote) (*domain.CustomerNote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	now := time.Now()

	stored := *n
	stored.ID = s.nextID
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.byID[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (s *Notes) ListByEmail(_ context.Context, email string) ([]*domain.CustomerNote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.CustomerNote, 0)
	for _, n := range s.byID {
		if n.CustomerEmail != email {
			continue
		}
		c := *n
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (s *Notes) UpdateText(_ context.Context, id int64, text string) (*domain.CustomerNote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.byID[id]
	if !ok {
		return nil, notes.ErrNoteNotFound
	}
	n.Note = text
	n.UpdatedAt = time.Now()

	result := *n
	return &result, nil
}

func (s *Notes) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return notes.ErrNoteNotFound
	}
	delete(s.byID, id)
	return nil
}

// TxManager транзакции для хранилища в памяти: операции выполняются сразу,
// атомарность создания брони обеспечивает блокировка слота
type TxManager struct{}

func (TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
