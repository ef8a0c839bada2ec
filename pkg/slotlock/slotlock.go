// Package slotlock - блокировки по ключу слота (дата + время).
// Захват ограничен контекстом: по истечении дедлайна возвращается ErrLockTimeout.
package slotlock

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrLockTimeout возвращается, если блокировку не удалось получить до дедлайна контекста
var ErrLockTimeout = errors.New("slotlock: lock acquire timeout")

// ReleaseFunc освобождает блокировку. Повторный вызов безопасен.
type ReleaseFunc func()

// Key формирует ключ блокировки для слота
func Key(date, timeSlot string) string {
	return "slot:" + date + ":" + timeSlot
}

// Memory блокировки внутри одного процесса
type Memory struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	ch   chan struct{}
	refs int // держатель + ожидающие
}

// NewMemory создает in-process locker
func NewMemory() *Memory {
	return &Memory{locks: make(map[string]*entry)}
}

// Acquire захватывает блокировку key или ждёт до отмены ctx
func (m *Memory) Acquire(ctx context.Context, key string) (ReleaseFunc, error) {
	m.mu.Lock()
	e, ok := m.locks[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		m.locks[key] = e
	}
	e.refs++
	m.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-e.ch
				m.unref(key, e)
			})
		}, nil
	case <-ctx.Done():
		m.unref(key, e)
		return nil, fmt.Errorf("%w: key=%s: %v", ErrLockTimeout, key, ctx.Err())
	}
}

// Len количество ключей, по которым есть держатели или ожидающие
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.locks)
}

func (m *Memory) unref(key string, e *entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(m.locks, key)
	}
}
