package quota

import (
	"context"
	"sync"
	"time"
)

// in-process store for development and tests
type MemoryStore struct {
	mu            sync.Mutex
	usage         map[string]Usage
	registrations map[string]Registration
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		usage:         make(map[string]Usage),
		registrations: make(map[string]Registration),
	}
}

func (m *MemoryStore) GetUsage(_ context.Context, userID, _ string) (Usage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.usage[userID], nil
}

func (m *MemoryStore) IncrementUsage(_ context.Context, userID, day string, at time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u := m.usage[userID]
	if u.Date != day {
		u = Usage{Date: day}
	}

	u.Count++
	u.LastGenerated = at
	m.usage[userID] = u

	return u.Count, nil
}

func (m *MemoryStore) GetRegistration(_ context.Context, userID string) (*Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	reg, ok := m.registrations[userID]
	if !ok {
		return nil, nil
	}

	return &reg, nil
}

func (m *MemoryStore) Register(_ context.Context, userID string, capacity int, at time.Time) (*Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if reg, ok := m.registrations[userID]; ok {
		reg.Existing = true
		return &reg, nil
	}

	if len(m.registrations) >= capacity {
		return nil, ErrCapacityReached
	}

	reg := Registration{Number: len(m.registrations) + 1, RegisteredAt: at}
	m.registrations[userID] = reg

	return &reg, nil
}
