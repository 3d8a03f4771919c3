package users

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// keeps users in process memory, used with the memory and redis store backends
type MemoryRepository struct {
	mu         sync.RWMutex
	byID       map[string]*User
	byProvider map[string]string
	now        func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:       make(map[string]*User),
		byProvider: make(map[string]string),
		now:        time.Now,
	}
}

func (m *MemoryRepository) FindOrCreateByProvider(_ context.Context, id ProviderIdentity) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now().UTC()
	key := id.Provider + ":" + id.ProviderID

	if userID, ok := m.byProvider[key]; ok {
		user := m.byID[userID]
		user.Email = id.Email
		user.Name = id.Name
		user.AvatarURL = id.AvatarURL
		user.UpdatedAt = now

		copied := *user
		return &copied, nil
	}

	user := &User{
		ID:         uuid.NewString(),
		Email:      id.Email,
		Provider:   id.Provider,
		ProviderID: id.ProviderID,
		Name:       id.Name,
		AvatarURL:  id.AvatarURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	m.byID[user.ID] = user
	m.byProvider[key] = user.ID

	copied := *user
	return &copied, nil
}

func (m *MemoryRepository) FindByID(_ context.Context, userID string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.byID[userID]
	if !ok {
		return nil, ErrNotFound
	}

	copied := *user
	return &copied, nil
}
