package user

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store used in tests and in development mode
// when no database is configured. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	byID    map[int64]*User
	byEmail map[string]int64
	nextID  int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:    make(map[int64]*User),
		byEmail: make(map[string]int64),
		nextID:  1,
	}
}

var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) FindByEmail(_ context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(s.byID[id]), nil
}

func (s *MemoryStore) FindByID(_ context.Context, id int64) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(u), nil
}

func (s *MemoryStore) Save(_ context.Context, u *User) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existingID, taken := s.byEmail[u.Email]; taken && existingID != u.ID {
		return nil, ErrDuplicateEmail
	}

	now := time.Now()
	if u.ID == 0 {
		u.ID = s.nextID
		s.nextID++
		u.CreatedAt = now
	} else if prev, ok := s.byID[u.ID]; ok {
		// Email change: release the old key.
		if prev.Email != u.Email {
			delete(s.byEmail, prev.Email)
		}
		u.CreatedAt = prev.CreatedAt
	}
	u.UpdatedAt = now
	if u.Role == "" {
		u.Role = DefaultRole
	}

	stored := copyUser(u)
	s.byID[stored.ID] = stored
	s.byEmail[stored.Email] = stored.ID
	return copyUser(stored), nil
}

// Len reports the number of stored identities.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

func copyUser(u *User) *User {
	c := *u
	return &c
}
