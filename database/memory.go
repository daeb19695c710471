package database

import (
	"context"
	"sync"

	"github.com/ortelius/cms-auth/internal/apperror"
	"github.com/ortelius/cms-auth/model"
)

// MemoryStore is an in-process credential store for local runs and tests.
// It enforces the same unique email rule as the ArangoDB index.
type MemoryStore struct {
	mu      sync.RWMutex
	byKey   map[string]model.User
	byEmail map[string]string
}

// NewMemoryStore returns an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byKey:   make(map[string]model.User),
		byEmail: make(map[string]string),
	}
}

// FindByEmail returns the user without its password hash
func (s *MemoryStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.FindCredentialsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// FindCredentialsByEmail returns the user including its password hash
func (s *MemoryStore) FindCredentialsByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key, ok := s.byEmail[email]
	if !ok {
		return nil, apperror.New(apperror.NotFound)
	}
	user := s.byKey[key]
	return &user, nil
}

// FindByID returns the user without its password hash
func (s *MemoryStore) FindByID(_ context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byKey[id]
	if !ok {
		return nil, apperror.New(apperror.NotFound)
	}
	user.PasswordHash = ""
	return &user, nil
}

// FindAccessByID returns only the id, role and status of a user
func (s *MemoryStore) FindAccessByID(_ context.Context, id string) (*model.Access, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byKey[id]
	if !ok {
		return nil, apperror.New(apperror.NotFound)
	}
	return &model.Access{ID: user.Key, Role: user.Role, Status: user.Status}, nil
}

// Insert stores a copy of user
func (s *MemoryStore) Insert(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[user.Email]; ok {
		return apperror.New(apperror.DuplicateIdentifier)
	}
	s.byKey[user.Key] = *user
	s.byEmail[user.Email] = user.Key
	return nil
}

// SetStatus changes a user's status, as an administrator would
func (s *MemoryStore) SetStatus(id string, status model.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byKey[id]
	if !ok {
		return apperror.New(apperror.NotFound)
	}
	user.Status = status
	s.byKey[id] = user
	return nil
}

// Delete removes a user
func (s *MemoryStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, ok := s.byKey[id]; ok {
		delete(s.byEmail, user.Email)
		delete(s.byKey, id)
	}
}
