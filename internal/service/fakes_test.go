package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"wallet-api/internal/domain"
	"wallet-api/internal/repository"
)

// memoryUsers is an in-memory UserRepository with a unique user name index.
type memoryUsers struct {
	mu        sync.Mutex
	byID      map[string]domain.User
	createErr error
	lookupErr error
	// skipLookup hides stored users from GetByUserName to simulate the check-then-create race.
	skipLookup bool
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byID: map[string]domain.User{}}
}

func (m *memoryUsers) Create(_ context.Context, user *domain.User) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return "", m.createErr
	}
	for _, u := range m.byID {
		if u.UserName == user.UserName {
			return "", fmt.Errorf("insert user: %w", repository.ErrDuplicate)
		}
	}
	user.ID = uuid.NewString()
	m.byID[user.ID] = *user
	return user.ID, nil
}

func (m *memoryUsers) GetByUserName(_ context.Context, userName string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	if !m.skipLookup {
		for _, u := range m.byID {
			if u.UserName == userName {
				return &u, nil
			}
		}
	}
	return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
}

func (m *memoryUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	u, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
	}
	return &u, nil
}

func (m *memoryUsers) UpdateProfile(_ context.Context, id, firstName, lastName, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return fmt.Errorf("update user: %w", repository.ErrNotFound)
	}
	u.FirstName, u.LastName, u.PasswordHash = firstName, lastName, passwordHash
	m.byID[id] = u
	return nil
}

func (m *memoryUsers) Search(_ context.Context, filter string) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f := strings.ToLower(filter)
	var out []domain.User
	for _, u := range m.byID {
		if strings.Contains(strings.ToLower(u.FirstName), f) || strings.Contains(strings.ToLower(u.LastName), f) {
			out = append(out, u)
		}
	}
	return out, nil
}

type memoryAccounts struct {
	mu        sync.Mutex
	byUser    map[string]domain.Account
	createErr error
}

func newMemoryAccounts() *memoryAccounts {
	return &memoryAccounts{byUser: map[string]domain.Account{}}
}

func (m *memoryAccounts) Create(_ context.Context, account *domain.Account) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return "", m.createErr
	}
	if _, ok := m.byUser[account.UserID]; ok {
		return "", fmt.Errorf("insert account: %w", repository.ErrDuplicate)
	}
	account.ID = uuid.NewString()
	m.byUser[account.UserID] = *account
	return account.ID, nil
}

func (m *memoryAccounts) GetByUserID(_ context.Context, userID string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byUser[userID]
	if !ok {
		return nil, fmt.Errorf("account: %w", repository.ErrNotFound)
	}
	return &a, nil
}

type mockHasher struct {
	mock.Mock
}

func (m *mockHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *mockHasher) Verify(password, hash string) (bool, error) {
	args := m.Called(password, hash)
	return args.Bool(0), args.Error(1)
}

type mockTokens struct {
	mock.Mock
}

func (m *mockTokens) Issue(userID string) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}
