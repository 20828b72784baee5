package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/payportal/payportal/internal/domain/errors"
	"github.com/payportal/payportal/internal/domain/payment"
	"github.com/payportal/payportal/internal/domain/user"
)

// --- Payment Repository Mock ---

// MockPaymentRepository is a mock implementation of payment.Repository.
type MockPaymentRepository struct {
	mu       sync.Mutex
	payments map[uuid.UUID]*payment.Payment

	CreateFunc  func(ctx context.Context, p *payment.Payment) error
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*payment.Payment, error)
	UpdateFunc  func(ctx context.Context, p *payment.Payment) error
	ListFunc    func(ctx context.Context, filter payment.ListFilter) ([]*payment.Payment, error)
}

func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{
		payments: make(map[uuid.UUID]*payment.Payment),
	}
}

func (m *MockPaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments[p.ID] = p
	return nil
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[id]
	if !ok {
		return nil, domainErrors.ErrPaymentNotFound
	}
	return p, nil
}

func (m *MockPaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.payments[p.ID]; !ok {
		return domainErrors.ErrPaymentNotFound
	}
	m.payments[p.ID] = p
	return nil
}

func (m *MockPaymentRepository) List(ctx context.Context, filter payment.ListFilter) ([]*payment.Payment, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*payment.Payment
	for _, p := range m.payments {
		if filter.UserID != nil && p.UserID != *filter.UserID {
			continue
		}
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		if filter.Reviewed && !p.IsTerminal() {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if filter.SortOrder == "asc" {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// --- User Repository Mock ---

// MockUserRepository is a mock implementation of user.Repository.
type MockUserRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]*user.User

	CreateFunc             func(ctx context.Context, u *user.User) error
	GetByIDFunc            func(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByAccountNumberFunc func(ctx context.Context, accountNumber string) (*user.User, error)
	GetByUsernameFunc      func(ctx context.Context, username string) (*user.User, error)
	ListByRoleFunc         func(ctx context.Context, role user.Role) ([]*user.User, error)
	DeleteFunc             func(ctx context.Context, id uuid.UUID) error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[uuid.UUID]*user.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if u.AccountNumber != "" && existing.AccountNumber == u.AccountNumber {
			return domainErrors.ErrDuplicateAccount
		}
		if u.IDNumber != "" && existing.IDNumber == u.IDNumber {
			return domainErrors.ErrDuplicateIDNumber
		}
		if u.Username != "" && existing.Username == u.Username {
			return domainErrors.ErrDuplicateUsername
		}
	}
	m.users[u.ID] = u
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, domainErrors.ErrUserNotFound
	}
	return u, nil
}

func (m *MockUserRepository) GetByAccountNumber(ctx context.Context, accountNumber string) (*user.User, error) {
	if m.GetByAccountNumberFunc != nil {
		return m.GetByAccountNumberFunc(ctx, accountNumber)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.AccountNumber == accountNumber {
			return u, nil
		}
	}
	return nil, domainErrors.ErrUserNotFound
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domainErrors.ErrUserNotFound
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role user.Role) ([]*user.User, error) {
	if m.ListByRoleFunc != nil {
		return m.ListByRoleFunc(ctx, role)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*user.User
	for _, u := range m.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return domainErrors.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

// --- Token Store Mock ---

// MockTokenStore is an in-memory revocation list satisfying both the
// service.TokenRevoker and middleware.TokenChecker interfaces.
type MockTokenStore struct {
	mu      sync.Mutex
	revoked map[string]bool

	RevokeFunc    func(ctx context.Context, jti string, ttl time.Duration) error
	IsRevokedFunc func(ctx context.Context, jti string) (bool, error)
}

func NewMockTokenStore() *MockTokenStore {
	return &MockTokenStore{revoked: make(map[string]bool)}
}

func (m *MockTokenStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, jti, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[jti] = true
	return nil
}

func (m *MockTokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if m.IsRevokedFunc != nil {
		return m.IsRevokedFunc(ctx, jti)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.revoked[jti], nil
}
