package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
	"github.com/polkiloo/orderdesk/internal/domain/repository"
)

// AdminRepositoryStub stores operators in-memory for tests.
type AdminRepositoryStub struct {
	mu      sync.Mutex
	ByLogin map[string]*model.Admin
	ByID    map[int64]*model.Admin
	Next    int64
	Err     error
	Upserts int
}

// NewAdminRepositoryStub constructs stub repository with initialized maps.
func NewAdminRepositoryStub() *AdminRepositoryStub {
	return &AdminRepositoryStub{
		ByLogin: make(map[string]*model.Admin),
		ByID:    make(map[int64]*model.Admin),
		Next:    1,
	}
}

// Upsert creates the operator or replaces its password hash.
func (s *AdminRepositoryStub) Upsert(ctx context.Context, login, passwordHash string) (*model.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	s.Upserts++
	if admin, ok := s.ByLogin[login]; ok {
		admin.PasswordHash = passwordHash
		return admin, nil
	}
	if s.Next == 0 {
		s.Next = 1
	}
	admin := &model.Admin{ID: s.Next, Login: login, PasswordHash: passwordHash, CreatedAt: time.Unix(0, 0)}
	s.Next++
	s.ByLogin[login] = admin
	s.ByID[admin.ID] = admin
	return admin, nil
}

// GetByLogin fetches operator by login or returns not found.
func (s *AdminRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if admin, ok := s.ByLogin[login]; ok {
		return admin, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches operator by identifier or returns not found.
func (s *AdminRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if admin, ok := s.ByID[id]; ok {
		return admin, nil
	}
	return nil, domainErrors.ErrNotFound
}

// HealthCheckerStub reports a configured database health.
type HealthCheckerStub struct {
	Err error
}

// HealthCheck returns the configured error.
func (s HealthCheckerStub) HealthCheck(context.Context) error {
	return s.Err
}

var _ repository.AdminRepository = (*AdminRepositoryStub)(nil)
var _ repository.HealthChecker = HealthCheckerStub{}
