package repository

import (
	"context"

	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// AdminRepository describes persistence operations for dashboard operators.
type AdminRepository interface {
	Upsert(ctx context.Context, login, passwordHash string) (*model.Admin, error)
	GetByLogin(ctx context.Context, login string) (*model.Admin, error)
	GetByID(ctx context.Context, id int64) (*model.Admin, error)
}

// HealthChecker reports whether the backing database is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
