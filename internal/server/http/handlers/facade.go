package handlers

import (
	"context"

	"github.com/polkiloo/orderdesk/internal/dashboard"
	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, error)
	CurrentAdmin(ctx context.Context, adminID int64) (*model.Admin, error)
}

// OrdersFacade exposes the live order board.
type OrdersFacade interface {
	Board() dashboard.View
	Watch() (<-chan dashboard.View, func())
	MarkDelivered(ctx context.Context, adminID int64, orderID string, confirm dashboard.Confirmer) (model.EnrichedOrder, bool, error)
}

// HealthFacade reports dependency health.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// AdminFacade aggregates the full set of operations used across handlers.
type AdminFacade interface {
	AuthFacade
	OrdersFacade
	HealthFacade
}
