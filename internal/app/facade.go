package app

import (
	"context"

	"github.com/polkiloo/orderdesk/internal/dashboard"
	"github.com/polkiloo/orderdesk/internal/domain/model"
	"github.com/polkiloo/orderdesk/internal/domain/repository"
	"github.com/polkiloo/orderdesk/internal/usecase"
)

// AdminFacade joins operator use cases behind the surface the HTTP handlers consume.
type AdminFacade struct {
	auth   *usecase.AuthUseCase
	orders *usecase.OrderUseCase
	health repository.HealthChecker
}

func NewAdminFacade(auth *usecase.AuthUseCase, orders *usecase.OrderUseCase, health repository.HealthChecker) *AdminFacade {
	return &AdminFacade{auth: auth, orders: orders, health: health}
}

func (f *AdminFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *AdminFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *AdminFacade) CurrentAdmin(ctx context.Context, adminID int64) (*model.Admin, error) {
	return f.auth.GetByID(ctx, adminID)
}

func (f *AdminFacade) Board() dashboard.View {
	return f.orders.Board()
}

func (f *AdminFacade) Watch() (<-chan dashboard.View, func()) {
	return f.orders.Watch()
}

func (f *AdminFacade) MarkDelivered(ctx context.Context, adminID int64, orderID string, confirm dashboard.Confirmer) (model.EnrichedOrder, bool, error) {
	return f.orders.MarkDelivered(ctx, adminID, orderID, confirm)
}

func (f *AdminFacade) HealthCheck(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
