package test

import (
	"context"

	"github.com/polkiloo/orderdesk/internal/dashboard"
	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// OrdersFacadeStub provides controllable behaviour for board endpoints.
type OrdersFacadeStub struct {
	View            dashboard.View
	Views           []dashboard.View
	MarkDeliveredFn func(context.Context, int64, string, dashboard.Confirmer) (model.EnrichedOrder, bool, error)
}

// Board returns the configured view.
func (s OrdersFacadeStub) Board() dashboard.View {
	return s.View
}

// Watch replays configured views and then closes the channel.
func (s OrdersFacadeStub) Watch() (<-chan dashboard.View, func()) {
	ch := make(chan dashboard.View, len(s.Views))
	for _, v := range s.Views {
		ch <- v
	}
	close(ch)
	return ch, func() {}
}

// MarkDelivered delegates to override or asks the confirmer and patches the configured view.
func (s OrdersFacadeStub) MarkDelivered(ctx context.Context, adminID int64, orderID string, confirm dashboard.Confirmer) (model.EnrichedOrder, bool, error) {
	if s.MarkDeliveredFn != nil {
		return s.MarkDeliveredFn(ctx, adminID, orderID, confirm)
	}
	if !confirm.Confirm(ctx, orderID) {
		return model.EnrichedOrder{}, false, nil
	}
	row, ok := s.View.Row(orderID)
	if !ok {
		return model.EnrichedOrder{}, false, domainErrors.ErrNotFound
	}
	row.Status = model.OrderStatusDelivered
	return row, true, nil
}

// AdminFacadeStub aggregates facade dependencies for HTTP layer tests.
type AdminFacadeStub struct {
	AuthFacadeStub
	OrdersFacadeStub
	HealthCheckerStub
}

// BoardStub is a scripted dashboard for use case tests.
type BoardStub struct {
	Current         dashboard.View
	Watched         chan dashboard.View
	MarkDeliveredFn func(context.Context, string, dashboard.Confirmer) (model.EnrichedOrder, bool, error)
	Calls           []string
}

// View returns the current view.
func (b *BoardStub) View() dashboard.View {
	return b.Current
}

// Watch returns the scripted channel.
func (b *BoardStub) Watch() (<-chan dashboard.View, func()) {
	if b.Watched == nil {
		b.Watched = make(chan dashboard.View)
	}
	return b.Watched, func() {}
}

// MarkDelivered records the call and delegates to the override.
func (b *BoardStub) MarkDelivered(ctx context.Context, orderID string, confirm dashboard.Confirmer) (model.EnrichedOrder, bool, error) {
	b.Calls = append(b.Calls, orderID)
	if b.MarkDeliveredFn != nil {
		return b.MarkDeliveredFn(ctx, orderID, confirm)
	}
	if !confirm.Confirm(ctx, orderID) {
		return model.EnrichedOrder{}, false, nil
	}
	return model.EnrichedOrder{ID: orderID, Status: model.OrderStatusDelivered}, true, nil
}

// SampleView returns a ready view with one pending and one delivered order.
func SampleView() dashboard.View {
	return dashboard.View{
		Phase:   dashboard.PhaseReady,
		Version: 3,
		Rows: []model.EnrichedOrder{
			{
				ID:            "o1",
				Items:         []model.LineItem{{Name: "Widget", Price: 10, Quantity: 1}},
				PaymentMethod: "Card",
				Date:          "1/5/2024",
				Status:        model.OrderStatusPending,
				UserID:        "u1",
				AddressID:     "a1",
				Username:      "a@b.com",
				UserAddress:   "Main St, Springfield",
			},
			{
				ID:            "o2",
				Items:         []model.LineItem{{Name: "Gadget"}, {Name: "Gizmo"}},
				PaymentMethod: "Cash",
				Date:          "2/10/2024",
				Status:        model.OrderStatusDelivered,
				UserID:        "u2",
				AddressID:     "a2",
				Username:      model.UnknownUser,
				UserAddress:   model.UnknownAddress,
			},
		},
	}
}
