package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/polkiloo/orderdesk/internal/dashboard"
	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// OrderBoard is the live order view consumed by the use case.
type OrderBoard interface {
	View() dashboard.View
	Watch() (<-chan dashboard.View, func())
	MarkDelivered(ctx context.Context, orderID string, confirm dashboard.Confirmer) (model.EnrichedOrder, bool, error)
}

// OrderUseCase exposes the order board to operators.
type OrderUseCase struct {
	board  OrderBoard
	logger *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(board OrderBoard, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{board: board, logger: logger}
}

// Board returns the current view.
func (u *OrderUseCase) Board() dashboard.View {
	return u.board.View()
}

// Watch streams board views until cancelled.
func (u *OrderUseCase) Watch() (<-chan dashboard.View, func()) {
	return u.board.Watch()
}

// MarkDelivered marks an order delivered on behalf of adminID.
func (u *OrderUseCase) MarkDelivered(ctx context.Context, adminID int64, orderID string, confirm dashboard.Confirmer) (model.EnrichedOrder, bool, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return model.EnrichedOrder{}, false, domainErrors.ErrNotFound
	}

	row, applied, err := u.board.MarkDelivered(ctx, orderID, confirm)
	if err != nil {
		u.logger.Warn("mark delivered failed",
			slog.Int64("admin_id", adminID),
			slog.String("order", orderID),
			slog.String("error", err.Error()),
		)
		return model.EnrichedOrder{}, false, err
	}
	if applied {
		u.logger.Info("order marked delivered", slog.Int64("admin_id", adminID), slog.String("order", orderID))
	}
	return row, applied, nil
}
