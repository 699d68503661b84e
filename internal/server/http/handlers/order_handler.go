package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/orderdesk/internal/dashboard"
	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
	"github.com/polkiloo/orderdesk/internal/server/http/dto"
)

// boardEvent names server-sent events carrying a board snapshot.
const boardEvent = "board"

// OrderHandler serves the order board and delivery actions.
type OrderHandler struct {
	facade OrdersFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrdersFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Board handles GET /api/admin/orders.
func (h *OrderHandler) Board(c *gin.Context) {
	view := h.facade.Board()
	c.JSON(boardStatus(view), toBoardResponse(view))
}

// Stream handles GET /api/admin/orders/stream with one event per published view.
func (h *OrderHandler) Stream(c *gin.Context) {
	views, cancel := h.facade.Watch()
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	ctx := c.Request.Context()
	c.Stream(func(io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case view, ok := <-views:
			if !ok {
				return false
			}
			c.SSEvent(boardEvent, toBoardResponse(view))
			return true
		}
	})
}

// Deliver handles POST /api/admin/orders/:id/deliver.
func (h *OrderHandler) Deliver(c *gin.Context) {
	var req dto.DeliverRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.Status(http.StatusBadRequest)
		return
	}

	row, applied, err := h.facade.MarkDelivered(c.Request.Context(), CurrentAdminID(c), c.Param("id"), dashboard.Answer(req.Confirm))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, domainErrors.ErrNotReady), errors.Is(err, domainErrors.ErrStopped):
			c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		}
		return
	}
	if !applied {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, toOrderRow(row))
}

// Page handles GET /admin.
func (h *OrderHandler) Page(c *gin.Context) {
	view := h.facade.Board()
	c.HTML(boardStatus(view), pageTemplateName, newPageData(view))
}

func boardStatus(view dashboard.View) int {
	switch view.Phase {
	case dashboard.PhaseReady:
		return http.StatusOK
	case dashboard.PhaseLoading:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func toBoardResponse(view dashboard.View) dto.BoardResponse {
	resp := dto.BoardResponse{
		Phase:     string(view.Phase),
		Error:     view.Err,
		Version:   view.Version,
		Pending:   []dto.OrderRow{},
		Delivered: []dto.OrderRow{},
	}
	if view.Phase != dashboard.PhaseReady {
		return resp
	}
	parts := view.Partition()
	for _, row := range parts.Pending {
		resp.Pending = append(resp.Pending, toOrderRow(row))
	}
	for _, row := range parts.Delivered {
		resp.Delivered = append(resp.Delivered, toOrderRow(row))
	}
	return resp
}

func toOrderRow(row model.EnrichedOrder) dto.OrderRow {
	items := make([]dto.LineItem, 0, len(row.Items))
	for _, item := range row.Items {
		items = append(items, dto.LineItem{Name: item.Name, Price: item.Price, Quantity: item.Quantity})
	}
	return dto.OrderRow{
		ID:            row.ID,
		Items:         items,
		ItemCount:     len(row.Items),
		PaymentMethod: row.PaymentMethod,
		Date:          row.Date,
		Status:        string(row.Status),
		UserID:        row.UserID,
		AddressID:     row.AddressID,
		Username:      row.Username,
		UserAddress:   row.UserAddress,
	}
}
