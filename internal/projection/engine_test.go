package projection

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/polkiloo/orderdesk/internal/domain/model"
)

func newTestFormatter(t *testing.T) *DateFormatter {
	t.Helper()
	f, err := NewDateFormatter("en-US", "UTC")
	if err != nil {
		t.Fatalf("new formatter: %v", err)
	}
	return f
}

func TestEnrichExample(t *testing.T) {
	orders := []model.Order{{
		ID:            "o1",
		UserID:        "u1",
		AddressID:     "a1",
		Status:        model.OrderStatusPending,
		Items:         []model.LineItem{{Name: "Widget"}},
		Date:          "2024-01-05",
		PaymentMethod: "Card",
	}}
	users := []model.User{{ID: "u1", Email: "a@b.com"}}
	addresses := []model.Address{{ID: "a1", Street: "Main St", City: "Springfield"}}

	rows := Enrich(orders, users, addresses, newTestFormatter(t))
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	want := model.EnrichedOrder{
		ID:            "o1",
		Items:         []model.LineItem{{Name: "Widget"}},
		PaymentMethod: "Card",
		Date:          "1/5/2024",
		Status:        model.OrderStatusPending,
		UserID:        "u1",
		AddressID:     "a1",
		Username:      "a@b.com",
		UserAddress:   "Main St, Springfield",
	}
	if !reflect.DeepEqual(rows[0], want) {
		t.Fatalf("unexpected row:\n got %+v\nwant %+v", rows[0], want)
	}

	rows = Enrich(orders, nil, addresses, newTestFormatter(t))
	if rows[0].Username != model.UnknownUser {
		t.Fatalf("expected unknown user, got %q", rows[0].Username)
	}
	if rows[0].UserAddress != "Main St, Springfield" {
		t.Fatalf("address should be unaffected, got %q", rows[0].UserAddress)
	}
}

func TestEnrichMissingAddress(t *testing.T) {
	orders := []model.Order{{ID: "o1", UserID: "u1", AddressID: "missing"}}
	users := []model.User{{ID: "u1", Email: "a@b.com"}}

	rows := Enrich(orders, users, nil, newTestFormatter(t))
	if rows[0].UserAddress != model.UnknownAddress {
		t.Fatalf("expected unknown address, got %q", rows[0].UserAddress)
	}
	if rows[0].Username != "a@b.com" {
		t.Fatalf("username should be resolved, got %q", rows[0].Username)
	}
}

func TestEnrichPreservesLengthOrderAndIdentity(t *testing.T) {
	users := []model.User{{ID: "u0", Email: "zero@example.com"}}
	addresses := []model.Address{{ID: "a1", Street: "Elm", City: "Shelbyville"}}

	for n := 0; n < 20; n++ {
		orders := make([]model.Order, 0, n)
		for i := n; i > 0; i-- {
			orders = append(orders, model.Order{
				ID:        fmt.Sprintf("o%d", i),
				UserID:    fmt.Sprintf("u%d", i%3),
				AddressID: fmt.Sprintf("a%d", i%2),
			})
		}

		rows := Enrich(orders, users, addresses, newTestFormatter(t))
		if len(rows) != len(orders) {
			t.Fatalf("n=%d: expected %d rows, got %d", n, len(orders), len(rows))
		}
		for i := range orders {
			if rows[i].ID != orders[i].ID {
				t.Fatalf("n=%d: row %d has id %q, want %q", n, i, rows[i].ID, orders[i].ID)
			}
			if orders[i].UserID != "u0" && rows[i].Username != model.UnknownUser {
				t.Fatalf("n=%d: expected sentinel username for %q", n, orders[i].UserID)
			}
			if orders[i].AddressID != "a1" && rows[i].UserAddress != model.UnknownAddress {
				t.Fatalf("n=%d: expected sentinel address for %q", n, orders[i].AddressID)
			}
		}
	}
}

func TestEnrichFirstMatchWins(t *testing.T) {
	orders := []model.Order{{ID: "o1", UserID: "u1", AddressID: "a1"}}
	users := []model.User{{ID: "u1", Email: "first@example.com"}, {ID: "u1", Email: "second@example.com"}}
	addresses := []model.Address{{ID: "a1", Street: "One", City: "X"}, {ID: "a1", Street: "Two", City: "Y"}}

	rows := Enrich(orders, users, addresses, newTestFormatter(t))
	if rows[0].Username != "first@example.com" || rows[0].UserAddress != "One, X" {
		t.Fatalf("expected first matches, got %+v", rows[0])
	}
}

func TestEnrichInvalidDatePropagates(t *testing.T) {
	orders := []model.Order{{ID: "o1", Date: "not a date"}}
	rows := Enrich(orders, nil, nil, newTestFormatter(t))
	if rows[0].Date != InvalidDate {
		t.Fatalf("expected %q, got %q", InvalidDate, rows[0].Date)
	}
}

func TestEnrichSnapshots(t *testing.T) {
	orders := model.Snapshot{Collection: model.CollectionOrders, Documents: []model.Document{
		{ID: "o2", Fields: map[string]any{"userId": "u1", "addressId": "a1", "status": "Delivered", "date": float64(1704412800000)}},
		{ID: "o1", Fields: map[string]any{"userId": "u9", "addressId": "a1", "status": "Pending", "date": "2024-01-05"}},
	}}
	users := model.Snapshot{Collection: model.CollectionUsers, Documents: []model.Document{
		{ID: "u1", Fields: map[string]any{"email": "a@b.com"}},
	}}
	addresses := model.Snapshot{Collection: model.CollectionAddresses, Documents: []model.Document{
		{ID: "a1", Fields: map[string]any{"street": "Main St", "city": "Springfield"}},
	}}

	rows := EnrichSnapshots(orders, users, addresses, newTestFormatter(t))
	if len(rows) != 2 || rows[0].ID != "o2" || rows[1].ID != "o1" {
		t.Fatalf("unexpected rows %+v", rows)
	}
	if rows[0].Username != "a@b.com" || rows[1].Username != model.UnknownUser {
		t.Fatalf("unexpected usernames %q %q", rows[0].Username, rows[1].Username)
	}
	if rows[0].Date != "1/5/2024" {
		t.Fatalf("unexpected millis date %q", rows[0].Date)
	}
}

func TestPartitionCoversEveryRowOnce(t *testing.T) {
	rows := []model.EnrichedOrder{
		{ID: "1", Status: model.OrderStatusPending},
		{ID: "2", Status: model.OrderStatusDelivered},
		{ID: "3", Status: "Cancelled"},
		{ID: "4", Status: model.OrderStatusPending},
		{ID: "5", Status: ""},
	}

	p := Partition(rows)
	if len(p.Pending)+len(p.Delivered)+len(p.Other) != len(rows) {
		t.Fatalf("partition lost rows: %+v", p)
	}
	if len(p.Pending) != 2 || p.Pending[0].ID != "1" || p.Pending[1].ID != "4" {
		t.Fatalf("unexpected pending %+v", p.Pending)
	}
	if len(p.Delivered) != 1 || p.Delivered[0].ID != "2" {
		t.Fatalf("unexpected delivered %+v", p.Delivered)
	}
	if len(p.Other) != 2 {
		t.Fatalf("unexpected other %+v", p.Other)
	}

	seen := map[string]int{}
	for _, bucket := range [][]model.EnrichedOrder{p.Pending, p.Delivered, p.Other} {
		for _, row := range bucket {
			seen[row.ID]++
		}
	}
	for _, row := range rows {
		if seen[row.ID] != 1 {
			t.Fatalf("row %s seen %d times", row.ID, seen[row.ID])
		}
	}
}

func TestApplyStatus(t *testing.T) {
	rows := []model.EnrichedOrder{
		{ID: "1", Status: model.OrderStatusPending, Username: "a"},
		{ID: "2", Status: model.OrderStatusPending, Username: "b"},
	}

	patched := ApplyStatus(rows, "2", model.OrderStatusDelivered)
	if patched[1].Status != model.OrderStatusDelivered {
		t.Fatalf("expected delivered, got %s", patched[1].Status)
	}
	if patched[1].Username != "b" || patched[0].Status != model.OrderStatusPending {
		t.Fatalf("unexpected side effects: %+v", patched)
	}
	if rows[1].Status != model.OrderStatusPending {
		t.Fatalf("input rows must not be mutated")
	}

	again := ApplyStatus(patched, "2", model.OrderStatusDelivered)
	if !reflect.DeepEqual(again, patched) {
		t.Fatalf("expected identity update, got %+v", again)
	}

	unknown := ApplyStatus(rows, "missing", model.OrderStatusDelivered)
	if !reflect.DeepEqual(unknown, rows) {
		t.Fatalf("expected unchanged rows, got %+v", unknown)
	}
}
