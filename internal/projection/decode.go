package projection

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// DecodeOrders converts an orders snapshot into domain orders keeping store order.
func DecodeOrders(snapshot model.Snapshot) []model.Order {
	orders := make([]model.Order, 0, len(snapshot.Documents))
	for _, doc := range snapshot.Documents {
		orders = append(orders, DecodeOrder(doc))
	}
	return orders
}

// DecodeOrder maps a document field bag onto an Order. Missing or mistyped fields
// decode to zero values.
func DecodeOrder(doc model.Document) model.Order {
	return model.Order{
		ID:            doc.ID,
		Items:         decodeItems(doc.Fields["items"]),
		PaymentMethod: stringField(doc.Fields, "paymentMethod"),
		Date:          doc.Fields["date"],
		Status:        model.OrderStatus(stringField(doc.Fields, model.OrderFieldStatus)),
		UserID:        stringField(doc.Fields, "userId"),
		AddressID:     stringField(doc.Fields, "addressId"),
	}
}

// DecodeUsers converts a users snapshot into domain users.
func DecodeUsers(snapshot model.Snapshot) []model.User {
	users := make([]model.User, 0, len(snapshot.Documents))
	for _, doc := range snapshot.Documents {
		users = append(users, model.User{ID: doc.ID, Email: stringField(doc.Fields, "email")})
	}
	return users
}

// DecodeAddresses converts an addresses snapshot into domain addresses.
func DecodeAddresses(snapshot model.Snapshot) []model.Address {
	addresses := make([]model.Address, 0, len(snapshot.Documents))
	for _, doc := range snapshot.Documents {
		addresses = append(addresses, model.Address{
			ID:     doc.ID,
			Street: stringField(doc.Fields, "street"),
			City:   stringField(doc.Fields, "city"),
		})
	}
	return addresses
}

func decodeItems(raw any) []model.LineItem {
	var entries []map[string]any
	switch v := raw.(type) {
	case []any:
		for _, entry := range v {
			if m, ok := entry.(map[string]any); ok {
				entries = append(entries, m)
			} else {
				entries = append(entries, nil)
			}
		}
	case []map[string]any:
		entries = v
	default:
		return nil
	}

	items := make([]model.LineItem, 0, len(entries))
	for _, entry := range entries {
		price, _ := numberField(entry["price"])
		quantity, _ := numberField(entry["quantity"])
		items = append(items, model.LineItem{
			Name:     stringField(entry, "name"),
			Price:    price,
			Quantity: int(math.Round(quantity)),
		})
	}
	return items
}

func stringField(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case float64, int, int64, json.Number, bool:
		return fmt.Sprint(v)
	default:
		return ""
	}
}

func numberField(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
