package projection

import "github.com/polkiloo/orderdesk/internal/domain/model"

// Enrich joins every order to its user and address. Output keeps order sequence and
// length; unresolved references render as sentinels instead of dropping rows.
func Enrich(orders []model.Order, users []model.User, addresses []model.Address, dates DateFormat) []model.EnrichedOrder {
	usersByID := make(map[string]model.User, len(users))
	for _, u := range users {
		if _, seen := usersByID[u.ID]; !seen {
			usersByID[u.ID] = u
		}
	}
	addressesByID := make(map[string]model.Address, len(addresses))
	for _, a := range addresses {
		if _, seen := addressesByID[a.ID]; !seen {
			addressesByID[a.ID] = a
		}
	}

	rows := make([]model.EnrichedOrder, 0, len(orders))
	for _, order := range orders {
		row := model.EnrichedOrder{
			ID:            order.ID,
			Items:         order.Items,
			PaymentMethod: order.PaymentMethod,
			Date:          dates.Format(order.Date),
			Status:        order.Status,
			UserID:        order.UserID,
			AddressID:     order.AddressID,
			Username:      model.UnknownUser,
			UserAddress:   model.UnknownAddress,
		}
		if user, ok := usersByID[order.UserID]; ok {
			row.Username = user.Email
		}
		if address, ok := addressesByID[order.AddressID]; ok {
			row.UserAddress = address.Street + ", " + address.City
		}
		rows = append(rows, row)
	}
	return rows
}

// EnrichSnapshots decodes the three collection snapshots and joins them.
func EnrichSnapshots(orders, users, addresses model.Snapshot, dates DateFormat) []model.EnrichedOrder {
	return Enrich(DecodeOrders(orders), DecodeUsers(users), DecodeAddresses(addresses), dates)
}

// Partitioned splits rows by status; every row lands in exactly one bucket.
type Partitioned struct {
	Pending   []model.EnrichedOrder
	Delivered []model.EnrichedOrder
	Other     []model.EnrichedOrder
}

// Partition groups rows by status keeping their relative order.
func Partition(rows []model.EnrichedOrder) Partitioned {
	var p Partitioned
	for _, row := range rows {
		switch row.Status {
		case model.OrderStatusPending:
			p.Pending = append(p.Pending, row)
		case model.OrderStatusDelivered:
			p.Delivered = append(p.Delivered, row)
		default:
			p.Other = append(p.Other, row)
		}
	}
	return p
}

// ApplyStatus returns a copy of rows where the row with id carries status.
// Row order and all other fields are unchanged.
func ApplyStatus(rows []model.EnrichedOrder, id string, status model.OrderStatus) []model.EnrichedOrder {
	patched := make([]model.EnrichedOrder, len(rows))
	copy(patched, rows)
	for i := range patched {
		if patched[i].ID == id {
			patched[i].Status = status
		}
	}
	return patched
}
