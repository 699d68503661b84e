package model

// OrderStatus describes delivery lifecycle of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusDelivered OrderStatus = "Delivered"
)

// OrderFieldStatus is the stored field holding OrderStatus.
const OrderFieldStatus = "status"

// LineItem is a single purchased product within an order.
type LineItem struct {
	Name     string
	Price    float64
	Quantity int
}

// Order describes a purchase placed by a customer.
type Order struct {
	ID            string
	Items         []LineItem
	PaymentMethod string
	// Date keeps the raw stored value: an ISO-8601 string or epoch milliseconds.
	Date      any
	Status    OrderStatus
	UserID    string
	AddressID string
}
