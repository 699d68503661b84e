package dto

// LineItem is a purchased product inside an order row.
type LineItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// OrderRow is a joined order as shown on the board.
type OrderRow struct {
	ID            string     `json:"id"`
	Items         []LineItem `json:"items"`
	ItemCount     int        `json:"itemCount"`
	PaymentMethod string     `json:"paymentMethod"`
	Date          string     `json:"date"`
	Status        string     `json:"status"`
	UserID        string     `json:"userId"`
	AddressID     string     `json:"addressId"`
	Username      string     `json:"username"`
	UserAddress   string     `json:"userAddress"`
}

// BoardResponse is the pending/delivered split of the current view.
type BoardResponse struct {
	Phase     string     `json:"phase"`
	Error     string     `json:"error,omitempty"`
	Version   uint64     `json:"version"`
	Pending   []OrderRow `json:"pending"`
	Delivered []OrderRow `json:"delivered"`
}

// DeliverRequest carries the operator decision for marking an order delivered.
type DeliverRequest struct {
	Confirm bool `json:"confirm"`
}

// ErrorResponse describes a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse reports service readiness.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Dashboard string `json:"dashboard"`
}
