package model

const (
	UnknownUser    = "Unknown User"
	UnknownAddress = "Unknown Address"
)

// EnrichedOrder is a display-ready order row with resolved user and address.
type EnrichedOrder struct {
	ID            string
	Items         []LineItem
	PaymentMethod string
	Date          string
	Status        OrderStatus
	UserID        string
	AddressID     string
	Username      string
	UserAddress   string
}

// ItemNames returns names of all line items in row.
func (o EnrichedOrder) ItemNames() []string {
	names := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		names = append(names, item.Name)
	}
	return names
}
