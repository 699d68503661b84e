package model

// Address is a delivery location referenced by orders.
type Address struct {
	ID     string
	Street string
	City   string
}
