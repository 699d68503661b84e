package model

// User represents a customer account. Email doubles as display name.
type User struct {
	ID    string
	Email string
}
