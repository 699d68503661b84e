package model

import "time"

// Admin represents an operator allowed to use the dashboard.
type Admin struct {
	ID           int64
	Login        string
	PasswordHash string
	CreatedAt    time.Time
}
