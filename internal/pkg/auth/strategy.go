package auth

import "time"

// Strategy issues and verifies operator session tokens.
type Strategy interface {
	IssueToken(adminID int64) (string, error)
	ParseToken(token string) (int64, error)
	Name() string
}

type Options struct {
	TTL time.Duration
	// Scope binds tokens to one audience; tokens of another scope are rejected.
	Scope string
}

const (
	defaultTTL   = 12 * time.Hour
	defaultScope = "orderdesk-admin"
)
