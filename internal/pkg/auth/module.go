package auth

import (
	"go.uber.org/fx"

	"github.com/polkiloo/orderdesk/internal/config"
)

// Module provides operator password hashing and session tokens via fx.
var Module = fx.Provide(
	newPasswordHasher,
	newTokenStrategy,
)

func newPasswordHasher() PasswordHasher {
	return NewBcryptHasher(0)
}

func newTokenStrategy(cfg *config.Config) Strategy {
	return NewHMACStrategy(cfg.JWTSecret, Options{})
}
