package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
	"github.com/polkiloo/orderdesk/internal/domain/repository"
	pkgAuth "github.com/polkiloo/orderdesk/internal/pkg/auth"
)

// AuthUseCase handles operator accounts and session tokens.
type AuthUseCase struct {
	admins repository.AdminRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(admins repository.AdminRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{admins: admins, hasher: hasher, tokens: strategy}
}

// EnsureAdmin creates the operator or resets its password. An account whose stored
// hash already matches is left untouched.
func (u *AuthUseCase) EnsureAdmin(ctx context.Context, login, password string) (*model.Admin, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, domainErrors.ErrInvalidCredentials
	}

	existing, err := u.admins.GetByLogin(ctx, login)
	switch {
	case err == nil:
		if u.hasher.Compare(existing.PasswordHash, password) == nil && !u.hasher.NeedsRehash(existing.PasswordHash) {
			return existing, nil
		}
	case !errors.Is(err, domainErrors.ErrNotFound):
		return nil, fmt.Errorf("lookup admin: %w", err)
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return u.admins.Upsert(ctx, login, hash)
}

// Authenticate validates credentials and returns a session token.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (*model.Admin, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	admin, err := u.admins.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(admin.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(admin.ID)
	if err != nil {
		return nil, "", err
	}

	return admin, token, nil
}

// ParseToken extracts the operator id from provided token.
func (u *AuthUseCase) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches operator by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.Admin, error) {
	return u.admins.GetByID(ctx, id)
}
