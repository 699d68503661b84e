package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidToken = errors.New("invalid auth token")

var encoding = base64.RawURLEncoding

// HMACStrategy signs "<scope>.<admin id>.<unix expiry>" claims with HMAC-SHA256.
// Tokens are URL safe so they can travel in cookies unescaped.
type HMACStrategy struct {
	secret []byte
	ttl    time.Duration
	scope  string
	now    func() time.Time
}

// NewHMACStrategy builds HMACStrategy with provided secret and options.
func NewHMACStrategy(secret string, opts Options) *HMACStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	scope := opts.Scope
	if scope == "" {
		scope = defaultScope
	}
	return &HMACStrategy{secret: []byte(secret), ttl: ttl, scope: scope, now: time.Now}
}

// IssueToken generates a signed session token for the operator.
func (s *HMACStrategy) IssueToken(adminID int64) (string, error) {
	expires := s.now().Add(s.ttl).Unix()
	claims := strings.Join([]string{s.scope, strconv.FormatInt(adminID, 10), strconv.FormatInt(expires, 10)}, ".")
	return encoding.EncodeToString([]byte(claims)) + "." + s.sign(claims), nil
}

// ParseToken validates token and returns the operator id it was issued for.
func (s *HMACStrategy) ParseToken(token string) (int64, error) {
	encodedClaims, sig, ok := strings.Cut(token, ".")
	if !ok {
		return 0, ErrInvalidToken
	}
	raw, err := encoding.DecodeString(encodedClaims)
	if err != nil {
		return 0, ErrInvalidToken
	}
	claims := string(raw)
	if !hmac.Equal([]byte(s.sign(claims)), []byte(sig)) {
		return 0, ErrInvalidToken
	}

	parts := strings.Split(claims, ".")
	if len(parts) != 3 || parts[0] != s.scope {
		return 0, ErrInvalidToken
	}

	adminID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}

	expires, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}

	if !time.Unix(expires, 0).After(s.now()) {
		return 0, ErrInvalidToken
	}

	return adminID, nil
}

func (s *HMACStrategy) Name() string {
	return "hmac-sha256"
}

func (s *HMACStrategy) sign(claims string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(claims))
	return encoding.EncodeToString(mac.Sum(nil))
}
