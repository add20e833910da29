// Package jwtx signs and verifies the two token kinds the API issues:
// short-lived access tokens and long-lived refresh tokens. Each kind has its
// own HMAC secret, so a token minted for one kind can never verify as the
// other even when the payloads are identical.
package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jhoownogueira/TaskFlowAPI/pkg/idx"
)

// Kind selects which secret and lifetime a token is bound to.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// Default token lifetimes used when the config leaves them unset.
const (
	// DefaultAccessTTL keeps access tokens short-lived.
	DefaultAccessTTL = 15 * time.Minute

	// DefaultRefreshTTL bounds how long a session can be renewed without
	// logging in again.
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

var (
	// ErrInvalidToken is the single verification failure: bad signature,
	// wrong kind, expired, or malformed encoding all collapse into it so
	// callers cannot (and need not) distinguish the root cause.
	ErrInvalidToken = errors.New("jwtx: invalid token")

	// ErrMissingSecret is a construction-time error. A codec with an empty
	// secret must never come into existence.
	ErrMissingSecret = errors.New("jwtx: missing signing secret")
)

// Claims is the payload embedded in both token kinds.
type Claims struct {
	jwt.RegisteredClaims

	// Email of the subject user, carried so protected handlers can build an
	// identity without a user lookup.
	Email string `json:"email,omitempty"`
}

// Config carries the process-wide signing material, loaded once at startup.
type Config struct {
	AccessSecret  string
	AccessTTL     time.Duration // zero means DefaultAccessTTL
	RefreshSecret string
	RefreshTTL    time.Duration // zero means DefaultRefreshTTL
}

type kindKey struct {
	secret []byte
	ttl    time.Duration
}

// Codec issues and verifies signed tokens (HS256).
type Codec struct {
	kinds map[Kind]kindKey
}

// New builds a Codec from config. An absent secret for either kind is fatal
// here rather than surfacing on the first request.
func New(cfg Config) (*Codec, error) {
	if cfg.AccessSecret == "" {
		return nil, fmt.Errorf("%w: access", ErrMissingSecret)
	}
	if cfg.RefreshSecret == "" {
		return nil, fmt.Errorf("%w: refresh", ErrMissingSecret)
	}

	accessTTL := cfg.AccessTTL
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	refreshTTL := cfg.RefreshTTL
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTTL
	}

	return &Codec{
		kinds: map[Kind]kindKey{
			KindAccess:  {secret: []byte(cfg.AccessSecret), ttl: accessTTL},
			KindRefresh: {secret: []byte(cfg.RefreshSecret), ttl: refreshTTL},
		},
	}, nil
}

// Issue mints a signed token of the given kind for a subject. Every token
// carries a fresh jti, so two tokens minted in the same second still
// serialize differently.
func (c *Codec) Issue(kind Kind, subject, email string) (string, error) {
	key, ok := c.kinds[kind]
	if !ok {
		return "", fmt.Errorf("jwtx: unknown token kind %q", kind)
	}

	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        idx.New().String(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(key.ttl)),
		},
		Email: email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key.secret)
}

// Verify parses a token under the secret for the given kind. There is no
// lenient mode: any signature, expiry, or encoding problem returns
// ErrInvalidToken.
func (c *Codec) Verify(kind Kind, tokenString string) (Claims, error) {
	key, ok := c.kinds[kind]
	if !ok {
		return Claims{}, fmt.Errorf("jwtx: unknown token kind %q", kind)
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(t *jwt.Token) (any, error) { return key.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}

// TTL reports the configured lifetime for a kind, zero for unknown kinds.
func (c *Codec) TTL(kind Kind) time.Duration {
	return c.kinds[kind].ttl
}
