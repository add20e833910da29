package domain

import "time"

// TokenPair is what every successful register/login/refresh returns.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshToken models a stored refresh-token record. Records are written on
// every session issue and mutated exactly once, when revoked; they are never
// deleted, forming an append-only revocation ledger. A presented refresh
// token is only valid while its signature checks out AND a non-revoked record
// matches its hash.
type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string // bcrypt of the serialized signed token
	CreatedAt time.Time
	RevokedAt *time.Time // nil while the token is active
}

// Revoked reports whether the record has been revoked.
func (t RefreshToken) Revoked() bool { return t.RevokedAt != nil }
