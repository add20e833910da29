package domain

import "time"

// User is an account record. Immutable after registration as far as this
// service is concerned.
type User struct {
	ID           string
	Name         string
	Email        string // unique, matched exactly as stored
	PasswordHash string // bcrypt
	CreatedAt    time.Time
}
