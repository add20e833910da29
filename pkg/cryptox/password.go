package cryptox

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt work factor used for every credential hash in the
// system. Records already persisted encode their own cost, so bumping this
// only affects new hashes.
const HashCost = 10

var ErrMismatch = errors.New("cryptox: hash does not match")

// HashPassword hashes a plaintext password with bcrypt. The salt is generated
// per call and embedded in the returned hash string.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a stored bcrypt hash.
// Returns ErrMismatch when the password does not match, and the underlying
// bcrypt error when the hash itself is malformed.
func VerifyPassword(password, encodedHash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return err
}
