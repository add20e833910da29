package cryptox

import (
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// HashToken hashes the serialized form of a token (its full signed string,
// not any signing secret) for storage. Serialized tokens exceed bcrypt's
// 72-byte input limit, so the token is digested with SHA-256 first and the
// digest is what bcrypt salts and hashes. The result is still salted: the
// same token hashed twice yields different strings, so lookups must compare
// each candidate with CompareToken rather than matching hashes for equality.
func HashToken(token string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(digestToken(token), HashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CompareToken reports whether the presented raw token matches a stored hash.
func CompareToken(token, encodedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encodedHash), digestToken(token)) == nil
}

func digestToken(token string) []byte {
	sum := sha256.Sum256([]byte(token))
	out := make([]byte, base64.RawStdEncoding.EncodedLen(len(sum)))
	base64.RawStdEncoding.Encode(out, sum[:])
	return out
}
