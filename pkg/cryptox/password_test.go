package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"empty password", ""},
		{"unicode password", "пароль密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			require.NotEmpty(t, hash)
			require.True(t, strings.HasPrefix(hash, "$2a$"),
				"hash should be in bcrypt modular crypt format")

			require.NoError(t, VerifyPassword(tt.password, hash))
		})
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	password := "samepassword"

	hash1, err := HashPassword(password)
	require.NoError(t, err)
	hash2, err := HashPassword(password)
	require.NoError(t, err)

	// Each hash differs because the salt is per-call, yet both verify.
	require.NotEqual(t, hash1, hash2)
	require.NoError(t, VerifyPassword(password, hash1))
	require.NoError(t, VerifyPassword(password, hash2))
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	hash, err := HashPassword("correct-password")
	require.NoError(t, err)

	tests := []struct {
		name  string
		wrong string
	}{
		{"completely wrong", "wrong-password"},
		{"case difference", "Correct-Password"},
		{"extra space", "correct-password "},
		{"empty password", ""},
		{"truncated", "correct-passwor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyPassword(tt.wrong, hash)
			require.ErrorIs(t, err, ErrMismatch)
		})
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	tests := []struct {
		name        string
		invalidHash string
	}{
		{"empty hash", ""},
		{"not bcrypt", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"truncated", "$2a$10$shorthash"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyPassword("whatever", tt.invalidHash)
			require.Error(t, err)
			require.NotErrorIs(t, err, ErrMismatch)
		})
	}
}

func TestHashToken_RoundTrip(t *testing.T) {
	token := "header.payload.signature"

	hash, err := HashToken(token)
	require.NoError(t, err)
	require.NotEqual(t, token, hash)

	require.True(t, CompareToken(token, hash))
	require.False(t, CompareToken("header.payload.other", hash))
}

func TestHashToken_LongTokens(t *testing.T) {
	// Serialized JWTs run well past bcrypt's 72-byte input limit; the
	// pre-digest keeps them hashable and distinguishable beyond that point.
	long := strings.Repeat("a", 200) + ".payload." + strings.Repeat("b", 200)

	hash, err := HashToken(long)
	require.NoError(t, err)
	require.True(t, CompareToken(long, hash))
	require.False(t, CompareToken(long+"x", hash))
}

func TestHashToken_SaltedNotDeterministic(t *testing.T) {
	token := "some.signed.token"

	hash1, err := HashToken(token)
	require.NoError(t, err)
	hash2, err := HashToken(token)
	require.NoError(t, err)

	// Salted hashing means there is no direct hash-equality lookup; callers
	// must scan candidates and CompareToken each one.
	require.NotEqual(t, hash1, hash2)
	require.True(t, CompareToken(token, hash1))
	require.True(t, CompareToken(token, hash2))
}

func TestCompareToken_GarbageHash(t *testing.T) {
	require.False(t, CompareToken("token", "not-a-hash"))
	require.False(t, CompareToken("token", ""))
}
