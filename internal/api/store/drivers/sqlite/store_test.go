package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jhoownogueira/TaskFlowAPI/internal/api/domain"
	"github.com/jhoownogueira/TaskFlowAPI/internal/api/store"
	"github.com/jhoownogueira/TaskFlowAPI/pkg/idx"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedUser(t *testing.T, st *Store, email string) string {
	t.Helper()

	id := idx.New().String()
	require.NoError(t, st.Users().CreateUser(context.Background(), domain.User{
		ID:           id,
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	}))
	return id
}

func TestUsersRepo(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	userID := seedUser(t, st, "ann@example.com")

	t.Run("lookup by id and email", func(t *testing.T) {
		byID, err := st.Users().GetUserByID(ctx, userID)
		require.NoError(t, err)
		require.Equal(t, "ann@example.com", byID.Email)

		byEmail, err := st.Users().GetUserByEmail(ctx, "ann@example.com")
		require.NoError(t, err)
		require.Equal(t, userID, byEmail.ID)
	})

	t.Run("email lookup is case-sensitive", func(t *testing.T) {
		_, err := st.Users().GetUserByEmail(ctx, "ANN@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate email maps to ErrAlreadyExists", func(t *testing.T) {
		err := st.Users().CreateUser(ctx, domain.User{
			ID:           idx.New().String(),
			Name:         "Dup",
			Email:        "ann@example.com",
			PasswordHash: "hash",
			CreatedAt:    time.Now().UTC(),
		})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("missing user maps to ErrNotFound", func(t *testing.T) {
		_, err := st.Users().GetUserByID(ctx, idx.New().String())
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestRefreshTokensRepo(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	userID := seedUser(t, st, "tokens@example.com")

	// Seed more tokens than the listing window to check both order and limit.
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	ids := make([]string, 6)
	for i := range ids {
		ids[i] = idx.New().String()
		require.NoError(t, st.RefreshTokens().CreateRefreshToken(ctx, domain.RefreshToken{
			ID:        ids[i],
			UserID:    userID,
			TokenHash: fmt.Sprintf("hash-%d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	t.Run("lists newest first within the limit", func(t *testing.T) {
		active, err := st.RefreshTokens().ListActiveRefreshTokens(ctx, userID, 4)
		require.NoError(t, err)
		require.Len(t, active, 4)
		require.Equal(t, ids[5], active[0].ID)
		require.Equal(t, ids[2], active[3].ID)
	})

	t.Run("revoked tokens drop out", func(t *testing.T) {
		require.NoError(t, st.RefreshTokens().RevokeRefreshToken(ctx, ids[5]))

		active, err := st.RefreshTokens().ListActiveRefreshTokens(ctx, userID, 10)
		require.NoError(t, err)
		require.Len(t, active, 5)
		for _, tok := range active {
			require.NotEqual(t, ids[5], tok.ID)
			require.False(t, tok.Revoked())
		}
	})

	t.Run("revoke is idempotent", func(t *testing.T) {
		require.NoError(t, st.RefreshTokens().RevokeRefreshToken(ctx, ids[5]))
		require.NoError(t, st.RefreshTokens().RevokeRefreshToken(ctx, idx.New().String()))
	})

	t.Run("other users see nothing", func(t *testing.T) {
		otherID := seedUser(t, st, "other@example.com")
		active, err := st.RefreshTokens().ListActiveRefreshTokens(ctx, otherID, 10)
		require.NoError(t, err)
		require.Empty(t, active)
	})
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	userID := seedUser(t, st, "tx@example.com")

	boom := fmt.Errorf("boom")
	err := st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.RefreshTokens().CreateRefreshToken(ctx, domain.RefreshToken{
			ID:        idx.New().String(),
			UserID:    userID,
			TokenHash: "hash",
			CreatedAt: time.Now().UTC(),
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	active, err := st.RefreshTokens().ListActiveRefreshTokens(ctx, userID, 10)
	require.NoError(t, err)
	require.Empty(t, active)
}
