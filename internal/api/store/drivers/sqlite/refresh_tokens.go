package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/jhoownogueira/TaskFlowAPI/internal/api/domain"
)

type refreshTokensRepo struct {
	db dbtx
}

func (r *refreshTokensRepo) CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO refresh_tokens (id, user_id, token_hash, created_at)
		VALUES (?, ?, ?, ?)`,
		t.ID, t.UserID, t.TokenHash, t.CreatedAt)
	return err
}

func (r *refreshTokensRepo) ListActiveRefreshTokens(
	ctx context.Context,
	userID string,
	limit int,
) ([]domain.RefreshToken, error) {
	// id DESC breaks created_at ties: ids are ULIDs, so within the same
	// timestamp they still sort in insertion order.
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, token_hash, created_at, revoked_at
		FROM refresh_tokens
		WHERE user_id = ? AND revoked_at IS NULL
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RefreshToken
	for rows.Next() {
		var t domain.RefreshToken
		var revokedAt sql.NullTime
		if err := rows.Scan(&t.ID, &t.UserID, &t.TokenHash, &t.CreatedAt, &revokedAt); err != nil {
			return nil, err
		}
		if revokedAt.Valid {
			v := revokedAt.Time
			t.RevokedAt = &v
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *refreshTokensRepo) RevokeRefreshToken(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE refresh_tokens SET revoked_at = ? WHERE id = ?`,
		time.Now().UTC(), id)
	return err
}
