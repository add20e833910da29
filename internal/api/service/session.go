package service

import (
	"context"
	"errors"
	"time"

	"github.com/jhoownogueira/TaskFlowAPI/internal/api/domain"
	"github.com/jhoownogueira/TaskFlowAPI/internal/api/store"
	"github.com/jhoownogueira/TaskFlowAPI/pkg/cryptox"
	"github.com/jhoownogueira/TaskFlowAPI/pkg/idx"
	"github.com/jhoownogueira/TaskFlowAPI/pkg/jwtx"
	"github.com/jhoownogueira/TaskFlowAPI/pkg/slogx"
)

var (
	ErrEmailTaken         = errors.New("email_taken")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidRefresh     = errors.New("invalid_refresh_token")
)

// Scan caps for matching a presented refresh token against stored hashes.
// The hashes are salted, so there is no direct lookup; we bcrypt-compare the
// raw token against each record in a bounded newest-first window. A token
// older than the window simply stops refreshing, which is an accepted
// tradeoff, not a bug.
const (
	refreshScanLimit = 20
	logoutScanLimit  = 50
)

// SessionService owns registration, login, refresh rotation, and logout.
type SessionService struct {
	Store store.Store
	Codec *jwtx.Codec
}

// Register creates an account and an initial session. The email must not be
// taken; matching is exact as stored, with no normalization.
func (s *SessionService) Register(ctx context.Context, name, email, password string) (*domain.TokenPair, error) {
	_, err := s.Store.Users().GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, ErrEmailTaken
	case !errors.Is(err, store.ErrNotFound):
		return nil, err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		// A concurrent registration can win the race between the lookup
		// above and this insert; the unique index settles it.
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return s.issueSession(ctx, s.Store, user.ID, user.Email)
}

// Login verifies credentials and issues a new session. Unknown email and
// wrong password return the identical error so responses cannot be used as a
// user-existence oracle.
func (s *SessionService) Login(ctx context.Context, email, password string) (*domain.TokenPair, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return s.issueSession(ctx, s.Store, user.ID, user.Email)
}

// Refresh rotates a session: the presented token must carry a valid refresh
// signature AND match a non-revoked stored hash. The matched record is
// revoked and a brand-new pair is issued, so each refresh token refreshes
// exactly once.
func (s *SessionService) Refresh(ctx context.Context, presented string) (*domain.TokenPair, error) {
	claims, err := s.Codec.Verify(jwtx.KindRefresh, presented)
	if err != nil {
		return nil, ErrInvalidRefresh
	}

	matched, err := s.findActiveRecord(ctx, claims.Subject, presented, refreshScanLimit)
	if err != nil {
		return nil, err
	}
	if matched == nil {
		// Covers revoked (already rotated) tokens and tokens older than
		// the scan window alike.
		return nil, ErrInvalidRefresh
	}

	var pair *domain.TokenPair
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.RefreshTokens().RevokeRefreshToken(ctx, matched.ID); err != nil {
			return err
		}
		pair, err = s.issueSession(ctx, tx, claims.Subject, claims.Email)
		return err
	})
	if err != nil {
		return nil, err
	}

	return pair, nil
}

// Logout revokes the session behind the presented refresh token, best
// effort. Bad signatures, missing matches, and store errors are all
// swallowed: callers always get a success acknowledgement and cannot tell
// "logged out" from "nothing to revoke".
func (s *SessionService) Logout(ctx context.Context, presented string) {
	log := slogx.FromContext(ctx)

	claims, err := s.Codec.Verify(jwtx.KindRefresh, presented)
	if err != nil {
		return
	}

	matched, err := s.findActiveRecord(ctx, claims.Subject, presented, logoutScanLimit)
	if err != nil || matched == nil {
		return
	}

	if err := s.Store.RefreshTokens().RevokeRefreshToken(ctx, matched.ID); err != nil {
		log.Warn("logout revoke failed", "err", err)
	}
}

// issueSession mints a fresh token pair and persists a hash of the refresh
// token's serialized form. Shared by register, login, and refresh; st may be
// the root store or a transaction.
func (s *SessionService) issueSession(ctx context.Context, st store.Store, userID, email string) (*domain.TokenPair, error) {
	access, err := s.Codec.Issue(jwtx.KindAccess, userID, email)
	if err != nil {
		return nil, err
	}
	refresh, err := s.Codec.Issue(jwtx.KindRefresh, userID, email)
	if err != nil {
		return nil, err
	}

	tokenHash, err := cryptox.HashToken(refresh)
	if err != nil {
		return nil, err
	}

	record := domain.RefreshToken{
		ID:        idx.New().String(),
		UserID:    userID,
		TokenHash: tokenHash,
		CreatedAt: time.Now().UTC(),
	}
	if err := st.RefreshTokens().CreateRefreshToken(ctx, record); err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// findActiveRecord scans up to limit newest-first active records for the
// user and returns the first whose hash matches the presented raw token,
// or nil when none match.
func (s *SessionService) findActiveRecord(ctx context.Context, userID, presented string, limit int) (*domain.RefreshToken, error) {
	records, err := s.Store.RefreshTokens().ListActiveRefreshTokens(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	for i := range records {
		if cryptox.CompareToken(presented, records[i].TokenHash) {
			return &records[i], nil
		}
	}
	return nil, nil
}
