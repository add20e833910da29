package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jhoownogueira/TaskFlowAPI/pkg/httpx"
	"github.com/jhoownogueira/TaskFlowAPI/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newCodec(t *testing.T, accessTTL time.Duration) *jwtx.Codec {
	t.Helper()
	codec, err := jwtx.New(jwtx.Config{
		AccessSecret:  "access-secret",
		AccessTTL:     accessTTL,
		RefreshSecret: "refresh-secret",
	})
	require.NoError(t, err)
	return codec
}

func guardedEcho(t *testing.T, codec *jwtx.Codec) http.Handler {
	t.Helper()
	return httpx.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := httpx.IdentityFromContext(r.Context())
			require.True(t, ok, "handler must only run with an identity attached")
			httpx.WriteJSON(w, http.StatusOK, map[string]string{
				"id":    id.ID,
				"email": id.Email,
			})
		}),
		httpx.AuthMiddleware(codec),
	)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	codec := newCodec(t, 0)
	handler := guardedEcho(t, codec)

	token, err := codec.Issue(jwtx.KindAccess, "user-1", "ann@x.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "user-1")
	require.Contains(t, rec.Body.String(), "ann@x.com")
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	codec := newCodec(t, 0)
	handler := guardedEcho(t, codec)

	refreshToken, err := codec.Issue(jwtx.KindRefresh, "user-1", "ann@x.com")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic dXNlcjpwdw=="},
		{"garbage token", "Bearer not.a.token"},
		{"refresh token on access route", "Bearer " + refreshToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	codec := newCodec(t, time.Nanosecond)
	handler := guardedEcho(t, codec)

	token, err := codec.Issue(jwtx.KindAccess, "user-1", "ann@x.com")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
