package httpx

import (
	"net/http"
	"strings"

	"github.com/jhoownogueira/TaskFlowAPI/pkg/jwtx"
	"github.com/jhoownogueira/TaskFlowAPI/pkg/slogx"
)

// AuthMiddleware guards a route with bearer authentication. It verifies the
// Authorization header as an access-kind token and injects the resulting
// Identity into the request context; on any failure the request is rejected
// with 401 before handler logic runs.
func AuthMiddleware(codec *jwtx.Codec) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				WriteError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := codec.Verify(jwtx.KindAccess, raw)
			if err != nil {
				log.Warn("access token rejected", "err", err)
				WriteError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx = contextWithIdentity(ctx, Identity{
				ID:    claims.Subject,
				Email: claims.Email,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
