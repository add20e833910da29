package httpx

import "context"

// Identity is the authenticated caller extracted from a verified access
// token. Downstream handlers read it; nothing else about the user is loaded
// during authentication.
type Identity struct {
	ID    string
	Email string
}

type ctxKey struct{}

func contextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IdentityFromContext returns the authenticated identity, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
