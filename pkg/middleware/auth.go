package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/bistrohq/bistro/pkg/auth"
	"github.com/bistrohq/bistro/pkg/response"
)

// Principal is the verified caller identity attached to a single request.
// It exists only for the duration of the call.
type Principal struct {
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type principalKey struct{}

// WithPrincipal stores p in ctx. Exposed for tests that need to simulate a
// verified request without minting a token.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromCtx returns the verified Principal, if VerifyJWT has run.
func PrincipalFromCtx(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// VerifyJWT gates a route on a valid bearer credential. A missing header,
// a missing Bearer scheme, or a token that fails signature or expiry checks
// all end the request with 401. On success the decoded Principal is attached
// to the request context for downstream stages; there are no other side
// effects.
func VerifyJWT(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			response.Unauthorized(w)
			return
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(raw)
		if err != nil {
			response.Unauthorized(w)
			return
		}

		p := Principal{Email: claims.Email}
		if claims.IssuedAt != nil {
			p.IssuedAt = claims.IssuedAt.Time
		}
		if claims.ExpiresAt != nil {
			p.ExpiresAt = claims.ExpiresAt.Time
		}

		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}
