package middleware

import (
	"context"
	"net/http"

	"github.com/bistrohq/bistro/pkg/logger"
	"github.com/bistrohq/bistro/pkg/response"
)

// Directory answers role questions for the admin gate. An absent record is
// not an error; it simply maps to the non-admin role.
type Directory interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// RequireAdmin gates a route on the caller holding the admin role.
//
// Wire VerifyJWT before this middleware: it has no independent way to obtain
// a Principal, so a request that reaches it unverified is rejected with 401.
// The two-stage split keeps the directory lookup off low-privilege routes.
func RequireAdmin(dir Directory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromCtx(r.Context())
			if !ok {
				response.Unauthorized(w)
				return
			}

			admin, err := dir.IsAdmin(r.Context(), p.Email)
			if err != nil {
				logger.WithCtx(r.Context()).Error("admin gate: directory lookup failed", "error", err)
				response.Error(w, http.StatusInternalServerError, "Internal Server Error")
				return
			}
			if !admin {
				response.Forbidden(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
