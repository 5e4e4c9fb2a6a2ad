package middleware

import (
	"net/http"

	"github.com/alertclinique/alertclinique-go/internal/model"
)

// RequireRole returns middleware that admits only sessions signed in as one of
// roles. It must run after JWTAuth.
func RequireRole(roles ...model.Role) func(http.Handler) http.Handler {
	allowed := make(map[model.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			role, valid := model.ParseRole(claims.Role)
			if _, permitted := allowed[role]; !valid || !permitted {
				writeJSONError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
