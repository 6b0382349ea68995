package middleware

import (
	"net/http"

	"PetRescue/internal/sessions"
)

// Authenticated wraps a handler that requires a logged-in admin. Anonymous
// requests get a bare redirect to the homepage. Ownership checks (session
// email vs. the requested admin resource) stay in the handlers, which know
// the target admin.
func Authenticated(sm *sessions.Manager, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := sm.CurrentAdmin(r); !ok {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		next(w, r)
	}
}
