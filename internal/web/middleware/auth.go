package middleware

import (
	"context"
	"net/http"

	"worldmark/internal/services/auth"
)

type contextKey string

const usernameContextKey contextKey = "username"

// GetUsername retrieves the authenticated username from the request
// context. Returns "" if nobody is logged in.
func GetUsername(ctx context.Context) string {
	username, _ := ctx.Value(usernameContextKey).(string)
	return username
}

// OptionalAuth attaches the username to the context when a valid
// session cookie is present. The map UI works without a login, so no
// route requires one; this only personalises the page.
func OptionalAuth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username := usernameFromSession(r, authService)
			ctx := context.WithValue(r.Context(), usernameContextKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func usernameFromSession(r *http.Request, authService *auth.Service) string {
	cookie, err := r.Cookie("session")
	if err != nil {
		return ""
	}
	session, err := authService.ValidateSession(cookie.Value)
	if err != nil {
		return ""
	}
	return session.Username
}
