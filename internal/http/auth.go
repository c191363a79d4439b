package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"zapgroups-backend-go/internal/services"
	"zapgroups-backend-go/internal/session"
)

type contextKey string

const ctxSession contextKey = "session"

// WithAuth rebuilds the session from the bearer token and rejects logins
// older than the session TTL, even when the token signature still verifies.
func WithAuth(tokens services.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				WriteError(w, http.StatusUnauthorized, "Authentication failed")
				return
			}
			tokenStr := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			sess, err := tokens.ParseSession(tokenStr)
			if err != nil {
				WriteError(w, http.StatusUnauthorized, "Authentication failed")
				return
			}
			if sess.Expired(time.Now(), tokens.SessionTTL) {
				WriteError(w, http.StatusUnauthorized, "Session expired")
				return
			}
			ctx := context.WithValue(r.Context(), ctxSession, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentSession returns the session attached by WithAuth; the zero value
// means no authenticated caller.
func CurrentSession(r *http.Request) session.Session {
	if value, ok := r.Context().Value(ctxSession).(session.Session); ok {
		return value
	}
	return session.Session{}
}

// RequireAdmin gates moderation routes on the server-verified account type.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !CurrentSession(r).IsAdmin() {
			WriteError(w, http.StatusForbidden, "Not allowed")
			return
		}
		next.ServeHTTP(w, r)
	})
}
