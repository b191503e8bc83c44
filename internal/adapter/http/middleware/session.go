package middleware

import (
	"context"
	"net/http"

	"github.com/oklog/ulid/v2"

	"github.com/vulnbank/vulnbank/internal/infrastructure/metrics"
	"github.com/vulnbank/vulnbank/internal/usecase"
)

type contextKey string

const (
	sessionIDKey contextKey = "session_id"
	usernameKey  contextKey = "username"
)

// SessionMiddleware assigns each browser a session cookie and resolves the
// username the session is bound to, if any. Requests without a cookie get a
// fresh anonymous session.
type SessionMiddleware struct {
	sessions   usecase.SessionStore
	cookieName string
	metrics    *metrics.Metrics
}

// NewSessionMiddleware creates a new SessionMiddleware.
func NewSessionMiddleware(sessions usecase.SessionStore, cookieName string, m *metrics.Metrics) *SessionMiddleware {
	return &SessionMiddleware{
		sessions:   sessions,
		cookieName: cookieName,
		metrics:    m,
	}
}

// Wrap wraps an http.Handler with session handling.
func (m *SessionMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := ""
		if c, err := r.Cookie(m.cookieName); err == nil {
			sessionID = c.Value
		}

		if sessionID == "" {
			sessionID = ulid.Make().String()
			http.SetCookie(w, &http.Cookie{
				Name:     m.cookieName,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
			})

			if m.metrics != nil {
				m.metrics.SessionsStarted.Inc()
			}
		}

		ctx := WithSessionID(r.Context(), sessionID)

		// An unbound session simply stays anonymous.
		if username, err := m.sessions.UsernameBySession(ctx, sessionID); err == nil {
			ctx = WithUsername(ctx, username)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithSessionID attaches a session id to the context.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// WithUsername attaches a logged-in username to the context.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

// SessionIDFromContext returns the session id for the request, or "".
func SessionIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey).(string)
	return id
}

// UsernameFromContext returns the logged-in username, or "" for anonymous
// sessions.
func UsernameFromContext(ctx context.Context) string {
	username, _ := ctx.Value(usernameKey).(string)
	return username
}
