package session

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/unclebandit/campaignhub-backend/internal/model"
)

type contextKey struct{}

// CookieName is the session cookie set on login.
const CookieName = "campaignhub_session"

// FromContext returns the request's session, which may be nil when the
// caller is not logged in. Handlers must handle the nil case.
func FromContext(ctx context.Context) *model.Session {
	s, _ := ctx.Value(contextKey{}).(*model.Session)
	return s
}

// Middleware resolves the bearer token or session cookie and stores the
// resulting session (possibly nil) in the request context. It never
// rejects a request itself; requiring auth is the handler's call.
func Middleware(m *Manager, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				if c, err := r.Cookie(CookieName); err == nil {
					token = c.Value
				}
			}

			s, err := m.Resolve(token)
			if err != nil {
				// Store failure, not a bad token. Treat as no session
				// but leave a trace.
				log.Warn("session resolve failed", zap.Error(err))
				s = nil
			}

			ctx := context.WithValue(r.Context(), contextKey{}, s)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithSession injects a session into ctx. Test helper.
func WithSession(ctx context.Context, s *model.Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
