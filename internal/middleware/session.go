package middleware

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	errs "trophyseeker/internal/errors"
	"trophyseeker/internal/httpresponse"
)

const SessionCookie = "sessionID"

type ctxKey int

const usernameKey ctxKey = iota

type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (string, error)
}

// RequireSession rejects requests without a live session cookie and stores the
// session's username in the request context.
func RequireSession(resolver SessionResolver, log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil {
				log.Warnw("RequireSession: no session cookie", "path", r.URL.Path)
				httpresponse.WriteError(w, http.StatusUnauthorized, "session cookie is missing")
				return
			}
			username, err := resolver.Resolve(r.Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, errs.ErrSessionNotFound) {
					log.Warnw("RequireSession: session not found or expired", "path", r.URL.Path)
					httpresponse.WriteError(w, http.StatusUnauthorized, errs.ErrSessionNotFound.Error())
					return
				}
				log.Errorw("RequireSession: resolve session", "error", err)
				httpresponse.WriteError(w, http.StatusInternalServerError, errs.ErrInternal.Error())
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUsername(r.Context(), username)))
		})
	}
}

// OptionalSession behaves like RequireSession but lets anonymous requests through.
func OptionalSession(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cookie, err := r.Cookie(SessionCookie); err == nil {
				if username, err := resolver.Resolve(r.Context(), cookie.Value); err == nil {
					r = r.WithContext(WithUsername(r.Context(), username))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

// Username returns the signed-in username, or "" for anonymous requests.
func Username(ctx context.Context) string {
	username, _ := ctx.Value(usernameKey).(string)
	return username
}
