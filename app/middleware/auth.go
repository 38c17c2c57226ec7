package middleware

import (
	"context"
	"net/http"
	"net/url"

	"quillblog/app/auth"
	"quillblog/app/models"

	"go.uber.org/zap"
)

type contextKey string

const userKey contextKey = "user"

// UserLookup resolves the user id carried by a session.
type UserLookup func(id int) (*models.User, error)

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// CurrentUser returns the authenticated user, or nil for anonymous visitors.
func CurrentUser(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

// Authenticate attaches the session's user to the request context. Requests
// without a valid session pass through anonymously.
func Authenticate(sessions *auth.SessionManager, lookup UserLookup, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := sessions.FromRequest(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			user, err := lookup(claims.UserID)
			if err != nil {
				logger.Debug("Session user not found",
					zap.Int("user_id", claims.UserID),
					zap.String("request_id", GetRequestID(r.Context())),
					zap.Error(err),
				)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// LoginRequired redirects anonymous visitors to loginURL with the requested
// path in the "next" query parameter.
func LoginRequired(loginURL string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if CurrentUser(r.Context()) == nil {
				target := loginURL + "?" + url.Values{"next": {r.URL.RequestURI()}}.Encode()
				http.Redirect(w, r, target, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
