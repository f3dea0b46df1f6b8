package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "eventboard/internal/delivery/http/helpers"
	"eventboard/internal/domain"
)

type contextKey string

const requesterKey contextKey = "requester"

// SetRequester returns a context with the authenticated user set. Used by auth middleware.
func SetRequester(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, requesterKey, user)
}

// RequesterFromContext returns the authenticated user from the context.
// Returns nil for anonymous requests.
func RequesterFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(requesterKey).(*domain.User)
	return user
}

// RequireAuth returns a wrapper that validates the Bearer token, resolves the user
// from the repository, and sets it in the request context. If the token is missing
// or invalid, or the user no longer exists, it responds with 401 and does not call next.
func RequireAuth(verifier domain.TokenVerifier, users domain.UserRepository, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			user, err := resolveRequester(r, verifier, users)
			if err != nil {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, err.Error())
				return
			}
			if user == nil {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			r = r.WithContext(SetRequester(r.Context(), user))
			next(w, r)
		}
	}
}

// OptionalAuth returns a wrapper that resolves the requester when an Authorization
// header is present and leaves the request anonymous when it is absent. A header
// that is present but invalid still responds with 401.
func OptionalAuth(verifier domain.TokenVerifier, users domain.UserRepository, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			user, err := resolveRequester(r, verifier, users)
			if err != nil {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, err.Error())
				return
			}
			if user != nil {
				r = r.WithContext(SetRequester(r.Context(), user))
			}
			next(w, r)
		}
	}
}

// resolveRequester extracts and verifies the Bearer token and loads the user.
// Returns (nil, nil) when no Authorization header is present.
func resolveRequester(r *http.Request, verifier domain.TokenVerifier, users domain.UserRepository) (*domain.User, error) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return nil, nil
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return nil, errors.New("invalid authorization format")
	}
	token := strings.TrimSpace(auth[len(prefix):])
	if token == "" {
		return nil, errors.New("missing token")
	}
	userID, err := verifier.Verify(token)
	if err != nil {
		return nil, errors.New("invalid or expired token")
	}
	user, err := users.GetByID(r.Context(), userID)
	if err != nil {
		return nil, errors.New("unknown user")
	}
	return user, nil
}
