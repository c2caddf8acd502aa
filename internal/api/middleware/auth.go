package middleware

import (
	"context"
	"errors"
	"net/http"

	"newsportal/internal/common"
	"newsportal/internal/common/security"
	"newsportal/internal/domain/model"
	"newsportal/internal/domain/repository"
	"newsportal/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	UserIDCtxKey    contextKey = "userID"
	UserEmailCtxKey contextKey = "userEmail"
)

// RevocationChecker answers whether a token id has been denylisted at
// logout. Implemented by cache.TokenDenylist.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// TokenFromCookie locates the bearer credential in the named cookie. It is
// checked before the Authorization header.
func TokenFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(config.AppConfig.CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Authenticator fails closed on any missing, malformed, expired or revoked
// credential. The failure reasons deliberately collapse into one message.
func Authenticator(revocations RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized access: token missing or invalid")
				return
			}

			userID, err := security.GetUserIDFromClaims(claims)
			if err != nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized access: token missing or invalid")
				return
			}
			email, err := security.GetEmailFromClaims(claims)
			if err != nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized access: token missing or invalid")
				return
			}

			// A token without a jti cannot be revoked, so it is rejected
			// outright.
			jti, err := security.GetTokenIDFromClaims(claims)
			if err != nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized access: token missing or invalid")
				return
			}
			if revocations != nil {
				revoked, err := revocations.IsRevoked(r.Context(), jti)
				if err != nil || revoked {
					common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized access: token missing or invalid")
					return
				}
			}

			ctx := context.WithValue(r.Context(), UserIDCtxKey, userID)
			ctx = context.WithValue(ctx, UserEmailCtxKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly resolves the caller's role from the store; the token only
// carries identity, not privileges.
func AdminOnly(users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserIDFromContext(r.Context())
			if !ok {
				common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized access: token missing or invalid")
				return
			}
			user, err := users.FindByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, common.ErrNotFound) {
					common.RespondWithError(w, http.StatusForbidden, "Admin access required")
					return
				}
				common.RespondWithError(w, http.StatusInternalServerError, "Failed to resolve caller")
				return
			}
			if user.Role != model.RoleAdmin {
				common.RespondWithError(w, http.StatusForbidden, "Admin access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Helper to get user ID from context
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok
}

// Helper to get user email from context
func GetUserEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailCtxKey).(string)
	return email, ok
}
