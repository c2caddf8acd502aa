package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"newsportal/internal/api/middleware"
	"newsportal/internal/app/service"
	"newsportal/internal/common"
	"newsportal/internal/common/security"
	"newsportal/internal/platform/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

// TokenRevoker denylists a token id until its natural expiry.
// Implemented by cache.TokenDenylist.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

type AuthHandler struct {
	authService *service.AuthService
	revocations TokenRevoker
}

func NewAuthHandler(authService *service.AuthService, revocations TokenRevoker) *AuthHandler {
	return &AuthHandler{authService: authService, revocations: revocations}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	user, err := h.authService.Register(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusCreated, "User registered successfully", user)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		status := common.HTTPStatusFromError(err)
		message := err.Error()
		if status == http.StatusUnauthorized {
			// Wrong password and unknown email collapse into one message
			message = "Failed to login: invalid credentials"
		}
		common.RespondWithError(w, status, message)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     config.AppConfig.CookieName,
		Value:    resp.Token,
		Path:     "/",
		MaxAge:   int(config.AppConfig.JWTExp / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	common.RespondWithData(w, http.StatusOK, "User login successful", resp)
}

// logout clears the client-visible credential and, when the presented
// token still verifies, denylists its id for the remaining lifetime.
func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	tokenString := middleware.TokenFromCookie(r)
	if tokenString == "" {
		common.RespondWithError(w, http.StatusUnauthorized, "User is not logged in")
		return
	}

	if token, err := jwtauth.VerifyToken(security.TokenAuth, tokenString); err == nil && h.revocations != nil {
		if jti := token.JwtID(); jti != "" {
			ttl := time.Until(token.Expiration())
			_ = h.revocations.Revoke(r.Context(), jti, ttl)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     config.AppConfig.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	common.RespondWithData(w, http.StatusOK, "User logout successful", nil)
}
