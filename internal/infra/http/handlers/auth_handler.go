package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-crm/internal/board"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type AuthHandler struct {
	Auth        *usecase.AuthUseCase
	RateLimiter *RateLimiter
	Boards      *board.Registry
	Logger      *zap.Logger
}

func NewAuthHandler(auth *usecase.AuthUseCase, limiter *RateLimiter, boards *board.Registry, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{Auth: auth, RateLimiter: limiter, Boards: boards, Logger: logger}
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var input usecase.SignUpInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido: "+err.Error())
		return
	}

	user, err := h.Auth.SignUp(r.Context(), input)
	if err != nil {
		if usecase.IsTechnicalError(err) {
			h.Logger.Error("signup failed", zap.Error(err))
		}
		respondUsecaseError(w, err)
		return
	}

	h.Logger.Info("user signed up", zap.String("user_id", user.ID))
	writeJSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.RateLimiter != nil && !h.RateLimiter.Allow(getClientIP(r)) {
		writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests. Please try again later.")
		return
	}

	var input usecase.LoginInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido: "+err.Error())
		return
	}

	out, err := h.Auth.Login(r.Context(), input)
	if err != nil {
		if usecase.IsTechnicalError(err) {
			h.Logger.Error("login failed", zap.Error(err))
		}
		respondUsecaseError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    out.Token,
		Path:     "/",
		Expires:  out.ExpiresAt,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, out)
}

// Logout encerra a sessão e descarta o quadro em memória do usuário.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.SessionToken(r)
	var ownerID string
	if user, err := h.Auth.CurrentUser(r.Context(), token); err == nil {
		ownerID = user.ID
	}

	if err := h.Auth.Logout(r.Context(), token); err != nil {
		h.Logger.Error("logout failed", zap.Error(err))
		respondUsecaseError(w, err)
		return
	}
	if ownerID != "" && h.Boards != nil {
		h.Boards.Drop(ownerID)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
	})
	w.WriteHeader(http.StatusNoContent)
}

// Me devolve o usuário da sessão atual.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, usecase.CodeUnauthenticated, "sessão inválida ou expirada")
		return
	}
	writeJSON(w, http.StatusOK, user)
}
