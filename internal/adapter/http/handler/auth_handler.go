package handler

import (
	"net/http"

	"github.com/vulnbank/vulnbank/internal/adapter/http/dto"
	"github.com/vulnbank/vulnbank/internal/adapter/http/middleware"
	"github.com/vulnbank/vulnbank/internal/infrastructure/metrics"
	"github.com/vulnbank/vulnbank/internal/usecase"
)

// AuthHandler binds sessions to usernames through the legacy credential
// check.
type AuthHandler struct {
	accounts AccountService
	sessions usecase.SessionStore
	metrics  *metrics.Metrics
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accounts AccountService, sessions usecase.SessionStore, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		sessions: sessions,
		metrics:  m,
	}
}

// Login checks credentials and binds the session cookie to the user.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	creds := dto.ParseLoginRequest(r)

	profile, err := h.accounts.Login(r.Context(), creds.Username, creds.Password)
	if err != nil {
		h.metrics.LoginFailures.Inc()
		writeError(w, mapDomainError(err), "login failed", err.Error())

		return
	}

	sessionID := middleware.SessionIDFromContext(r.Context())
	if err := h.sessions.Bind(r.Context(), sessionID, profile.Username); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to start session", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ProfileFromDomain(profile))
}
