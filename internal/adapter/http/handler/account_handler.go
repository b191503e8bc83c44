package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vulnbank/vulnbank/internal/adapter/http/dto"
	"github.com/vulnbank/vulnbank/internal/adapter/http/middleware"
	"github.com/vulnbank/vulnbank/internal/usecase"
)

// AccountHandler serves account overview and activity requests.
type AccountHandler struct {
	accounts AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accounts AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Overview returns the logged-in user's profile and cash accounts.
func (h *AccountHandler) Overview(w http.ResponseWriter, r *http.Request) {
	username := middleware.UsernameFromContext(r.Context())
	if username == "" {
		writeError(w, http.StatusUnauthorized, "login required", "")
		return
	}

	overview, err := h.accounts.Overview(r.Context(), username)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to load account overview", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"account":       dto.ProfileFromDomain(overview.Profile),
		"cash_accounts": dto.PositionsFromDomain(overview.Positions),
	})
}

// Activity lists activity entries for an account number, newest first.
func (h *AccountHandler) Activity(w http.ResponseWriter, r *http.Request) {
	username := middleware.UsernameFromContext(r.Context())
	if username == "" {
		writeError(w, http.StatusUnauthorized, "login required", "")
		return
	}

	number := chi.URLParam(r, "number")
	if number == "" {
		writeError(w, http.StatusBadRequest, "missing account number", "")
		return
	}

	entries, err := h.accounts.ListActivity(r.Context(), usecase.ListActivityInput{
		AccountNumber: number,
		Limit:         parseIntQuery(r, "limit", 20),
		Offset:        parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list activity", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ActivityFromDomain(entries))
}
