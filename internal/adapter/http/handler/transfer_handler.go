package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/vulnbank/vulnbank/internal/adapter/http/dto"
	"github.com/vulnbank/vulnbank/internal/adapter/http/middleware"
	"github.com/vulnbank/vulnbank/internal/domain"
	"github.com/vulnbank/vulnbank/internal/infrastructure/metrics"
	"github.com/vulnbank/vulnbank/internal/usecase"
)

// TransferWorkflowService is the slice of the transfer workflow the handlers
// need.
type TransferWorkflowService interface {
	Submit(ctx context.Context, input usecase.SubmitInput) (*usecase.SubmitResult, error)
	Confirm(ctx context.Context, sessionID, action string) (*domain.LedgerRecord, error)
}

// AccountService is the slice of the account use case the handlers need.
type AccountService interface {
	Overview(ctx context.Context, username string) (*usecase.Overview, error)
	Login(ctx context.Context, username, password string) (*domain.AccountProfile, error)
	ListActivity(ctx context.Context, input usecase.ListActivityInput) ([]*domain.ActivityEntry, error)
	ListTransfers(ctx context.Context, input usecase.ListTransfersInput) ([]*domain.LedgerRecord, error)
}

// AccountTypeCookie is the cookie carrying the account classification. It is
// handed out on the transfer form and read back on submission without any
// server-side revalidation, so the client fully controls which submissions
// skip the review step.
const AccountTypeCookie = "accountType"

// TransferHandler handles the transfer form, submission and confirmation.
type TransferHandler struct {
	workflow       TransferWorkflowService
	accounts       AccountService
	metrics        *metrics.Metrics
	defaultFeeRate decimal.Decimal
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(workflow TransferWorkflowService, accounts AccountService, m *metrics.Metrics, defaultFeeRate decimal.Decimal) *TransferHandler {
	return &TransferHandler{
		workflow:       workflow,
		accounts:       accounts,
		metrics:        m,
		defaultFeeRate: defaultFeeRate,
	}
}

// Form serves the transfer form context and stamps the classification
// cookie with the default value.
func (h *TransferHandler) Form(w http.ResponseWriter, r *http.Request) {
	username := middleware.UsernameFromContext(r.Context())
	if username == "" {
		writeError(w, http.StatusUnauthorized, "login required", "")
		return
	}

	overview, err := h.accounts.Overview(r.Context(), username)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to load transfer form", err.Error())
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:  AccountTypeCookie,
		Value: usecase.DefaultAccountType,
		Path:  "/",
	})

	writeJSON(w, http.StatusOK, dto.TransferFormFromOverview(overview, h.defaultFeeRate))
}

// Submit accepts a submitted transfer. Personal submissions are parked for
// confirmation; any other classification executes immediately.
func (h *TransferHandler) Submit(w http.ResponseWriter, r *http.Request) {
	username := middleware.UsernameFromContext(r.Context())
	if username == "" {
		writeError(w, http.StatusUnauthorized, "login required", "")
		return
	}

	accountType := ""
	if c, err := r.Cookie(AccountTypeCookie); err == nil {
		accountType = c.Value
	}

	form := dto.ParseTransferForm(r)
	input, err := form.ToSubmitInput(middleware.SessionIDFromContext(r.Context()), username, accountType, h.defaultFeeRate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount", err.Error())
		return
	}

	h.metrics.TransfersSubmitted.Inc()

	result, err := h.workflow.Submit(r.Context(), input)
	if errors.Is(err, domain.ErrZeroAmount) {
		h.metrics.ZeroAmountErrors.Inc()
		writeJSON(w, http.StatusBadRequest, dto.RejectedFormFromSubmission(form))

		return
	}
	if err != nil {
		h.metrics.TransferErrors.WithLabelValues("submit").Inc()
		writeError(w, mapDomainError(err), "failed to submit transfer", err.Error())

		return
	}

	if result.Record != nil {
		h.recordExecuted(result.Record)
		writeJSON(w, http.StatusCreated, dto.ConfirmationFromRecord(result.Record))

		return
	}

	h.metrics.TransfersReviewed.Inc()
	h.metrics.PendingStored.Inc()
	writeJSON(w, http.StatusOK, dto.ReviewFromProposal(result.Proposal))
}

// Confirm executes the pending proposal for the session. With no pending
// proposal, or with any action other than "confirm", the client is bounced
// back to the form and the pending proposal is left alone.
func (h *TransferHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	username := middleware.UsernameFromContext(r.Context())
	if username == "" {
		writeError(w, http.StatusUnauthorized, "login required", "")
		return
	}

	action := r.PostFormValue("action")
	sessionID := middleware.SessionIDFromContext(r.Context())

	record, err := h.workflow.Confirm(r.Context(), sessionID, action)
	if errors.Is(err, domain.ErrNoPendingTransfer) {
		h.metrics.StaleConfirms.Inc()
		http.Redirect(w, r, "/transfer", http.StatusFound)

		return
	}
	if err != nil {
		h.metrics.TransferErrors.WithLabelValues("confirm").Inc()
		writeError(w, mapDomainError(err), "failed to confirm transfer", err.Error())

		return
	}

	h.metrics.PendingConsumed.Inc()
	h.recordExecuted(record)
	writeJSON(w, http.StatusCreated, dto.ConfirmationFromRecord(record))
}

// ListTransfers lists the logged-in user's committed transfers.
func (h *TransferHandler) ListTransfers(w http.ResponseWriter, r *http.Request) {
	username := middleware.UsernameFromContext(r.Context())
	if username == "" {
		writeError(w, http.StatusUnauthorized, "login required", "")
		return
	}

	records, err := h.accounts.ListTransfers(r.Context(), usecase.ListTransfersInput{
		Username: username,
		Limit:    parseIntQuery(r, "limit", 20),
		Offset:   parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list transfers", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RecordsFromDomain(records))
}

func (h *TransferHandler) recordExecuted(rec *domain.LedgerRecord) {
	h.metrics.TransfersExecuted.Inc()

	amount, _ := rec.Amount.Float64()
	h.metrics.TransferAmount.Observe(amount)
}
