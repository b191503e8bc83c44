package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vulnbank/vulnbank/internal/domain"
	"github.com/vulnbank/vulnbank/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ProfileResponse represents a customer profile in API responses.
type ProfileResponse struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
}

// ProfileFromDomain converts a domain profile to a response.
func ProfileFromDomain(p *domain.AccountProfile) *ProfileResponse {
	return &ProfileResponse{
		Username: p.Username,
		Name:     p.Name,
		Surname:  p.Surname,
	}
}

// CashPositionResponse represents a cash account in API responses.
type CashPositionResponse struct {
	Number      string          `json:"number"`
	Description string          `json:"description"`
	Balance     decimal.Decimal `json:"balance"`
}

// PositionsFromDomain converts domain cash positions to responses.
func PositionsFromDomain(positions []*domain.CashPosition) []*CashPositionResponse {
	result := make([]*CashPositionResponse, len(positions))
	for i, p := range positions {
		result[i] = &CashPositionResponse{
			Number:      p.Number,
			Description: p.Description,
			Balance:     p.Balance,
		}
	}
	return result
}

// TransferFormResponse is the context for rendering the transfer form: the
// customer, their cash accounts and the form fields to prefill. Error is set
// when a rejected submission is echoed back.
type TransferFormResponse struct {
	Account      *ProfileResponse        `json:"account,omitempty"`
	CashAccounts []*CashPositionResponse `json:"cash_accounts,omitempty"`
	Transfer     TransferForm            `json:"transfer"`
	Error        bool                    `json:"error"`
}

// TransferFormFromOverview builds the initial form context. The fee field is
// prefilled with the server's default rate in percent.
func TransferFormFromOverview(ov *usecase.Overview, defaultFeeRate decimal.Decimal) *TransferFormResponse {
	return &TransferFormResponse{
		Account:      ProfileFromDomain(ov.Profile),
		CashAccounts: PositionsFromDomain(ov.Positions),
		Transfer:     TransferForm{Fee: defaultFeeRate.String()},
	}
}

// RejectedFormFromSubmission echoes a rejected submission back with the
// error flag raised, the way the form re-renders after a zero amount.
func RejectedFormFromSubmission(form TransferForm) *TransferFormResponse {
	return &TransferFormResponse{
		Transfer: form,
		Error:    true,
	}
}

// ProposalResponse represents a pending transfer proposal in API responses.
type ProposalResponse struct {
	FromAccount string          `json:"from_account"`
	ToAccount   string          `json:"to_account"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Fee         decimal.Decimal `json:"fee"`
	Date        time.Time       `json:"date"`
}

// ReviewResponse is returned when a submission is parked for confirmation.
type ReviewResponse struct {
	Status   string           `json:"status"`
	Transfer ProposalResponse `json:"transfer"`
}

// ReviewFromProposal converts a parked proposal to a response.
func ReviewFromProposal(p *domain.TransferProposal) *ReviewResponse {
	return &ReviewResponse{
		Status: "reviewing",
		Transfer: ProposalResponse{
			FromAccount: p.FromAccount,
			ToAccount:   p.ToAccount,
			Description: p.Description,
			Amount:      p.Amount,
			Fee:         p.Fee,
			Date:        p.Date,
		},
	}
}

// RecordResponse represents a committed transfer in API responses.
type RecordResponse struct {
	ID          int64           `json:"id"`
	FromAccount string          `json:"from_account"`
	ToAccount   string          `json:"to_account"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Fee         decimal.Decimal `json:"fee"`
	Username    string          `json:"username"`
	Date        time.Time       `json:"date"`
}

// RecordFromDomain converts a domain ledger record to a response.
func RecordFromDomain(rec *domain.LedgerRecord) *RecordResponse {
	return &RecordResponse{
		ID:          rec.ID,
		FromAccount: rec.FromAccount,
		ToAccount:   rec.ToAccount,
		Description: rec.Description,
		Amount:      rec.Amount,
		Fee:         rec.Fee,
		Username:    rec.Username,
		Date:        rec.Date,
	}
}

// RecordsFromDomain converts domain ledger records to responses.
func RecordsFromDomain(records []*domain.LedgerRecord) []*RecordResponse {
	result := make([]*RecordResponse, len(records))
	for i, rec := range records {
		result[i] = RecordFromDomain(rec)
	}
	return result
}

// ConfirmationResponse is returned once a transfer has been committed.
type ConfirmationResponse struct {
	Status   string          `json:"status"`
	Transfer *RecordResponse `json:"transfer"`
}

// ConfirmationFromRecord converts a committed transfer to a response.
func ConfirmationFromRecord(rec *domain.LedgerRecord) *ConfirmationResponse {
	return &ConfirmationResponse{
		Status:   "confirmed",
		Transfer: RecordFromDomain(rec),
	}
}

// ActivityResponse represents one account activity entry in API responses.
type ActivityResponse struct {
	ID               int64           `json:"id"`
	AccountNumber    string          `json:"account_number"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
	Date             time.Time       `json:"date"`
}

// ActivityFromDomain converts domain activity entries to responses.
func ActivityFromDomain(entries []*domain.ActivityEntry) []*ActivityResponse {
	result := make([]*ActivityResponse, len(entries))
	for i, e := range entries {
		result[i] = &ActivityResponse{
			ID:               e.ID,
			AccountNumber:    e.AccountNumber,
			Description:      e.Description,
			Amount:           e.Amount,
			AvailableBalance: e.AvailableBalance,
			Date:             e.Date,
		}
	}
	return result
}
