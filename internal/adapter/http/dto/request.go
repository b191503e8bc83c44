package dto

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vulnbank/vulnbank/internal/usecase"
)

// TransferForm carries the raw fields of a submitted transfer form. The fee
// field is a percentage rate, not an absolute amount.
type TransferForm struct {
	FromAccount string `json:"fromAccount"`
	ToAccount   string `json:"toAccount"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Fee         string `json:"fee"`
}

// ParseTransferForm reads the transfer fields from a form-encoded request.
func ParseTransferForm(r *http.Request) TransferForm {
	return TransferForm{
		FromAccount: r.PostFormValue("fromAccount"),
		ToAccount:   r.PostFormValue("toAccount"),
		Description: r.PostFormValue("description"),
		Amount:      r.PostFormValue("amount"),
		Fee:         r.PostFormValue("fee"),
	}
}

// ToSubmitInput converts the form to workflow input. A missing amount parses
// as zero and the workflow rejects it the same way as an explicit zero. A
// missing fee rate falls back to the server default.
func (f TransferForm) ToSubmitInput(sessionID, username, accountType string, defaultFeeRate decimal.Decimal) (usecase.SubmitInput, error) {
	amount, err := parseDecimalField(f.Amount)
	if err != nil {
		return usecase.SubmitInput{}, err
	}

	feeRate := defaultFeeRate
	if strings.TrimSpace(f.Fee) != "" {
		feeRate, err = decimal.NewFromString(strings.TrimSpace(f.Fee))
		if err != nil {
			return usecase.SubmitInput{}, err
		}
	}

	return usecase.SubmitInput{
		SessionID:   sessionID,
		Username:    username,
		AccountType: accountType,
		FromAccount: f.FromAccount,
		ToAccount:   f.ToAccount,
		Description: f.Description,
		Amount:      amount,
		FeeRate:     feeRate,
	}, nil
}

func parseDecimalField(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}

	return decimal.NewFromString(s)
}

// LoginRequest carries the login form fields.
type LoginRequest struct {
	Username string
	Password string
}

// ParseLoginRequest reads credentials from a form-encoded request.
func ParseLoginRequest(r *http.Request) LoginRequest {
	return LoginRequest{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
}
