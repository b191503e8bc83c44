package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vulnbank/vulnbank/internal/domain"
)

const (
	// DefaultAccountType is the classification the server hands out on the
	// transfer form. Only this classification goes through the review step.
	DefaultAccountType = "Personal"

	// ActionConfirm is the confirmation action value the review step expects.
	ActionConfirm = "confirm"
)

// TransferWorkflow drives the two-phase review-then-confirm protocol in
// front of the ledger engine. Nothing persisted is mutated before the
// confirmed state is reached.
type TransferWorkflow struct {
	pending PendingTransferStore
	engine  *LedgerEngine
	retrier Retrier
}

// NewTransferWorkflow creates a new TransferWorkflow.
func NewTransferWorkflow(pending PendingTransferStore, engine *LedgerEngine, retrier Retrier) *TransferWorkflow {
	return &TransferWorkflow{
		pending: pending,
		engine:  engine,
		retrier: retrier,
	}
}

// SubmitInput carries one submitted transfer form.
type SubmitInput struct {
	SessionID   string
	Username    string
	AccountType string
	FromAccount string
	ToAccount   string
	Description string
	Amount      decimal.Decimal
	FeeRate     decimal.Decimal
}

// SubmitResult is the outcome of a submission. Record is set when the
// classification skipped the review step and the transfer already executed;
// otherwise Proposal is parked in the pending store awaiting confirmation.
type SubmitResult struct {
	Proposal *domain.TransferProposal
	Record   *domain.LedgerRecord
}

// Submit parses a transfer request into a proposal. A zero amount is
// rejected before anything is stored or executed. The Personal
// classification parks the proposal for review. Any other classification
// executes immediately; the value comes from a client cookie and is never
// revalidated against server-side account data.
func (w *TransferWorkflow) Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error) {
	if input.Amount.IsZero() {
		return nil, domain.ErrZeroAmount
	}

	amount := domain.RoundMoney(input.Amount)
	proposal := &domain.TransferProposal{
		FromAccount: input.FromAccount,
		ToAccount:   input.ToAccount,
		Description: input.Description,
		Amount:      amount,
		Fee:         domain.ComputeFee(amount, input.FeeRate),
		Username:    input.Username,
		Date:        time.Now().UTC(),
	}

	if input.AccountType == DefaultAccountType {
		if err := w.pending.Put(ctx, input.SessionID, proposal); err != nil {
			return nil, err
		}

		return &SubmitResult{Proposal: proposal}, nil
	}

	record, err := w.execute(ctx, proposal)
	if err != nil {
		return nil, err
	}

	return &SubmitResult{Proposal: proposal, Record: record}, nil
}

// Confirm consumes the pending proposal for the session and executes it.
// A wrong action value or a missing proposal aborts with
// domain.ErrNoPendingTransfer and no mutation; the pending proposal, if any,
// stays untouched until the next Submit overwrites it.
func (w *TransferWorkflow) Confirm(ctx context.Context, sessionID, action string) (*domain.LedgerRecord, error) {
	if action != ActionConfirm {
		return nil, domain.ErrNoPendingTransfer
	}

	proposal, err := w.pending.TakeAndClear(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return w.execute(ctx, proposal)
}

func (w *TransferWorkflow) execute(ctx context.Context, proposal *domain.TransferProposal) (*domain.LedgerRecord, error) {
	var record *domain.LedgerRecord

	err := w.retrier.Retry(ctx, func() error {
		var err error

		record, err = w.engine.Execute(ctx, proposal)

		return err
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}
