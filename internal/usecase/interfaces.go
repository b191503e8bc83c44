package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/vulnbank/vulnbank/internal/domain"
)

// AccountDirectory resolves customer profiles and cash positions. Balance
// reads go through PositionByNumber; there is no locking variant, so the
// read and the later balance write are independent operations.
type AccountDirectory interface {
	ProfileByUsername(ctx context.Context, username string) (*domain.AccountProfile, error)
	ProfileByCredentials(ctx context.Context, username, password string) (*domain.AccountProfile, error)
	PositionsByUsername(ctx context.Context, username string) ([]*domain.CashPosition, error)
	PositionByNumber(ctx context.Context, tx Transaction, number string) (*domain.CashPosition, error)
}

// LedgerRepository persists confirmed transfers.
type LedgerRepository interface {
	Create(ctx context.Context, tx Transaction, record *domain.LedgerRecord) error
	ListByUsername(ctx context.Context, username string, limit, offset int) ([]*domain.LedgerRecord, error)
}

// ActivityRepository appends and lists account activity entries.
type ActivityRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.ActivityEntry) error
	ListByAccount(ctx context.Context, number string, limit, offset int) ([]*domain.ActivityEntry, error)
}

// BalanceSink is the single operation that writes a new balance value for an
// account, keyed by the internal id resolved from its account number.
type BalanceSink interface {
	WriteBalance(ctx context.Context, tx Transaction, internalID int64, balance decimal.Decimal) error
}

// PendingTransferStore holds at most one in-flight transfer proposal per
// session. TakeAndClear is single-use: it atomically removes the proposal
// and returns domain.ErrNoPendingTransfer when nothing is stored.
type PendingTransferStore interface {
	Put(ctx context.Context, sessionID string, proposal *domain.TransferProposal) error
	TakeAndClear(ctx context.Context, sessionID string) (*domain.TransferProposal, error)
}

// SessionStore binds an authenticated username to a session id.
type SessionStore interface {
	Bind(ctx context.Context, sessionID, username string) error
	UsernameBySession(ctx context.Context, sessionID string) (string, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient database errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}
