package usecase

import (
	"context"
	"fmt"

	"github.com/vulnbank/vulnbank/internal/domain"
)

// LedgerEngine performs the atomic multi-record update for a confirmed
// transfer: one ledger record, two balance-sink writes and three activity
// entries, all inside a single transaction.
type LedgerEngine struct {
	txManager    TransactionManager
	directory    AccountDirectory
	ledgerRepo   LedgerRepository
	activityRepo ActivityRepository
	balanceSink  BalanceSink
}

// NewLedgerEngine creates a new LedgerEngine.
func NewLedgerEngine(
	txManager TransactionManager,
	directory AccountDirectory,
	ledgerRepo LedgerRepository,
	activityRepo ActivityRepository,
	balanceSink BalanceSink,
) *LedgerEngine {
	return &LedgerEngine{
		txManager:    txManager,
		directory:    directory,
		ledgerRepo:   ledgerRepo,
		activityRepo: activityRepo,
		balanceSink:  balanceSink,
	}
}

// Execute commits a confirmed transfer proposal. The proposal's fee must
// already be an absolute amount and the amount must be non-zero; the
// workflow guarantees both before calling.
//
// The step order is externally observable through activity entries and must
// stay fixed: ledger record, source balance read+write, source amount and
// fee entries, then destination balance read+write and the credit entry.
// The balance read and the sink write are two independent operations with no
// lock between them; concurrent executions against the same source account
// can both observe the same starting balance and commit independent
// decrements.
func (e *LedgerEngine) Execute(ctx context.Context, proposal *domain.TransferProposal) (*domain.LedgerRecord, error) {
	tx, err := e.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transfer transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	record := proposal.Record()
	if err := e.ledgerRepo.Create(ctx, tx, record); err != nil {
		return nil, fmt.Errorf("persist ledger record: %w", err)
	}

	source, err := e.directory.PositionByNumber(ctx, tx, proposal.FromAccount)
	if err != nil {
		return nil, err
	}

	afterAmount := domain.RoundMoney(source.Balance.Sub(proposal.Amount))
	afterFee := domain.RoundMoney(afterAmount.Sub(proposal.Fee))

	if err := e.balanceSink.WriteBalance(ctx, tx, source.InternalID, afterFee); err != nil {
		return nil, fmt.Errorf("write source balance: %w", err)
	}

	shortDesc := domain.TruncateDescription(proposal.Description)

	err = e.activityRepo.Create(ctx, tx, &domain.ActivityEntry{
		AccountNumber:    proposal.FromAccount,
		Description:      "TRANSFER: " + shortDesc,
		Amount:           domain.RoundMoney(proposal.Amount).Neg(),
		AvailableBalance: afterAmount,
		Date:             proposal.Date,
	})
	if err != nil {
		return nil, fmt.Errorf("append source activity: %w", err)
	}

	err = e.activityRepo.Create(ctx, tx, &domain.ActivityEntry{
		AccountNumber:    proposal.FromAccount,
		Description:      "TRANSFER FEE",
		Amount:           domain.RoundMoney(proposal.Fee).Neg(),
		AvailableBalance: afterFee,
		Date:             proposal.Date,
	})
	if err != nil {
		return nil, fmt.Errorf("append fee activity: %w", err)
	}

	destination, err := e.directory.PositionByNumber(ctx, tx, proposal.ToAccount)
	if err != nil {
		return nil, err
	}

	destinationBalance := domain.RoundMoney(destination.Balance.Add(proposal.Amount))

	if err := e.balanceSink.WriteBalance(ctx, tx, destination.InternalID, destinationBalance); err != nil {
		return nil, fmt.Errorf("write destination balance: %w", err)
	}

	err = e.activityRepo.Create(ctx, tx, &domain.ActivityEntry{
		AccountNumber:    proposal.ToAccount,
		Description:      "TRANSFER: $" + shortDesc,
		Amount:           domain.RoundMoney(proposal.Amount),
		AvailableBalance: destinationBalance,
		Date:             proposal.Date,
	})
	if err != nil {
		return nil, fmt.Errorf("append destination activity: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transfer: %w", err)
	}

	return record, nil
}
