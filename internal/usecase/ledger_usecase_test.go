package usecase_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vulnbank/vulnbank/internal/domain"
	"github.com/vulnbank/vulnbank/internal/usecase"
	"github.com/vulnbank/vulnbank/internal/usecase/mocks"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testProposal() *domain.TransferProposal {
	return &domain.TransferProposal{
		FromAccount: "4100-1111",
		ToAccount:   "4100-2222",
		Description: "Monthly rent payment",
		Amount:      money("100.00"),
		Fee:         money("20.00"),
		Username:    "john",
		Date:        time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC),
	}
}

func newEngineFixture() (*usecase.LedgerEngine, *mocks.MockTransactionManager, *mocks.MockAccountDirectory, *mocks.MockLedgerRepository, *mocks.MockActivityRepository, *mocks.MockBalanceSink) {
	txMgr := mocks.NewMockTransactionManager()
	directory := mocks.NewMockAccountDirectory()
	ledgerRepo := mocks.NewMockLedgerRepository()
	activityRepo := mocks.NewMockActivityRepository()
	sink := mocks.NewMockBalanceSink()

	directory.AddPosition(&domain.CashPosition{
		InternalID: 7,
		Number:     "4100-1111",
		Username:   "john",
		Balance:    money("1000.00"),
	})
	directory.AddPosition(&domain.CashPosition{
		InternalID: 9,
		Number:     "4100-2222",
		Username:   "doe",
		Balance:    money("50.00"),
	})

	engine := usecase.NewLedgerEngine(txMgr, directory, ledgerRepo, activityRepo, sink)

	return engine, txMgr, directory, ledgerRepo, activityRepo, sink
}

func TestLedgerEngine_Execute_BalanceArithmetic(t *testing.T) {
	engine, txMgr, _, ledgerRepo, activityRepo, sink := newEngineFixture()

	record, err := engine.Execute(context.Background(), testProposal())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if record.ID == 0 {
		t.Error("expected assigned ledger record id")
	}

	if len(txMgr.Transactions) != 1 || !txMgr.Transactions[0].Committed {
		t.Fatal("expected a single committed transaction")
	}

	if len(sink.Writes) != 2 {
		t.Fatalf("expected 2 balance writes, got %d", len(sink.Writes))
	}

	// Source sink write: 1000 - 100 - 20.
	if sink.Writes[0].InternalID != 7 || !sink.Writes[0].Balance.Equal(money("880.00")) {
		t.Errorf("source write = id %d balance %s, want id 7 balance 880.00",
			sink.Writes[0].InternalID, sink.Writes[0].Balance)
	}

	// Destination sink write: 50 + 100.
	if sink.Writes[1].InternalID != 9 || !sink.Writes[1].Balance.Equal(money("150.00")) {
		t.Errorf("destination write = id %d balance %s, want id 9 balance 150.00",
			sink.Writes[1].InternalID, sink.Writes[1].Balance)
	}

	if len(ledgerRepo.Records) != 1 {
		t.Fatalf("expected 1 ledger record, got %d", len(ledgerRepo.Records))
	}

	entries := activityRepo.Entries
	if len(entries) != 3 {
		t.Fatalf("expected 3 activity entries, got %d", len(entries))
	}

	wantDeltas := []string{"-100.00", "-20.00", "100.00"}
	for i, want := range wantDeltas {
		if !entries[i].Amount.Equal(money(want)) {
			t.Errorf("entry %d delta = %s, want %s", i, entries[i].Amount, want)
		}
	}

	if entries[0].AccountNumber != "4100-1111" || entries[1].AccountNumber != "4100-1111" {
		t.Error("first two entries must be on the source account")
	}

	if entries[2].AccountNumber != "4100-2222" {
		t.Error("third entry must be on the destination account")
	}

	// Resulting balance snapshots: after amount, after amount+fee, after credit.
	wantBalances := []string{"900.00", "880.00", "150.00"}
	for i, want := range wantBalances {
		if !entries[i].AvailableBalance.Equal(money(want)) {
			t.Errorf("entry %d balance = %s, want %s", i, entries[i].AvailableBalance, want)
		}
	}
}

func TestLedgerEngine_Execute_ActivityDescriptions(t *testing.T) {
	engine, _, _, _, activityRepo, _ := newEngineFixture()

	if _, err := engine.Execute(context.Background(), testProposal()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantDescriptions := []string{
		"TRANSFER: Monthly rent",
		"TRANSFER FEE",
		"TRANSFER: $Monthly rent",
	}

	for i, want := range wantDescriptions {
		if activityRepo.Entries[i].Description != want {
			t.Errorf("entry %d description = %q, want %q", i, activityRepo.Entries[i].Description, want)
		}
	}
}

func TestLedgerEngine_Execute_UnknownAccount(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *domain.TransferProposal)
	}{
		{name: "unknown source", mutate: func(p *domain.TransferProposal) { p.FromAccount = "0000-0000" }},
		{name: "unknown destination", mutate: func(p *domain.TransferProposal) { p.ToAccount = "0000-0000" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, txMgr, _, ledgerRepo, activityRepo, sink := newEngineFixture()

			proposal := testProposal()
			tt.mutate(proposal)

			_, err := engine.Execute(context.Background(), proposal)
			if !errors.Is(err, domain.ErrAccountNotFound) {
				t.Fatalf("expected ErrAccountNotFound, got %v", err)
			}

			tx := txMgr.Transactions[0]
			if tx.Committed || !tx.RolledBack {
				t.Error("expected transaction rollback")
			}

			if len(ledgerRepo.Records) != 0 || len(activityRepo.Entries) != 0 || len(sink.Writes) != 0 {
				t.Error("expected no writes to survive a failed execute")
			}
		})
	}
}

func TestLedgerEngine_Execute_RollbackOnDestinationWriteFailure(t *testing.T) {
	engine, txMgr, _, ledgerRepo, activityRepo, sink := newEngineFixture()

	writeErr := errors.New("connection reset")
	var writeCalls int
	sink.WriteBalanceFunc = func(ctx context.Context, tx usecase.Transaction, internalID int64, balance decimal.Decimal) error {
		writeCalls++
		if writeCalls == 2 {
			return writeErr
		}
		tx.(*mocks.MockTransaction).Stage(func() {
			sink.Balances[internalID] = balance
		})
		return nil
	}

	_, err := engine.Execute(context.Background(), testProposal())
	if !errors.Is(err, writeErr) {
		t.Fatalf("expected destination write error, got %v", err)
	}

	tx := txMgr.Transactions[0]
	if tx.Committed || !tx.RolledBack {
		t.Error("expected transaction rollback")
	}

	if len(ledgerRepo.Records) != 0 {
		t.Errorf("expected no ledger record to survive, got %d", len(ledgerRepo.Records))
	}

	if len(activityRepo.Entries) != 0 {
		t.Errorf("expected no activity entries to survive, got %d", len(activityRepo.Entries))
	}

	if _, ok := sink.Balances[7]; ok {
		t.Error("expected source balance write to be rolled back")
	}
}

// TestLedgerEngine_Execute_LostUpdateRace documents the lost-update hazard:
// the balance read and the sink write are separate unlocked operations, so
// two concurrent executions against the same source account can both read
// the same starting balance and commit independent decrements. This is the
// engine's specified behavior, not a bug this test guards against fixing.
func TestLedgerEngine_Execute_LostUpdateRace(t *testing.T) {
	engine, _, directory, _, _, sink := newEngineFixture()

	bothRead := make(chan struct{})
	var reads int32
	directory.PositionByNumberFunc = func(ctx context.Context, tx usecase.Transaction, number string) (*domain.CashPosition, error) {
		if number != "4100-1111" {
			return &domain.CashPosition{InternalID: 9, Number: number, Username: "doe", Balance: money("50.00")}, nil
		}

		balance := money("1000.00")
		if committed, ok := sink.Balances[7]; ok {
			balance = committed
		}

		if atomic.AddInt32(&reads, 1) == 2 {
			close(bothRead)
		}
		<-bothRead // hold both executions at the stale read

		return &domain.CashPosition{InternalID: 7, Number: number, Username: "john", Balance: balance}, nil
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = engine.Execute(context.Background(), testProposal())
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("execute %d failed: %v", i, err)
		}
	}

	// Two transfers of 100+20 should have left 760, but both writers saw
	// 1000 and the second write clobbered the first.
	if got := sink.Balances[7]; !got.Equal(money("880.00")) {
		t.Errorf("final source balance = %s, want 880.00 (lost update)", got)
	}
}
