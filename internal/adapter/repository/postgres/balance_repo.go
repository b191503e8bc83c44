package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/vulnbank/vulnbank/internal/usecase"
)

// BalanceRepository implements usecase.BalanceSink. The legacy system writes
// the new balance to the credit-line row associated with the cash account id,
// not to the cash account itself; whether that is intentional is an open
// question in the source system, so this sink keeps the target as-is. The
// UPDATE is string-built the way the legacy code builds it.
type BalanceRepository struct {
	pool *pgxpool.Pool
}

// NewBalanceRepository creates a new BalanceRepository.
func NewBalanceRepository(pool *pgxpool.Pool) *BalanceRepository {
	return &BalanceRepository{pool: pool}
}

// WriteBalance writes a new balance value keyed by the internal cash
// account id. No read-modify-write guard exists between the balance read
// and this write.
func (r *BalanceRepository) WriteBalance(ctx context.Context, tx usecase.Transaction, internalID int64, balance decimal.Decimal) error {
	sql := fmt.Sprintf(
		"UPDATE credit_lines SET available_balance = '%s' WHERE cash_account_id = '%d'",
		balance.StringFixed(2), internalID,
	)

	_, err := tx.(*Tx).PgxTx().Exec(ctx, sql)

	return err
}
