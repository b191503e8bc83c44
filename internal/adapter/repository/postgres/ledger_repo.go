package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vulnbank/vulnbank/internal/domain"
	"github.com/vulnbank/vulnbank/internal/usecase"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// Create persists a confirmed transfer and assigns its sequence id.
func (r *LedgerRepository) Create(ctx context.Context, tx usecase.Transaction, record *domain.LedgerRecord) error {
	const sql = `
		INSERT INTO transfers (from_account, to_account, description, amount, fee, username, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	return tx.(*Tx).PgxTx().QueryRow(ctx, sql,
		record.FromAccount,
		record.ToAccount,
		record.Description,
		decimalToNumeric(record.Amount),
		decimalToNumeric(record.Fee),
		record.Username,
		timeToPgTimestamptz(record.Date),
	).Scan(&record.ID)
}

// ListByUsername lists transfers initiated by a user, newest first.
func (r *LedgerRepository) ListByUsername(ctx context.Context, username string, limit, offset int) ([]*domain.LedgerRecord, error) {
	const sql = `
		SELECT id, from_account, to_account, description, amount, fee, username, date
		FROM transfers
		WHERE username = $1
		ORDER BY date DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, sql, username, int32(limit), int32(offset))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.LedgerRecord
	for rows.Next() {
		var (
			record      domain.LedgerRecord
			amount, fee pgtype.Numeric
			date        pgtype.Timestamptz
		)

		err := rows.Scan(
			&record.ID,
			&record.FromAccount,
			&record.ToAccount,
			&record.Description,
			&amount,
			&fee,
			&record.Username,
			&date,
		)
		if err != nil {
			return nil, err
		}

		record.Amount = numericToDecimal(amount)
		record.Fee = numericToDecimal(fee)
		record.Date = date.Time

		records = append(records, &record)
	}

	return records, rows.Err()
}
