package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vulnbank/vulnbank/internal/domain"
	"github.com/vulnbank/vulnbank/internal/usecase"
)

// ActivityRepository implements usecase.ActivityRepository. The activity
// table is append-only from the engine's perspective.
type ActivityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

const insertActivitySQL = `
	INSERT INTO activity (account_number, description, amount, available_balance, date)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id
`

const listActivitySQL = `
	SELECT id, account_number, description, amount, available_balance, date
	FROM activity
	WHERE account_number = $1
	ORDER BY date DESC, id DESC
	LIMIT $2 OFFSET $3
`

// Create appends one activity entry.
func (r *ActivityRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.ActivityEntry) error {
	return tx.(*Tx).PgxTx().QueryRow(ctx, insertActivitySQL,
		entry.AccountNumber,
		entry.Description,
		decimalToNumeric(entry.Amount),
		decimalToNumeric(entry.AvailableBalance),
		timeToPgTimestamptz(entry.Date),
	).Scan(&entry.ID)
}

// ListByAccount lists activity entries for an account number, newest first.
func (r *ActivityRepository) ListByAccount(ctx context.Context, number string, limit, offset int) ([]*domain.ActivityEntry, error) {
	rows, err := r.pool.Query(ctx, listActivitySQL, number, int32(limit), int32(offset))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.ActivityEntry
	for rows.Next() {
		var (
			entry           domain.ActivityEntry
			amount, balance pgtype.Numeric
			date            pgtype.Timestamptz
		)

		err := rows.Scan(&entry.ID, &entry.AccountNumber, &entry.Description, &amount, &balance, &date)
		if err != nil {
			return nil, err
		}

		entry.Amount = numericToDecimal(amount)
		entry.AvailableBalance = numericToDecimal(balance)
		entry.Date = date.Time

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
