package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vulnbank/vulnbank/internal/domain"
	"github.com/vulnbank/vulnbank/internal/usecase"
)

// DirectoryRepository implements usecase.AccountDirectory against the legacy
// bank schema. The lookup queries are assembled by string interpolation; the
// injectable surface is part of the exercise this bank exists for.
type DirectoryRepository struct {
	pool *pgxpool.Pool
}

// NewDirectoryRepository creates a new DirectoryRepository.
func NewDirectoryRepository(pool *pgxpool.Pool) *DirectoryRepository {
	return &DirectoryRepository{pool: pool}
}

// ProfileByUsername resolves a customer profile.
func (r *DirectoryRepository) ProfileByUsername(ctx context.Context, username string) (*domain.AccountProfile, error) {
	sql := fmt.Sprintf("SELECT username, name, surname FROM accounts WHERE username = '%s'", username)

	return r.scanProfile(ctx, sql)
}

// ProfileByCredentials resolves a profile from raw credentials, the legacy
// login lookup.
func (r *DirectoryRepository) ProfileByCredentials(ctx context.Context, username, password string) (*domain.AccountProfile, error) {
	sql := fmt.Sprintf(
		"SELECT username, name, surname FROM accounts WHERE username = '%s' AND password = '%s'",
		username, password,
	)

	profile, err := r.scanProfile(ctx, sql)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return nil, domain.ErrInvalidCredentials
	}

	return profile, err
}

func (r *DirectoryRepository) scanProfile(ctx context.Context, sql string) (*domain.AccountProfile, error) {
	var profile domain.AccountProfile

	err := r.pool.QueryRow(ctx, sql).Scan(&profile.Username, &profile.Name, &profile.Surname)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return &profile, nil
}

// PositionsByUsername lists a customer's cash positions.
func (r *DirectoryRepository) PositionsByUsername(ctx context.Context, username string) ([]*domain.CashPosition, error) {
	sql := fmt.Sprintf(
		"SELECT ca.id, ca.number, ca.username, ca.description, cl.available_balance"+
			" FROM cash_accounts ca JOIN credit_lines cl ON cl.cash_account_id = ca.id"+
			" WHERE ca.username = '%s'",
		username,
	)

	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var positions []*domain.CashPosition
	for rows.Next() {
		position, err := scanPosition(rows)
		if err != nil {
			return nil, err
		}

		positions = append(positions, position)
	}

	return positions, rows.Err()
}

// PositionByNumber resolves a cash position, internal id and current
// balance, by its public account number. The read carries no lock; the
// balance-sink write that follows it is an independent statement.
func (r *DirectoryRepository) PositionByNumber(ctx context.Context, tx usecase.Transaction, number string) (*domain.CashPosition, error) {
	sql := fmt.Sprintf(
		"SELECT ca.id, ca.number, ca.username, ca.description, cl.available_balance"+
			" FROM cash_accounts ca JOIN credit_lines cl ON cl.cash_account_id = ca.id"+
			" WHERE ca.number = '%s'",
		number,
	)

	position, err := scanPosition(tx.(*Tx).PgxTx().QueryRow(ctx, sql))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return position, nil
}

func scanPosition(row pgx.Row) (*domain.CashPosition, error) {
	var (
		position domain.CashPosition
		balance  pgtype.Numeric
	)

	err := row.Scan(&position.InternalID, &position.Number, &position.Username, &position.Description, &balance)
	if err != nil {
		return nil, err
	}

	position.Balance = numericToDecimal(balance)

	return &position, nil
}
