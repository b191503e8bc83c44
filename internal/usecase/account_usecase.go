package usecase

import (
	"context"

	"github.com/vulnbank/vulnbank/internal/domain"
)

// AccountUseCase serves the read side of the bank: the transfer form
// context, activity history and the legacy credential login.
type AccountUseCase struct {
	directory    AccountDirectory
	activityRepo ActivityRepository
	ledgerRepo   LedgerRepository
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(directory AccountDirectory, activityRepo ActivityRepository, ledgerRepo LedgerRepository) *AccountUseCase {
	return &AccountUseCase{
		directory:    directory,
		activityRepo: activityRepo,
		ledgerRepo:   ledgerRepo,
	}
}

// Overview holds everything the transfer form needs about a customer.
type Overview struct {
	Profile   *domain.AccountProfile
	Positions []*domain.CashPosition
}

// Overview resolves a customer's profile and cash positions.
func (uc *AccountUseCase) Overview(ctx context.Context, username string) (*Overview, error) {
	profile, err := uc.directory.ProfileByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	positions, err := uc.directory.PositionsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	return &Overview{Profile: profile, Positions: positions}, nil
}

// Login resolves a profile from raw credentials, exactly the way the legacy
// bank does it. Unknown credentials map to domain.ErrInvalidCredentials.
func (uc *AccountUseCase) Login(ctx context.Context, username, password string) (*domain.AccountProfile, error) {
	profile, err := uc.directory.ProfileByCredentials(ctx, username, password)
	if err != nil {
		return nil, err
	}

	return profile, nil
}

// ListActivityInput represents input for listing account activity.
type ListActivityInput struct {
	AccountNumber string
	Limit         int
	Offset        int
}

// ListActivity lists activity entries for an account number, newest first.
func (uc *AccountUseCase) ListActivity(ctx context.Context, input ListActivityInput) ([]*domain.ActivityEntry, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	if input.Limit > 100 {
		input.Limit = 100
	}

	return uc.activityRepo.ListByAccount(ctx, input.AccountNumber, input.Limit, input.Offset)
}

// ListTransfersInput represents input for listing a user's transfers.
type ListTransfersInput struct {
	Username string
	Limit    int
	Offset   int
}

// ListTransfers lists ledger records initiated by a user.
func (uc *AccountUseCase) ListTransfers(ctx context.Context, input ListTransfersInput) ([]*domain.LedgerRecord, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	if input.Limit > 100 {
		input.Limit = 100
	}

	return uc.ledgerRepo.ListByUsername(ctx, input.Username, input.Limit, input.Offset)
}
