package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vulnbank/vulnbank/internal/domain"
	"github.com/vulnbank/vulnbank/internal/usecase"
	"github.com/vulnbank/vulnbank/internal/usecase/mocks"
)

func TestAccountUseCase_Overview(t *testing.T) {
	directory := newSeededDirectory()
	directory.AddProfile(&domain.AccountProfile{Username: "john", Name: "John", Surname: "Doe"})

	uc := usecase.NewAccountUseCase(directory, mocks.NewMockActivityRepository(), mocks.NewMockLedgerRepository())

	overview, err := uc.Overview(context.Background(), "john")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if overview.Profile.Name != "John" || overview.Profile.Surname != "Doe" {
		t.Errorf("unexpected profile: %+v", overview.Profile)
	}

	if len(overview.Positions) != 1 || overview.Positions[0].Number != "4100-1111" {
		t.Errorf("unexpected positions: %+v", overview.Positions)
	}
}

func TestAccountUseCase_Overview_UnknownUser(t *testing.T) {
	uc := usecase.NewAccountUseCase(newSeededDirectory(), mocks.NewMockActivityRepository(), mocks.NewMockLedgerRepository())

	_, err := uc.Overview(context.Background(), "nobody")
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountUseCase_ListActivity_ClampsLimit(t *testing.T) {
	activityRepo := mocks.NewMockActivityRepository()

	var gotLimit int
	activityRepo.ListByAccountFunc = func(ctx context.Context, number string, limit, offset int) ([]*domain.ActivityEntry, error) {
		gotLimit = limit
		return nil, nil
	}

	uc := usecase.NewAccountUseCase(newSeededDirectory(), activityRepo, mocks.NewMockLedgerRepository())

	if _, err := uc.ListActivity(context.Background(), usecase.ListActivityInput{AccountNumber: "4100-1111", Limit: 500}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 100 {
		t.Errorf("limit = %d, want clamped to 100", gotLimit)
	}

	if _, err := uc.ListActivity(context.Background(), usecase.ListActivityInput{AccountNumber: "4100-1111"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 20 {
		t.Errorf("limit = %d, want default 20", gotLimit)
	}
}

func TestAccountUseCase_ListTransfers(t *testing.T) {
	ledgerRepo := mocks.NewMockLedgerRepository()
	ledgerRepo.Records = []*domain.LedgerRecord{
		{ID: 1, Username: "john", Date: time.Now()},
		{ID: 2, Username: "doe", Date: time.Now()},
	}

	uc := usecase.NewAccountUseCase(newSeededDirectory(), mocks.NewMockActivityRepository(), ledgerRepo)

	records, err := uc.ListTransfers(context.Background(), usecase.ListTransfersInput{Username: "john"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records) != 1 || records[0].ID != 1 {
		t.Errorf("unexpected records: %+v", records)
	}
}
