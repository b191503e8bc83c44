package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/vulnbank/vulnbank/internal/domain"
)

// proposalSchemaVersion guards the serialized pending-transfer shape.
const proposalSchemaVersion = 1

// PendingTransferStore implements usecase.PendingTransferStore using Redis.
// Each session holds at most one serialized proposal. Entries carry no TTL;
// a pending transfer never expires on its own, it is either confirmed or
// overwritten by the next submission.
type PendingTransferStore struct {
	client *redis.Client
	prefix string
}

// NewPendingTransferStore creates a new PendingTransferStore.
func NewPendingTransferStore(client *redis.Client) *PendingTransferStore {
	return &PendingTransferStore{
		client: client,
		prefix: "pending_transfer:",
	}
}

type proposalEnvelope struct {
	Version  int                      `json:"version"`
	Proposal *domain.TransferProposal `json:"proposal"`
}

// Put stores the proposal for a session, overwriting any pending one.
func (s *PendingTransferStore) Put(ctx context.Context, sessionID string, proposal *domain.TransferProposal) error {
	payload, err := json.Marshal(proposalEnvelope{
		Version:  proposalSchemaVersion,
		Proposal: proposal,
	})
	if err != nil {
		return fmt.Errorf("serialize pending transfer: %w", err)
	}

	return s.client.Set(ctx, s.prefix+sessionID, payload, 0).Err()
}

// TakeAndClear atomically reads and removes the session's pending proposal.
// A second call without an intervening Put returns
// domain.ErrNoPendingTransfer.
func (s *PendingTransferStore) TakeAndClear(ctx context.Context, sessionID string) (*domain.TransferProposal, error) {
	payload, err := s.client.GetDel(ctx, s.prefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNoPendingTransfer
		}

		return nil, err
	}

	var envelope proposalEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("deserialize pending transfer: %w", err)
	}

	if envelope.Version != proposalSchemaVersion || envelope.Proposal == nil {
		return nil, fmt.Errorf("unsupported pending transfer schema version %d", envelope.Version)
	}

	return envelope.Proposal, nil
}
