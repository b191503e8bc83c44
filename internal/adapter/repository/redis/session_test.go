package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vulnbank/vulnbank/internal/domain"
)

func TestSessionStore_BindAndResolve(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewSessionStore(client, time.Hour)
	ctx := context.Background()

	if err := store.Bind(ctx, "sess-1", "john"); err != nil {
		t.Fatalf("bind failed: %v", err)
	}

	username, err := store.UsernameBySession(ctx, "sess-1")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	if username != "john" {
		t.Errorf("username = %q, want john", username)
	}
}

func TestSessionStore_UnknownSession(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewSessionStore(client, time.Hour)

	_, err := store.UsernameBySession(context.Background(), "missing")
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestSessionStore_Expiry(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewSessionStore(client, time.Minute)
	ctx := context.Background()

	if err := store.Bind(ctx, "sess-1", "john"); err != nil {
		t.Fatalf("bind failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	_, err := store.UsernameBySession(ctx, "sess-1")
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected session to expire, got %v", err)
	}
}
