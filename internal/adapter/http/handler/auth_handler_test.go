package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/vulnbank/vulnbank/internal/adapter/http/dto"
	"github.com/vulnbank/vulnbank/internal/domain"
	"github.com/vulnbank/vulnbank/internal/usecase/mocks"
)

func TestAuthHandler_Login_BindsSession(t *testing.T) {
	accounts := &accountServiceStub{
		loginFn: func(ctx context.Context, username, password string) (*domain.AccountProfile, error) {
			if username != "john" || password != "secret" {
				return nil, domain.ErrInvalidCredentials
			}
			return &domain.AccountProfile{Username: "john", Name: "John", Surname: "Doe"}, nil
		},
	}
	sessions := mocks.NewMockSessionStore()

	h := NewAuthHandler(accounts, sessions, newTestMetrics())

	form := url.Values{"username": {"john"}, "password": {"secret"}}
	rec := httptest.NewRecorder()
	h.Login(rec, authedRequest(http.MethodPost, "/login", form))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.ProfileResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Username != "john" {
		t.Fatalf("expected profile for john, got %+v", resp)
	}

	bound, err := sessions.UsernameBySession(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("expected session to be bound: %v", err)
	}
	if bound != "john" {
		t.Fatalf("expected session bound to john, got %s", bound)
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	accounts := &accountServiceStub{
		loginFn: func(ctx context.Context, username, password string) (*domain.AccountProfile, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	sessions := mocks.NewMockSessionStore()

	h := NewAuthHandler(accounts, sessions, newTestMetrics())

	form := url.Values{"username": {"john"}, "password": {"wrong"}}
	rec := httptest.NewRecorder()
	h.Login(rec, authedRequest(http.MethodPost, "/login", form))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	if _, err := sessions.UsernameBySession(context.Background(), "sess-1"); err == nil {
		t.Fatal("expected session to stay anonymous")
	}
}
