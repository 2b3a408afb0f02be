package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
)

func oauthProvider(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestCallbackNewUserRedirectsToOnboarding(t *testing.T) {
	srv := oauthProvider(t, `{"user":{"id":"oauth-1","email":"jane@example.com","name":"Jane Lee"}}`, http.StatusOK)
	defer srv.Close()

	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id FROM users`).
		WithArgs("oauth-1").
		WillReturnError(pgx.ErrNoRows)

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("oauth-1", "jane@example.com", "Jane Lee", pgxmock.AnyArg(), "").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	svc := NewService("test-secret", mock, srv.URL)
	path, err := svc.Callback(context.Background(), "code-123")
	if err != nil {
		t.Fatalf("callback: %v", err)
	}
	if path != "/onboarding" {
		t.Fatalf("expected onboarding redirect, got %s", path)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCallbackExistingUserWithoutTypes(t *testing.T) {
	srv := oauthProvider(t, `{"user":{"id":"oauth-2","email":"omar@example.com","name":"Omar"}}`, http.StatusOK)
	defer srv.Close()

	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id FROM users`).
		WithArgs("oauth-2").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("oauth-2"))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM user_types`).
		WithArgs("oauth-2").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))

	svc := NewService("test-secret", mock, srv.URL)
	path, err := svc.Callback(context.Background(), "code-456")
	if err != nil {
		t.Fatalf("callback: %v", err)
	}
	if path != "/onboarding" {
		t.Fatalf("expected onboarding redirect, got %s", path)
	}
}

func TestCallbackExistingUserWithTypes(t *testing.T) {
	srv := oauthProvider(t, `{"user":{"id":"oauth-3","email":"sam@example.com","name":"Sam"}}`, http.StatusOK)
	defer srv.Close()

	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id FROM users`).
		WithArgs("oauth-3").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("oauth-3"))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM user_types`).
		WithArgs("oauth-3").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))

	svc := NewService("test-secret", mock, srv.URL)
	path, err := svc.Callback(context.Background(), "code-789")
	if err != nil {
		t.Fatalf("callback: %v", err)
	}
	if path != "/feed" {
		t.Fatalf("expected feed redirect, got %s", path)
	}
}

func TestCallbackExchangeFailure(t *testing.T) {
	srv := oauthProvider(t, `{}`, http.StatusUnauthorized)
	defer srv.Close()

	svc := NewService("test-secret", nil, srv.URL)
	path, err := svc.Callback(context.Background(), "bad-code")
	if err == nil {
		t.Fatalf("expected exchange error")
	}
	if path != "/feed" {
		t.Fatalf("expected feed fallback, got %s", path)
	}
}

func TestDeriveUsername(t *testing.T) {
	u := deriveUsername("Jane Lee", "jane@example.com")
	if !strings.HasPrefix(u, "janelee") || len(u) != len("janelee")+4 {
		t.Fatalf("unexpected username: %s", u)
	}

	u = deriveUsername("", "omar.k@example.com")
	if !strings.HasPrefix(u, "omark") {
		t.Fatalf("unexpected username from email: %s", u)
	}

	u = deriveUsername("", "")
	if !strings.HasPrefix(u, "user") {
		t.Fatalf("expected generic fallback: %s", u)
	}
}
