package profile

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"

	"backend-gigboard/internal/gamification"
)

func asUser(id string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", id)
		return c.Next()
	}
}

func TestGetProfileHandler(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	expectProfileRead(mock, "user-1", 750, "SILVER")

	app := fiber.New()
	RegisterRoutes(app.Group("/profile"), NewService(mock, gamification.NewService(mock)), asUser("user-1"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/profile/user-1", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("get profile status: %v", err)
	}

	var p Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Username != "mara" || len(p.UserTypes) != 2 {
		t.Fatalf("unexpected profile: %+v", p)
	}
}

func TestUpdateProfileHandlerForbidden(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/profile"), NewService(nil, nil), asUser("user-2"))

	body := []byte(`{"bio":"hi"}`)
	req := httptest.NewRequest(http.MethodPut, "/profile/user-1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected forbidden, got %d", resp.StatusCode)
	}
}

func TestSetTypesHandler(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM user_types`).
		WithArgs("user-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`INSERT INTO user_types`).
		WithArgs("user-1", TypeRider).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	app := fiber.New()
	RegisterRoutes(app.Group("/profile"), NewService(mock, nil), asUser("user-1"))

	body := []byte(`{"types":["RIDER"]}`)
	req := httptest.NewRequest(http.MethodPut, "/profile/user-1/types", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("set types status: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPresenceHandler(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`UPDATE users`).
		WithArgs("user-1", 9.19, 45.4642, "Milan").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	app := fiber.New()
	RegisterRoutes(app.Group("/profile"), NewService(mock, nil), asUser("user-1"))

	body := []byte(`{"lat":45.4642,"lng":9.19,"city":"Milan"}`)
	req := httptest.NewRequest(http.MethodPut, "/profile/user-1/presence", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusNoContent {
		t.Fatalf("presence status: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
