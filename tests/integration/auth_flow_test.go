package integration

import (
	"net/http"
	"testing"
)

func TestAuthFlow(t *testing.T) {
	t.Run("register login and fetch profile", func(t *testing.T) {
		app := setupApp(t)

		token, userID := app.registerUser(t, "demo", "password123")
		if userID == 0 {
			t.Fatal("expected a non-zero user ID")
		}

		// Fresh registrations also get the default risk settings.
		rec := app.request("GET", "/api/v1/risk-settings", "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("risk settings fetch failed: %d %s", rec.Code, rec.Body.String())
		}
		settings := parseJSON(t, rec)
		if settings["max_capital_per_trade"].(float64) != 5 {
			t.Errorf("expected default max_capital_per_trade=5, got %v", settings["max_capital_per_trade"])
		}

		loginToken := app.loginUser(t, "demo", "password123")
		rec = app.request("GET", "/api/v1/profile", "", loginToken)
		if rec.Code != http.StatusOK {
			t.Fatalf("profile fetch failed: %d %s", rec.Code, rec.Body.String())
		}
		profile := parseJSON(t, rec)
		user := profile["user"].(map[string]interface{})
		if user["username"] != "demo" {
			t.Errorf("expected demo, got %v", user["username"])
		}
		if _, leaked := user["password"]; leaked {
			t.Error("expected password to be omitted from the profile")
		}
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		app := setupApp(t)

		app.registerUser(t, "demo", "password123")

		rec := app.request("POST", "/api/v1/auth/register",
			`{"username":"demo","password":"different456"}`, "")
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		errObj := result["error"].(map[string]interface{})
		if errObj["code"] != "DUPLICATE_USERNAME" {
			t.Errorf("expected DUPLICATE_USERNAME, got %v", errObj["code"])
		}
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		app := setupApp(t)

		app.registerUser(t, "demo", "password123")

		rec := app.request("POST", "/api/v1/auth/login",
			`{"username":"demo","password":"wrongpassword"}`, "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("protected routes require a token", func(t *testing.T) {
		app := setupApp(t)

		rec := app.request("GET", "/api/v1/profile", "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}

		rec = app.request("GET", "/api/v1/trades", "", "garbage-token")
		if rec.Code == http.StatusOK {
			t.Fatal("expected a bad token to be rejected")
		}
	})

	t.Run("logout acknowledges", func(t *testing.T) {
		app := setupApp(t)

		rec := app.request("POST", "/api/v1/auth/logout", "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}
