package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"tradepilot/internal/broker"
	"tradepilot/internal/models"
	"tradepilot/internal/services"
	"tradepilot/internal/signals"
	"tradepilot/internal/telegram"
	"tradepilot/internal/testutil"
)

// The signal handler drives a real engine over the paper broker and an
// in-memory store; only the risk service is mocked.
func setupSignalRouter(t *testing.T, riskSvc services.RiskServicer, notifier telegram.Notifier) *gin.Engine {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	client := broker.NewPaperClient()
	testutil.AssertNoError(t, client.Connect("key", "secret"))

	engine := signals.NewEngine(client, services.NewSignalService(db), notifier)
	handler := NewSignalHandler(engine, riskSvc, notifier)

	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.GET("/signals", handler.GetSignals)
	auth.GET("/signals/patterns", handler.TechnicalPatterns)
	auth.GET("/signals/market-update", handler.MarketUpdate)
	auth.POST("/auto-trading", handler.SetAutoTrading)
	return r
}

func TestSignalHandler_GetSignals(t *testing.T) {
	t.Run("single symbol", func(t *testing.T) {
		r := setupSignalRouter(t, &mockRiskService{}, telegram.NewMockNotifier())

		rec := doRequest(r, "GET", "/signals?symbol=RELIANCE", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["symbol"] != "RELIANCE" {
			t.Errorf("expected RELIANCE, got %v", result["symbol"])
		}
		if result["signal_type"] != "BUY" {
			t.Errorf("expected BUY for RELIANCE, got %v", result["signal_type"])
		}
	})

	t.Run("signal board without symbol", func(t *testing.T) {
		r := setupSignalRouter(t, &mockRiskService{}, telegram.NewMockNotifier())

		rec := doRequest(r, "GET", "/signals", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var board []map[string]interface{}
		if err := json.Unmarshal(rec.Body.Bytes(), &board); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if len(board) != 4 {
			t.Errorf("expected 4 board signals, got %d", len(board))
		}
	})

	t.Run("unknown symbol", func(t *testing.T) {
		r := setupSignalRouter(t, &mockRiskService{}, telegram.NewMockNotifier())

		rec := doRequest(r, "GET", "/signals?symbol=NOPE", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "UNKNOWN_SYMBOL")
	})
}

func TestSignalHandler_TechnicalPatterns(t *testing.T) {
	r := setupSignalRouter(t, &mockRiskService{}, telegram.NewMockNotifier())

	rec := doRequest(r, "GET", "/signals/patterns", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var patterns []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &patterns); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(patterns) != 5 {
		t.Errorf("expected 5 patterns, got %d", len(patterns))
	}
}

func TestSignalHandler_MarketUpdate(t *testing.T) {
	r := setupSignalRouter(t, &mockRiskService{}, telegram.NewMockNotifier())

	rec := doRequest(r, "GET", "/signals/market-update", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	if result["message"] == "" {
		t.Error("expected a headline in the response")
	}
}

func TestSignalHandler_SetAutoTrading(t *testing.T) {
	t.Run("enables and reports the new state", func(t *testing.T) {
		var capturedEnabled bool
		riskSvc := &mockRiskService{
			setAutoTradingFn: func(userID uint, enabled bool) (*models.RiskSettings, error) {
				capturedEnabled = enabled
				settings := models.DefaultRiskSettings(userID)
				settings.AutoTradingEnabled = enabled
				return settings, nil
			},
		}
		r := setupSignalRouter(t, riskSvc, telegram.NewMockNotifier())

		rec := doRequest(r, "POST", "/auto-trading", `{"enabled":true}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["auto_trading_enabled"] != true {
			t.Error("expected auto_trading_enabled=true")
		}
		if !capturedEnabled {
			t.Error("expected enabled=true passed to service")
		}
	})

	t.Run("disable is accepted", func(t *testing.T) {
		r := setupSignalRouter(t, &mockRiskService{}, telegram.NewMockNotifier())

		rec := doRequest(r, "POST", "/auto-trading", `{"enabled":false}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["auto_trading_enabled"] != false {
			t.Error("expected auto_trading_enabled=false")
		}
	})

	t.Run("returns 400 without the enabled flag", func(t *testing.T) {
		r := setupSignalRouter(t, &mockRiskService{}, telegram.NewMockNotifier())

		rec := doRequest(r, "POST", "/auto-trading", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("notifies when telegram is connected", func(t *testing.T) {
		notifier := telegram.NewMockNotifier()
		testutil.AssertNoError(t, notifier.Connect("bot-token", "123456789"))
		r := setupSignalRouter(t, &mockRiskService{}, notifier)

		before := len(notifier.Messages())
		rec := doRequest(r, "POST", "/auto-trading", `{"enabled":true}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if len(notifier.Messages()) != before+1 {
			t.Error("expected an auto-trading alert in the feed")
		}
	})
}
