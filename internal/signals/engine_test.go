package signals

import (
	"testing"

	"tradepilot/internal/broker"
	"tradepilot/internal/models"
	"tradepilot/internal/services"
	"tradepilot/internal/telegram"
	"tradepilot/internal/testutil"

	"gorm.io/gorm"
)

func setupEngine(t *testing.T) (*Engine, *gorm.DB, *telegram.MockNotifier) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	client := broker.NewPaperClient()
	testutil.AssertNoError(t, client.Connect("key", "secret"))

	notifier := telegram.NewMockNotifier()
	engine := NewEngine(client, services.NewSignalService(db), notifier)
	return engine, db, notifier
}

func TestSignalForSymbol(t *testing.T) {
	t.Run("positive_drift_is_buy", func(t *testing.T) {
		engine, _, _ := setupEngine(t)

		// RELIANCE closed 0.81% up on the demo bar.
		signal, err := engine.SignalForSymbol("RELIANCE")
		testutil.AssertNoError(t, err)

		if signal.SignalType != models.SignalTypeBuy {
			t.Errorf("expected BUY, got %s", signal.SignalType)
		}
		if signal.Confidence < 60 || signal.Confidence > 75 {
			t.Errorf("expected confidence in [60,75], got %v", signal.Confidence)
		}
		if signal.Price != 2452.30 {
			t.Errorf("expected price 2452.30, got %v", signal.Price)
		}
	})

	t.Run("heavy_volume_drop_is_stop_loss", func(t *testing.T) {
		engine, _, _ := setupEngine(t)

		// HDFCBANK closed 1.65% down on 8.9M volume.
		signal, err := engine.SignalForSymbol("HDFCBANK")
		testutil.AssertNoError(t, err)

		if signal.SignalType != models.SignalTypeStopLoss {
			t.Errorf("expected STOP_LOSS, got %s", signal.SignalType)
		}
		if signal.Confidence < 85 || signal.Confidence > 95 {
			t.Errorf("expected confidence in [85,95], got %v", signal.Confidence)
		}
	})

	t.Run("steep_drop_is_sell", func(t *testing.T) {
		engine, _, _ := setupEngine(t)

		// TATASTEEL closed 2.17% down.
		signal, err := engine.SignalForSymbol("TATASTEEL")
		testutil.AssertNoError(t, err)

		if signal.SignalType != models.SignalTypeSell {
			t.Errorf("expected SELL, got %s", signal.SignalType)
		}
		if signal.Confidence < 75 || signal.Confidence > 85 {
			t.Errorf("expected confidence in [75,85], got %v", signal.Confidence)
		}
	})

	t.Run("mild_drop_low_volume_is_sell", func(t *testing.T) {
		engine, _, _ := setupEngine(t)

		// INFY closed 0.65% down on 4.6M volume, under the stop-loss cutoff.
		signal, err := engine.SignalForSymbol("INFY")
		testutil.AssertNoError(t, err)

		if signal.SignalType != models.SignalTypeSell {
			t.Errorf("expected SELL, got %s", signal.SignalType)
		}
	})

	t.Run("persists_signal_with_metadata", func(t *testing.T) {
		engine, db, _ := setupEngine(t)

		signal, err := engine.SignalForSymbol("RELIANCE")
		testutil.AssertNoError(t, err)

		var stored models.TradingSignal
		if err := db.First(&stored, signal.ID).Error; err != nil {
			t.Fatalf("expected signal persisted: %v", err)
		}
		if stored.Metadata["company"] != "Reliance Industries Ltd." {
			t.Errorf("expected company in metadata, got %v", stored.Metadata["company"])
		}
		if _, ok := stored.Metadata["changePercent"]; !ok {
			t.Error("expected changePercent in metadata")
		}
	})

	t.Run("unknown_symbol", func(t *testing.T) {
		engine, _, _ := setupEngine(t)

		_, err := engine.SignalForSymbol("NOPE")
		testutil.AssertAppError(t, err, "UNKNOWN_SYMBOL")
	})

	t.Run("notifies_when_connected", func(t *testing.T) {
		engine, _, notifier := setupEngine(t)
		testutil.AssertNoError(t, notifier.Connect("bot-token", "123456789"))

		before := len(notifier.Messages())
		_, err := engine.SignalForSymbol("RELIANCE")
		testutil.AssertNoError(t, err)

		messages := notifier.Messages()
		if len(messages) != before+1 {
			t.Fatalf("expected one new message, got %d total", len(messages))
		}
		if messages[0].Type != models.NotificationTypeSignal {
			t.Errorf("expected a signal message, got %s", messages[0].Type)
		}
	})

	t.Run("skips_notification_when_disconnected", func(t *testing.T) {
		engine, _, notifier := setupEngine(t)

		before := len(notifier.Messages())
		_, err := engine.SignalForSymbol("RELIANCE")
		testutil.AssertNoError(t, err)

		if len(notifier.Messages()) != before {
			t.Error("expected no message while notifier disconnected")
		}
	})
}

func TestAllSignals(t *testing.T) {
	t.Run("covers_the_signal_board", func(t *testing.T) {
		engine, _, _ := setupEngine(t)

		signals, err := engine.AllSignals()
		testutil.AssertNoError(t, err)

		if len(signals) != signalBoardSize {
			t.Fatalf("expected %d signals, got %d", signalBoardSize, len(signals))
		}
		wantSymbols := []string{"RELIANCE", "HDFCBANK", "INFY", "TCS"}
		for i, symbol := range wantSymbols {
			if signals[i].Symbol != symbol {
				t.Errorf("expected signal %d for %s, got %s", i, symbol, signals[i].Symbol)
			}
		}
	})

	t.Run("skips_failing_symbols", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		// A disconnected broker fails every market-data read.
		engine := NewEngine(broker.NewPaperClient(), services.NewSignalService(db), telegram.NewMockNotifier())

		signals, err := engine.AllSignals()
		testutil.AssertNoError(t, err)
		if len(signals) != 0 {
			t.Errorf("expected no signals without market data, got %d", len(signals))
		}
	})
}

func TestTechnicalPatterns(t *testing.T) {
	engine, _, _ := setupEngine(t)

	patterns := engine.TechnicalPatterns()
	if len(patterns) != 5 {
		t.Fatalf("expected 5 patterns, got %d", len(patterns))
	}
	for _, pattern := range patterns {
		if pattern.Reliability < 0 || pattern.Reliability > 100 {
			t.Errorf("pattern %q: reliability %d out of range", pattern.Pattern, pattern.Reliability)
		}
	}
}

func TestMarketUpdate(t *testing.T) {
	engine, _, _ := setupEngine(t)

	update := engine.MarketUpdate()
	if update == "" {
		t.Error("expected a non-empty market update")
	}
}
