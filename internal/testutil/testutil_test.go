package testutil_test

import (
	"testing"

	"tradepilot/internal/errors"
	"tradepilot/internal/models"
	"tradepilot/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"users", "trades", "trading_signals", "risk_settings", "notifications"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == 0 {
		t.Fatal("user should have a non-zero ID")
	}

	trade := testutil.CreateTestTrade(t, db, user.ID)
	if trade.Status != models.TradeStatusOpen {
		t.Errorf("expected OPEN trade, got %s", trade.Status)
	}

	sell := testutil.CreateTestTradeWith(t, db, user.ID, models.TradeTypeSell, "TCS", 4, 3318.40)
	if sell.TradeType != models.TradeTypeSell {
		t.Errorf("expected SELL trade, got %s", sell.TradeType)
	}

	signal := testutil.CreateTestSignal(t, db, "RELIANCE")
	if signal.SignalType != models.SignalTypeBuy {
		t.Errorf("expected BUY signal, got %s", signal.SignalType)
	}

	notification := testutil.CreateTestNotification(t, db, user.ID)
	if notification.Status != models.NotificationStatusSent {
		t.Errorf("expected SENT notification, got %s", notification.Status)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrTradeNotFound, "custom message")
	testutil.AssertAppError(t, err, "TRADE_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
