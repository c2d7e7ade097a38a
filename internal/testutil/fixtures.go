package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"tradepilot/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	username := fmt.Sprintf("trader%d", nextID())
	return CreateTestUserWithUsername(t, db, username)
}

// CreateTestUserWithUsername creates a user with the given username.
func CreateTestUserWithUsername(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: username,
		Password: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestTrade creates an open BUY trade for the user.
func CreateTestTrade(t *testing.T, db *gorm.DB, userID uint) *models.Trade {
	t.Helper()
	return CreateTestTradeWith(t, db, userID, models.TradeTypeBuy, "RELIANCE", 10, 2450.00)
}

// CreateTestTradeWith creates an open trade with the given parameters.
func CreateTestTradeWith(t *testing.T, db *gorm.DB, userID uint, tradeType models.TradeType, symbol string, quantity int, price float64) *models.Trade {
	t.Helper()

	trade := &models.Trade{
		UserID:    userID,
		Symbol:    symbol,
		Quantity:  quantity,
		Price:     price,
		TradeType: tradeType,
		Status:    models.TradeStatusOpen,
		EntryTime: time.Now(),
	}
	if err := db.Create(trade).Error; err != nil {
		t.Fatalf("failed to create test trade: %v", err)
	}
	return trade
}

// CreateTestSignal creates a BUY signal for the given symbol.
func CreateTestSignal(t *testing.T, db *gorm.DB, symbol string) *models.TradingSignal {
	t.Helper()

	signal := &models.TradingSignal{
		Symbol:     symbol,
		SignalType: models.SignalTypeBuy,
		Confidence: 72.5,
		Price:      1000,
		Timestamp:  time.Now(),
		Metadata:   models.Metadata{},
	}
	if err := db.Create(signal).Error; err != nil {
		t.Fatalf("failed to create test signal: %v", err)
	}
	return signal
}

// CreateTestNotification creates a SENT alert notification for the user.
func CreateTestNotification(t *testing.T, db *gorm.DB, userID uint) *models.Notification {
	t.Helper()

	notification := &models.Notification{
		UserID:    userID,
		Message:   fmt.Sprintf("Test notification %d", nextID()),
		Timestamp: time.Now(),
		Type:      models.NotificationTypeAlert,
		Status:    models.NotificationStatusSent,
	}
	if err := db.Create(notification).Error; err != nil {
		t.Fatalf("failed to create test notification: %v", err)
	}
	return notification
}
