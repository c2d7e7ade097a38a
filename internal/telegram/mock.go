package telegram

import (
	"sync"
	"time"

	apperrors "tradepilot/internal/errors"
	"tradepilot/internal/models"
)

// seedMessages returns the demo notification feed shown before any real
// message has been sent.
func seedMessages() []Message {
	now := time.Now()
	return []Message{
		{
			ID:         "1",
			Type:       models.NotificationTypeSignal,
			Message:    "Buy Signal: INFY. AI detected strong buying opportunity for Infosys Ltd. Current price: ₹1,432.60, target: ₹1,485.00 (3.6%)",
			Timestamp:  now.Add(-5 * time.Minute),
			HasActions: true,
		},
		{
			ID:        "2",
			Type:      models.NotificationTypeAlert,
			Message:   "Stop Loss Triggered: TATASTEEL. Stop loss triggered for Tata Steel at ₹950.25. Position closed automatically. P&L: -₹2,340 (-2.1%)",
			Timestamp: now.Add(-30 * time.Minute),
		},
		{
			ID:        "3",
			Type:      models.NotificationTypeMarketUpdate,
			Message:   "Market Update: Nifty up 0.8% in morning trade led by banking stocks. IT sector under pressure due to weak global cues.",
			Timestamp: now.Add(-2 * time.Hour),
		},
		{
			ID:         "4",
			Type:       models.NotificationTypeSignal,
			Message:    "Sell Signal: NIFTY 18600 PE. AI recommends selling NIFTY 18600 PE options at current price ₹95.40 as market expected to move upward.",
			Timestamp:  now.Add(-3 * time.Hour),
			HasActions: true,
		},
	}
}

// MockNotifier keeps the message feed in memory and performs no delivery.
type MockNotifier struct {
	mu        sync.Mutex
	botToken  string
	chatID    string
	connected bool
	messages  []Message
}

// NewMockNotifier creates a disconnected mock with the seeded feed.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{messages: seedMessages()}
}

// Connect stores the token/chat pair and marks the notifier connected.
func (n *MockNotifier) Connect(botToken, chatID string) error {
	if botToken == "" || chatID == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "bot token and chat id are required")
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.botToken = botToken
	n.chatID = chatID
	n.connected = true
	return nil
}

// Disconnect clears the connection state.
func (n *MockNotifier) Disconnect() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.botToken = ""
	n.chatID = ""
	n.connected = false
}

// IsConnected reports the connection state.
func (n *MockNotifier) IsConnected() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.connected
}

// Send prepends a message to the feed. Signal messages get accept/ignore
// actions in the dashboard.
func (n *MockNotifier) Send(text string, kind models.NotificationType) (*Message, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.connected {
		return nil, apperrors.ErrTelegramNotConnected
	}

	msg := Message{
		ID:         newMessageID(),
		Type:       kind,
		Message:    text,
		Timestamp:  time.Now(),
		HasActions: kind == models.NotificationTypeSignal,
	}
	n.messages = append([]Message{msg}, n.messages...)
	return &msg, nil
}

// Messages returns a copy of the feed, newest first.
func (n *MockNotifier) Messages() []Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Message, len(n.messages))
	copy(out, n.messages)
	return out
}

// MessageByID looks up a feed entry.
func (n *MockNotifier) MessageByID(id string) (*Message, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := range n.messages {
		if n.messages[i].ID == id {
			msg := n.messages[i]
			return &msg, true
		}
	}
	return nil, false
}

// Delete removes a feed entry, reporting whether it existed.
func (n *MockNotifier) Delete(id string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := range n.messages {
		if n.messages[i].ID == id {
			n.messages = append(n.messages[:i], n.messages[i+1:]...)
			return true
		}
	}
	return false
}
