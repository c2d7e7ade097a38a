// Package telegram defines the messaging capability surface used for
// signal and order notifications. MockNotifier serves the dashboard feed
// with canned data; BotNotifier delivers through the Telegram Bot API.
package telegram

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"tradepilot/internal/models"
)

// Message is one entry in the notification feed.
type Message struct {
	ID         string                  `json:"id"`
	Type       models.NotificationType `json:"type"`
	Message    string                  `json:"message"`
	Timestamp  time.Time               `json:"timestamp"`
	HasActions bool                    `json:"has_actions"`
}

// Notifier is the operation set the rest of the system needs from the
// messaging collaborator.
type Notifier interface {
	Connect(botToken, chatID string) error
	Disconnect()
	IsConnected() bool
	Send(text string, kind models.NotificationType) (*Message, error)
	Messages() []Message
	MessageByID(id string) (*Message, bool)
	Delete(id string) bool
}

func newMessageID() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "msg-0"
	}
	return hex.EncodeToString(buf)
}
