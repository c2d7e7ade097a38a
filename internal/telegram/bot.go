package telegram

import (
	"strconv"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	apperrors "tradepilot/internal/errors"
	"tradepilot/internal/logger"
	"tradepilot/internal/models"
)

// BotNotifier delivers messages through the Telegram Bot API and keeps the
// same in-memory feed the dashboard reads.
type BotNotifier struct {
	mu       sync.Mutex
	bot      *tgbotapi.BotAPI
	chatID   int64
	messages []Message
}

// NewBotNotifier creates a disconnected Bot API notifier.
func NewBotNotifier() *BotNotifier {
	return &BotNotifier{messages: seedMessages()}
}

// Connect verifies the bot token against the Bot API and stores the chat id.
func (n *BotNotifier) Connect(botToken, chatID string) error {
	if botToken == "" || chatID == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "bot token and chat id are required")
	}

	chat, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "chat id must be numeric")
	}

	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrTelegramNotConnected, err)
	}

	logger.Get().Infow("telegram bot connected", "username", bot.Self.UserName)

	n.mu.Lock()
	defer n.mu.Unlock()
	n.bot = bot
	n.chatID = chat
	return nil
}

// Disconnect drops the Bot API handle.
func (n *BotNotifier) Disconnect() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.bot = nil
	n.chatID = 0
}

// IsConnected reports whether a bot handle is held.
func (n *BotNotifier) IsConnected() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.bot != nil
}

// Send delivers the text to the configured chat and records it in the feed.
func (n *BotNotifier) Send(text string, kind models.NotificationType) (*Message, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.bot == nil {
		return nil, apperrors.ErrTelegramNotConnected
	}

	tgMsg := tgbotapi.NewMessage(n.chatID, text)
	tgMsg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := n.bot.Send(tgMsg); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
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
func (n *BotNotifier) Messages() []Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Message, len(n.messages))
	copy(out, n.messages)
	return out
}

// MessageByID looks up a feed entry.
func (n *BotNotifier) MessageByID(id string) (*Message, bool) {
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
func (n *BotNotifier) Delete(id string) bool {
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
