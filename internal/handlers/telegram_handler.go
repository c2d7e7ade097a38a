package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "tradepilot/internal/errors"
	"tradepilot/internal/logger"
	"tradepilot/internal/models"
	"tradepilot/internal/pagination"
	"tradepilot/internal/services"
	"tradepilot/internal/telegram"
)

// TelegramHandler handles Telegram connection and notification requests.
type TelegramHandler struct {
	notifier            telegram.Notifier
	userService         services.UserServicer
	notificationService services.NotificationServicer
}

// NewTelegramHandler creates a new TelegramHandler.
func NewTelegramHandler(notifier telegram.Notifier, userService services.UserServicer, notificationService services.NotificationServicer) *TelegramHandler {
	return &TelegramHandler{
		notifier:            notifier,
		userService:         userService,
		notificationService: notificationService,
	}
}

// TelegramConnectRequest represents the Telegram connect payload.
type TelegramConnectRequest struct {
	BotToken string `json:"bot_token" binding:"required"`
	ChatID   string `json:"chat_id" binding:"required"`
}

// SendMessageRequest represents the send-message payload.
type SendMessageRequest struct {
	Message string                  `json:"message" binding:"required"`
	Type    models.NotificationType `json:"type" binding:"required,notification_type"`
}

// SignalActionRequest identifies the feed message a signal action targets.
type SignalActionRequest struct {
	MessageID string `json:"message_id" binding:"required"`
}

// Connect handles Telegram connection
// @Summary     Connect the Telegram bot
// @Tags        telegram
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body TelegramConnectRequest true "Bot token and chat id"
// @Success     200 {object} map[string]bool "Connection state"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /telegram/connect [post]
func (h *TelegramHandler) Connect(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TelegramConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.notifier.Connect(req.BotToken, req.ChatID); err != nil {
		respondWithError(c, err)
		return
	}

	if _, err := h.userService.UpdateTelegramChat(userID, &req.ChatID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_connected": true})
}

// Disconnect handles Telegram disconnection
// @Summary     Disconnect the Telegram bot
// @Tags        telegram
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]string "Disconnected"
// @Router      /telegram/disconnect [post]
func (h *TelegramHandler) Disconnect(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.notifier.Disconnect()

	if _, err := h.userService.UpdateTelegramChat(userID, nil); err != nil {
		logger.Get().Warnw("failed to clear telegram chat id", "user_id", userID, "error", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Disconnected from Telegram"})
}

// Status reports the Telegram connection state
// @Summary     Telegram connection status
// @Tags        telegram
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]bool "Connection state"
// @Router      /telegram/status [get]
func (h *TelegramHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"is_connected": h.notifier.IsConnected()})
}

// Messages returns the notification feed
// @Summary     Telegram message feed
// @Tags        telegram
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} telegram.Message "Messages, newest first"
// @Router      /telegram/messages [get]
func (h *TelegramHandler) Messages(c *gin.Context) {
	c.JSON(http.StatusOK, h.notifier.Messages())
}

// Send dispatches a message and records the notification
// @Summary     Send a Telegram message
// @Tags        telegram
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SendMessageRequest true "Message and type"
// @Success     200 {object} telegram.Message "Sent message"
// @Failure     400 {object} ErrorResponse "Invalid input or not connected"
// @Router      /telegram/send [post]
func (h *TelegramHandler) Send(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if !h.notifier.IsConnected() {
		respondWithError(c, apperrors.ErrTelegramNotConnected)
		return
	}

	sent, err := h.notifier.Send(req.Message, req.Type)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if _, err := h.notificationService.CreateNotification(userID, req.Message, time.Now(), req.Type, models.NotificationStatusSent); err != nil {
		logger.Get().Warnw("failed to record notification", "user_id", userID, "error", err)
	}

	c.JSON(http.StatusOK, sent)
}

// Notifications lists the user's stored notifications
// @Summary     List notifications
// @Tags        telegram
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Notification] "Notifications"
// @Router      /notifications [get]
func (h *TelegramHandler) Notifications(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.notificationService.GetUserNotifications(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// AcceptSignal confirms a signal message from the feed
// @Summary     Accept a signal
// @Tags        telegram
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SignalActionRequest true "Feed message id"
// @Success     200 {object} map[string]any "Confirmation message"
// @Failure     404 {object} ErrorResponse "Message not found"
// @Router      /telegram/signals/accept [post]
func (h *TelegramHandler) AcceptSignal(c *gin.Context) {
	h.signalAction(c, "Signal accepted: %s. Order will be executed shortly.")
}

// IgnoreSignal dismisses a signal message from the feed
// @Summary     Ignore a signal
// @Tags        telegram
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SignalActionRequest true "Feed message id"
// @Success     200 {object} map[string]any "Confirmation message"
// @Failure     404 {object} ErrorResponse "Message not found"
// @Router      /telegram/signals/ignore [post]
func (h *TelegramHandler) IgnoreSignal(c *gin.Context) {
	h.signalAction(c, "Signal ignored: %s.")
}

func (h *TelegramHandler) signalAction(c *gin.Context, format string) {
	var req SignalActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	msg, ok := h.notifier.MessageByID(req.MessageID)
	if !ok {
		respondWithError(c, apperrors.ErrMessageNotFound)
		return
	}

	confirmation, err := h.notifier.Send(fmt.Sprintf(format, msg.Message), models.NotificationTypeAlert)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "confirmation": confirmation})
}
