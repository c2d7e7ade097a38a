package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tradepilot/internal/broker"
	apperrors "tradepilot/internal/errors"
	"tradepilot/internal/logger"
	"tradepilot/internal/models"
	"tradepilot/internal/services"
	"tradepilot/internal/telegram"
)

// BrokerHandler handles broker connection, market data, and order requests.
type BrokerHandler struct {
	broker              broker.Client
	userService         services.UserServicer
	tradeService        services.TradeServicer
	notificationService services.NotificationServicer
	notifier            telegram.Notifier
}

// NewBrokerHandler creates a new BrokerHandler.
func NewBrokerHandler(brokerClient broker.Client, userService services.UserServicer, tradeService services.TradeServicer, notificationService services.NotificationServicer, notifier telegram.Notifier) *BrokerHandler {
	return &BrokerHandler{
		broker:              brokerClient,
		userService:         userService,
		tradeService:        tradeService,
		notificationService: notificationService,
		notifier:            notifier,
	}
}

// ConnectRequest represents the broker connect payload.
type ConnectRequest struct {
	APIKey    string `json:"api_key" binding:"required"`
	APISecret string `json:"api_secret" binding:"required"`
}

// PlaceOrderRequest represents the order placement payload.
type PlaceOrderRequest struct {
	Symbol    string           `json:"symbol" binding:"required"`
	Quantity  int              `json:"quantity" binding:"required,gt=0"`
	Price     *float64         `json:"price" binding:"omitempty,gt=0"`
	Type      models.TradeType `json:"type" binding:"required,trade_type"`
	OrderType broker.OrderType `json:"order_type" binding:"required,order_type"`
}

// Connect handles broker connection
// @Summary     Connect to the broker
// @Description Connect with an API key/secret pair and store it on the user
// @Tags        broker
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ConnectRequest true "Broker credentials"
// @Success     200 {object} map[string]any "Connection state and account info"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /broker/connect [post]
func (h *BrokerHandler) Connect(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.broker.Connect(req.APIKey, req.APISecret); err != nil {
		respondWithError(c, err)
		return
	}

	account, err := h.broker.AccountInfo()
	if err != nil {
		respondWithError(c, err)
		return
	}

	if _, err := h.userService.UpdateBrokerCredentials(userID, &req.APIKey, &req.APISecret); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_connected": true, "account": account})
}

// Disconnect handles broker disconnection
// @Summary     Disconnect from the broker
// @Tags        broker
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]string "Disconnected"
// @Router      /broker/disconnect [post]
func (h *BrokerHandler) Disconnect(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.broker.Disconnect()

	if _, err := h.userService.UpdateBrokerCredentials(userID, nil, nil); err != nil {
		logger.Get().Warnw("failed to clear broker credentials", "user_id", userID, "error", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Disconnected from broker"})
}

// Status reports the broker connection state
// @Summary     Broker connection status
// @Tags        broker
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]any "Connection state and account info when connected"
// @Router      /broker/status [get]
func (h *BrokerHandler) Status(c *gin.Context) {
	isConnected := h.broker.IsConnected()

	var account *broker.AccountInfo
	if isConnected {
		var err error
		account, err = h.broker.AccountInfo()
		if err != nil {
			respondWithError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"is_connected": isConnected, "account": account})
}

// MarketStatus reports whether the market is open
// @Summary     Market status
// @Tags        broker
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} broker.MarketStatus "Market status"
// @Router      /broker/market-status [get]
func (h *BrokerHandler) MarketStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.broker.MarketStatus())
}

// MarketData returns the latest bar for a symbol
// @Summary     Market data for a symbol
// @Tags        broker
// @Produce     json
// @Security    BearerAuth
// @Param       symbol query string true "Instrument symbol"
// @Success     200 {object} broker.MarketData "OHLCV bar"
// @Failure     400 {object} ErrorResponse "Missing symbol"
// @Failure     404 {object} ErrorResponse "Unknown symbol"
// @Router      /broker/market-data [get]
func (h *BrokerHandler) MarketData(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "symbol is required"))
		return
	}

	data, err := h.broker.MarketData(symbol)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, data)
}

// PlaceOrder places a broker order and records the resulting OPEN trade
// @Summary     Place an order
// @Description Place an order with the broker and record the trade
// @Tags        broker
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body PlaceOrderRequest true "Order details"
// @Success     200 {object} map[string]any "Broker order and stored trade"
// @Failure     400 {object} ErrorResponse "Invalid input or not connected"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /broker/orders [post]
func (h *BrokerHandler) PlaceOrder(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if !h.broker.IsConnected() {
		respondWithError(c, apperrors.ErrBrokerNotConnected)
		return
	}

	order, err := h.broker.PlaceOrder(req.Symbol, req.Quantity, req.Price, string(req.Type), req.OrderType)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entryPrice := order.Price
	if req.Price != nil {
		entryPrice = *req.Price
	}

	trade, err := h.tradeService.CreateTrade(userID, req.Symbol, req.Quantity, entryPrice, req.Type, false)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.notifyOrder(userID, req, trade)

	c.JSON(http.StatusOK, gin.H{"order": order, "trade": trade})
}

// notifyOrder sends the order alert and records the dispatch. Failures are
// logged but never fail the order itself.
func (h *BrokerHandler) notifyOrder(userID uint, req PlaceOrderRequest, trade *models.Trade) {
	priceText := "market price"
	if req.Price != nil {
		priceText = fmt.Sprintf("₹%.2f", *req.Price)
	}
	message := fmt.Sprintf("%s order placed for %d %s at %s.", req.Type, req.Quantity, req.Symbol, priceText)

	status := models.NotificationStatusPending
	if h.notifier.IsConnected() {
		if _, err := h.notifier.Send(message, models.NotificationTypeAlert); err != nil {
			logger.Get().Warnw("order notification failed", "trade_id", trade.ID, "error", err)
			status = models.NotificationStatusFailed
		} else {
			status = models.NotificationStatusSent
		}
	}

	if _, err := h.notificationService.CreateNotification(userID, message, time.Now(), models.NotificationTypeAlert, status); err != nil {
		logger.Get().Warnw("failed to record order notification", "trade_id", trade.ID, "error", err)
	}
}
