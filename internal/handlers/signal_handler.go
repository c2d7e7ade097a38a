package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "tradepilot/internal/errors"
	"tradepilot/internal/logger"
	"tradepilot/internal/models"
	"tradepilot/internal/services"
	"tradepilot/internal/signals"
	"tradepilot/internal/telegram"
)

// SignalHandler handles signal generation and auto-trading requests.
type SignalHandler struct {
	engine      *signals.Engine
	riskService services.RiskServicer
	notifier    telegram.Notifier
}

// NewSignalHandler creates a new SignalHandler.
func NewSignalHandler(engine *signals.Engine, riskService services.RiskServicer, notifier telegram.Notifier) *SignalHandler {
	return &SignalHandler{engine: engine, riskService: riskService, notifier: notifier}
}

// AutoTradingRequest represents the auto-trading toggle payload.
type AutoTradingRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// GetSignals generates signals for one symbol or the signal board
// @Summary     Get trading signals
// @Description Generate a signal for the given symbol, or for the whole signal board when no symbol is given
// @Tags        signals
// @Produce     json
// @Security    BearerAuth
// @Param       symbol query string false "Instrument symbol"
// @Success     200 {array} models.TradingSignal "Generated signals"
// @Failure     404 {object} ErrorResponse "Unknown symbol"
// @Router      /signals [get]
func (h *SignalHandler) GetSignals(c *gin.Context) {
	if symbol := c.Query("symbol"); symbol != "" {
		signal, err := h.engine.SignalForSymbol(symbol)
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, signal)
		return
	}

	generated, err := h.engine.AllSignals()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, generated)
}

// TechnicalPatterns returns the pattern observations for the dashboard
// @Summary     Technical patterns
// @Tags        signals
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} signals.Pattern "Patterns"
// @Router      /signals/patterns [get]
func (h *SignalHandler) TechnicalPatterns(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.TechnicalPatterns())
}

// MarketUpdate returns a market headline
// @Summary     Market update headline
// @Tags        signals
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]string "Headline"
// @Router      /signals/market-update [get]
func (h *SignalHandler) MarketUpdate(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": h.engine.MarketUpdate()})
}

// SetAutoTrading toggles automated trading for the user
// @Summary     Toggle auto-trading
// @Tags        signals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AutoTradingRequest true "Desired state"
// @Success     200 {object} map[string]any "New state"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /auto-trading [post]
func (h *SignalHandler) SetAutoTrading(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AutoTradingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	settings, err := h.riskService.SetAutoTrading(userID, *req.Enabled)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if h.notifier.IsConnected() {
		message := "Auto-trading has been disabled. AI will no longer execute trades automatically."
		if settings.AutoTradingEnabled {
			message = "Auto-trading has been enabled. AI will now execute trades based on your risk parameters."
		}
		if _, err := h.notifier.Send(message, models.NotificationTypeAlert); err != nil {
			logger.Get().Warnw("auto-trading notification failed", "user_id", userID, "error", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "auto_trading_enabled": settings.AutoTradingEnabled})
}
