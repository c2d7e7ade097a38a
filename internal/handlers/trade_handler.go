package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "tradepilot/internal/errors"
	"tradepilot/internal/pagination"
	"tradepilot/internal/services"
)

// TradeHandler handles trade history requests.
type TradeHandler struct {
	tradeService services.TradeServicer
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(tradeService services.TradeServicer) *TradeHandler {
	return &TradeHandler{tradeService: tradeService}
}

// CloseTradeRequest represents the trade close payload.
type CloseTradeRequest struct {
	ExitPrice float64    `json:"exit_price" binding:"required,gt=0"`
	ExitTime  *time.Time `json:"exit_time"`
}

// GetUserTrades lists the user's trades
// @Summary     List trades
// @Tags        trades
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Trade] "Trades"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /trades [get]
func (h *TradeHandler) GetUserTrades(c *gin.Context) {
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

	result, err := h.tradeService.GetUserTrades(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTradeByID returns one of the user's trades
// @Summary     Get a trade
// @Tags        trades
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Trade ID"
// @Success     200 {object} models.Trade "Trade"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Trade not found"
// @Router      /trades/{id} [get]
func (h *TradeHandler) GetTradeByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tradeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	trade, err := h.tradeService.GetTradeByID(userID, tradeID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, trade)
}

// CloseTrade closes an open trade
// @Summary     Close a trade
// @Description Close an open trade at the given exit price, computing realized P&L
// @Tags        trades
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Trade ID"
// @Param       request body CloseTradeRequest true "Exit details"
// @Success     200 {object} models.Trade "Closed trade"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Trade not found"
// @Failure     409 {object} ErrorResponse "Trade already closed"
// @Router      /trades/{id}/close [post]
func (h *TradeHandler) CloseTrade(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tradeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CloseTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	// Ownership check before mutating anything.
	if _, err := h.tradeService.GetTradeByID(userID, tradeID); err != nil {
		respondWithError(c, err)
		return
	}

	exitTime := time.Now()
	if req.ExitTime != nil {
		exitTime = *req.ExitTime
	}

	trade, err := h.tradeService.CloseTrade(tradeID, req.ExitPrice, exitTime)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, trade)
}
