package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "tradepilot/internal/errors"
	"tradepilot/internal/models"
	"tradepilot/internal/services"
)

// RiskHandler handles risk-settings requests.
type RiskHandler struct {
	riskService services.RiskServicer
}

// NewRiskHandler creates a new RiskHandler.
func NewRiskHandler(riskService services.RiskServicer) *RiskHandler {
	return &RiskHandler{riskService: riskService}
}

// UpdateRiskSettingsRequest represents the risk-settings update payload.
// Absent fields keep their current value.
type UpdateRiskSettingsRequest struct {
	MaxCapitalPerTrade    *float64               `json:"max_capital_per_trade" binding:"omitempty,gt=0,lte=100"`
	StopLossPercentage    *float64               `json:"stop_loss_percentage" binding:"omitempty,gt=0,lte=100"`
	TakeProfitPercentage  *float64               `json:"take_profit_percentage" binding:"omitempty,gt=0,lte=100"`
	AIConfidenceThreshold *float64               `json:"ai_confidence_threshold" binding:"omitempty,gte=0,lte=100"`
	DefaultLotSize        *int                   `json:"default_lot_size" binding:"omitempty,gt=0"`
	InstrumentTypes       *models.InstrumentType `json:"instrument_types" binding:"omitempty,instrument_type"`
	AutoTradingEnabled    *bool                  `json:"auto_trading_enabled"`
}

// GetRiskSettings returns the user's risk settings
// @Summary     Get risk settings
// @Description Get the user's risk settings, creating defaults on first access
// @Tags        risk
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.RiskSettings "Risk settings"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /risk-settings [get]
func (h *RiskHandler) GetRiskSettings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	settings, err := h.riskService.GetOrCreateRiskSettings(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateRiskSettings merges the supplied fields into the user's settings
// @Summary     Update risk settings
// @Tags        risk
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateRiskSettingsRequest true "Fields to update"
// @Success     200 {object} models.RiskSettings "Updated settings"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /risk-settings [put]
func (h *RiskHandler) UpdateRiskSettings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateRiskSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	settings, err := h.riskService.UpdateRiskSettings(userID, services.RiskSettingsUpdate{
		MaxCapitalPerTrade:    req.MaxCapitalPerTrade,
		StopLossPercentage:    req.StopLossPercentage,
		TakeProfitPercentage:  req.TakeProfitPercentage,
		AIConfidenceThreshold: req.AIConfidenceThreshold,
		DefaultLotSize:        req.DefaultLotSize,
		InstrumentTypes:       req.InstrumentTypes,
		AutoTradingEnabled:    req.AutoTradingEnabled,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}
