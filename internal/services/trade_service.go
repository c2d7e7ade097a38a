package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "tradepilot/internal/errors"
	"tradepilot/internal/models"
	"tradepilot/internal/pagination"
)

// tradeService handles trade lifecycle business logic.
type tradeService struct {
	db *gorm.DB
}

// NewTradeService creates a new TradeServicer.
func NewTradeService(db *gorm.DB) TradeServicer {
	return &tradeService{db: db}
}

// CreateTrade records a new position. Trades always start OPEN with no
// exit price, exit time, or P&L, regardless of what the caller supplies.
func (s *tradeService) CreateTrade(userID uint, symbol string, quantity int, price float64, tradeType models.TradeType, isAIGenerated bool) (*models.Trade, error) {
	if symbol == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "symbol is required")
	}
	if quantity <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "quantity must be positive")
	}

	trade := &models.Trade{
		UserID:        userID,
		Symbol:        symbol,
		Quantity:      quantity,
		Price:         price,
		TradeType:     tradeType,
		Status:        models.TradeStatusOpen,
		EntryTime:     time.Now(),
		IsAIGenerated: isAIGenerated,
	}

	if err := s.db.Create(trade).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return trade, nil
}

// GetTradeByID retrieves a trade, rejecting access to other users' trades.
func (s *tradeService) GetTradeByID(userID, tradeID uint) (*models.Trade, error) {
	var trade models.Trade
	if err := s.db.First(&trade, tradeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTradeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if trade.UserID != userID {
		return nil, apperrors.ErrForbidden
	}

	return &trade, nil
}

// GetUserTrades lists the user's trades in insertion order.
func (s *tradeService) GetUserTrades(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Trade], error) {
	page.Defaults()

	var total int64
	if err := s.db.Model(&models.Trade{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var trades []models.Trade
	if err := s.db.Where("user_id = ?", userID).
		Order("id ASC").
		Scopes(pagination.Paginate(page)).
		Find(&trades).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(trades, page.Page, page.PageSize, total)
	return &resp, nil
}

// CloseTrade transitions an OPEN trade to CLOSED, setting the exit price,
// exit time, and realized P&L. Closing is terminal: a repeat call fails
// with TRADE_ALREADY_CLOSED and leaves the record untouched.
func (s *tradeService) CloseTrade(tradeID uint, exitPrice float64, exitTime time.Time) (*models.Trade, error) {
	var trade models.Trade
	if err := s.db.First(&trade, tradeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTradeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if trade.Status == models.TradeStatusClosed {
		return nil, apperrors.ErrTradeAlreadyClosed
	}

	pnl := trade.ComputePnL(exitPrice)
	trade.Status = models.TradeStatusClosed
	trade.ExitPrice = &exitPrice
	trade.ExitTime = &exitTime
	trade.PnL = &pnl

	if err := s.db.Save(&trade).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &trade, nil
}
