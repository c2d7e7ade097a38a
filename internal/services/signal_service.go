package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "tradepilot/internal/errors"
	"tradepilot/internal/models"
)

// signalService handles trading-signal business logic.
type signalService struct {
	db *gorm.DB
}

// NewSignalService creates a new SignalServicer.
func NewSignalService(db *gorm.DB) SignalServicer {
	return &signalService{db: db}
}

// CreateSignal stores a new signal. A nil metadata map is stored as an
// empty map so readers never see null.
func (s *signalService) CreateSignal(symbol string, signalType models.SignalType, confidence, price float64, timestamp time.Time, metadata models.Metadata) (*models.TradingSignal, error) {
	if symbol == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "symbol is required")
	}
	if metadata == nil {
		metadata = models.Metadata{}
	}

	signal := &models.TradingSignal{
		Symbol:     symbol,
		SignalType: signalType,
		Confidence: confidence,
		Price:      price,
		Timestamp:  timestamp,
		Metadata:   metadata,
	}

	if err := s.db.Create(signal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return signal, nil
}

// GetSignalByID retrieves a signal by ID
func (s *signalService) GetSignalByID(id uint) (*models.TradingSignal, error) {
	var signal models.TradingSignal
	if err := s.db.First(&signal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSignalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &signal, nil
}

// GetSignalsBySymbol lists all signals for a symbol in insertion order.
func (s *signalService) GetSignalsBySymbol(symbol string) ([]models.TradingSignal, error) {
	var signals []models.TradingSignal
	if err := s.db.Where("symbol = ?", symbol).Order("id ASC").Find(&signals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return signals, nil
}

// GetRecentSignals lists the most recently generated signals, newest first.
func (s *signalService) GetRecentSignals(limit int) ([]models.TradingSignal, error) {
	if limit <= 0 {
		limit = 20
	}

	var signals []models.TradingSignal
	if err := s.db.Order("id DESC").Limit(limit).Find(&signals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return signals, nil
}
