package models

// InstrumentType selects which instrument categories automated trading
// may touch.
type InstrumentType string

const (
	InstrumentStocksAndOptions InstrumentType = "Stocks & Options"
	InstrumentStocksOnly       InstrumentType = "Stocks Only"
	InstrumentOptionsOnly      InstrumentType = "Options Only"
	InstrumentFuturesOnly      InstrumentType = "Futures Only"
)

// RiskSettings is the per-user configuration bounding automated trading.
// At most one record exists per user.
type RiskSettings struct {
	Base
	UserID                uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	MaxCapitalPerTrade    float64        `gorm:"not null" json:"max_capital_per_trade"`
	StopLossPercentage    float64        `gorm:"not null" json:"stop_loss_percentage"`
	TakeProfitPercentage  float64        `gorm:"not null" json:"take_profit_percentage"`
	AIConfidenceThreshold float64        `gorm:"not null" json:"ai_confidence_threshold"`
	DefaultLotSize        int            `gorm:"not null" json:"default_lot_size"`
	InstrumentTypes       InstrumentType `gorm:"not null" json:"instrument_types"`
	AutoTradingEnabled    bool           `gorm:"default:false" json:"auto_trading_enabled"`
}

// DefaultRiskSettings returns the settings a fresh user starts with.
func DefaultRiskSettings(userID uint) *RiskSettings {
	return &RiskSettings{
		UserID:                userID,
		MaxCapitalPerTrade:    5,
		StopLossPercentage:    2,
		TakeProfitPercentage:  5,
		AIConfidenceThreshold: 75,
		DefaultLotSize:        1,
		InstrumentTypes:       InstrumentStocksAndOptions,
		AutoTradingEnabled:    false,
	}
}
