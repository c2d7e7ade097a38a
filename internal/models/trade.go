package models

import "time"

// TradeType is the direction of a trade.
type TradeType string

const (
	TradeTypeBuy  TradeType = "BUY"
	TradeTypeSell TradeType = "SELL"
)

// TradeStatus is the lifecycle state of a trade. OPEN is initial,
// CLOSED is terminal; there are no other transitions.
type TradeStatus string

const (
	TradeStatusOpen   TradeStatus = "OPEN"
	TradeStatusClosed TradeStatus = "CLOSED"
)

// Trade represents a single buy/sell position record.
// Exit fields and PnL stay null until the trade is closed. Once closed,
// PnL equals (exit-entry)*quantity for BUY and (entry-exit)*quantity for
// SELL, and the record is no longer mutated.
type Trade struct {
	Base
	UserID        uint        `gorm:"not null;index" json:"user_id"`
	Symbol        string      `gorm:"not null" json:"symbol"`
	Quantity      int         `gorm:"not null" json:"quantity"`
	Price         float64     `gorm:"not null" json:"price"`
	TradeType     TradeType   `gorm:"not null" json:"trade_type"`
	Status        TradeStatus `gorm:"not null" json:"status"`
	EntryTime     time.Time   `gorm:"not null" json:"entry_time"`
	ExitTime      *time.Time  `json:"exit_time"`
	ExitPrice     *float64    `json:"exit_price"`
	PnL           *float64    `json:"pnl"`
	IsAIGenerated bool        `gorm:"default:false" json:"is_ai_generated"`
}

// ComputePnL returns the realized profit/loss for the given exit price.
func (t *Trade) ComputePnL(exitPrice float64) float64 {
	if t.TradeType == TradeTypeBuy {
		return (exitPrice - t.Price) * float64(t.Quantity)
	}
	return (t.Price - exitPrice) * float64(t.Quantity)
}
