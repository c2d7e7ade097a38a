package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// SignalType is the kind of recommendation a signal carries.
type SignalType string

const (
	SignalTypeBuy      SignalType = "BUY"
	SignalTypeSell     SignalType = "SELL"
	SignalTypeStopLoss SignalType = "STOP_LOSS"
	SignalTypeHold     SignalType = "HOLD"
)

// Metadata is an open-ended key/value annotation map stored as JSON.
type Metadata map[string]any

// Value implements driver.Valuer.
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		m = Metadata{}
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *Metadata) Scan(value any) error {
	if value == nil {
		*m = Metadata{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported metadata column type %T", value)
	}
	return json.Unmarshal(data, m)
}

// TradingSignal is an automatically generated recommendation record.
// Signals are append-only and immutable once created. Confidence is
// expected to lie in [0,100] but is not enforced here.
type TradingSignal struct {
	Base
	Symbol     string     `gorm:"not null;index" json:"symbol"`
	SignalType SignalType `gorm:"not null" json:"signal_type"`
	Confidence float64    `gorm:"not null" json:"confidence"`
	Price      float64    `gorm:"not null" json:"price"`
	Timestamp  time.Time  `gorm:"not null" json:"timestamp"`
	Metadata   Metadata   `gorm:"type:text" json:"metadata"`
}
