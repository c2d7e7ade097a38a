// Package broker defines the brokerage capability surface used by the
// dashboard and ships a paper-trading implementation backed by static
// market data. A real integration would implement the same Client
// interface against the broker's API.
package broker

import "time"

// MarketData is a single OHLCV bar for a symbol.
type MarketData struct {
	Symbol      string    `json:"symbol"`
	Open        float64   `json:"open"`
	High        float64   `json:"high"`
	Low         float64   `json:"low"`
	Close       float64   `json:"close"`
	Volume      int64     `json:"volume"`
	LastUpdated time.Time `json:"last_updated"`
}

// Quote is a derived view of the latest bar.
type Quote struct {
	Symbol        string  `json:"symbol"`
	LastPrice     float64 `json:"last_price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Open          float64 `json:"open"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Volume        int64   `json:"volume"`
}

// MarketStatus reports whether the exchange is open.
type MarketStatus struct {
	IsOpen          bool       `json:"is_open"`
	NextOpeningTime *time.Time `json:"next_opening_time,omitempty"`
	NextClosingTime *time.Time `json:"next_closing_time,omitempty"`
}

// AccountInfo carries the margin figures shown on the dashboard.
type AccountInfo struct {
	AvailableMargin float64 `json:"available_margin"`
	UsedMargin      float64 `json:"used_margin"`
	Username        string  `json:"username"`
}

// OrderType is the broker order variant.
type OrderType string

const (
	OrderTypeMarket      OrderType = "MARKET"
	OrderTypeLimit       OrderType = "LIMIT"
	OrderTypeStopLoss    OrderType = "SL"
	OrderTypeStopLossMkt OrderType = "SL-M"
)

// Order is the broker's acknowledgement of a placed order.
type Order struct {
	OrderID   string    `json:"order_id"`
	Symbol    string    `json:"symbol"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	Type      string    `json:"type"`
	OrderType OrderType `json:"order_type"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Client is the operation set the rest of the system needs from a broker:
// connect, disconnect, connection state, market reads, and order placement.
type Client interface {
	Connect(apiKey, apiSecret string) error
	Disconnect()
	IsConnected() bool
	MarketData(symbol string) (*MarketData, error)
	Quote(symbol string) (*Quote, error)
	MarketStatus() MarketStatus
	AccountInfo() (*AccountInfo, error)
	PlaceOrder(symbol string, quantity int, price *float64, tradeType string, orderType OrderType) (*Order, error)
}
