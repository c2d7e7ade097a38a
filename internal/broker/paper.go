package broker

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	apperrors "tradepilot/internal/errors"
)

// marketBars is the static demo data set served by the paper client.
var marketBars = map[string]MarketData{
	"NIFTY 50":  {Symbol: "NIFTY 50", Open: 18342.00, High: 18623.85, Low: 18315.30, Close: 18542.25, Volume: 267500000},
	"BANKNIFTY": {Symbol: "BANKNIFTY", Open: 43810.00, High: 44102.55, Low: 43711.20, Close: 44021.70, Volume: 183200000},
	"RELIANCE":  {Symbol: "RELIANCE", Open: 2432.50, High: 2460.10, Low: 2430.20, Close: 2452.30, Volume: 5670000},
	"HDFCBANK":  {Symbol: "HDFCBANK", Open: 1650.75, High: 1662.40, Low: 1620.10, Close: 1623.45, Volume: 8920000},
	"INFY":      {Symbol: "INFY", Open: 1442.00, High: 1454.60, Low: 1430.50, Close: 1432.60, Volume: 4560000},
	"TCS":       {Symbol: "TCS", Open: 3318.40, High: 3356.90, Low: 3301.15, Close: 3349.80, Volume: 2140000},
	"TATASTEEL": {Symbol: "TATASTEEL", Open: 972.60, High: 975.10, Low: 948.30, Close: 951.45, Volume: 11240000},
	"SBIN":      {Symbol: "SBIN", Open: 574.20, High: 581.75, Low: 572.90, Close: 579.60, Volume: 9830000},
}

// paperAccount is the fixed margin snapshot shown while paper trading.
var paperAccount = AccountInfo{
	AvailableMargin: 125430,
	UsedMargin:      47625,
	Username:        "John Smith",
}

// PaperClient is an in-process Client implementation with static market
// data. Connection state is per instance and guarded by a mutex since gin
// handlers run on multiple goroutines.
type PaperClient struct {
	mu         sync.Mutex
	apiKey     string
	apiSecret  string
	connected  bool
	marketOpen bool
}

// NewPaperClient creates a disconnected paper client with the market open.
func NewPaperClient() *PaperClient {
	return &PaperClient{marketOpen: true}
}

// Connect stores the credential pair and marks the client connected.
// The paper client accepts any non-empty pair.
func (c *PaperClient) Connect(apiKey, apiSecret string) error {
	if apiKey == "" || apiSecret == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "api key and secret are required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiKey = apiKey
	c.apiSecret = apiSecret
	c.connected = true
	return nil
}

// Disconnect clears the credentials and connection state.
func (c *PaperClient) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiKey = ""
	c.apiSecret = ""
	c.connected = false
}

// IsConnected reports the connection state.
func (c *PaperClient) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// MarketData returns the bar for a symbol.
func (c *PaperClient) MarketData(symbol string) (*MarketData, error) {
	if !c.IsConnected() {
		return nil, apperrors.ErrBrokerNotConnected
	}

	bar, ok := marketBars[symbol]
	if !ok {
		return nil, apperrors.ErrUnknownSymbol
	}
	bar.LastUpdated = time.Now()
	return &bar, nil
}

// Quote derives the quote view from the symbol's bar.
func (c *PaperClient) Quote(symbol string) (*Quote, error) {
	bar, err := c.MarketData(symbol)
	if err != nil {
		return nil, err
	}

	change := bar.Close - bar.Open
	return &Quote{
		Symbol:        bar.Symbol,
		LastPrice:     bar.Close,
		Change:        change,
		ChangePercent: (change / bar.Open) * 100,
		Open:          bar.Open,
		High:          bar.High,
		Low:           bar.Low,
		Volume:        bar.Volume,
	}, nil
}

// MarketStatus reports the demo exchange state with the next session boundary.
func (c *PaperClient) MarketStatus() MarketStatus {
	c.mu.Lock()
	open := c.marketOpen
	c.mu.Unlock()

	now := time.Now()
	if open {
		closing := time.Date(now.Year(), now.Month(), now.Day(), 15, 30, 0, 0, now.Location())
		return MarketStatus{IsOpen: true, NextClosingTime: &closing}
	}
	opening := time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, now.Location())
	return MarketStatus{IsOpen: false, NextOpeningTime: &opening}
}

// ToggleMarketStatus flips the demo exchange state and returns the new one.
func (c *PaperClient) ToggleMarketStatus() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.marketOpen = !c.marketOpen
	return c.marketOpen
}

// AccountInfo returns the paper account's margin snapshot.
func (c *PaperClient) AccountInfo() (*AccountInfo, error) {
	if !c.IsConnected() {
		return nil, apperrors.ErrBrokerNotConnected
	}
	account := paperAccount
	return &account, nil
}

// PlaceOrder acknowledges an order at the given price, or at the symbol's
// last close for market orders.
func (c *PaperClient) PlaceOrder(symbol string, quantity int, price *float64, tradeType string, orderType OrderType) (*Order, error) {
	if !c.IsConnected() {
		return nil, apperrors.ErrBrokerNotConnected
	}

	fillPrice := 0.0
	if price != nil {
		fillPrice = *price
	} else if bar, ok := marketBars[symbol]; ok {
		fillPrice = bar.Close
	}

	return &Order{
		OrderID:   newOrderID(),
		Symbol:    symbol,
		Quantity:  quantity,
		Price:     fillPrice,
		Type:      tradeType,
		OrderType: orderType,
		Status:    "OPEN",
		Timestamp: time.Now(),
	}, nil
}

// Symbols returns the symbols the paper client has data for.
func (c *PaperClient) Symbols() []string {
	symbols := make([]string, 0, len(marketBars))
	for symbol := range marketBars {
		symbols = append(symbols, symbol)
	}
	return symbols
}

func newOrderID() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "order-0"
	}
	return hex.EncodeToString(buf)
}
