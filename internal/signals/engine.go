// Package signals generates trading signals from price-movement
// heuristics over the broker's market data. The rules are simple
// threshold comparisons on a single bar; they stand in for a real model.
package signals

import (
	"fmt"
	"math/rand"
	"time"

	"tradepilot/internal/broker"
	apperrors "tradepilot/internal/errors"
	"tradepilot/internal/logger"
	"tradepilot/internal/models"
	"tradepilot/internal/services"
	"tradepilot/internal/telegram"
)

// stockInfo carries display metadata for a tradable symbol.
type stockInfo struct {
	Name string
	Risk float64
}

// watchlist holds the symbols the engine analyzes. Order matters: the
// dashboard's signal board shows the first few entries.
var watchlistOrder = []string{
	"RELIANCE", "HDFCBANK", "INFY", "TCS", "TATASTEEL",
	"NIFTY 50", "BANKNIFTY", "SBIN",
}

var watchlist = map[string]stockInfo{
	"RELIANCE":  {Name: "Reliance Industries Ltd.", Risk: 0.6},
	"HDFCBANK":  {Name: "HDFC Bank Ltd.", Risk: 0.4},
	"INFY":      {Name: "Infosys Ltd.", Risk: 0.5},
	"TCS":       {Name: "Tata Consultancy Services Ltd.", Risk: 0.3},
	"TATASTEEL": {Name: "Tata Steel Ltd.", Risk: 0.7},
	"NIFTY 50":  {Name: "Nifty 50 Index", Risk: 0.5},
	"BANKNIFTY": {Name: "Bank Nifty Index", Risk: 0.6},
	"SBIN":      {Name: "State Bank of India", Risk: 0.5},
}

// Pattern is a canned technical-analysis observation for the dashboard.
type Pattern struct {
	Pattern      string `json:"pattern"`
	Symbol       string `json:"symbol"`
	Significance string `json:"significance"`
	Reliability  int    `json:"reliability"`
}

var technicalPatterns = []Pattern{
	{Pattern: "Bullish Engulfing", Symbol: "HDFC Bank", Significance: "Strong bullish reversal pattern", Reliability: 85},
	{Pattern: "Doji Candle", Symbol: "Reliance Industries", Significance: "Market indecision, potential reversal", Reliability: 70},
	{Pattern: "Head & Shoulders", Symbol: "Infosys", Significance: "Bearish reversal pattern", Reliability: 80},
	{Pattern: "Double Bottom", Symbol: "TCS", Significance: "Bullish reversal pattern", Reliability: 75},
	{Pattern: "Hammer", Symbol: "SBIN", Significance: "Bullish reversal after downtrend", Reliability: 65},
}

var marketUpdates = []string{
	"Nifty up 0.8% in morning trade led by banking stocks. IT sector under pressure due to weak global cues.",
	"Markets trading flat amid mixed global signals. Auto stocks outperforming, FMCG under pressure.",
	"Sensex surges 300 points, Nifty above 18,500. Metal stocks leading the gains.",
	"Midcap and smallcap indices underperforming, down 0.5%. Volatility index up 3%.",
	"RBI policy meeting tomorrow, markets cautious. Banking stocks showing divergent trends.",
	"Global markets mixed; Dow up, Nasdaq down. Indian markets following global sentiment.",
	"Oil prices surge 3%, energy stocks rally. ONGC, Reliance top gainers.",
	"IT sector down 1.2% following weak guidance from US tech companies.",
	"Pharma stocks in focus as FDA approvals boost sentiment. Sun Pharma up 2.5%.",
}

// signalBoardSize is how many watchlist symbols the signal board covers.
const signalBoardSize = 4

// Engine turns market bars into persisted signals and notifications.
type Engine struct {
	broker   broker.Client
	signals  services.SignalServicer
	notifier telegram.Notifier
	rng      *rand.Rand
}

// NewEngine creates a signal engine over the given collaborators.
func NewEngine(brokerClient broker.Client, signalService services.SignalServicer, notifier telegram.Notifier) *Engine {
	return &Engine{
		broker:   brokerClient,
		signals:  signalService,
		notifier: notifier,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SignalForSymbol analyzes the symbol's latest bar, persists the resulting
// signal, and notifies Telegram when connected.
func (e *Engine) SignalForSymbol(symbol string) (*models.TradingSignal, error) {
	info, ok := watchlist[symbol]
	if !ok {
		return nil, apperrors.ErrUnknownSymbol
	}

	bar, err := e.broker.MarketData(symbol)
	if err != nil {
		return nil, err
	}

	signalType, confidence := e.analyze(bar)
	change := bar.Close - bar.Open
	changePercent := (change / bar.Open) * 100

	signal, err := e.signals.CreateSignal(symbol, signalType, confidence, bar.Close, time.Now(), models.Metadata{
		"open":          bar.Open,
		"high":          bar.High,
		"low":           bar.Low,
		"volume":        bar.Volume,
		"changePercent": changePercent,
		"company":       info.Name,
	})
	if err != nil {
		return nil, err
	}

	if e.notifier.IsConnected() {
		if _, err := e.notifier.Send(e.formatSignalMessage(signal), models.NotificationTypeSignal); err != nil {
			logger.Get().Warnw("signal notification failed", "symbol", symbol, "error", err)
		}
	}

	return signal, nil
}

// AllSignals generates signals for the signal-board symbols, skipping any
// symbol whose market data is unavailable.
func (e *Engine) AllSignals() ([]models.TradingSignal, error) {
	board := watchlistOrder
	if len(board) > signalBoardSize {
		board = board[:signalBoardSize]
	}

	signals := make([]models.TradingSignal, 0, len(board))
	for _, symbol := range board {
		signal, err := e.SignalForSymbol(symbol)
		if err != nil {
			logger.Get().Warnw("signal generation failed", "symbol", symbol, "error", err)
			continue
		}
		signals = append(signals, *signal)
	}
	return signals, nil
}

// analyze applies the price-movement rules to a bar.
func (e *Engine) analyze(bar *broker.MarketData) (models.SignalType, float64) {
	change := bar.Close - bar.Open
	changePercent := (change / bar.Open) * 100

	switch {
	case changePercent > 2:
		return models.SignalTypeBuy, 70 + e.rng.Float64()*15
	case changePercent < -2:
		return models.SignalTypeSell, 75 + e.rng.Float64()*10
	case changePercent < -1 && bar.Volume > 5_000_000:
		return models.SignalTypeStopLoss, 85 + e.rng.Float64()*10
	case changePercent > 0:
		return models.SignalTypeBuy, 60 + e.rng.Float64()*15
	default:
		return models.SignalTypeSell, 60 + e.rng.Float64()*15
	}
}

func (e *Engine) formatSignalMessage(signal *models.TradingSignal) string {
	company := signal.Symbol
	if info, ok := watchlist[signal.Symbol]; ok {
		company = info.Name
	}

	switch signal.SignalType {
	case models.SignalTypeBuy:
		return fmt.Sprintf("Buy Signal: %s. AI detected buying opportunity for %s. Current price: ₹%.2f, confidence: %.1f%%.",
			signal.Symbol, company, signal.Price, signal.Confidence)
	case models.SignalTypeSell:
		return fmt.Sprintf("Sell Signal: %s. AI recommends selling %s at current price ₹%.2f, confidence: %.1f%%.",
			signal.Symbol, company, signal.Price, signal.Confidence)
	case models.SignalTypeStopLoss:
		return fmt.Sprintf("Stop Loss Alert: %s. Stop loss recommended for %s at ₹%.2f, current price: ₹%.2f.",
			signal.Symbol, company, signal.Price*0.98, signal.Price)
	default:
		return fmt.Sprintf("Market Alert: %s. AI monitoring %s, current price: ₹%.2f.",
			signal.Symbol, company, signal.Price)
	}
}

// TechnicalPatterns returns the canned pattern observations.
func (e *Engine) TechnicalPatterns() []Pattern {
	return technicalPatterns
}

// MarketUpdate returns a random market headline.
func (e *Engine) MarketUpdate() string {
	return marketUpdates[e.rng.Intn(len(marketUpdates))]
}
