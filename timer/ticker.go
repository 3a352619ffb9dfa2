package timer

import "time"

// Ticker is a periodic tick channel that can be released.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickSource creates tickers. Tests substitute a manual implementation.
type TickSource interface {
	NewTicker(d time.Duration) Ticker
}

// SystemTicks is the TickSource backed by time.Ticker.
var SystemTicks TickSource = systemTicks{}

type systemTicks struct{}

func (systemTicks) NewTicker(d time.Duration) Ticker {
	return tickerWrap{time.NewTicker(d)}
}

type tickerWrap struct{ *time.Ticker }

func (t tickerWrap) C() <-chan time.Time { return t.Ticker.C }
