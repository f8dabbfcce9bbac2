package session

import "time"

// Clock creates the tickers that drive a Loop.
type Clock interface {
	NewTicker(period time.Duration) Ticker
}

type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type realClock struct{}

func (realClock) NewTicker(period time.Duration) Ticker {
	return realTicker{time.NewTicker(period)}
}

type realTicker struct{ *time.Ticker }

func (t realTicker) C() <-chan time.Time { return t.Ticker.C }
