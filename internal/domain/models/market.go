package models

import "time"

// Timeframe identifies the bar interval of a price series. The evaluation
// cache keys TTLs off it: intraday data goes stale faster than daily.
type Timeframe string

const (
	TF5m  Timeframe = "5m"
	TF15m Timeframe = "15m"
	TF30m Timeframe = "30m"
	TF1h  Timeframe = "1h"
	TF1d  Timeframe = "1d"
)

// IsValidTimeframe returns true if tf is a supported timeframe.
func IsValidTimeframe(tf Timeframe) bool {
	switch tf {
	case TF5m, TF15m, TF30m, TF1h, TF1d:
		return true
	default:
		return false
	}
}

// DefaultTimeframe returns the default timeframe.
func DefaultTimeframe() Timeframe { return TF1d }

// NormalizeTimeframe converts a raw string to a valid timeframe (or default).
func NormalizeTimeframe(s string) Timeframe {
	if s == "" {
		return DefaultTimeframe()
	}
	tf := Timeframe(s)
	if IsValidTimeframe(tf) {
		return tf
	}
	return DefaultTimeframe()
}

// PricePoint is one OHLCV bar. Timestamps must be strictly increasing within
// a series; irregular sampling is allowed.
type PricePoint struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// PriceSeries is an ordered OHLCV series for one symbol. The series is owned
// by the caller and read-only to the engine.
type PriceSeries []PricePoint

// Closes returns the close column of the series.
func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s))
	for i := range s {
		out[i] = s[i].Close
	}
	return out
}

// Last returns the most recent bar, if any.
func (s PriceSeries) Last() (PricePoint, bool) {
	if len(s) == 0 {
		return PricePoint{}, false
	}
	return s[len(s)-1], true
}

// NewsItem is one free-text news snippet for a symbol. SourceWeight, when set,
// must be in (0,1]; zero means "unweighted" and counts as 1.
type NewsItem struct {
	Timestamp    time.Time
	Text         string
	SourceWeight float64
}

// NewsBatch is the set of news items inside one evaluation window. Order is
// irrelevant; duplicates by (timestamp, text) are ignored during scoring.
type NewsBatch []NewsItem
