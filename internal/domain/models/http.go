package models

import (
	"fmt"

	"RegimePulse/pkg/util"
)

// Requests for the evaluation HTTP endpoints. Defined in domain for
// consistency and reuse. Timestamps accept RFC3339 or unix seconds.

type PriceBar struct {
	TS     string  `json:"ts" validate:"required"`
	Open   float64 `json:"open" validate:"gte=0"`
	High   float64 `json:"high" validate:"gte=0"`
	Low    float64 `json:"low" validate:"gte=0"`
	Close  float64 `json:"close" validate:"gte=0"`
	Volume float64 `json:"volume" validate:"gte=0"`
}

type NewsEntry struct {
	TS     string  `json:"ts" validate:"required"`
	Text   string  `json:"text" validate:"required"`
	Weight float64 `json:"weight,omitempty" validate:"gte=0,lte=1"`
}

type EvaluateRequest struct {
	Symbol  string      `json:"symbol" validate:"required"`
	TF      string      `json:"tf" default:"1d" validate:"oneof=5m 15m 30m 1h 1d"`
	Candles []PriceBar  `json:"candles" validate:"required,min=2,dive"`
	News    []NewsEntry `json:"news,omitempty" validate:"omitempty,dive"`
}

type IndicatorsRequest struct {
	Symbol  string     `json:"symbol" validate:"required"`
	TF      string     `json:"tf" default:"1d" validate:"oneof=5m 15m 30m 1h 1d"`
	Candles []PriceBar `json:"candles" validate:"required,min=2,dive"`
}

type SentimentRequest struct {
	Symbol string      `json:"symbol" validate:"required"`
	TF     string      `json:"tf" default:"1d" validate:"oneof=5m 15m 30m 1h 1d"`
	News   []NewsEntry `json:"news" validate:"omitempty,dive"`
}

// ToSeries converts request bars into a domain price series. Ordering and
// monotonicity are checked later by the indicator library, not here.
func ToSeries(bars []PriceBar) (PriceSeries, error) {
	out := make(PriceSeries, 0, len(bars))
	for i, b := range bars {
		ts, ok := util.ParseTime(b.TS)
		if !ok {
			return nil, fmt.Errorf("candles[%d]: unparseable timestamp %q", i, b.TS)
		}
		out = append(out, PricePoint{
			Timestamp: ts,
			Open:      b.Open,
			High:      b.High,
			Low:       b.Low,
			Close:     b.Close,
			Volume:    b.Volume,
		})
	}
	return out, nil
}

// ToBatch converts request news entries into a domain news batch.
func ToBatch(entries []NewsEntry) (NewsBatch, error) {
	out := make(NewsBatch, 0, len(entries))
	for i, e := range entries {
		ts, ok := util.ParseTime(e.TS)
		if !ok {
			return nil, fmt.Errorf("news[%d]: unparseable timestamp %q", i, e.TS)
		}
		out = append(out, NewsItem{Timestamp: ts, Text: e.Text, SourceWeight: e.Weight})
	}
	return out, nil
}
