package models

import "time"

// IndicatorValue is one computed indicator at an as-of instant. Defined is
// false when the series carried less history than the indicator's lookback;
// downstream code must treat that as missing, never as zero.
type IndicatorValue struct {
	Name    string    `json:"name"`
	Value   float64   `json:"value"`
	Defined bool      `json:"defined"`
	AsOf    time.Time `json:"as_of"`
}

// IndicatorSet maps indicator name to its latest value for one series.
type IndicatorSet map[string]IndicatorValue

// SentimentScore is the aggregate polarity of a news batch. NoData marks an
// empty batch and is distinct from a genuinely neutral (value 0) score over
// real items.
type SentimentScore struct {
	Value  float64   `json:"value"`
	Items  int       `json:"items"`
	NoData bool      `json:"no_data"`
	AsOf   time.Time `json:"as_of"`
}

// FeatureValue is one normalized feature in [-1,1], or explicitly missing.
type FeatureValue struct {
	Value   float64 `json:"value"`
	Missing bool    `json:"missing,omitempty"`
}

// FeatureVector holds comparable, normalized features for one as-of instant.
// Undefined inputs propagate as Missing rather than being imputed to 0.
type FeatureVector struct {
	AsOf     time.Time               `json:"as_of"`
	Features map[string]FeatureValue `json:"features"`
}

// RegimeLabel is the classified trend state.
type RegimeLabel string

const (
	RegimeBullish RegimeLabel = "bullish"
	RegimeNeutral RegimeLabel = "neutral"
	RegimeBearish RegimeLabel = "bearish"
)

// FeatureContribution records how one feature entered the composite score.
type FeatureContribution struct {
	Feature  string  `json:"feature"`
	Value    float64 `json:"value"`
	Weight   float64 `json:"weight"`
	Weighted float64 `json:"weighted"`
	Missing  bool    `json:"missing,omitempty"`
}

// RegimeSignal is the final classification for one evaluation. It is
// immutable once produced: a new evaluation always yields a new value.
// Identical feature vectors yield identical signals.
type RegimeSignal struct {
	Symbol           string                `json:"symbol"`
	Label            RegimeLabel           `json:"label"`
	Composite        float64               `json:"composite"`
	Confidence       float64               `json:"confidence"`
	AsOf             time.Time             `json:"as_of"`
	InsufficientData bool                  `json:"insufficient_data,omitempty"`
	Breakdown        []FeatureContribution `json:"breakdown"`
}
