package features

import (
	"math"
	"time"

	"RegimePulse/internal/domain/models"
	"RegimePulse/internal/services/indicators"
)

// Canonical feature names. The classifier weights configuration keys on
// these exact strings.
const (
	FeatureRSI       = "rsi"
	FeatureMACD      = "macd"
	FeaturePriceSMA  = "price_sma"
	FeaturePriceEMA  = "price_ema"
	FeaturePriceVWAP = "price_vwap"
	FeatureBollinger = "bollinger"
	FeatureTrend     = "trend"
	FeatureSentiment = "sentiment"
)

// Build maps raw indicator values and the sentiment score onto a normalized
// feature vector in [-1,1]. It is a pure function: same inputs, same vector.
// Undefined indicators and the sentiment NoData marker propagate as Missing
// features; nothing is ever imputed to 0.
func Build(set models.IndicatorSet, sent models.SentimentScore, lastClose float64, asOf time.Time) models.FeatureVector {
	fv := models.FeatureVector{
		AsOf:     asOf,
		Features: make(map[string]models.FeatureValue, 8),
	}
	put := func(name string, v float64, present bool) {
		if !present {
			fv.Features[name] = models.FeatureValue{Missing: true}
			return
		}
		fv.Features[name] = models.FeatureValue{Value: v}
	}

	// RSI 0..100 re-centered so 50 is neutral.
	if rsi, ok := defined(set, indicators.NameRSI); ok {
		put(FeatureRSI, (rsi-50)/50, true)
	} else {
		put(FeatureRSI, 0, false)
	}

	// MACD histogram scaled by ATR so the feature is unit-free across
	// symbols. Saturates at one full ATR of divergence.
	hist, histOK := defined(set, indicators.NameMACDHist)
	atr, atrOK := defined(set, indicators.NameATR)
	switch {
	case !histOK || !atrOK:
		put(FeatureMACD, 0, false)
	case atr == 0:
		put(FeatureMACD, sign(hist), true)
	default:
		put(FeatureMACD, sign(hist)*math.Min(1, math.Abs(hist)/atr), true)
	}

	put3 := func(name, indicator string) {
		ma, ok := defined(set, indicator)
		if !ok || ma == 0 {
			put(name, 0, false)
			return
		}
		put(name, Clip((lastClose-ma)/ma), true)
	}
	put3(FeaturePriceSMA, indicators.NameSMA)
	put3(FeaturePriceEMA, indicators.NameEMA)
	put3(FeaturePriceVWAP, indicators.NameVWAP)

	// %B in [0,1] stretched to [-1,1]; excursions outside the bands clip.
	if pb, ok := defined(set, indicators.NamePercentB); ok {
		put(FeatureBollinger, Clip(2*pb-1), true)
	} else {
		put(FeatureBollinger, 0, false)
	}

	// Trend score is already in [-1,1].
	if trend, ok := defined(set, indicators.NameTrend); ok {
		put(FeatureTrend, trend, true)
	} else {
		put(FeatureTrend, 0, false)
	}

	put(FeatureSentiment, Clip(sent.Value), !sent.NoData)

	return fv
}

// Clip bounds a value to [-1,1].
func Clip(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

func defined(set models.IndicatorSet, name string) (float64, bool) {
	iv, ok := set[name]
	if !ok || !iv.Defined {
		return 0, false
	}
	return iv.Value, true
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
