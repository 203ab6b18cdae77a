package indicators

import (
	"RegimePulse/internal/domain/models"
	"RegimePulse/pkg/config"
)

// Canonical indicator names shared with the feature aggregator.
const (
	NameSMA        = "sma"
	NameEMA        = "ema"
	NameRSI        = "rsi"
	NameMACD       = "macd"
	NameMACDSignal = "macd_signal"
	NameMACDHist   = "macd_hist"
	NamePercentB   = "bb_percent_b"
	NameATR        = "atr"
	NameVWAP       = "vwap"
	NameTrend      = "trend"
)

// Snapshot validates the series and computes every configured indicator at
// the series' last point. Indicators without enough history come back with
// Defined=false rather than being omitted, so the set always carries the
// full name space.
func Snapshot(series models.PriceSeries, p config.IndicatorParams) (models.IndicatorSet, error) {
	if err := ValidateSeries(series); err != nil {
		return nil, err
	}

	closes := series.Closes()
	last, _ := series.Last()
	asOf := last.Timestamp

	set := make(models.IndicatorSet, 10)
	put := func(name string, v float64, ok bool) {
		set[name] = models.IndicatorValue{Name: name, Value: v, Defined: ok, AsOf: asOf}
	}

	v, ok := SMA(closes, p.SMAWindow)
	put(NameSMA, v, ok)

	v, ok = EMA(closes, p.EMAWindow)
	put(NameEMA, v, ok)

	v, ok = RSI(closes, p.RSIWindow)
	put(NameRSI, v, ok)

	line, sig, hist, ok := MACD(closes, p.MACDFast, p.MACDSlow, p.MACDSignal)
	put(NameMACD, line, ok)
	put(NameMACDSignal, sig, ok)
	put(NameMACDHist, hist, ok)

	_, _, _, pb, ok := Bollinger(closes, p.BollingerWindow, p.BollingerK)
	put(NamePercentB, pb, ok)

	v, ok = ATR(series, p.ATRWindow)
	put(NameATR, v, ok)

	v, ok = VWAP(series)
	put(NameVWAP, v, ok)

	v, ok = TrendScore(closes, p.TrendWindows, p.TrendWeights)
	put(NameTrend, v, ok)

	return set, nil
}
