package indicators

import (
	"math"

	"RegimePulse/internal/domain/models"
)

// Every function in this package is pure: same series in, same values out.
// An indicator requiring more history than available reports ok=false
// ("undefined"), never zero or an extrapolated guess.

// SMA returns the arithmetic mean of the last window closes.
func SMA(closes []float64, window int) (float64, bool) {
	if window <= 0 || len(closes) < window {
		return 0, false
	}
	sum := 0.0
	for _, c := range closes[len(closes)-window:] {
		sum += c
	}
	return sum / float64(window), true
}

// SMASeries returns the rolling SMA; entries before index window-1 are
// undefined and left at zero, mirrored by the returned defined-from index.
func SMASeries(closes []float64, window int) ([]float64, int) {
	if window <= 0 || len(closes) < window {
		return nil, 0
	}
	out := make([]float64, len(closes))
	sum := 0.0
	for i, c := range closes {
		sum += c
		if i >= window {
			sum -= closes[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out, window - 1
}

// EMASeries computes the exponential moving average seeded with the SMA of
// the first window points, then EMA_t = close_t*a + EMA_{t-1}*(1-a) with
// a = 2/(window+1). Entries before index window-1 are undefined.
func EMASeries(closes []float64, window int) ([]float64, int) {
	if window <= 0 || len(closes) < window {
		return nil, 0
	}
	out := make([]float64, len(closes))
	alpha := 2.0 / float64(window+1)

	seed := 0.0
	for _, c := range closes[:window] {
		seed += c
	}
	out[window-1] = seed / float64(window)

	for i := window; i < len(closes); i++ {
		out[i] = closes[i]*alpha + out[i-1]*(1-alpha)
	}
	return out, window - 1
}

// EMA returns the latest exponential moving average value.
func EMA(closes []float64, window int) (float64, bool) {
	series, _ := EMASeries(closes, window)
	if series == nil {
		return 0, false
	}
	return series[len(series)-1], true
}

// RSI computes Wilder's relative strength index over window periods.
// When the average loss is zero the RSI is 100 by convention.
func RSI(closes []float64, window int) (float64, bool) {
	if window <= 0 || len(closes) < window+1 {
		return 0, false
	}

	avgGain, avgLoss := 0.0, 0.0
	for i := 1; i <= window; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(window)
	avgLoss /= float64(window)

	// Wilder smoothing for the remaining periods.
	for i := window + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(window-1) + gain) / float64(window)
		avgLoss = (avgLoss*float64(window-1) + loss) / float64(window)
	}

	if avgLoss == 0 {
		return 100, true
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs), true
}

// MACD returns the latest MACD line (EMA(fast)-EMA(slow)), signal line
// (EMA(signal) of the MACD line) and histogram (line-signal). The histogram
// needs slow+signal-1 points to be defined.
func MACD(closes []float64, fast, slow, signal int) (line, sig, hist float64, ok bool) {
	if fast <= 0 || slow <= fast || signal <= 0 || len(closes) < slow+signal-1 {
		return 0, 0, 0, false
	}

	fastEMA, _ := EMASeries(closes, fast)
	slowEMA, _ := EMASeries(closes, slow)

	// The MACD line is only meaningful from the first defined slow-EMA point.
	macd := make([]float64, 0, len(closes)-slow+1)
	for i := slow - 1; i < len(closes); i++ {
		macd = append(macd, fastEMA[i]-slowEMA[i])
	}

	sigSeries, _ := EMASeries(macd, signal)
	if sigSeries == nil {
		return 0, 0, 0, false
	}

	line = macd[len(macd)-1]
	sig = sigSeries[len(sigSeries)-1]
	return line, sig, line - sig, true
}

// Bollinger returns the bands around SMA(window) at k population standard
// deviations, plus %B, the position of the last close within the bands.
// A flat window (zero deviation) pins %B to the midpoint.
func Bollinger(closes []float64, window int, k float64) (upper, middle, lower, percentB float64, ok bool) {
	middle, ok = SMA(closes, window)
	if !ok {
		return 0, 0, 0, 0, false
	}

	variance := 0.0
	for _, c := range closes[len(closes)-window:] {
		d := c - middle
		variance += d * d
	}
	stddev := math.Sqrt(variance / float64(window))

	upper = middle + k*stddev
	lower = middle - k*stddev

	last := closes[len(closes)-1]
	if upper == lower {
		percentB = 0.5
	} else {
		percentB = (last - lower) / (upper - lower)
	}
	return upper, middle, lower, percentB, true
}

// ATR computes Wilder's average true range over window periods. It serves as
// the volatility reference scale when normalizing the MACD histogram.
func ATR(series models.PriceSeries, window int) (float64, bool) {
	if window <= 0 || len(series) < window+1 {
		return 0, false
	}

	trueRange := func(i int) float64 {
		h, l := series[i].High, series[i].Low
		prevClose := series[i-1].Close
		tr := h - l
		if d := math.Abs(h - prevClose); d > tr {
			tr = d
		}
		if d := math.Abs(l - prevClose); d > tr {
			tr = d
		}
		return tr
	}

	atr := 0.0
	for i := 1; i <= window; i++ {
		atr += trueRange(i)
	}
	atr /= float64(window)

	for i := window + 1; i < len(series); i++ {
		atr = (atr*float64(window-1) + trueRange(i)) / float64(window)
	}
	return atr, true
}

// VWAP is the volume-weighted average of the typical price (H+L+C)/3 over
// the whole supplied series. Undefined when no volume traded.
func VWAP(series models.PriceSeries) (float64, bool) {
	if len(series) == 0 {
		return 0, false
	}
	var pv, vol float64
	for _, p := range series {
		typical := (p.High + p.Low + p.Close) / 3
		pv += typical * p.Volume
		vol += p.Volume
	}
	if vol == 0 {
		return 0, false
	}
	return pv / vol, true
}

// TrendScore aggregates the direction of the close over several lookback
// windows into one value in [-1,1]. Each window votes +1/-1/0 with a 0.1%
// flat band; votes are weighted and the weight mass is renormalized over the
// windows the series can actually cover, so a short series does not deflate
// the score. Undefined when no window fits.
func TrendScore(closes []float64, windows []int, weights []float64) (float64, bool) {
	if len(windows) == 0 || len(windows) != len(weights) {
		return 0, false
	}

	const flatBandPct = 0.1

	score, mass := 0.0, 0.0
	for i, w := range windows {
		if w <= 0 || len(closes) < w+1 {
			continue
		}
		first := closes[len(closes)-1-w]
		last := closes[len(closes)-1]
		if first == 0 {
			continue
		}
		changePct := (last - first) / first * 100

		vote := 0.0
		if changePct > flatBandPct {
			vote = 1
		} else if changePct < -flatBandPct {
			vote = -1
		}
		score += vote * weights[i]
		mass += weights[i]
	}
	if mass == 0 {
		return 0, false
	}
	return score / mass, true
}
