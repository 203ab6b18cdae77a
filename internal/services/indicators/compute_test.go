package indicators

import (
	"math"
	"testing"
	"time"

	"RegimePulse/internal/domain/models"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func seriesFromCloses(closes []float64) models.PriceSeries {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	out := make(models.PriceSeries, 0, len(closes))
	for i, c := range closes {
		out = append(out, models.PricePoint{
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			Open:      c,
			High:      c + 1,
			Low:       c - 1,
			Close:     c,
			Volume:    100,
		})
	}
	return out
}

func risingCloses(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

func TestSMA(t *testing.T) {
	v, ok := SMA([]float64{1, 2, 3, 4, 5}, 3)
	if !ok {
		t.Fatalf("expected defined")
	}
	if !almostEqual(v, 4, 1e-12) {
		t.Fatalf("sma = %v, want 4", v)
	}

	if _, ok := SMA([]float64{1, 2}, 3); ok {
		t.Fatalf("expected undefined on short series")
	}
}

func TestEMASeededWithSMA(t *testing.T) {
	// Window equal to length: EMA is just the seed SMA.
	v, ok := EMA([]float64{2, 4, 6}, 3)
	if !ok || !almostEqual(v, 4, 1e-12) {
		t.Fatalf("ema = %v ok=%v, want 4", v, ok)
	}

	// One smoothing step: seed 2, alpha 0.5, then 4*0.5 + 2*0.5 = 3.
	v, ok = EMA([]float64{1, 2, 3, 4}, 3)
	if !ok || !almostEqual(v, 3, 1e-12) {
		t.Fatalf("ema = %v ok=%v, want 3", v, ok)
	}

	if _, ok := EMA([]float64{1, 2}, 3); ok {
		t.Fatalf("expected undefined on short series")
	}
}

func TestRSIMonotonicRise(t *testing.T) {
	v, ok := RSI(risingCloses(20, 100, 1), 14)
	if !ok {
		t.Fatalf("expected defined")
	}
	if v != 100 {
		t.Fatalf("rsi = %v, want 100 on a loss-free series", v)
	}
}

func TestRSIBalanced(t *testing.T) {
	// Alternate +1/-1: average gain equals average loss, RSI near 50.
	closes := make([]float64, 30)
	closes[0] = 100
	for i := 1; i < len(closes); i++ {
		if i%2 == 1 {
			closes[i] = closes[i-1] + 1
		} else {
			closes[i] = closes[i-1] - 1
		}
	}
	v, ok := RSI(closes, 14)
	if !ok {
		t.Fatalf("expected defined")
	}
	if !almostEqual(v, 50, 5) {
		t.Fatalf("rsi = %v, want ~50", v)
	}
}

func TestRSINeedsWindowPlusOne(t *testing.T) {
	if _, ok := RSI(risingCloses(14, 100, 1), 14); ok {
		t.Fatalf("expected undefined with only window prices")
	}
	if _, ok := RSI(risingCloses(15, 100, 1), 14); !ok {
		t.Fatalf("expected defined with window+1 prices")
	}
}

func TestMACDFlatSeries(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 50
	}
	line, sig, hist, ok := MACD(closes, 12, 26, 9)
	if !ok {
		t.Fatalf("expected defined")
	}
	if !almostEqual(line, 0, 1e-9) || !almostEqual(sig, 0, 1e-9) || !almostEqual(hist, 0, 1e-9) {
		t.Fatalf("flat series macd = (%v, %v, %v), want zeros", line, sig, hist)
	}
}

func TestMACDHistoryRequirement(t *testing.T) {
	// Needs slow+signal-1 = 34 points.
	if _, _, _, ok := MACD(risingCloses(33, 100, 1), 12, 26, 9); ok {
		t.Fatalf("expected undefined at 33 points")
	}
	if _, _, _, ok := MACD(risingCloses(34, 100, 1), 12, 26, 9); !ok {
		t.Fatalf("expected defined at 34 points")
	}
}

func TestBollinger(t *testing.T) {
	upper, middle, lower, pb, ok := Bollinger([]float64{1, 2, 3, 4}, 4, 2)
	if !ok {
		t.Fatalf("expected defined")
	}
	if !almostEqual(middle, 2.5, 1e-12) {
		t.Fatalf("middle = %v, want 2.5", middle)
	}
	// Population stddev of {1,2,3,4} is sqrt(1.25).
	sd := math.Sqrt(1.25)
	if !almostEqual(upper, 2.5+2*sd, 1e-9) || !almostEqual(lower, 2.5-2*sd, 1e-9) {
		t.Fatalf("bands = (%v, %v)", upper, lower)
	}
	want := (4 - lower) / (upper - lower)
	if !almostEqual(pb, want, 1e-9) {
		t.Fatalf("%%B = %v, want %v", pb, want)
	}
}

func TestBollingerFlatWindow(t *testing.T) {
	_, _, _, pb, ok := Bollinger([]float64{5, 5, 5, 5}, 4, 2)
	if !ok {
		t.Fatalf("expected defined")
	}
	if pb != 0.5 {
		t.Fatalf("%%B = %v, want 0.5 on zero deviation", pb)
	}
}

func TestATR(t *testing.T) {
	// Identical bars: true range is the high-low span everywhere.
	series := seriesFromCloses([]float64{100, 100, 100, 100})
	v, ok := ATR(series, 3)
	if !ok {
		t.Fatalf("expected defined")
	}
	if !almostEqual(v, 2, 1e-9) {
		t.Fatalf("atr = %v, want 2", v)
	}

	if _, ok := ATR(series[:3], 3); ok {
		t.Fatalf("expected undefined with window points")
	}
}

func TestVWAP(t *testing.T) {
	series := models.PriceSeries{
		{Timestamp: time.Unix(1, 0), High: 11, Low: 9, Close: 10, Volume: 1},
		{Timestamp: time.Unix(2, 0), High: 21, Low: 19, Close: 20, Volume: 3},
	}
	v, ok := VWAP(series)
	if !ok {
		t.Fatalf("expected defined")
	}
	// (10*1 + 20*3) / 4
	if !almostEqual(v, 17.5, 1e-9) {
		t.Fatalf("vwap = %v, want 17.5", v)
	}
}

func TestVWAPZeroVolume(t *testing.T) {
	series := seriesFromCloses([]float64{10, 11})
	for i := range series {
		series[i].Volume = 0
	}
	if _, ok := VWAP(series); ok {
		t.Fatalf("expected undefined with no traded volume")
	}
}

func TestTrendScoreDirection(t *testing.T) {
	windows := []int{5, 10, 20, 30}
	weights := []float64{0.4, 0.3, 0.2, 0.1}

	up, ok := TrendScore(risingCloses(31, 100, 1), windows, weights)
	if !ok || up != 1 {
		t.Fatalf("rising trend = %v ok=%v, want 1", up, ok)
	}

	down, ok := TrendScore(risingCloses(31, 200, -1), windows, weights)
	if !ok || down != -1 {
		t.Fatalf("falling trend = %v ok=%v, want -1", down, ok)
	}

	flat := make([]float64, 31)
	for i := range flat {
		flat[i] = 100
	}
	v, ok := TrendScore(flat, windows, weights)
	if !ok || v != 0 {
		t.Fatalf("flat trend = %v ok=%v, want 0", v, ok)
	}
}

func TestTrendScoreRenormalizesOverAvailableWindows(t *testing.T) {
	windows := []int{5, 10, 20, 30}
	weights := []float64{0.4, 0.3, 0.2, 0.1}

	// Six points: only the 5-bar window fits, but a clear rise still scores 1.
	v, ok := TrendScore(risingCloses(6, 100, 1), windows, weights)
	if !ok || v != 1 {
		t.Fatalf("short rising trend = %v ok=%v, want 1", v, ok)
	}

	if _, ok := TrendScore(risingCloses(3, 100, 1), windows, weights); ok {
		t.Fatalf("expected undefined when no window fits")
	}
}
