package indicators

import (
	"errors"
	"testing"
	"time"

	"RegimePulse/internal/domain/models"
	"RegimePulse/pkg/config"
)

func defaultParams() config.IndicatorParams {
	return config.Default().Engine.Indicators
}

func TestValidateSeriesRejectsMalformedInput(t *testing.T) {
	cases := []struct {
		name   string
		series models.PriceSeries
	}{
		{"empty", nil},
		{"out of order", models.PriceSeries{
			{Timestamp: time.Unix(2, 0), High: 1, Low: 1, Close: 1},
			{Timestamp: time.Unix(1, 0), High: 1, Low: 1, Close: 1},
		}},
		{"duplicate timestamp", models.PriceSeries{
			{Timestamp: time.Unix(1, 0), High: 1, Low: 1, Close: 1},
			{Timestamp: time.Unix(1, 0), High: 1, Low: 1, Close: 1},
		}},
		{"negative volume", models.PriceSeries{
			{Timestamp: time.Unix(1, 0), High: 1, Low: 1, Close: 1, Volume: -1},
		}},
		{"negative price", models.PriceSeries{
			{Timestamp: time.Unix(1, 0), High: 1, Low: -1, Close: 1},
		}},
		{"high below low", models.PriceSeries{
			{Timestamp: time.Unix(1, 0), High: 1, Low: 2, Close: 1},
		}},
	}

	for _, tc := range cases {
		err := ValidateSeries(tc.series)
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected ValidationError, got %T", tc.name, err)
		}
	}
}

func TestValidateSeriesAcceptsShortSeries(t *testing.T) {
	// Insufficient history is not a validation failure.
	if err := ValidateSeries(seriesFromCloses([]float64{10, 11})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSnapshotMarksInsufficientHistoryUndefined(t *testing.T) {
	series := seriesFromCloses([]float64{100, 101})
	set, err := Snapshot(series, defaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{NameSMA, NameEMA, NameRSI, NameMACD, NameMACDHist, NamePercentB, NameATR, NameTrend} {
		iv, ok := set[name]
		if !ok {
			t.Fatalf("%s missing from set", name)
		}
		if iv.Defined {
			t.Fatalf("%s defined on 2-point series", name)
		}
	}

	// VWAP needs only traded volume.
	if !set[NameVWAP].Defined {
		t.Fatalf("vwap undefined despite volume")
	}
}

func TestSnapshotFullHistory(t *testing.T) {
	series := seriesFromCloses(risingCloses(60, 100, 0.5))
	set, err := Snapshot(series, defaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	asOf := series[len(series)-1].Timestamp
	for name, iv := range set {
		if !iv.Defined {
			t.Fatalf("%s undefined on 60-point series", name)
		}
		if !iv.AsOf.Equal(asOf) {
			t.Fatalf("%s as-of %v, want %v", name, iv.AsOf, asOf)
		}
	}

	if set[NameRSI].Value != 100 {
		t.Fatalf("rsi = %v, want 100 on a monotonic rise", set[NameRSI].Value)
	}
	if set[NameTrend].Value != 1 {
		t.Fatalf("trend = %v, want 1", set[NameTrend].Value)
	}
}

func TestSnapshotDeterministic(t *testing.T) {
	series := seriesFromCloses(risingCloses(60, 100, 0.5))
	a, err := Snapshot(series, defaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Snapshot(series, defaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for name := range a {
		if a[name] != b[name] {
			t.Fatalf("%s differs across runs: %v vs %v", name, a[name], b[name])
		}
	}
}
