package regime

import (
	"math"
	"reflect"
	"testing"
	"time"

	"RegimePulse/internal/domain/models"
)

func vector(features map[string]models.FeatureValue) models.FeatureVector {
	return models.FeatureVector{
		AsOf:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Features: features,
	}
}

func TestNewClassifierValidation(t *testing.T) {
	cases := []struct {
		name      string
		weights   map[string]float64
		threshold float64
	}{
		{"empty weights", map[string]float64{}, 0.2},
		{"negative weight", map[string]float64{"rsi": -1}, 0.2},
		{"zero sum", map[string]float64{"rsi": 0, "macd": 0}, 0.2},
		{"threshold zero", map[string]float64{"rsi": 1}, 0},
		{"threshold one", map[string]float64{"rsi": 1}, 1},
	}
	for _, tc := range cases {
		if _, err := NewClassifier(tc.weights, tc.threshold); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}

	if _, err := NewClassifier(map[string]float64{"rsi": 0.6, "trend": 0.4}, 0.2); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestClassifyLabels(t *testing.T) {
	c, err := NewClassifier(map[string]float64{"f": 1}, 0.2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		value float64
		want  models.RegimeLabel
	}{
		{0.5, models.RegimeBullish},
		{0.21, models.RegimeBullish},
		{0.2, models.RegimeNeutral}, // exactly at the threshold stays neutral
		{0.0, models.RegimeNeutral},
		{-0.2, models.RegimeNeutral},
		{-0.21, models.RegimeBearish},
		{-0.9, models.RegimeBearish},
	}
	for _, tc := range cases {
		sig := c.Classify("BTC", vector(map[string]models.FeatureValue{"f": {Value: tc.value}}))
		if sig.Label != tc.want {
			t.Fatalf("composite %v labeled %s, want %s", tc.value, sig.Label, tc.want)
		}
		if sig.Composite != tc.value {
			t.Fatalf("composite = %v, want %v", sig.Composite, tc.value)
		}
	}
}

func TestClassifyConfidence(t *testing.T) {
	c, _ := NewClassifier(map[string]float64{"f": 1}, 0.2)

	sig := c.Classify("BTC", vector(map[string]models.FeatureValue{"f": {Value: 0.5}}))
	want := (0.5 - 0.2) / 0.8
	if math.Abs(sig.Confidence-want) > 1e-12 {
		t.Fatalf("confidence = %v, want %v", sig.Confidence, want)
	}

	sig = c.Classify("BTC", vector(map[string]models.FeatureValue{"f": {Value: 1}}))
	if sig.Confidence != 1 {
		t.Fatalf("confidence at extreme = %v, want 1", sig.Confidence)
	}

	sig = c.Classify("BTC", vector(map[string]models.FeatureValue{"f": {Value: 0.1}}))
	if sig.Label != models.RegimeNeutral || sig.Confidence != 0 {
		t.Fatalf("neutral signal carries confidence %v", sig.Confidence)
	}
}

func TestClassifyRenormalizesOverPresentFeatures(t *testing.T) {
	c, _ := NewClassifier(map[string]float64{"a": 0.5, "b": 0.5}, 0.2)

	// b missing: its weight is shed, not treated as zero.
	sig := c.Classify("ETH", vector(map[string]models.FeatureValue{
		"a": {Value: 0.5},
		"b": {Missing: true},
	}))
	if sig.Composite != 0.5 {
		t.Fatalf("composite = %v, want 0.5 after renormalization", sig.Composite)
	}
	if sig.InsufficientData {
		t.Fatalf("insufficient data with one feature present")
	}
}

func TestClassifyAllMissing(t *testing.T) {
	c, _ := NewClassifier(map[string]float64{"a": 0.5, "b": 0.5}, 0.2)

	sig := c.Classify("ETH", vector(map[string]models.FeatureValue{
		"a": {Missing: true},
		"b": {Missing: true},
	}))
	if sig.Label != models.RegimeNeutral {
		t.Fatalf("label = %s, want neutral", sig.Label)
	}
	if !sig.InsufficientData {
		t.Fatalf("InsufficientData not set")
	}
	if sig.Composite != 0 || sig.Confidence != 0 {
		t.Fatalf("composite/confidence = %v/%v, want zeros", sig.Composite, sig.Confidence)
	}
	// The breakdown still names every weighted feature.
	if len(sig.Breakdown) != 2 {
		t.Fatalf("breakdown has %d entries, want 2", len(sig.Breakdown))
	}
}

func TestClassifyAbsentFeatureTreatedAsMissing(t *testing.T) {
	c, _ := NewClassifier(map[string]float64{"a": 0.5, "b": 0.5}, 0.2)
	sig := c.Classify("ETH", vector(map[string]models.FeatureValue{"a": {Value: -0.6}}))
	if sig.Composite != -0.6 {
		t.Fatalf("composite = %v, want -0.6", sig.Composite)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	weights := map[string]float64{"rsi": 0.2, "macd": 0.2, "trend": 0.3, "sentiment": 0.3}
	c, _ := NewClassifier(weights, 0.2)
	fv := vector(map[string]models.FeatureValue{
		"rsi":       {Value: 0.4},
		"macd":      {Value: -0.1},
		"trend":     {Value: 0.6},
		"sentiment": {Missing: true},
	})

	first := c.Classify("SOL", fv)
	for i := 0; i < 10; i++ {
		if got := c.Classify("SOL", fv); !reflect.DeepEqual(first, got) {
			t.Fatalf("classification not deterministic: %+v vs %+v", first, got)
		}
	}

	// Breakdown order follows sorted feature names.
	wantOrder := []string{"macd", "rsi", "sentiment", "trend"}
	for i, c := range first.Breakdown {
		if c.Feature != wantOrder[i] {
			t.Fatalf("breakdown[%d] = %s, want %s", i, c.Feature, wantOrder[i])
		}
	}
}

func TestClassifyBreakdownArithmetic(t *testing.T) {
	c, _ := NewClassifier(map[string]float64{"a": 0.75, "b": 0.25}, 0.2)
	sig := c.Classify("BTC", vector(map[string]models.FeatureValue{
		"a": {Value: 0.8},
		"b": {Value: -0.4},
	}))

	var sum, mass float64
	for _, contrib := range sig.Breakdown {
		if contrib.Missing {
			continue
		}
		if math.Abs(contrib.Weighted-contrib.Weight*contrib.Value) > 1e-12 {
			t.Fatalf("%s weighted = %v, want %v", contrib.Feature, contrib.Weighted, contrib.Weight*contrib.Value)
		}
		sum += contrib.Weighted
		mass += contrib.Weight
	}
	if math.Abs(sig.Composite-sum/mass) > 1e-12 {
		t.Fatalf("composite %v does not match breakdown %v", sig.Composite, sum/mass)
	}
}
