package regime

import (
	"fmt"
	"math"
	"sort"

	"RegimePulse/internal/domain/models"
)

// Classifier folds a normalized feature vector into a single regime signal.
// It is immutable after construction and safe for concurrent use.
type Classifier struct {
	weights   map[string]float64
	names     []string // weight keys, sorted once for deterministic output
	threshold float64
}

// NewClassifier validates and captures the feature weights and the neutral
// threshold. Weights need not sum to 1; the composite renormalizes over
// whatever features are present per evaluation.
func NewClassifier(weights map[string]float64, threshold float64) (*Classifier, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("classifier: weights cannot be empty")
	}
	total := 0.0
	names := make([]string, 0, len(weights))
	for name, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("classifier: weight %q must be a non-negative number, got %v", name, w)
		}
		total += w
		names = append(names, name)
	}
	if total == 0 {
		return nil, fmt.Errorf("classifier: weights must sum to a non-zero total")
	}
	if threshold <= 0 || threshold >= 1 {
		return nil, fmt.Errorf("classifier: threshold must be in (0,1), got %v", threshold)
	}
	sort.Strings(names)

	captured := make(map[string]float64, len(weights))
	for name, w := range weights {
		captured[name] = w
	}
	return &Classifier{weights: captured, names: names, threshold: threshold}, nil
}

// Classify computes the composite score as the weight-renormalized sum of
// the present features and buckets it against the threshold. Missing
// features shed their weight instead of dragging the composite toward zero.
// When every weighted feature is missing the signal is neutral with the
// InsufficientData flag set.
func (c *Classifier) Classify(symbol string, fv models.FeatureVector) *models.RegimeSignal {
	sig := &models.RegimeSignal{
		Symbol:    symbol,
		AsOf:      fv.AsOf,
		Breakdown: make([]models.FeatureContribution, 0, len(c.names)),
	}

	var weightedSum, weightMass float64
	for _, name := range c.names {
		w := c.weights[name]
		feat, ok := fv.Features[name]
		if !ok || feat.Missing {
			sig.Breakdown = append(sig.Breakdown, models.FeatureContribution{
				Feature: name,
				Weight:  w,
				Missing: true,
			})
			continue
		}
		weighted := w * feat.Value
		weightedSum += weighted
		weightMass += w
		sig.Breakdown = append(sig.Breakdown, models.FeatureContribution{
			Feature:  name,
			Value:    feat.Value,
			Weight:   w,
			Weighted: weighted,
		})
	}

	if weightMass == 0 {
		sig.Label = models.RegimeNeutral
		sig.InsufficientData = true
		return sig
	}

	sig.Composite = weightedSum / weightMass
	switch {
	case sig.Composite > c.threshold:
		sig.Label = models.RegimeBullish
	case sig.Composite < -c.threshold:
		sig.Label = models.RegimeBearish
	default:
		sig.Label = models.RegimeNeutral
	}

	if sig.Label != models.RegimeNeutral {
		conf := (math.Abs(sig.Composite) - c.threshold) / (1 - c.threshold)
		if conf < 0 {
			conf = 0
		}
		if conf > 1 {
			conf = 1
		}
		sig.Confidence = conf
	}
	return sig
}

// Threshold exposes the configured neutral band edge.
func (c *Classifier) Threshold() float64 { return c.threshold }
