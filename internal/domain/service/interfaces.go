package service

import (
	"context"

	"RegimePulse/internal/domain/models"
)

// TextScorer scores a single text snippet for polarity in [-1,1]. Scorers
// must be deterministic: the same text always yields the same score.
type TextScorer interface {
	Score(text string) float64
}

// SignalPublisher pushes produced regime signals to downstream consumers.
// Publishing is best-effort and never blocks an evaluation result.
type SignalPublisher interface {
	Publish(ctx context.Context, sig *models.RegimeSignal) error
	Close() error
}

// Metrics records engine-level observations.
type Metrics interface {
	RecordEvaluation(symbol, label string)
	RecordComposite(symbol string, composite float64)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
