package repository

import (
	"context"
	"time"

	"RegimePulse/internal/domain/models"
	"RegimePulse/pkg/kafka"
)

// KafkaSignalPublisher emits every freshly computed regime signal to a
// Kafka topic, keyed by symbol so consumers see per-symbol ordering.
type KafkaSignalPublisher struct {
	producer *kafka.Producer
	topic    string
}

func NewKafkaSignalPublisher(producer *kafka.Producer, topic string) *KafkaSignalPublisher {
	return &KafkaSignalPublisher{producer: producer, topic: topic}
}

// signalEnvelope is the wire form of a published signal.
type signalEnvelope struct {
	Symbol           string                 `json:"symbol"`
	Label            string                 `json:"label"`
	Composite        float64                `json:"composite"`
	Confidence       float64                `json:"confidence"`
	AsOf             time.Time              `json:"as_of"`
	InsufficientData bool                   `json:"insufficient_data,omitempty"`
	Breakdown        []contributionEnvelope `json:"breakdown"`
}

type contributionEnvelope struct {
	Feature  string  `json:"feature"`
	Value    float64 `json:"value"`
	Weight   float64 `json:"weight"`
	Weighted float64 `json:"weighted"`
	Missing  bool    `json:"missing,omitempty"`
}

func (p *KafkaSignalPublisher) Publish(ctx context.Context, sig *models.RegimeSignal) error {
	env := signalEnvelope{
		Symbol:           sig.Symbol,
		Label:            string(sig.Label),
		Composite:        sig.Composite,
		Confidence:       sig.Confidence,
		AsOf:             sig.AsOf,
		InsufficientData: sig.InsufficientData,
		Breakdown:        make([]contributionEnvelope, 0, len(sig.Breakdown)),
	}
	for _, c := range sig.Breakdown {
		env.Breakdown = append(env.Breakdown, contributionEnvelope{
			Feature:  c.Feature,
			Value:    c.Value,
			Weight:   c.Weight,
			Weighted: c.Weighted,
			Missing:  c.Missing,
		})
	}
	return p.producer.Publish(ctx, p.topic, []byte(sig.Symbol), env)
}

func (p *KafkaSignalPublisher) Close() error {
	return p.producer.Close()
}

// NoopSignalPublisher is used when no broker is configured.
type NoopSignalPublisher struct{}

func (NoopSignalPublisher) Publish(context.Context, *models.RegimeSignal) error { return nil }
func (NoopSignalPublisher) Close() error                                        { return nil }
