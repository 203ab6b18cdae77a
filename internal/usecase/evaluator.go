package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"RegimePulse/internal/domain/models"
	domsvc "RegimePulse/internal/domain/service"
	"RegimePulse/internal/services/features"
	"RegimePulse/internal/services/indicators"
	"RegimePulse/internal/services/regime"
	"RegimePulse/internal/services/sentiment"
	"RegimePulse/pkg/cache"
	"RegimePulse/pkg/config"
	"RegimePulse/pkg/logger"
)

const publishTimeout = 5 * time.Second

// Evaluator orchestrates one regime evaluation: indicators over the candle
// series, sentiment over the news batch, feature aggregation and
// classification, fronted by the computation cache. It owns no input data;
// callers supply candles and news per request.
type Evaluator struct {
	cfg        *config.Config
	scorer     domsvc.TextScorer
	classifier *regime.Classifier
	comp       *cache.Computation
	publisher  domsvc.SignalPublisher
	metrics    domsvc.Metrics
	log        *logger.Logger
}

func NewEvaluator(
	cfg *config.Config,
	scorer domsvc.TextScorer,
	classifier *regime.Classifier,
	comp *cache.Computation,
	publisher domsvc.SignalPublisher,
	metrics domsvc.Metrics,
	log *logger.Logger,
) *Evaluator {
	return &Evaluator{
		cfg:        cfg,
		scorer:     scorer,
		classifier: classifier,
		comp:       comp,
		publisher:  publisher,
		metrics:    metrics,
		log:        log,
	}
}

// Evaluate classifies the market regime for symbol from the supplied candles
// and news. Results are cached per (symbol, timeframe, as-of, payload hash)
// with the timeframe's TTL; concurrent identical requests share one
// computation. A fresh (non-cached) signal is also handed to the publisher,
// best-effort.
func (e *Evaluator) Evaluate(ctx context.Context, symbol, tf string, series models.PriceSeries, news models.NewsBatch) (*models.RegimeSignal, error) {
	start := time.Now()
	evalID := uuid.NewString()

	if err := indicators.ValidateSeries(series); err != nil {
		e.metrics.RecordError("invalid_series")
		return nil, err
	}

	last, _ := series.Last()
	key := cache.Key{
		Symbol:      symbol,
		Timeframe:   tf,
		AsOf:        last.Timestamp.Unix(),
		ContentHash: HashInputs("evaluate", series, news),
	}

	v, err := e.comp.GetOrCompute(ctx, key, e.cfg.CacheTTL(tf), func(ctx context.Context) (interface{}, error) {
		sig, err := e.evaluate(symbol, series, news)
		if err != nil {
			return nil, err
		}
		e.publish(sig)
		return sig, nil
	})
	if err != nil {
		e.metrics.RecordError("evaluate")
		return nil, err
	}

	sig := v.(*models.RegimeSignal)
	e.metrics.RecordEvaluation(symbol, string(sig.Label))
	e.metrics.RecordComposite(symbol, sig.Composite)
	e.metrics.RecordLatency("evaluate", time.Since(start).Seconds())

	e.log.Info("evaluated regime",
		logger.String("eval_id", evalID),
		logger.String("symbol", symbol),
		logger.String("tf", tf),
		logger.String("label", string(sig.Label)),
		logger.Float64("composite", sig.Composite),
		logger.Float64("confidence", sig.Confidence),
		logger.Bool("insufficient_data", sig.InsufficientData),
		logger.Duration("took", time.Since(start)),
	)
	return sig, nil
}

// Indicators computes the raw indicator snapshot for a candle series,
// cached like full evaluations but keyed on the candles alone.
func (e *Evaluator) Indicators(ctx context.Context, symbol, tf string, series models.PriceSeries) (models.IndicatorSet, error) {
	if err := indicators.ValidateSeries(series); err != nil {
		e.metrics.RecordError("invalid_series")
		return nil, err
	}

	last, _ := series.Last()
	key := cache.Key{
		Symbol:      symbol,
		Timeframe:   tf,
		AsOf:        last.Timestamp.Unix(),
		ContentHash: HashInputs("indicators", series, nil),
	}

	v, err := e.comp.GetOrCompute(ctx, key, e.cfg.CacheTTL(tf), func(context.Context) (interface{}, error) {
		return indicators.Snapshot(series, e.cfg.Engine.Indicators)
	})
	if err != nil {
		e.metrics.RecordError("indicators")
		return nil, err
	}
	return v.(models.IndicatorSet), nil
}

// Sentiment scores a news batch. Cheap enough that it bypasses the cache.
func (e *Evaluator) Sentiment(news models.NewsBatch) models.SentimentScore {
	return sentiment.ScoreBatch(e.scorer, news)
}

func (e *Evaluator) evaluate(symbol string, series models.PriceSeries, news models.NewsBatch) (*models.RegimeSignal, error) {
	set, err := indicators.Snapshot(series, e.cfg.Engine.Indicators)
	if err != nil {
		return nil, err
	}

	score := sentiment.ScoreBatch(e.scorer, news)
	last, _ := series.Last()
	fv := features.Build(set, score, last.Close, last.Timestamp)

	return e.classifier.Classify(symbol, fv), nil
}

// publish hands a fresh signal downstream without blocking the caller.
// Failures are logged and dropped.
func (e *Evaluator) publish(sig *models.RegimeSignal) {
	if e.publisher == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := e.publisher.Publish(ctx, sig); err != nil {
			e.metrics.RecordError("publish")
			e.log.Warn("signal publish failed",
				logger.String("symbol", sig.Symbol),
				logger.Error(err),
			)
		}
	}()
}
