package di

import (
	"fmt"
	"time"

	domsvc "RegimePulse/internal/domain/service"
	"RegimePulse/internal/handler/api"
	internalrepo "RegimePulse/internal/repository"
	icache "RegimePulse/internal/service/cache"
	enginemetrics "RegimePulse/internal/service/metrics"
	"RegimePulse/internal/services/regime"
	"RegimePulse/internal/services/sentiment"
	"RegimePulse/internal/usecase"
	pkgcache "RegimePulse/pkg/cache"
	"RegimePulse/pkg/config"
	xhttp "RegimePulse/pkg/http"
	pkgkafka "RegimePulse/pkg/kafka"
	applogger "RegimePulse/pkg/logger"
	"RegimePulse/pkg/metrics"
	"RegimePulse/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domsvc.Metrics {
	return metrics.New()
}

// ProvideScorer creates the sentiment text scorer.
func ProvideScorer() domsvc.TextScorer {
	return sentiment.NewLexiconScorer()
}

// ProvideClassifier creates the regime classifier from configured weights.
func ProvideClassifier(cfg *config.Config) (*regime.Classifier, error) {
	return regime.NewClassifier(cfg.Engine.Weights, cfg.Engine.Threshold)
}

// ProvideComputationCache creates the evaluation result cache, wired into
// the cache hit/miss counters.
func ProvideComputationCache(cfg *config.Config) *pkgcache.Computation {
	enginemetrics.Register()
	return pkgcache.NewComputation(
		pkgcache.WithCapacity(cfg.Cache.Capacity),
		pkgcache.WithCleanupInterval(time.Duration(cfg.Cache.CleanupInterval)),
		pkgcache.WithObserver(
			func() { enginemetrics.CacheHits.Inc() },
			func() { enginemetrics.CacheMisses.Inc() },
		),
	)
}

// ProvideSignalPublisher creates the downstream signal publisher; a noop
// implementation is used when no broker is configured.
func ProvideSignalPublisher(cfg *config.Config) (domsvc.SignalPublisher, error) {
	if !cfg.Publisher.Enabled {
		return internalrepo.NoopSignalPublisher{}, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Publisher.Brokers),
		pkgkafka.WithCompression(cfg.Publisher.Compression),
		pkgkafka.WithRequiredAcks(cfg.Publisher.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Publisher.MaxAttempts),
		pkgkafka.WithTimeouts(time.Duration(cfg.Publisher.WriteTimeout), time.Duration(cfg.Publisher.ReadTimeout)),
		pkgkafka.WithAsync(cfg.Publisher.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaSignalPublisher(producer, cfg.Publisher.Topic), nil
}

// ProvideEvaluator creates the evaluation use case.
func ProvideEvaluator(
	cfg *config.Config,
	scorer domsvc.TextScorer,
	classifier *regime.Classifier,
	comp *pkgcache.Computation,
	publisher domsvc.SignalPublisher,
	m domsvc.Metrics,
	log *applogger.Logger,
) *usecase.Evaluator {
	return usecase.NewEvaluator(cfg, scorer, classifier, comp, publisher, m, log)
}

// ProvideHandler creates the HTTP handler with its optional response cache.
func ProvideHandler(cfg *config.Config, log *applogger.Logger, eval *usecase.Evaluator) xhttp.Handler {
	h := api.NewEvaluateHandler(log, eval)
	if cfg.ResponseCache.Enabled {
		var bc icache.BytesCache
		if cfg.ResponseCache.Redis.Enabled {
			bc = icache.NewRedisCache(icache.RedisConfig{
				Addr:     cfg.ResponseCache.Redis.Addr,
				Password: cfg.ResponseCache.Redis.Password,
				DB:       cfg.ResponseCache.Redis.DB,
			})
		} else {
			bc = icache.NewTTLCache()
		}
		h.SetResponseCache(bc, time.Duration(cfg.ResponseCache.TTL))
	}
	return h
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *applogger.Logger,
	handler xhttp.Handler,
	publisher domsvc.SignalPublisher,
	comp *pkgcache.Computation,
) *server.App {
	return server.New(cfg, log, handler, publisher, comp)
}
