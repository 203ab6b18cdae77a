package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"RegimePulse/internal/domain/models"
	icache "RegimePulse/internal/service/cache"
	"RegimePulse/internal/service/metrics"
	"RegimePulse/internal/service/ratelimit"
	"RegimePulse/internal/services/indicators"
	"RegimePulse/internal/services/sentiment"
	"RegimePulse/internal/usecase"
	xhttp "RegimePulse/pkg/http"
	xlogger "RegimePulse/pkg/logger"
)

// EvaluateHandler exposes the evaluation engine over Echo-based HTTP
// endpoints. Responses for identical payloads are additionally cached as raw
// bytes in front of the computation cache.
type EvaluateHandler struct {
	logger  *xlogger.Logger
	eval    *usecase.Evaluator
	cache   icache.BytesCache
	rl      *ratelimit.Limiter
	respTTL time.Duration
}

func NewEvaluateHandler(logger *xlogger.Logger, eval *usecase.Evaluator) *EvaluateHandler {
	metrics.Register()
	return &EvaluateHandler{
		logger:  logger,
		eval:    eval,
		rl:      ratelimit.New(),
		respTTL: 30 * time.Second,
	}
}

// SetResponseCache injects an optional bytes cache for whole responses.
func (h *EvaluateHandler) SetResponseCache(c icache.BytesCache, ttl time.Duration) {
	h.cache = c
	if ttl > 0 {
		h.respTTL = ttl
	}
}

func (h *EvaluateHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api")
	g.POST("/evaluate", h.Evaluate)
	g.POST("/indicators", h.Indicators)
	g.POST("/sentiment", h.Sentiment)
}

func (h *EvaluateHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *EvaluateHandler) Evaluate(c echo.Context) error {
	start := time.Now()
	endpoint := "evaluate"
	defer func() { metrics.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.EvaluateRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":evaluate", 10, 5) {
		h.logger.Warn("evaluate rate_limited", xlogger.String("remote", c.RealIP()))
		return xhttp.DataResponse(c, http.StatusTooManyRequests, "rate limited")
	}

	tf := models.NormalizeTimeframe(req.TF)

	series, err := models.ToSeries(req.Candles)
	if err != nil {
		return xhttp.BadRequestResponse(c, err.Error())
	}
	news, err := models.ToBatch(req.News)
	if err != nil {
		return xhttp.BadRequestResponse(c, err.Error())
	}

	cacheKey := fmt.Sprintf("evaluate:%s:%s:%016x", req.Symbol, tf, usecase.HashInputs(endpoint, series, news))
	if served, resp := h.replayCached(c, endpoint, cacheKey); served {
		return resp
	}

	sig, err := h.eval.Evaluate(c.Request().Context(), req.Symbol, string(tf), series, news)
	if err != nil {
		return h.evalError(c, endpoint, err)
	}
	return h.respond(c, endpoint, cacheKey, sig)
}

func (h *EvaluateHandler) Indicators(c echo.Context) error {
	start := time.Now()
	endpoint := "indicators"
	defer func() { metrics.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.IndicatorsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":indicators", 10, 5) {
		h.logger.Warn("indicators rate_limited", xlogger.String("remote", c.RealIP()))
		return xhttp.DataResponse(c, http.StatusTooManyRequests, "rate limited")
	}

	tf := models.NormalizeTimeframe(req.TF)

	series, err := models.ToSeries(req.Candles)
	if err != nil {
		return xhttp.BadRequestResponse(c, err.Error())
	}

	cacheKey := fmt.Sprintf("indicators:%s:%s:%016x", req.Symbol, tf, usecase.HashInputs(endpoint, series, nil))
	if served, resp := h.replayCached(c, endpoint, cacheKey); served {
		return resp
	}

	set, err := h.eval.Indicators(c.Request().Context(), req.Symbol, string(tf), series)
	if err != nil {
		return h.evalError(c, endpoint, err)
	}
	return h.respond(c, endpoint, cacheKey, set)
}

func (h *EvaluateHandler) Sentiment(c echo.Context) error {
	start := time.Now()
	endpoint := "sentiment"
	defer func() { metrics.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.SentimentRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":sentiment", 10, 5) {
		h.logger.Warn("sentiment rate_limited", xlogger.String("remote", c.RealIP()))
		return xhttp.DataResponse(c, http.StatusTooManyRequests, "rate limited")
	}

	news, err := models.ToBatch(req.News)
	if err != nil {
		return xhttp.BadRequestResponse(c, err.Error())
	}

	score := h.eval.Sentiment(news)
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"symbol": req.Symbol,
		"score":  score,
		"label":  sentiment.Label(score),
	})
}

// replayCached serves a cached response body when present.
func (h *EvaluateHandler) replayCached(c echo.Context, endpoint, key string) (bool, error) {
	if h.cache == nil {
		return false, nil
	}
	b, ok, err := h.cache.GetBytes(key)
	if err != nil {
		h.logger.Warn(endpoint+" cache_get_error", xlogger.Error(err))
		return false, nil
	}
	if !ok {
		return false, nil
	}
	h.logger.Debug(endpoint+" cache_hit", xlogger.String("key", key))
	return true, c.JSONBlob(http.StatusOK, b)
}

func (h *EvaluateHandler) respond(c echo.Context, endpoint, key string, data interface{}) error {
	if h.cache != nil {
		if b, err := xhttp.MarshalResponse(http.StatusOK, data); err == nil {
			if err := h.cache.SetBytes(key, b, h.respTTL); err != nil {
				h.logger.Warn(endpoint+" cache_set_error", xlogger.Error(err))
			}
		}
	}
	return xhttp.SuccessResponse(c, data)
}

func (h *EvaluateHandler) evalError(c echo.Context, endpoint string, err error) error {
	var verr *indicators.ValidationError
	if errors.As(err, &verr) {
		return xhttp.BadRequestResponse(c, verr.Error())
	}
	metrics.EndpointErrors.WithLabelValues(endpoint).Inc()
	h.logger.Error(endpoint+" usecase error", xlogger.Error(err))
	return xhttp.AppErrorResponse(c, err)
}
