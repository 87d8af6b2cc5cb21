package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"QuantAnalyst/internal/collector"
	"QuantAnalyst/internal/metrics"
	"QuantAnalyst/internal/recorder"
	"QuantAnalyst/internal/strategy"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	metrics   *metrics.Recorder
	recorder  recorder.Recorder
	collector *collector.Collector
}

// NewHandler creates a new Handler. col may be nil when no market data
// source is configured, in which case symbol lookups are not served.
func NewHandler(m *metrics.Recorder, rec recorder.Recorder, col *collector.Collector) *Handler {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Handler{
		metrics:   m,
		recorder:  rec,
		collector: col,
	}
}

// RegisterRoutes mounts all endpoints on e.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.POST("/analyze", h.Analyze)
	if h.collector != nil {
		e.GET("/analyze/:symbol", h.AnalyzeSymbol)
	}
	e.GET("/evaluations", h.Evaluations)
	e.GET("/metrics", echo.WrapHandler(h.metrics.Handler()))
}

// Health handles GET /health
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Analyze handles POST /analyze
func (h *Handler) Analyze(c echo.Context) error {
	var req AnalyzeRequest
	if errs := bindAndValidate(c, &req); errs != nil {
		h.metrics.RecordError("bad_request")
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: errs})
	}

	report := h.evaluate(c.Request().Context(), recorder.SourceRequest, "", req.Prices)
	return c.JSON(http.StatusOK, AnalyzeResponse{TechnicalAnalysis: report})
}

// AnalyzeSymbol handles GET /analyze/:symbol
func (h *Handler) AnalyzeSymbol(c echo.Context) error {
	symbol := collector.NormalizeSymbol(c.Param("symbol"))
	ctx := c.Request().Context()

	closes, err := h.collector.Closes(ctx, symbol)
	if err != nil {
		if errors.Is(err, collector.ErrEmptySymbol) {
			h.metrics.RecordError("bad_request")
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		}
		h.metrics.RecordError("fetch")
		log.Error().Err(err).Str("symbol", symbol).Msg("fetch price series")
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "unable to fetch market data"})
	}

	report := h.evaluate(ctx, recorder.SourceSymbol, symbol, closes)
	return c.JSON(http.StatusOK, AnalyzeResponse{Symbol: symbol, TechnicalAnalysis: report})
}

// Evaluations handles GET /evaluations
func (h *Handler) Evaluations(c echo.Context) error {
	var q EvaluationsQuery
	if errs := bindAndValidate(c, &q); errs != nil {
		h.metrics.RecordError("bad_request")
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: errs})
	}

	recs, err := h.recorder.Recent(c.Request().Context(), q.Limit)
	if err != nil {
		h.metrics.RecordError("recorder")
		log.Error().Err(err).Msg("list evaluations")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "unable to list evaluations"})
	}

	out := make([]EvaluationDTO, 0, len(recs))
	for _, r := range recs {
		out = append(out, toEvaluationDTO(r))
	}
	return c.JSON(http.StatusOK, out)
}

// evaluate runs the indicator engine and records the outcome.
func (h *Handler) evaluate(ctx context.Context, source, symbol string, prices []float64) string {
	start := time.Now()
	ev := strategy.Run(prices)
	elapsed := time.Since(start)

	sufficient := ev.Snapshot != nil
	h.metrics.ObserveEvaluation(len(prices), sufficient, elapsed)
	log.Debug().
		Str("source", source).
		Str("symbol", symbol).
		Int("prices", len(prices)).
		Bool("sufficient", sufficient).
		Dur("elapsed", elapsed).
		Msg("evaluated price series")

	if err := h.recorder.RecordEvaluation(ctx, recorder.NewEvaluationRecord(source, symbol, len(prices), ev.Snapshot)); err != nil {
		h.metrics.RecordError("recorder")
		log.Error().Err(err).Msg("record evaluation")
	}
	return ev.Report
}
