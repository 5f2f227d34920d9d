// Package server exposes the estate calculator over HTTP.
package server

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/rpgo/estate-calculator/internal/calculation"
	"github.com/rpgo/estate-calculator/internal/config"
	"github.com/rpgo/estate-calculator/internal/domain"
	"github.com/rpgo/estate-calculator/internal/store"
)

const (
	routeProjection = "/v1/estate/projection"
	routeScenarios  = "/v1/estate/scenarios"
	routeRuns       = "/v1/runs"
	routeHealth     = "/healthz"
	routeMetrics    = "/metrics"
)

// ErrorResponse is the body of every non-2xx reply
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Server routes HTTP requests to the calculation engine. History is optional.
type Server struct {
	engine  *calculation.CalculationEngine
	parser  *config.InputParser
	history *store.Store
	logger  *zap.Logger
	metrics fasthttp.RequestHandler
	base    context.Context
}

// New creates a server. A nil history disables run persistence and the runs routes.
func New(engine *calculation.CalculationEngine, history *store.Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		engine:  engine,
		parser:  config.NewInputParser(),
		history: history,
		logger:  logger,
		metrics: fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler()),
		base:    context.Background(),
	}
}

// Handler returns the root request handler
func (s *Server) Handler() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		route := s.route(ctx)
		ctx.Response.Header.Set("Content-Type", "application/json")
		s.dispatch(ctx, route)

		status := ctx.Response.StatusCode()
		RequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
		RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		s.logger.Debug("request handled",
			zap.String("method", string(ctx.Method())),
			zap.String("path", string(ctx.Path())),
			zap.Int("status", status),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}

// route maps a path to a bounded metrics label
func (s *Server) route(ctx *fasthttp.RequestCtx) string {
	path := string(ctx.Path())
	switch {
	case path == routeProjection, path == routeScenarios, path == routeHealth, path == routeMetrics, path == routeRuns:
		return path
	case strings.HasPrefix(path, routeRuns+"/"):
		return routeRuns + "/:id"
	default:
		return "unknown"
	}
}

func (s *Server) dispatch(ctx *fasthttp.RequestCtx, route string) {
	switch route {
	case routeProjection:
		if requireMethod(ctx, fasthttp.MethodPost) {
			s.handleProjection(ctx)
		}
	case routeScenarios:
		if requireMethod(ctx, fasthttp.MethodPost) {
			s.handleScenarios(ctx)
		}
	case routeHealth:
		if requireMethod(ctx, fasthttp.MethodGet) {
			writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
		}
	case routeMetrics:
		if requireMethod(ctx, fasthttp.MethodGet) {
			s.metrics(ctx)
		}
	case routeRuns, routeRuns + "/:id":
		if s.history == nil {
			writeError(ctx, fasthttp.StatusNotFound, "run history is not enabled")
			return
		}
		if !requireMethod(ctx, fasthttp.MethodGet) {
			return
		}
		if route == routeRuns {
			s.handleListRuns(ctx)
		} else {
			s.handleGetRun(ctx, strings.TrimPrefix(string(ctx.Path()), routeRuns+"/"))
		}
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found: "+string(ctx.Path()))
	}
}

func (s *Server) handleProjection(ctx *fasthttp.RequestCtx) {
	var input domain.EstateInput
	if err := json.Unmarshal(ctx.PostBody(), &input); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.parser.ValidateInput(&input); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	summary, err := s.engine.Calculate(s.base, input)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	if s.history != nil {
		if _, err := s.history.SaveProjection(s.base, summary); err != nil {
			s.logger.Warn("failed to save projection", zap.Error(err))
		}
	}
	writeJSON(ctx, fasthttp.StatusOK, summary)
}

func (s *Server) handleScenarios(ctx *fasthttp.RequestCtx) {
	var cfg domain.Configuration
	if err := json.Unmarshal(ctx.PostBody(), &cfg); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.parser.ValidateConfiguration(&cfg); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	comparison, err := s.engine.RunScenarios(s.base, &cfg)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	ScenariosEvaluated.Add(float64(len(comparison.Scenarios)))
	if s.history != nil {
		if _, err := s.history.SaveComparison(s.base, comparison); err != nil {
			s.logger.Warn("failed to save comparison", zap.Error(err))
		}
	}
	writeJSON(ctx, fasthttp.StatusOK, comparison)
}

func (s *Server) handleListRuns(ctx *fasthttp.RequestCtx) {
	limit := 20
	if raw := ctx.QueryArgs().Peek("limit"); len(raw) > 0 {
		n, err := strconv.Atoi(string(raw))
		if err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}
	runs, err := s.history.ListRuns(s.base, limit)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}
	writeJSON(ctx, fasthttp.StatusOK, runs)
}

func (s *Server) handleGetRun(ctx *fasthttp.RequestCtx, id string) {
	run, err := s.history.GetRun(s.base, id)
	if errors.Is(err, store.ErrRunNotFound) {
		writeError(ctx, fasthttp.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		s.fail(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, run)
}

func (s *Server) fail(ctx *fasthttp.RequestCtx, err error) {
	s.logger.Error("request failed", zap.String("path", string(ctx.Path())), zap.Error(err))
	writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
}

func requireMethod(ctx *fasthttp.RequestCtx, method string) bool {
	if string(ctx.Method()) == method {
		return true
	}
	ctx.Response.Header.Set("Allow", method)
	writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
	return false
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetBodyString(`{"status":500,"message":"failed to encode response"}`)
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, ErrorResponse{Status: status, Message: message})
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully. In-flight
// requests are allowed to finish.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.base = context.WithoutCancel(ctx)
	srv := &fasthttp.Server{
		Handler:      s.Handler(),
		Name:         "estate-calculator",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("estate calculator listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		if err := srv.Shutdown(); err != nil {
			return err
		}
		return <-errCh
	}
}
