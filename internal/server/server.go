// Package server exposes the benefit engine over HTTP using fasthttp.
package server

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rgehrsitz/ssbenefit/internal/calculation"
	"github.com/rgehrsitz/ssbenefit/internal/domain"
	"github.com/rgehrsitz/ssbenefit/internal/wageindex"
	"github.com/valyala/fasthttp"
)

// Options configures the HTTP server
type Options struct {
	Addr               string
	ReadTimeout        time.Duration
	MaxRequestBodySize int
}

// Server serves benefit calculations
type Server struct {
	engine *calculation.CalculationEngine
	logger *slog.Logger
	opts   Options
	newID  func() string
}

// New creates a server over engine. A nil logger uses slog.Default().
func New(engine *calculation.CalculationEngine, logger *slog.Logger, opts Options) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		engine: engine,
		logger: logger,
		opts:   opts,
		newID:  func() string { return uuid.New().String() },
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &fasthttp.Server{
		Handler:            s.Handler(),
		Name:               "ssbenefit",
		ReadTimeout:        s.opts.ReadTimeout,
		MaxRequestBodySize: s.opts.MaxRequestBodySize,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.opts.Addr)
		errCh <- srv.ListenAndServe(s.opts.Addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("server shutting down")
		return srv.Shutdown()
	}
}

// Handler returns the request router
func (s *Server) Handler() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		path := string(ctx.Path())

		switch path {
		case "/healthz":
			if s.allow(ctx, fasthttp.MethodGet) {
				writeJSON(ctx, fasthttp.StatusOK, HealthResponse{Status: "ok"})
			}
		case "/v1/benefits":
			if s.allow(ctx, fasthttp.MethodPost) {
				s.handleBenefits(ctx, start)
			}
		case "/v1/sweep":
			if s.allow(ctx, fasthttp.MethodPost) {
				s.handleSweep(ctx, start)
			}
		case "/v1/wage-index":
			if s.allow(ctx, fasthttp.MethodGet) {
				s.handleWageIndex(ctx)
			}
		default:
			writeError(ctx, fasthttp.StatusNotFound, "NOT_FOUND", "no route for "+path)
		}

		s.logger.Debug("request",
			"method", string(ctx.Method()),
			"path", path,
			"status", ctx.Response.StatusCode(),
			"duration", time.Since(start))
	}
}

func (s *Server) allow(ctx *fasthttp.RequestCtx, method string) bool {
	if string(ctx.Method()) == method {
		return true
	}
	ctx.Response.Header.Set("Allow", method)
	writeError(ctx, fasthttp.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "use "+method)
	return false
}

func (s *Server) decode(ctx *fasthttp.RequestCtx, requireClaim bool) (domain.BenefitRequest, BenefitsRequest, bool) {
	var body BenefitsRequest
	if err := json.Unmarshal(ctx.PostBody(), &body); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "INVALID_JSON", "invalid request body: "+err.Error())
		return domain.BenefitRequest{}, body, false
	}
	req, err := body.toDomain(requireClaim)
	if err != nil {
		s.fail(ctx, err)
		return domain.BenefitRequest{}, body, false
	}
	return req, body, true
}

func (s *Server) handleBenefits(ctx *fasthttp.RequestCtx, start time.Time) {
	req, body, ok := s.decode(ctx, true)
	if !ok {
		return
	}
	result, err := s.engine.Calculate(req, calculation.Include{
		Disability: body.IncludeDisability,
		Survivor:   body.IncludeSurvivor,
	})
	if err != nil {
		s.fail(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, BenefitsResponse{
		ResponseMetadata: s.metadata(start),
		Result:           result,
	})
}

func (s *Server) handleSweep(ctx *fasthttp.RequestCtx, start time.Time) {
	req, _, ok := s.decode(ctx, false)
	if !ok {
		return
	}
	options, err := s.engine.SweepClaimDates(ctx, req)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, SweepResponse{
		ResponseMetadata: s.metadata(start),
		Options:          options,
	})
}

func (s *Server) handleWageIndex(ctx *fasthttp.RequestCtx) {
	table := s.engine.Table()
	resp := WageIndexResponse{CutoffYear: table.CutoffYear()}

	if raw := ctx.QueryArgs().Peek("year"); len(raw) > 0 {
		year, err := strconv.Atoi(string(raw))
		if err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "INVALID_YEAR", "year must be an integer")
			return
		}
		entry, err := table.Lookup(year)
		if err != nil {
			s.fail(ctx, err)
			return
		}
		resp.Entries = []wageindex.Entry{entry}
		writeJSON(ctx, fasthttp.StatusOK, resp)
		return
	}

	for _, year := range table.Years() {
		entry, err := table.Lookup(year)
		if err != nil {
			s.fail(ctx, err)
			return
		}
		resp.Entries = append(resp.Entries, entry)
	}
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (s *Server) metadata(start time.Time) ResponseMetadata {
	return ResponseMetadata{
		CalculationID: s.newID(),
		DurationMs:    time.Since(start).Milliseconds(),
	}
}

// fail maps an engine error to its HTTP status
func (s *Server) fail(ctx *fasthttp.RequestCtx, err error) {
	status := StatusFor(err)
	if status >= fasthttp.StatusInternalServerError {
		s.logger.Error("calculation failed", "path", string(ctx.Path()), "err", err)
	}
	writeError(ctx, status, domain.ErrorCode(err), err.Error())
}

// StatusFor returns the HTTP status for an engine error kind
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrMissingInput),
		errors.Is(err, domain.ErrInvalidDateOrder),
		errors.Is(err, domain.ErrInvalidBirthYear),
		errors.Is(err, domain.ErrInvalidEarnings),
		errors.Is(err, domain.ErrInvalidDate):
		return fasthttp.StatusBadRequest
	case errors.Is(err, domain.ErrMissingWageIndexData):
		return fasthttp.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fasthttp.StatusServiceUnavailable
	default:
		return fasthttp.StatusInternalServerError
	}
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		ctx.Error(`{"status":500,"code":"INTERNAL","message":"encoding response"}`, fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(data)
}

func writeError(ctx *fasthttp.RequestCtx, status int, code, message string) {
	writeJSON(ctx, status, ErrorResponse{Status: status, Code: code, Message: message})
}
