package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rgehrsitz/bandcalc/internal/breakeven"
	"github.com/rgehrsitz/bandcalc/internal/calculation"
	"github.com/rgehrsitz/bandcalc/internal/compare"
	"github.com/rgehrsitz/bandcalc/internal/domain"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
)

const requestIDHeader = "X-Request-ID"

var log = logrus.WithField("module", "server")

// Server adapts form posts to the calculation engine. It holds no state of
// its own beyond the engine, so one Server may serve any number of requests.
type Server struct {
	engine   *calculation.CalculationEngine
	comparer *compare.CompareEngine
	solver   *breakeven.Solver
}

// New creates a Server over engine.
func New(engine *calculation.CalculationEngine) *Server {
	return &Server{
		engine:   engine,
		comparer: compare.NewCompareEngine(engine),
		solver:   breakeven.NewDefaultSolver(engine),
	}
}

// ListenAndServe serves on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	log.Infof("bandcalc listening on %s", addr)
	srv := &fasthttp.Server{
		Handler:      s.Handler,
		Name:         "bandcalc",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe(addr)
}

// Handler routes a request and logs its outcome.
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	id := string(ctx.Request.Header.Peek(requestIDHeader))
	if id == "" {
		id = uuid.NewString()
	}
	ctx.Response.Header.Set(requestIDHeader, id)
	entry := log.WithFields(logrus.Fields{
		"request_id": id,
		"method":     string(ctx.Method()),
		"path":       string(ctx.Path()),
	})
	start := time.Now()

	switch path := string(ctx.Path()); {
	case path == "/healthz":
		s.handleHealth(ctx)
	case path == "/schedules":
		if requireMethod(ctx, id, fasthttp.MethodGet) {
			s.handleSchedules(ctx, id)
		}
	case path == "/levy":
		if requireMethod(ctx, id, fasthttp.MethodPost) {
			s.handleLevy(ctx, id)
		}
	case path == "/maintenance":
		if requireMethod(ctx, id, fasthttp.MethodPost) {
			s.handleMaintenance(ctx, id)
		}
	case path == "/compare":
		if requireMethod(ctx, id, fasthttp.MethodPost) {
			s.handleCompare(ctx, id)
		}
	case path == "/max-price":
		if requireMethod(ctx, id, fasthttp.MethodPost) {
			s.handleMaxPrice(ctx, id)
		}
	default:
		writeError(ctx, id, fasthttp.StatusNotFound, fmt.Errorf("no route for %s", path))
	}

	entry.WithFields(logrus.Fields{
		"status":   ctx.Response.StatusCode(),
		"duration": time.Since(start),
	}).Debug("request handled")
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSchedules(ctx *fasthttp.RequestCtx, _ string) {
	schedules := lo.Map(s.engine.Schedules(), func(rs *domain.RateSchedule, _ int) ScheduleView {
		return ScheduleView{
			Name: rs.Name,
			Bands: lo.Map(rs.Bands, func(b domain.RateBand, _ int) BandView {
				return BandView{Label: b.Label(), Lower: b.Lower, Upper: b.Upper, Rate: b.Rate}
			}),
		}
	})
	writeJSON(ctx, fasthttp.StatusOK, SchedulesResponse{
		TaxYear:   s.engine.Regulatory.Metadata.TaxYear,
		Schedules: schedules,
	})
}

func (s *Server) handleLevy(ctx *fasthttp.RequestCtx, id string) {
	var req domain.LevyRequest
	if !decodeBody(ctx, id, &req) {
		return
	}
	result, err := s.engine.CalculateLevy(ctx, req)
	if err != nil {
		writeError(ctx, id, statusFor(err), err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, result)
}

func (s *Server) handleMaintenance(ctx *fasthttp.RequestCtx, id string) {
	var req domain.MaintenanceRequest
	if !decodeBody(ctx, id, &req) {
		return
	}
	result, err := s.engine.CalculateMaintenance(ctx, req)
	if err != nil {
		writeError(ctx, id, statusFor(err), err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, result)
}

func (s *Server) handleCompare(ctx *fasthttp.RequestCtx, id string) {
	var req CompareRequest
	if !decodeBody(ctx, id, &req) {
		return
	}
	base, err := compare.ParseProfile(req.Base)
	if err != nil {
		writeError(ctx, id, fasthttp.StatusBadRequest, err)
		return
	}
	alternatives := make([]compare.Profile, 0, len(req.Alternatives))
	for _, a := range req.Alternatives {
		p, err := compare.ParseProfile(a)
		if err != nil {
			writeError(ctx, id, fasthttp.StatusBadRequest, err)
			return
		}
		alternatives = append(alternatives, p)
	}
	if len(alternatives) == 0 {
		alternatives = compare.RegionProfiles(base.Region)
	}

	set, err := s.comparer.Compare(ctx, compare.CompareOptions{
		Amount:       req.Amount,
		Base:         base,
		Alternatives: alternatives,
	})
	if err != nil {
		writeError(ctx, id, statusFor(err), err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, set)
}

func (s *Server) handleMaxPrice(ctx *fasthttp.RequestCtx, id string) {
	var req MaxPriceRequest
	if !decodeBody(ctx, id, &req) {
		return
	}
	if req.BuyerType == "" {
		region, err := domain.ParseRegion(string(req.Region))
		if err != nil {
			writeError(ctx, id, fasthttp.StatusBadRequest, err)
			return
		}
		multi, err := s.solver.MaxPriceAcrossBuyers(ctx, req.Budget, region)
		if err != nil {
			writeError(ctx, id, statusFor(err), err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, multi)
		return
	}

	result, err := s.solver.MaxPrice(ctx, breakeven.MaxPriceRequest{
		Budget:    req.Budget,
		Region:    req.Region,
		BuyerType: req.BuyerType,
	})
	if err != nil {
		writeError(ctx, id, statusFor(err), err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, result)
}

func requireMethod(ctx *fasthttp.RequestCtx, id, method string) bool {
	if string(ctx.Method()) == method {
		return true
	}
	ctx.Response.Header.Set(fasthttp.HeaderAllow, method)
	writeError(ctx, id, fasthttp.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", ctx.Method()))
	return false
}

func decodeBody(ctx *fasthttp.RequestCtx, id string, v any) bool {
	body := ctx.PostBody()
	if len(body) == 0 {
		writeError(ctx, id, fasthttp.StatusBadRequest, errors.New("request body is required"))
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		writeError(ctx, id, fasthttp.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

// statusFor maps engine errors to HTTP statuses. Validation and solver
// failures are the caller's input; anything else is ours.
func statusFor(err error) int {
	var be *breakeven.BreakEvenError
	switch {
	case errors.Is(err, domain.ErrValidation):
		return fasthttp.StatusBadRequest
	case errors.As(err, &be):
		return fasthttp.StatusUnprocessableEntity
	}
	return fasthttp.StatusInternalServerError
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.WithError(err).Error("encode response")
		ctx.Error("internal error", fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(data)
}

func writeError(ctx *fasthttp.RequestCtx, id string, status int, err error) {
	resp := ErrorResponse{Status: status, Message: err.Error(), RequestID: id}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		resp.Field = ve.Field
	}
	if status >= fasthttp.StatusInternalServerError {
		log.WithField("request_id", id).WithError(err).Error("request failed")
	}
	writeJSON(ctx, status, resp)
}
