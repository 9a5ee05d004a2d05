package handler

import (
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"prev-engine/internal/engine"
	"prev-engine/internal/jsonpatch"
	"prev-engine/internal/model"
	"prev-engine/internal/repository"
	"prev-engine/internal/tables"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type Handler struct {
	engine  *engine.Engine
	history repository.HistoryRepository
	tables  *tables.Registry
	logger  *zap.Logger
}

func New(e *engine.Engine, history repository.HistoryRepository, registry *tables.Registry, logger *zap.Logger) *Handler {
	return &Handler{engine: e, history: history, tables: registry, logger: logger}
}

// Routes returns the request handler for all endpoints.
func (h *Handler) Routes() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		switch string(ctx.Path()) {
		case "/calculations":
			h.HandleCalculation(ctx)
		case "/history":
			h.HandleHistory(ctx)
		case "/tables":
			h.HandleTables(ctx)
		case "/tables/diff":
			h.HandleTablesDiff(ctx)
		case "/healthz":
			writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
		default:
			writeError(ctx, fasthttp.StatusNotFound, "Not found")
		}
	}
}

func (h *Handler) HandleCalculation(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req model.CalculationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if len(req.Calculations) == 0 {
		writeError(ctx, fasthttp.StatusBadRequest, "At least one calculation is required")
		return
	}

	resp := h.engine.Process(ctx, &req)
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (h *Handler) HandleHistory(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	args := ctx.QueryArgs()
	limit := defaultHistoryLimit
	if raw := args.Peek("limit"); len(raw) > 0 {
		n, err := strconv.Atoi(string(raw))
		if err != nil || n <= 0 {
			writeError(ctx, fasthttp.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	recs, err := h.history.List(ctx, string(args.Peek("tenant_id")), limit)
	if err != nil {
		h.logger.Error("history lookup failed", zap.Error(err))
		writeError(ctx, fasthttp.StatusInternalServerError, "History unavailable")
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, recs)
}

func (h *Handler) HandleTables(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	year, ok := yearArg(ctx, "year")
	if !ok {
		return
	}

	t, fallback := h.tables.ForYear(ctx, year)
	if fallback {
		writeError(ctx, fasthttp.StatusNotFound, "Tables not available for year "+strconv.Itoa(year))
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, t)
}

// HandleTablesDiff returns the JSON Patch that turns the "from" year's tables
// into the "to" year's tables. A missing "to" means the current tables.
func (h *Handler) HandleTablesDiff(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	from, ok := yearArg(ctx, "from")
	if !ok {
		return
	}
	if from == 0 {
		writeError(ctx, fasthttp.StatusBadRequest, "from is required")
		return
	}
	to, ok := yearArg(ctx, "to")
	if !ok {
		return
	}

	a, fallback := h.tables.ForYear(ctx, from)
	if fallback {
		writeError(ctx, fasthttp.StatusNotFound, "Tables not available for year "+strconv.Itoa(from))
		return
	}
	b, fallback := h.tables.ForYear(ctx, to)
	if fallback {
		writeError(ctx, fasthttp.StatusNotFound, "Tables not available for year "+strconv.Itoa(to))
		return
	}

	ops, err := jsonpatch.Between(a, b)
	if err != nil {
		h.logger.Error("tables diff failed", zap.Error(err))
		writeError(ctx, fasthttp.StatusInternalServerError, "Could not compare tables")
		return
	}
	if ops == nil {
		ops = []jsonpatch.Operation{}
	}
	writeJSON(ctx, fasthttp.StatusOK, ops)
}

// yearArg reads an optional positive year query argument. It writes a 400 and
// returns false when the value is malformed.
func yearArg(ctx *fasthttp.RequestCtx, name string) (int, bool) {
	raw := ctx.QueryArgs().Peek(name)
	if len(raw) == 0 {
		return 0, true
	}
	n, err := strconv.Atoi(string(raw))
	if err != nil || n <= 0 {
		writeError(ctx, fasthttp.StatusBadRequest, name+" must be a positive integer")
		return 0, false
	}
	return n, true
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	if err := json.NewEncoder(ctx).Encode(v); err != nil {
		ctx.Error("encode response", fasthttp.StatusInternalServerError)
	}
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, model.ErrorResponse{
		Status:  status,
		Message: message,
	})
}
