package engine

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"prev-engine/internal/calculations"
	"prev-engine/internal/model"
	"prev-engine/internal/repository"
	"prev-engine/internal/tables"
)

// Engine runs calculation requests against the statutory tables. Cache and
// history are optional and best effort: their failures are logged, never
// reported to the caller.
type Engine struct {
	tables   *tables.Registry
	cache    repository.CacheRepository
	cacheTTL time.Duration
	history  repository.HistoryRepository
	logger   *zap.Logger
}

type Option func(*Engine)

func WithCache(c repository.CacheRepository, ttl time.Duration) Option {
	return func(e *Engine) {
		e.cache = c
		e.cacheTTL = ttl
	}
}

func WithHistory(h repository.HistoryRepository) Option {
	return func(e *Engine) { e.history = h }
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

func New(registry *tables.Registry, opts ...Option) *Engine {
	e := &Engine{tables: registry, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type cacheEntry struct {
	Result   json.RawMessage            `json:"result"`
	Messages []model.CalculationMessage `json:"messages,omitempty"`
}

func (e *Engine) Process(ctx context.Context, req *model.CalculationRequest) *model.CalculationResponse {
	start := time.Now()
	requestID := uuid.New().String()

	tbl, fallback := e.tables.ForYear(ctx, req.ReferenceYear)

	var allMessages []model.CalculationMessage
	add := func(m model.CalculationMessage) int {
		m.ID = len(allMessages)
		allMessages = append(allMessages, m)
		return m.ID
	}

	if fallback {
		add(model.Warning("TABLES_FALLBACK",
			fmt.Sprintf("Tabelas de %d indisponíveis; usando as tabelas de %d", req.ReferenceYear, tbl.Year)))
	}

	processed := make([]model.ProcessedCalculation, 0, len(req.Calculations))
	outcome := model.OutcomeSuccess

	for i := range req.Calculations {
		calc := &req.Calculations[i]
		result, msgs := e.run(ctx, tbl, calc)

		pc := model.ProcessedCalculation{
			Calculation: *calc,
			Outcome:     model.OutcomeSuccess,
			Result:      result,
		}
		for _, m := range msgs {
			pc.CalculationMessageIndexes = append(pc.CalculationMessageIndexes, add(m))
		}
		if model.HasCritical(msgs) {
			pc.Outcome = model.OutcomeFailure
			pc.Result = nil
			outcome = model.OutcomeFailure
		} else {
			e.record(ctx, requestID, req.TenantID, tbl.Year, calc, result)
		}
		processed = append(processed, pc)
	}

	elapsed := time.Since(start)
	now := time.Now().UTC()

	if allMessages == nil {
		allMessages = []model.CalculationMessage{}
	}

	e.logger.Debug("calculation processed",
		zap.String("calculation_id", requestID),
		zap.String("tenant_id", req.TenantID),
		zap.Int("calculations", len(processed)),
		zap.String("outcome", outcome),
		zap.Duration("duration", elapsed))

	return &model.CalculationResponse{
		CalculationMetadata: model.CalculationMetadata{
			CalculationID:          requestID,
			TenantID:               req.TenantID,
			TablesYear:             tbl.Year,
			CalculationStartedAt:   now.Add(-elapsed).Format(time.RFC3339),
			CalculationCompletedAt: now.Format(time.RFC3339),
			CalculationDurationMs:  elapsed.Milliseconds(),
			CalculationOutcome:     outcome,
		},
		CalculationResult: model.CalculationResult{
			Messages:     allMessages,
			Calculations: processed,
		},
	}
}

// run validates and applies one calculation, consulting the cache first.
func (e *Engine) run(ctx context.Context, tbl *tables.Tables, calc *model.Calculation) (json.RawMessage, []model.CalculationMessage) {
	handler, ok := calculations.Get(calc.CalculationType)
	if !ok {
		return nil, []model.CalculationMessage{model.Critical("UNKNOWN_CALCULATION",
			fmt.Sprintf("Unknown calculation: %s", calc.CalculationType))}
	}

	key := cacheKey(tbl, calc)
	if entry, ok := e.cached(ctx, key); ok {
		return entry.Result, entry.Messages
	}

	msgs := handler.Validate(tbl, calc)
	if model.HasCritical(msgs) {
		return nil, msgs
	}

	result, applyMsgs := handler.Apply(tbl, calc)
	msgs = append(msgs, applyMsgs...)
	if model.HasCritical(msgs) {
		return nil, msgs
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return nil, append(msgs, model.Critical("INTERNAL_ERROR", "failed to encode result"))
	}

	e.store(ctx, key, cacheEntry{Result: raw, Messages: msgs})
	return raw, msgs
}

// cacheKey identifies a calculation by type, table contents and properties.
func cacheKey(tbl *tables.Tables, calc *model.Calculation) string {
	props := []byte(calc.Properties)
	var buf bytes.Buffer
	if err := json.Compact(&buf, props); err == nil {
		props = buf.Bytes()
	}
	return fmt.Sprintf("calc:%s:%016x:%016x", calc.CalculationType, tbl.Fingerprint(), xxhash.Sum64(props))
}

func (e *Engine) cached(ctx context.Context, key string) (cacheEntry, bool) {
	if e.cache == nil {
		return cacheEntry{}, false
	}
	s, ok := e.cache.Get(ctx, key)
	if !ok {
		return cacheEntry{}, false
	}
	var entry cacheEntry
	if err := json.Unmarshal([]byte(s), &entry); err != nil {
		e.logger.Warn("discarding unreadable cache entry", zap.String("key", key), zap.Error(err))
		return cacheEntry{}, false
	}
	return entry, true
}

func (e *Engine) store(ctx context.Context, key string, entry cacheEntry) {
	if e.cache == nil {
		return
	}
	b, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := e.cache.Set(ctx, key, string(b), e.cacheTTL); err != nil {
		e.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (e *Engine) record(ctx context.Context, requestID, tenantID string, year int, calc *model.Calculation, result json.RawMessage) {
	if e.history == nil {
		return
	}
	rec := repository.HistoryRecord{
		ID:              uuid.New().String(),
		RequestID:       requestID,
		TenantID:        tenantID,
		CalculationID:   calc.CalculationID,
		CalculationType: calc.CalculationType,
		TablesYear:      year,
		Properties:      calc.Properties,
		Result:          result,
		CreatedAt:       time.Now().UTC(),
	}
	if err := e.history.Save(ctx, rec); err != nil {
		e.logger.Warn("failed to save calculation history", zap.String("calculation_id", calc.CalculationID), zap.Error(err))
	}
}
