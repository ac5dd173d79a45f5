package accumulator

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"accumulator-api/internal/history"
	"accumulator-api/internal/observability"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the accumulator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("accumulator")

// Service exposes a session store of history chains over HTTP. Each session
// is one independent accumulator.
type Service struct {
	store *Store
}

// NewService returns a Service with an empty session store.
func NewService() *Service {
	return &Service{store: NewStore()}
}

// ---------------------------------------------------------------------------
// Handlers — session lifecycle
// ---------------------------------------------------------------------------

// CreateSession handles POST /accumulator — registers a fresh accumulator
// session starting at result 0.
func (s *Service) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "accumulator.session.create",
		trace.WithAttributes(attribute.String("request.id", requestID)),
	)
	defer span.End()

	id := s.store.Create()
	sessionGauge.Record(ctx, int64(s.store.Len()))

	span.SetAttributes(attribute.String("accumulator.session_id", id))
	span.SetStatus(codes.Ok, "")

	logger.Info("accumulator session created",
		zap.String("session_id", id),
		zap.String("request_id", requestID),
	)

	writeJSON(w, http.StatusCreated, ResultResponse{SessionID: id, Result: 0})
}

// DeleteSession handles DELETE /accumulator/{id} — discards the session and
// its entire history.
func (s *Service) DeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "accumulator.session.delete",
		trace.WithAttributes(
			attribute.String("accumulator.session_id", id),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	if !s.store.Delete(id) {
		observability.RecordError(ctx, span, logger, errorCounter, "delete", "unknown session", fmt.Errorf("session %q not found", id), http.StatusNotFound, w)
		return
	}

	sessionGauge.Record(ctx, int64(s.store.Len()))
	span.SetStatus(codes.Ok, "")

	logger.Info("accumulator session deleted",
		zap.String("session_id", id),
		zap.String("request_id", requestID),
	)

	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Handlers — chain operations
// ---------------------------------------------------------------------------

// Apply handles POST /accumulator/{id}/apply — applies one arithmetic
// operation to the session's running result.
func (s *Service) Apply(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "accumulator.apply",
		trace.WithAttributes(
			attribute.String("accumulator.session_id", id),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	chain, ok := s.store.Get(id)
	if !ok {
		observability.RecordError(ctx, span, logger, errorCounter, "apply", "unknown session", fmt.Errorf("session %q not found", id), http.StatusNotFound, w)
		return
	}

	var req ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "apply", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	op, err := history.ParseOperation(req.Op)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "apply", "unknown operation", err, http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(
		attribute.String("accumulator.operation", op.String()),
		attribute.Int("accumulator.operand", int(req.Value)),
	)

	start := time.Now()
	result, err := chain.Apply(op, req.Value)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, history.ErrDivideByZero) {
			status = http.StatusBadRequest
		}
		observability.RecordError(ctx, span, logger, errorCounter, op.String(), err.Error(), err, status, w)
		return
	}

	attrs := metric.WithAttributes(attribute.String("operation", op.String()))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)
	resultGauge.Record(ctx, int64(result), attrs)
	depthGauge.Record(ctx, int64(chain.Depth()))

	span.AddEvent("operation.applied", trace.WithAttributes(
		attribute.Int("result", int(result)),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.Int("accumulator.result", int(result)))
	span.SetStatus(codes.Ok, "")

	logger.Info("operation applied",
		zap.String("session_id", id),
		zap.String("operation", op.String()),
		zap.Int32("operand", req.Value),
		zap.Int32("result", result),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	writeJSON(w, http.StatusOK, ResultResponse{SessionID: id, Result: result})
}

// Undo handles POST /accumulator/{id}/undo — rolls the session back one
// step. Undoing an empty session returns 0 and changes nothing.
func (s *Service) Undo(w http.ResponseWriter, r *http.Request) {
	s.handleHistoryOp(w, r, "undo", undoCounter, func(chain *history.Chain) int32 {
		return chain.Undo()
	})
}

// Redo handles POST /accumulator/{id}/redo — re-applies the current step's
// own recorded operation on top of itself. Redo on an empty session returns
// 0 and changes nothing.
func (s *Service) Redo(w http.ResponseWriter, r *http.Request) {
	s.handleHistoryOp(w, r, "redo", redoCounter, func(chain *history.Chain) int32 {
		return chain.Redo()
	})
}

// handleHistoryOp is the shared implementation for undo and redo: both take
// no body, cannot fail, and report the post-operation result.
func (s *Service) handleHistoryOp(w http.ResponseWriter, r *http.Request, opName string, counter metric.Int64Counter, mutate func(*history.Chain) int32) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, fmt.Sprintf("accumulator.%s", opName),
		trace.WithAttributes(
			attribute.String("accumulator.session_id", id),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	chain, ok := s.store.Get(id)
	if !ok {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "unknown session", fmt.Errorf("session %q not found", id), http.StatusNotFound, w)
		return
	}

	start := time.Now()
	result := mutate(chain)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	attrs := metric.WithAttributes(attribute.String("operation", opName))
	counter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)
	resultGauge.Record(ctx, int64(result), attrs)
	depthGauge.Record(ctx, int64(chain.Depth()))

	span.SetAttributes(attribute.Int("accumulator.result", int(result)))
	span.SetStatus(codes.Ok, "")

	logger.Info("history operation completed",
		zap.String("session_id", id),
		zap.String("operation", opName),
		zap.Int32("result", result),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	writeJSON(w, http.StatusOK, ResultResponse{SessionID: id, Result: result})
}

// ---------------------------------------------------------------------------
// Handlers — read-only views
// ---------------------------------------------------------------------------

// Result handles GET /accumulator/{id}/result — reports the current result
// without mutating the chain.
func (s *Service) Result(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "accumulator.result",
		trace.WithAttributes(attribute.String("accumulator.session_id", id)),
	)
	defer span.End()

	chain, ok := s.store.Get(id)
	if !ok {
		observability.RecordError(ctx, span, logger, errorCounter, "result", "unknown session", fmt.Errorf("session %q not found", id), http.StatusNotFound, w)
		return
	}

	result := chain.Result()
	span.SetAttributes(attribute.Int("accumulator.result", int(result)))
	span.SetStatus(codes.Ok, "")

	writeJSON(w, http.StatusOK, ResultResponse{SessionID: id, Result: result})
}

// History handles GET /accumulator/{id}/history — reports the recorded
// steps, oldest first.
func (s *Service) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "accumulator.history",
		trace.WithAttributes(attribute.String("accumulator.session_id", id)),
	)
	defer span.End()

	chain, ok := s.store.Get(id)
	if !ok {
		observability.RecordError(ctx, span, logger, errorCounter, "history", "unknown session", fmt.Errorf("session %q not found", id), http.StatusNotFound, w)
		return
	}

	steps := chain.Steps()
	span.SetAttributes(attribute.Int("accumulator.history_depth", len(steps)))
	span.SetStatus(codes.Ok, "")

	writeJSON(w, http.StatusOK, HistoryResponse{
		SessionID: id,
		Depth:     len(steps),
		Steps:     steps,
		Result:    chain.Result(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
