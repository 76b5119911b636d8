package calculator

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"calcpad/internal/handlers"
	"calcpad/internal/observability"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Handler serves the keypad session endpoints.
type Handler struct {
	store *Store
}

// NewHandler returns a Handler backed by store.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// ---------------------------------------------------------------------------
// Handlers — sessions
// ---------------------------------------------------------------------------

// CreateSession handles POST /calculator/sessions
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "calculator.session.create")
	defer span.End()

	s := h.store.Create(ctx)
	span.SetAttributes(attribute.String("calculator.session.id", s.ID))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator session created",
		zap.String("session_id", s.ID),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusCreated, SessionResponse{ID: s.ID, View: s.View()})
}

// GetSession handles GET /calculator/sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "calculator.session.get",
		trace.WithAttributes(attribute.String("calculator.session.id", id)),
	)
	defer span.End()

	s, err := h.store.Get(id)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "session.get", "session not found", err, http.StatusNotFound, w)
		return
	}

	span.SetStatus(codes.Ok, "")
	handlers.WriteJSON(w, http.StatusOK, SessionResponse{ID: s.ID, View: s.View()})
}

// DeleteSession handles DELETE /calculator/sessions/{id}
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "calculator.session.delete",
		trace.WithAttributes(attribute.String("calculator.session.id", id)),
	)
	defer span.End()

	if err := h.store.Delete(ctx, id); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "session.delete", "session not found", err, http.StatusNotFound, w)
		return
	}

	span.SetStatus(codes.Ok, "")
	logger.Info("calculator session deleted",
		zap.String("session_id", id),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)
	w.WriteHeader(http.StatusNoContent)
}

// PressKeys handles POST /calculator/sessions/{id}/keys — applies the keys in
// order, one child span per key. The whole batch is validated first so an
// unknown key leaves the session untouched.
func (h *Handler) PressKeys(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "calculator.session.keys",
		trace.WithAttributes(
			attribute.String("calculator.session.id", id),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	s, err := h.store.Get(id)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "session.keys", "session not found", err, http.StatusNotFound, w)
		return
	}

	keys, ok := decodeKeys(w, r, span, logger, "session.keys")
	if !ok {
		return
	}

	view, err := s.Press(ctx, keys...)
	if err != nil {
		// Deleted or evicted between lookup and press.
		observability.RecordError(ctx, span, logger, errorCounter, "session.keys", "session not found", err, http.StatusNotFound, w)
		return
	}

	span.SetAttributes(
		attribute.Int("calculator.keys.count", len(keys)),
		attribute.String("calculator.display", view.Display),
	)
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator keys applied",
		zap.String("session_id", id),
		zap.Int("keys", len(keys)),
		zap.String("display", view.Display),
		zap.String("pending", view.Pending),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, SessionResponse{ID: s.ID, View: view})
}

// ---------------------------------------------------------------------------
// Handler — stateless replay (demonstrates nested spans)
// ---------------------------------------------------------------------------

// Evaluate handles POST /calculator/evaluate — replays a key sequence against
// a fresh keypad, creating a child span for every key, and returns the final
// view together with the view after each key.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.evaluate",
		trace.WithAttributes(attribute.String("request.id", requestID)),
	)
	defer span.End()

	keys, ok := decodeKeys(w, r, span, logger, "evaluate")
	if !ok {
		return
	}

	view, steps := Replay(ctx, keys, h.store.feedback...)

	span.AddEvent("evaluate.complete", trace.WithAttributes(
		attribute.String("display", view.Display),
		attribute.Int("total_keys", len(keys)),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator key sequence evaluated",
		zap.Int("keys", len(keys)),
		zap.String("display", view.Display),
		zap.String("last_operation", view.LastOperation),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, EvaluateResponse{View: view, Steps: steps})
}

// decodeKeys reads a KeysRequest and parses every key. On failure it has
// already written the error response.
func decodeKeys(w http.ResponseWriter, r *http.Request, span trace.Span, logger *zap.Logger, opName string) ([]Key, bool) {
	ctx := r.Context()

	var req KeysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid request body", err, http.StatusBadRequest, w)
		return nil, false
	}

	if len(req.Keys) == 0 {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "no keys provided", errors.New("keys array is empty"), http.StatusBadRequest, w)
		return nil, false
	}

	keys, err := ParseKeys(req.Keys)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, fmt.Sprintf("invalid key sequence: %v", err), err, http.StatusBadRequest, w)
		return nil, false
	}
	return keys, true
}
