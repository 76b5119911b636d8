package calculator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// Feedback is invoked by a host after every transition, e.g. to pulse a
// haptic motor or ring a terminal bell. It must not block.
type Feedback func(ctx context.Context, k Key, v View)

// Step records one applied key.
type Step struct {
	Key Key `json:"key"`
	View
}

// Session owns the state of one keypad session. Key presses on a session
// are serialised. Once its store deletes or evicts it, a session rejects
// further presses even through a pointer obtained earlier.
type Session struct {
	ID string

	mu       sync.Mutex
	state    State
	lastUsed time.Time
	closed   bool
	feedback []Feedback
	now      func() time.Time
}

func newSession(id string, now func() time.Time, feedback []Feedback) *Session {
	return &Session{
		ID:       id,
		state:    New(),
		lastUsed: now(),
		feedback: feedback,
		now:      now,
	}
}

// Press applies keys in order and returns the resulting view. It returns
// ErrSessionNotFound without applying anything if the session has ended.
func (s *Session) Press(ctx context.Context, keys ...Key) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return View{}, ErrSessionNotFound
	}

	for i, k := range keys {
		s.state, _ = applyObserved(ctx, s.state, i, k, s.feedback)
	}
	s.lastUsed = s.now()

	return Render(s.state), nil
}

// View returns the current view without changing the state.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Render(s.state)
}

// State returns a copy of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// closeIfIdleBefore ends the session if it was last used before cutoff. The
// check and the close happen under one lock so a press cannot slip between.
func (s *Session) closeIfIdleBefore(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.lastUsed.Before(cutoff) {
		return false
	}
	s.closed = true
	return true
}

// Replay runs keys against a fresh state and returns every intermediate step.
func Replay(ctx context.Context, keys []Key, feedback ...Feedback) (View, []Step) {
	state := New()
	steps := make([]Step, 0, len(keys))

	for i, k := range keys {
		var step Step
		state, step = applyObserved(ctx, state, i, k, feedback)
		steps = append(steps, step)
	}
	return Render(state), steps
}

// applyObserved wraps Apply with a child span, metrics and host feedback.
func applyObserved(ctx context.Context, s State, index int, k Key, feedback []Feedback) (State, Step) {
	ctx, span := tracer.Start(ctx, "calculator.key",
		trace.WithAttributes(
			attribute.Int("calculator.key.index", index),
			attribute.String("calculator.key", string(k)),
			attribute.String("calculator.display.before", s.Display),
		),
	)
	defer span.End()

	evaluates := Evaluates(s, k)

	start := time.Now()
	next := Apply(s, k)
	elapsed := float64(time.Since(start).Nanoseconds()) / 1e6 // ms

	attrs := metric.WithAttributes(attribute.String("key", string(k)))
	keyHistogram.Record(ctx, elapsed, attrs)

	if evaluates {
		opAttrs := metric.WithAttributes(attribute.String("operator", string(s.Operator)))
		evaluationsCounter.Add(ctx, 1, opAttrs)
		resultGauge.Record(ctx, parseOperand(next.Display), opAttrs)

		span.AddEvent("evaluation.complete", trace.WithAttributes(
			attribute.String("operation", fmt.Sprintf("%s %s %s", s.FirstValue, s.Operator, s.Display)),
			attribute.String("result", next.Display),
		))
	}

	view := Render(next)
	span.SetAttributes(attribute.String("calculator.display.after", next.Display))
	span.SetStatus(codes.Ok, "")

	for _, fb := range feedback {
		fb(ctx, k, view)
	}

	return next, Step{Key: k, View: view}
}

// Evaluates reports whether pressing k in s completes the pending operation.
func Evaluates(s State, k Key) bool {
	if !s.Pending() {
		return false
	}
	if k == KeyEquals {
		return true
	}
	_, isOp := k.Operator()
	return isOp && !s.WaitingForOperand && !s.HasResult()
}
