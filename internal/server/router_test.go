package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"calcpad/internal/calculator"
	"calcpad/internal/observability"
	"calcpad/internal/testutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	observability.Logger = zap.NewNop()
	if err := calculator.InitMetrics(); err != nil {
		t.Fatalf("initializing calculator metrics: %v", err)
	}

	return NewRouter(calculator.NewHandler(calculator.NewStore(time.Minute)))
}

func TestNewRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := testutil.ExecuteRequest(req, router)

	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	if body := w.Body.String(); body != "ok" {
		t.Fatalf("expected body %q, got %q", "ok", body)
	}
}

func TestNewRouterMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	_ = testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/health", nil), router)
	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/metrics", nil), router)

	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	if !strings.Contains(w.Body.String(), "http_requests_total") {
		t.Fatal("expected http_requests_total in /metrics output")
	}
}

func TestNewRouterEvaluateSetsHeaderAndOmitsRequestIDInBody(t *testing.T) {
	router := newTestRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/calculator/evaluate", calculator.KeysRequest{
		Keys: []string{"2", "+", "3", "="},
	})
	w := testutil.ExecuteRequest(req, router)

	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	requestID := w.Result().Header.Get("X-Request-ID")
	if requestID == "" {
		t.Fatal("expected X-Request-ID header to be set")
	}
	if _, err := uuid.Parse(requestID); err != nil {
		t.Fatalf("expected valid UUID in X-Request-ID, got %q: %v", requestID, err)
	}

	var payload map[string]any
	testutil.DecodeJSONBody(t, w.Result().Body, &payload)

	if _, ok := payload["request_id"]; ok {
		t.Fatal("did not expect request_id field in success JSON body")
	}

	if got := payload["display"]; got != "5" {
		t.Fatalf("expected display %q, got %#v", "5", got)
	}
}

func TestNewRouterSessionLifecycle(t *testing.T) {
	router := newTestRouter(t)

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodPost, "/calculator/sessions", nil), router)
	testutil.CheckResponseCode(t, http.StatusCreated, w.Code)

	var created calculator.SessionResponse
	testutil.DecodeJSONBody(t, w.Body, &created)

	base := "/calculator/sessions/" + created.ID

	req := testutil.NewJSONRequest(t, http.MethodPost, base+"/keys", calculator.KeysRequest{
		Keys: []string{"1", "2", "+", "7", "="},
	})
	w = testutil.ExecuteRequest(req, router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var pressed calculator.SessionResponse
	testutil.DecodeJSONBody(t, w.Body, &pressed)
	if pressed.Display != "19" || pressed.LastOperation != "12 + 7" {
		t.Fatalf("unexpected view after keys: %+v", pressed.View)
	}

	w = testutil.ExecuteRequest(httptest.NewRequest(http.MethodDelete, base, nil), router)
	testutil.CheckResponseCode(t, http.StatusNoContent, w.Code)

	w = testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, base, nil), router)
	testutil.CheckResponseCode(t, http.StatusNotFound, w.Code)
}
