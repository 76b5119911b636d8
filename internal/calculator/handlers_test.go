package calculator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"calcpad/internal/observability"
	"calcpad/internal/testutil"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestRouter(t *testing.T) (chi.Router, *Store) {
	t.Helper()

	if err := InitMetrics(); err != nil {
		t.Fatalf("initializing calculator metrics: %v", err)
	}

	store := NewStore(time.Minute, CountKeyPress)
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(store))
	return r, store
}

func useObservedLogger(t *testing.T) *observer.ObservedLogs {
	t.Helper()

	core, logs := observer.New(zap.InfoLevel)
	oldLogger := observability.Logger
	observability.Logger = zap.New(core)
	t.Cleanup(func() { observability.Logger = oldLogger })
	return logs
}

func createSession(t *testing.T, r http.Handler) SessionResponse {
	t.Helper()

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodPost, "/calculator/sessions", nil), r)
	testutil.CheckResponseCode(t, http.StatusCreated, w.Code)

	var resp SessionResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)
	return resp
}

func TestCreateSession(t *testing.T) {
	r, store := newTestRouter(t)
	logs := useObservedLogger(t)

	resp := createSession(t, r)

	if resp.ID == "" || resp.Display != "0" || resp.Pending != "" {
		t.Fatalf("unexpected new session response %+v", resp)
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 stored session, got %d", store.Len())
	}
	if n := logs.FilterMessage("calculator session created").Len(); n != 1 {
		t.Fatalf("expected 1 creation log, got %d", n)
	}
}

func TestPressKeys(t *testing.T) {
	r, _ := newTestRouter(t)
	session := createSession(t, r)
	target := "/calculator/sessions/" + session.ID + "/keys"

	steps := []struct {
		keys []string
		want View
	}{
		{keys: []string{"5", "+"}, want: View{Display: "5", Pending: "5 +"}},
		{keys: []string{"3"}, want: View{Display: "3", Pending: "5 + 3"}},
		{keys: []string{"x"}, want: View{Display: "8", Pending: "8 ×"}},
		{keys: []string{"2", "="}, want: View{Display: "16", LastResult: "16", LastOperation: "8 × 2"}},
		{keys: []string{"+", "4", "="}, want: View{Display: "20", LastResult: "20", LastOperation: "16 + 4"}},
	}

	for _, step := range steps {
		req := testutil.NewJSONRequest(t, http.MethodPost, target, KeysRequest{Keys: step.keys})
		w := testutil.ExecuteRequest(req, r)
		testutil.CheckResponseCode(t, http.StatusOK, w.Code)

		var resp SessionResponse
		testutil.DecodeJSONBody(t, w.Body, &resp)
		if resp.View != step.want {
			t.Fatalf("after %v: expected %+v, got %+v", step.keys, step.want, resp.View)
		}
	}
}

func TestPressKeysRejectsBadInputWithoutChangingSession(t *testing.T) {
	r, _ := newTestRouter(t)
	logs := useObservedLogger(t)
	session := createSession(t, r)
	base := "/calculator/sessions/" + session.ID

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "malformed json", body: `{"keys":`, wantErr: "invalid request body"},
		{name: "empty keys", body: `{"keys":[]}`, wantErr: "no keys provided"},
		{name: "unknown key", body: `{"keys":["1","%","2"]}`, wantErr: "invalid key sequence"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, base+"/keys", strings.NewReader(tc.body))
			w := testutil.ExecuteRequest(req, r)
			testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)

			var body map[string]string
			testutil.DecodeJSONBody(t, w.Body, &body)
			if !strings.HasPrefix(body["error"], tc.wantErr) {
				t.Fatalf("expected error starting with %q, got %q", tc.wantErr, body["error"])
			}
		})
	}

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, base, nil), r)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var resp SessionResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)
	if resp.Display != "0" {
		t.Fatalf("expected session untouched, got display %q", resp.Display)
	}

	if n := logs.FilterLevelExact(zap.WarnLevel).Len(); n != len(tests) {
		t.Fatalf("expected %d warn logs, got %d", len(tests), n)
	}
}

func TestUnknownSessionReturnsNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	tests := []struct {
		method string
		target string
		body   string
	}{
		{method: http.MethodGet, target: "/calculator/sessions/nope"},
		{method: http.MethodDelete, target: "/calculator/sessions/nope"},
		{method: http.MethodPost, target: "/calculator/sessions/nope/keys", body: `{"keys":["1"]}`},
	}

	for _, tc := range tests {
		t.Run(tc.method, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.target, strings.NewReader(tc.body))
			w := testutil.ExecuteRequest(req, r)
			testutil.CheckResponseCode(t, http.StatusNotFound, w.Code)
		})
	}
}

func TestDeleteSession(t *testing.T) {
	r, store := newTestRouter(t)
	session := createSession(t, r)

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodDelete, "/calculator/sessions/"+session.ID, nil), r)
	testutil.CheckResponseCode(t, http.StatusNoContent, w.Code)

	if store.Len() != 0 {
		t.Fatalf("expected no sessions, got %d", store.Len())
	}
}

func TestEvaluate(t *testing.T) {
	r, store := newTestRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/calculator/evaluate", KeysRequest{
		Keys: []string{"5", "÷", "0", "="},
	})
	w := testutil.ExecuteRequest(req, r)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var resp EvaluateResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)

	if resp.Display != "0" || resp.LastOperation != "5 ÷ 0" {
		t.Fatalf("unexpected view %+v", resp.View)
	}
	if len(resp.Steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(resp.Steps))
	}
	if resp.Steps[1].Key != KeyDivide || resp.Steps[1].Pending != "5 ÷" {
		t.Fatalf("unexpected step 1 %+v", resp.Steps[1])
	}
	if store.Len() != 0 {
		t.Fatal("evaluate must not create sessions")
	}
}

func TestEvaluateRejectsUnknownKey(t *testing.T) {
	r, _ := newTestRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/calculator/evaluate", KeysRequest{
		Keys: []string{"sqrt"},
	})
	w := testutil.ExecuteRequest(req, r)
	testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)
}
