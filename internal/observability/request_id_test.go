package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"calcpad/internal/testutil"

	"github.com/google/uuid"
)

func TestNewRequestIDReturnsUUID(t *testing.T) {
	id := NewRequestID()
	if id == "" {
		t.Fatal("expected non-empty request id")
	}

	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected valid UUID, got %q: %v", id, err)
	}
}

func TestRequestIDContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	want := NewRequestID()

	ctx = ContextWithRequestID(ctx, want)
	got := RequestIDFromContext(ctx)

	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRequestIDFromContextWhenMissingOrWrongType(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		got := RequestIDFromContext(context.Background())
		if got != "" {
			t.Fatalf("expected empty string, got %q", got)
		}
	})

	t.Run("wrong type", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), RequestIDKey, 42)
		got := RequestIDFromContext(ctx)
		if got != "" {
			t.Fatalf("expected empty string, got %q", got)
		}
	})
}

func TestIsRequestID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{name: "generated", id: NewRequestID(), want: true},
		{name: "upper case uuid", id: "3F2504E0-4F89-11D3-9A0C-0305E82C3301", want: true},
		{name: "empty", id: "", want: false},
		{name: "free text", id: "abc-123", want: false},
		{name: "header injection", id: "3f2504e0-4f89-11d3-9a0c-0305e82c3301\r\nX-Evil: 1", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsRequestID(tc.id); got != tc.want {
				t.Fatalf("IsRequestID(%q): expected %t, got %t", tc.id, tc.want, got)
			}
		})
	}
}

func TestIncomingRequestIDReachesHandlerContext(t *testing.T) {
	incoming := NewRequestID()

	var seen string
	h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodPost, "/calculator/sessions", nil)
	r.Header.Set(RequestIDHeader, incoming)
	w := testutil.ExecuteRequest(r, h)

	if seen != incoming {
		t.Fatalf("expected handler to see %q, got %q", incoming, seen)
	}
	if got := w.Result().Header.Get(RequestIDHeader); got != incoming {
		t.Fatalf("expected echoed header %q, got %q", incoming, got)
	}
}
