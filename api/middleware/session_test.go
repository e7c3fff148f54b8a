package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSessionMintsIDWhenMissing(t *testing.T) {
	var captured string
	handler := Session(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = SessionIDFromContext(r.Context())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/cart", nil))

	if captured == "" {
		t.Fatal("expected a minted session id in context")
	}
	if got := w.Header().Get("X-Session-Id"); got != captured {
		t.Fatalf("expected echoed header %q, got %q", captured, got)
	}
}

func TestSessionPropagatesExistingID(t *testing.T) {
	var captured string
	handler := Session(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = SessionIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("X-Session-Id", "sess-42")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if captured != "sess-42" {
		t.Fatalf("expected sess-42, got %q", captured)
	}
	if got := w.Header().Get("X-Session-Id"); got != "sess-42" {
		t.Fatalf("expected echoed header sess-42, got %q", got)
	}
}
