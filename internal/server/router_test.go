package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"accumulator-api/internal/accumulator"
	"accumulator-api/internal/observability"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	observability.Logger = zap.NewNop()
	if err := accumulator.InitMetrics(); err != nil {
		t.Fatalf("initializing accumulator metrics: %v", err)
	}

	return NewRouter(accumulator.NewService())
}

func TestNewRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	if body := w.Body.String(); body != "ok" {
		t.Fatalf("expected body %q, got %q", "ok", body)
	}
}

func TestNewRouterAccumulatorSessionFlow(t *testing.T) {
	router := newTestRouter(t)

	// Create a session.
	req := httptest.NewRequest(http.MethodPost, "/accumulator", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, w.Code)
	}

	requestID := w.Result().Header.Get("X-Request-ID")
	if requestID == "" {
		t.Fatal("expected X-Request-ID header to be set")
	}
	if _, err := uuid.Parse(requestID); err != nil {
		t.Fatalf("expected valid UUID in X-Request-ID, got %q: %v", requestID, err)
	}

	var created map[string]any
	if err := json.NewDecoder(w.Result().Body).Decode(&created); err != nil {
		t.Fatalf("decoding JSON response: %v", err)
	}

	sessionID, ok := created["session_id"].(string)
	if !ok || sessionID == "" {
		t.Fatalf("expected session_id in response, got %#v", created)
	}

	// Apply an operation against the new session.
	body := []byte(`{"op":"add","value":5}`)
	req = httptest.NewRequest(http.MethodPost, "/accumulator/"+sessionID+"/apply", bytes.NewReader(body))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var payload map[string]any
	if err := json.NewDecoder(w.Result().Body).Decode(&payload); err != nil {
		t.Fatalf("decoding JSON response: %v", err)
	}

	if _, ok := payload["request_id"]; ok {
		t.Fatal("did not expect request_id field in success JSON body")
	}

	if got, ok := payload["result"].(float64); !ok || got != 5 {
		t.Fatalf("expected result 5, got %#v", payload["result"])
	}
}
