package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func checks(listener, vocabulary error) map[string]CheckFunc {
	return map[string]CheckFunc{
		"listener":   func(context.Context) error { return listener },
		"vocabulary": func(context.Context) error { return vocabulary },
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) HealthResponse {
	t.Helper()
	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestLive_Always200(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler("test-version", checks(ErrNotReady, ErrNotReady))

	req := httptest.NewRequest(http.MethodGet, "/live", nil)
	rec := httptest.NewRecorder()

	h.Live(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	resp := decode(t, rec)
	if resp.Status != "ok" {
		t.Errorf("expected status 'ok', got %q", resp.Status)
	}
	if resp.Timestamp.IsZero() {
		t.Error("expected non-zero timestamp")
	}
}

func TestReady_AllUp(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler("test-version", checks(nil, nil))

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()

	h.Ready(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if resp := decode(t, rec); resp.Status != "ok" {
		t.Errorf("expected status 'ok', got %q", resp.Status)
	}
}

func TestReady_OneDown(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler("test-version", checks(ErrNotReady, nil))

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()

	h.Ready(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
	if resp := decode(t, rec); resp.Status != "down" {
		t.Errorf("expected status 'down', got %q", resp.Status)
	}
}

func TestReady_NoChecks(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler("test-version", nil)

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()

	h.Ready(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestHealth_AllOK(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler("v1.0.0", checks(nil, nil))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	resp := decode(t, rec)
	if resp.Status != "ok" {
		t.Errorf("expected status 'ok', got %q", resp.Status)
	}
	if resp.Version != "v1.0.0" {
		t.Errorf("expected version 'v1.0.0', got %q", resp.Version)
	}
	for _, name := range []string{"listener", "vocabulary"} {
		comp, ok := resp.Components[name]
		if !ok {
			t.Fatalf("expected %q component in response", name)
		}
		if comp.Status != "ok" {
			t.Errorf("expected %s status 'ok', got %q", name, comp.Status)
		}
		if comp.Latency == "" {
			t.Errorf("expected non-empty latency for %s", name)
		}
	}
}

func TestHealth_ComponentDown(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler("v1.0.0", checks(nil, errors.New("model not loaded")))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}

	resp := decode(t, rec)
	if resp.Status != "down" {
		t.Errorf("expected status 'down', got %q", resp.Status)
	}
	comp := resp.Components["vocabulary"]
	if comp.Status != "down" {
		t.Errorf("expected vocabulary status 'down', got %q", comp.Status)
	}
	if comp.Error != "model not loaded" {
		t.Errorf("expected error message, got %q", comp.Error)
	}
	if resp.Components["listener"].Status != "ok" {
		t.Errorf("listener should stay ok")
	}
}
