// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

package ops

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeStatus(t *testing.T, body string) string {
	t.Helper()
	var resp struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("unmarshal %q: %v", body, err)
	}
	return resp.Status
}

func TestRouter_Healthz_AlwaysOK(t *testing.T) {
	t.Parallel()

	router := NewRouter(func() bool { return false })
	rec := get(t, router, "/healthz")

	if rec.Code != http.StatusOK {
		t.Errorf("GET /healthz status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := decodeStatus(t, rec.Body.String()); got != "ok" {
		t.Errorf("status field = %q, want %q", got, "ok")
	}
}

func TestRouter_Readyz_FollowsReadiness(t *testing.T) {
	t.Parallel()

	ready := false
	router := NewRouter(func() bool { return ready })

	rec := get(t, router, "/readyz")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("GET /readyz before ready: status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
	if got := decodeStatus(t, rec.Body.String()); got != "starting" {
		t.Errorf("status field = %q, want %q", got, "starting")
	}

	ready = true
	rec = get(t, router, "/readyz")
	if rec.Code != http.StatusOK {
		t.Errorf("GET /readyz when ready: status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := decodeStatus(t, rec.Body.String()); got != "ready" {
		t.Errorf("status field = %q, want %q", got, "ready")
	}
}

func TestRouter_NilReadyFuncDefaultsToReady(t *testing.T) {
	t.Parallel()

	router := NewRouter(nil)
	rec := get(t, router, "/readyz")
	if rec.Code != http.StatusOK {
		t.Errorf("GET /readyz with nil ReadyFunc: status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRouter_MetricsExposesRegistry(t *testing.T) {
	t.Parallel()

	router := NewRouter(nil)
	rec := get(t, router, "/metrics")

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /metrics status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Error("metrics output missing standard Go collector series")
	}
}

func TestNewServer_Configuration(t *testing.T) {
	t.Parallel()

	srv := NewServer("127.0.0.1:9115", nil)
	if srv.Addr != "127.0.0.1:9115" {
		t.Errorf("Addr = %q, want %q", srv.Addr, "127.0.0.1:9115")
	}
	if srv.Handler == nil {
		t.Error("Handler is nil")
	}
	if srv.ReadTimeout != readTimeout || srv.WriteTimeout != writeTimeout {
		t.Errorf("timeouts = %v/%v, want %v/%v", srv.ReadTimeout, srv.WriteTimeout, readTimeout, writeTimeout)
	}
}
