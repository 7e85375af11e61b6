// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

package ops

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/vigil/internal/logging"
)

const (
	// rateLimitRequests bounds requests per client IP per window.
	// Generous for scrapers (one poll per few seconds), tight enough
	// that a misconfigured client cannot busy-loop the endpoint.
	rateLimitRequests = 300

	// rateLimitWindow is the rate-limit accounting window.
	rateLimitWindow = time.Minute

	// readTimeout and writeTimeout bound one request's lifetime. The
	// payloads are tiny; anything slower is a stuck client.
	readTimeout  = 5 * time.Second
	writeTimeout = 10 * time.Second
)

// ReadyFunc reports whether the pipeline is ready to process lines.
type ReadyFunc func() bool

// healthResponse is the JSON body for the liveness and readiness probes.
type healthResponse struct {
	Status string `json:"status"`
}

// NewRouter builds the operational router. ready gates /readyz; nil
// means always ready.
func NewRouter(ready ReadyFunc) http.Handler {
	if ready == nil {
		ready = func() bool { return true }
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(httprate.LimitByIP(rateLimitRequests, rateLimitWindow))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
	})
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		if !ready() {
			writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "starting"})
			return
		}
		writeJSON(w, http.StatusOK, healthResponse{Status: "ready"})
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// NewServer builds the HTTP server for the operational endpoint,
// listening on addr.
func NewServer(addr string, ready ReadyFunc) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      NewRouter(ready),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
}

// writeJSON sends one small JSON payload. An encode failure here can
// only mean a broken connection, so it is logged and dropped.
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Debug().Err(err).Msg("Failed to write ops response")
	}
}
