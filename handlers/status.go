// Package handlers exposes the operational HTTP surface: liveness and
// readiness probes for whatever runs the process.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StatusHandler answers liveness and readiness probes.
type StatusHandler struct {
	db Pinger
}

// NewStatusHandler creates a status handler over the given store.
func NewStatusHandler(db Pinger) *StatusHandler {
	return &StatusHandler{db: db}
}

// Healthz reports process liveness.
func (h *StatusHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// Readyz reports readiness: the store must answer a ping.
func (h *StatusHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	w.Header().Set("Content-Type", "application/json")
	if err := h.db.Ping(ctx); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"unavailable"}`))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// NewRouter constructs the status router.
func NewRouter(db Pinger) *mux.Router {
	h := NewStatusHandler(db)

	r := mux.NewRouter()
	r.HandleFunc("/healthz", h.Healthz).Methods(http.MethodGet)
	r.HandleFunc("/readyz", h.Readyz).Methods(http.MethodGet)
	return r
}
