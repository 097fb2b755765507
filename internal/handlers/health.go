package handlers

import (
	"context"
	"net/http"
)

// HealthChecker is anything that can report its own liveness.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthHandler exposes liveness and readiness probes. Either dependency may
// be nil (memory backend, Redis disabled) and is then skipped.
type HealthHandler struct {
	db    HealthChecker
	redis HealthChecker
}

func NewHealthHandler(db, redis HealthChecker) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	checks := map[string]HealthChecker{
		"database": h.db,
		"redis":    h.redis,
	}
	for name, checker := range checks {
		if checker == nil {
			continue
		}
		if err := checker.Health(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"failed": name,
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
