package handler

import (
	"context"
	"net/http"
	"time"

	"go-ticket-tracker/internal/model"
)

// Pinger reports whether a backing service is reachable.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]Pinger
}

func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	components := make(map[string]string, len(h.checks))
	for name, ping := range h.checks {
		if err := ping(ctx); err != nil {
			components[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		components[name] = "ok"
	}

	if status == http.StatusOK {
		writeSuccess(w, status, map[string]any{"status": "ok", "components": components}, nil)
		return
	}

	// degraded reports keep the per-component detail next to the error
	writeEnvelope(w, status, model.APIResponse{
		Success: false,
		Data:    map[string]any{"status": "degraded", "components": components},
		Error:   &model.APIError{Code: "SERVICE_UNAVAILABLE", Message: "one or more dependencies are unavailable"},
	})
}
