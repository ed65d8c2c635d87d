package api

import (
	"net/http"
	"time"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rs/zerolog/log"
)

type healthHandler struct {
	responder   Responder
	startupTime time.Time
	now         func() time.Time
}

func newHealthHandler(startupTime time.Time) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder:   NewResponder(logger),
		startupTime: startupTime,
		now:         time.Now,
	}
}

// health reports that the process is serving requests
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse "Service is up"
// @Router /health [get]
func (h healthHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := h.now().UTC()
		response := HealthResponse{
			Status:    "OK",
			Timestamp: now.Format(time.RFC3339),
		}
		if !h.startupTime.IsZero() {
			response.Uptime = now.Sub(h.startupTime).Round(time.Second).String()
		}
		h.responder.WriteJSON(w, response)
	}
}

// notFound answers every unknown path or method
func (h healthHandler) notFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.logger.Warn().Str("method", r.Method).Str("path", r.URL.Path).Msg("endpoint not found")
		h.responder.WriteError(w, errs.NewNotFoundError("Endpoint not found"))
	}
}
