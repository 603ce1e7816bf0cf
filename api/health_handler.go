package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

type startupInfo struct {
	startedAt time.Time
}

type healthHandler struct {
	responder Responder
	startup   startupInfo
}

func newHealthHandler(startup startupInfo) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()
	return healthHandler{responder: NewResponder(logger), startup: startup}
}

// HealthResponse reports liveness
type HealthResponse struct {
	Status        string `json:"status" example:"ok"`
	UptimeSeconds int64  `json:"uptimeSeconds" example:"42"`
}

// health reports that the process is serving requests
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h healthHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var uptime int64
		if !h.startup.startedAt.IsZero() {
			uptime = int64(time.Since(h.startup.startedAt).Seconds())
		}
		h.responder.WriteJSON(w, HealthResponse{Status: "ok", UptimeSeconds: uptime})
	}
}

// routeNotFound answers requests no route matched
func routeNotFound(responder Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder.WriteJSONStatus(w, http.StatusNotFound, RouteErrorResponse{
			Error:  "Route not found",
			Path:   r.URL.Path,
			Method: r.Method,
		})
	}
}

// methodNotAllowed answers requests whose path exists under another method
func methodNotAllowed(responder Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder.WriteJSONStatus(w, http.StatusMethodNotAllowed, RouteErrorResponse{
			Error:  "Method not allowed",
			Path:   r.URL.Path,
			Method: r.Method,
		})
	}
}
