package handler

import "net/http"

// Health handles GET /healthz. It reports liveness only; readiness (DB
// reachability) is checked once at boot.
func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
