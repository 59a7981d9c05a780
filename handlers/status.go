package handlers

import "net/http"

// BackendVersion is stamped at build time via -ldflags.
var BackendVersion = "dev"

// StatusHandler reports liveness and version for deploy tooling.
type StatusHandler struct{}

func NewStatusHandler() *StatusHandler {
	return &StatusHandler{}
}

func (h *StatusHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": BackendVersion,
	})
}
