package handlers

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"reelhouse/services/analytics"
)

// AnalyticsHandler accepts playback beacons from devices.
type AnalyticsHandler struct {
	service *analytics.Service
}

func NewAnalyticsHandler(service *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

type playBeacon struct {
	MovieKey string `json:"movieKey"`
}

// RecordPlay increments the play count for a movie. Devices fire this
// best-effort at playback start.
func (h *AnalyticsHandler) RecordPlay(w http.ResponseWriter, r *http.Request) {
	var beacon playBeacon
	if err := json.NewDecoder(r.Body).Decode(&beacon); err != nil {
		writeError(w, http.StatusBadRequest, "malformed beacon")
		return
	}

	if err := h.service.RecordPlay(beacon.MovieKey); err != nil {
		if errors.Is(err, analytics.ErrMovieKeyRequired) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to record play")
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "recorded"})
}
