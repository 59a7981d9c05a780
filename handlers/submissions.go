package handlers

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"

	"reelhouse/services/submissions"
)

// SubmissionsHandler exposes the editorial submission pipeline to the
// admin UI. Every route sits behind the admin secret.
type SubmissionsHandler struct {
	service *submissions.Service
}

func NewSubmissionsHandler(service *submissions.Service) *SubmissionsHandler {
	return &SubmissionsHandler{service: service}
}

func (h *SubmissionsHandler) List(w http.ResponseWriter, r *http.Request) {
	subs, err := h.service.List(r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

type createSubmissionRequest struct {
	Title       string `json:"title"`
	Filmmaker   string `json:"filmmaker"`
	Email       string `json:"email"`
	ScreenerURL string `json:"screenerUrl"`
	Notes       string `json:"notes"`
}

func (h *SubmissionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed submission")
		return
	}

	sub, err := h.service.Create(req.Title, req.Filmmaker, req.Email, req.ScreenerURL, req.Notes)
	if err != nil {
		if errors.Is(err, submissions.ErrTitleRequired) || errors.Is(err, submissions.ErrFilmmakerRequired) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

type setStatusRequest struct {
	Status string `json:"status"`
}

func (h *SubmissionsHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request")
		return
	}

	sub, err := h.service.SetStatus(mux.Vars(r)["id"], req.Status)
	if err != nil {
		switch {
		case errors.Is(err, submissions.ErrNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, submissions.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, sub)
}
