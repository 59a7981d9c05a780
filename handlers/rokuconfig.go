package handlers

import (
	"io"
	"log"
	"net/http"

	"github.com/goccy/go-json"

	"reelhouse/services/broadcast"
	"reelhouse/services/rokuconfig"
)

// RokuConfigHandler reads and writes the device configuration document.
type RokuConfigHandler struct {
	store *rokuconfig.Store
	hub   *broadcast.Hub
}

func NewRokuConfigHandler(store *rokuconfig.Store, hub *broadcast.Hub) *RokuConfigHandler {
	return &RokuConfigHandler{store: store, hub: hub}
}

// GetConfig returns the fully resolved configuration. A never-configured
// document resolves to defaults; editors always see every section.
func (h *RokuConfigHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.store.Load()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// PutConfig stores the document. Partial documents are resolved against
// defaults before persisting, so a section an editor never touched keeps
// its default rather than vanishing. The stored version counter always
// advances; editors compare it to detect concurrent overwrites.
func (h *RokuConfigHandler) PutConfig(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable request body")
		return
	}
	if !json.Valid(raw) {
		writeError(w, http.StatusBadRequest, "malformed config document")
		return
	}

	saved, err := h.store.Save(rokuconfig.Resolve(raw))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.hub.Broadcast(broadcast.Message{
		Type:    broadcast.MessageTypeConfigChanged,
		Version: saved.Version,
	})

	log.Printf("[rokuconfig] saved version %d", saved.Version)
	writeJSON(w, http.StatusOK, saved)
}
