package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"reelhouse/models"
	"reelhouse/services/broadcast"
	"reelhouse/services/livedata"
)

// PublishHandler accepts a full live data document from the editor UI,
// persists it, and makes the change visible to every feed reader within
// one cache TTL. It is the only writer of the live data blob.
type PublishHandler struct {
	live     *livedata.Service
	hub      *broadcast.Hub
	validate *validator.Validate
	now      func() time.Time
}

func NewPublishHandler(live *livedata.Service, hub *broadcast.Hub) *PublishHandler {
	return &PublishHandler{
		live:     live,
		hub:      hub,
		validate: validator.New(),
		now:      time.Now,
	}
}

// PublishResponse reports the stored revision back to the editor.
type PublishResponse struct {
	Revision    string `json:"revision"`
	PublishedAt string `json:"publishedAt"`
	MovieCount  int    `json:"movieCount"`
}

// Publish validates and stores the document. Structurally invalid catalog
// entries are rejected here so the feed path never has to defend against
// them beyond its serializer coercions.
func (h *PublishHandler) Publish(w http.ResponseWriter, r *http.Request) {
	var data models.LiveData
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&data); err != nil {
		writeError(w, http.StatusBadRequest, "malformed live data document: "+err.Error())
		return
	}
	data.Normalize()

	if err := h.validate.Struct(data); err != nil {
		writeError(w, http.StatusBadRequest, "invalid live data document: "+err.Error())
		return
	}

	now := h.now().UTC()
	data.PublishedAt = &now
	data.Revision = uuid.NewString()

	if err := h.live.Publish(r.Context(), data); err != nil {
		log.Printf("[publish] persist failed: %v", err)
		writeError(w, http.StatusBadGateway, "failed to persist live data")
		return
	}

	// Advisory only. Editors that miss it will see the change on their
	// next read; the cache invalidation above is what carries the
	// guarantee.
	h.hub.Broadcast(broadcast.Message{
		Type:     broadcast.MessageTypeLiveDataChanged,
		Revision: data.Revision,
	})

	log.Printf("[publish] stored revision %s (%d movies, %d categories)",
		data.Revision, len(data.Movies), len(data.Categories))

	writeJSON(w, http.StatusOK, PublishResponse{
		Revision:    data.Revision,
		PublishedAt: now.Format(time.RFC3339),
		MovieCount:  len(data.Movies),
	})
}
