package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sourcegraph/conc"

	"reelhouse/models"
	"reelhouse/services/feed"
	"reelhouse/services/livedata"
	"reelhouse/services/rokuconfig"
)

// PlaySignal supplies the engagement signal that ranks the automatic top
// ten. The feed treats it as an external input.
type PlaySignal interface {
	PlayCounts() (map[string]int64, error)
}

// FeedHandler serves the assembled content feed and single-movie records
// to the set-top client.
type FeedHandler struct {
	live        *livedata.Service
	configStore *rokuconfig.Store
	plays       PlaySignal
	cacheTTL    time.Duration
	now         func() time.Time
}

func NewFeedHandler(live *livedata.Service, configStore *rokuconfig.Store, plays PlaySignal, cacheTTL time.Duration) *FeedHandler {
	return &FeedHandler{
		live:        live,
		configStore: configStore,
		plays:       plays,
		cacheTTL:    cacheTTL,
		now:         time.Now,
	}
}

// GetFeed returns the full serialized feed. This endpoint never fails:
// the cache falls back to the bundled snapshot, the resolver falls back
// to defaults, and a missing play signal just yields an unranked top ten.
func (h *FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	var (
		data   models.LiveData
		counts map[string]int64
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		data = h.live.Get(r.Context(), false)
	})
	wg.Go(func() {
		if h.plays == nil {
			return
		}
		c, err := h.plays.PlayCounts()
		if err != nil {
			log.Printf("[feed] play counts unavailable, top ten falls back to key order: %v", err)
			return
		}
		counts = c
	})
	wg.Wait()

	cfg, err := h.configStore.Load()
	if err != nil {
		log.Printf("[feed] roku config unreadable, using defaults: %v", err)
		cfg = rokuconfig.DefaultConfig()
	}

	assembled := feed.Assemble(data, cfg, counts, h.now().UTC())

	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(h.cacheTTL.Seconds())))
	writeJSON(w, http.StatusOK, feed.Serialize(assembled))
}

// GetMovie returns one device-formatted movie record, or 404 for an
// unknown key. Unreleased movies are not addressable either; revealing
// them by direct key would bypass the feed's gate.
func (h *FeedHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	data := h.live.Get(r.Context(), false)
	movie, ok := data.Movies[key]
	if !ok || !movie.EligibleAt(h.now().UTC()) {
		writeError(w, http.StatusNotFound, "movie not found")
		return
	}

	writeJSON(w, http.StatusOK, feed.SerializeMovie(movie))
}
