package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/spf13/afero"

	"reelhouse/models"
	"reelhouse/services/feed"
	"reelhouse/services/livedata"
	"reelhouse/services/rokuconfig"
)

type fakeSignal map[string]int64

func (s fakeSignal) PlayCounts() (map[string]int64, error) { return s, nil }

var handlerNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func testLiveData() models.LiveData {
	released := handlerNow.AddDate(0, 0, -2)
	future := handlerNow.AddDate(0, 0, 2)
	return models.LiveData{
		Movies: map[string]models.Movie{
			"out-now": {
				Key:             "out-now",
				Title:           "Out Now",
				PosterURL:       "https://img.example/out-now.jpg",
				StreamURL:       "https://media.example/out-now.m3u8",
				RokuStreamURL:   "https://media.example/out-now-roku.m3u8",
				ReleaseDateTime: &released,
			},
			"soon": {
				Key:             "soon",
				Title:           "Soon",
				PosterURL:       "https://img.example/soon.jpg",
				ReleaseDateTime: &future,
			},
		},
		Categories: map[string]models.Category{
			"new": {Title: "New Releases", MovieKeys: []string{"out-now", "soon", "gone"}},
		},
	}
}

func newFeedFixture(t *testing.T, data models.LiveData) (*FeedHandler, *livedata.Service) {
	t.Helper()

	fs := afero.NewMemMapFs()
	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fs, "livedata.json", raw, 0o644); err != nil {
		t.Fatal(err)
	}

	live := livedata.NewService(livedata.NewFileStore(fs, "livedata.json"), time.Second, nil)
	configStore, err := rokuconfig.NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	h := NewFeedHandler(live, configStore, fakeSignal{}, time.Second)
	h.now = func() time.Time { return handlerNow }
	return h, live
}

func decodeFeed(t *testing.T, rec *httptest.ResponseRecorder) feed.RokuFeed {
	t.Helper()
	var out feed.RokuFeed
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("feed response is not valid JSON: %v", err)
	}
	return out
}

func TestGetFeedServesAssembledRows(t *testing.T) {
	h, _ := newFeedFixture(t, testLiveData())

	rec := httptest.NewRecorder()
	h.GetFeed(rec, httptest.NewRequest(http.MethodGet, "/api/roku/feed", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "public, max-age=1" {
		t.Errorf("Cache-Control = %q", cc)
	}

	got := decodeFeed(t, rec)
	if len(got.Rows) != 1 || got.Rows[0].Title != "New Releases" {
		t.Fatalf("rows = %+v", got.Rows)
	}
	// Released movie present, future and dangling keys silently absent.
	if len(got.Rows[0].Movies) != 1 || got.Rows[0].Movies[0].ID != "out-now" {
		t.Errorf("row movies = %+v", got.Rows[0].Movies)
	}
	if got.Rows[0].Movies[0].StreamURL != "https://media.example/out-now-roku.m3u8" {
		t.Error("device stream override not preferred")
	}
}

func TestGetFeedFallsBackWhenStoreEmpty(t *testing.T) {
	fs := afero.NewMemMapFs() // no object at all
	live := livedata.NewService(livedata.NewFileStore(fs, "livedata.json"), time.Second, nil)
	configStore, err := rokuconfig.NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	h := NewFeedHandler(live, configStore, nil, time.Second)

	rec := httptest.NewRecorder()
	h.GetFeed(rec, httptest.NewRequest(http.MethodGet, "/api/roku/feed", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, feed must respond with the store down", rec.Code)
	}
	got := decodeFeed(t, rec)
	if len(got.Rows) == 0 {
		t.Error("fallback feed has no rows; bundled snapshot not served")
	}
}

func TestGetMovie(t *testing.T) {
	h, _ := newFeedFixture(t, testLiveData())
	router := mux.NewRouter()
	router.HandleFunc("/api/roku/movies/{key}", h.GetMovie)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/roku/movies/out-now", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var movie feed.RokuMovie
	if err := json.Unmarshal(rec.Body.Bytes(), &movie); err != nil {
		t.Fatal(err)
	}
	if movie.ID != "out-now" || movie.StreamURL == "" {
		t.Errorf("movie = %+v", movie)
	}

	// Unknown key and unreleased key both 404.
	for _, key := range []string{"nope", "soon"} {
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/roku/movies/"+key, nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("GET %s status = %d, want 404", key, rec.Code)
		}
	}
}

func TestFeedReflectsPublishWithinTTL(t *testing.T) {
	h, live := newFeedFixture(t, testLiveData())

	rec := httptest.NewRecorder()
	h.GetFeed(rec, httptest.NewRequest(http.MethodGet, "/api/roku/feed", nil))
	before := decodeFeed(t, rec)

	updated := testLiveData()
	m := updated.Movies["out-now"]
	m.Title = "Retitled"
	updated.Movies["out-now"] = m
	if err := live.Publish(context.Background(), updated); err != nil {
		t.Fatal(err)
	}

	rec = httptest.NewRecorder()
	h.GetFeed(rec, httptest.NewRequest(http.MethodGet, "/api/roku/feed", nil))
	after := decodeFeed(t, rec)

	if before.Rows[0].Movies[0].Title == after.Rows[0].Movies[0].Title {
		t.Error("feed did not reflect publish")
	}
	if after.Rows[0].Movies[0].Title != "Retitled" {
		t.Errorf("title = %q", after.Rows[0].Movies[0].Title)
	}
}
