package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"reelhouse/models"
	"reelhouse/services/rokuconfig"
)

func TestSerializeEmitsNoNulls(t *testing.T) {
	bare := models.Movie{Key: "bare"}
	f := Feed{
		Hero:        []models.Movie{bare},
		GeneratedAt: testNow,
	}

	raw, err := json.Marshal(Serialize(f))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(raw), "null") {
		t.Errorf("serialized feed contains null: %s", raw)
	}
}

func TestSerializeEmptyFeedShape(t *testing.T) {
	data := models.LiveData{Movies: map[string]models.Movie{}, Categories: map[string]models.Category{}}
	feed := Assemble(data, rokuconfig.DefaultConfig(), nil, testNow)

	raw, err := json.Marshal(Serialize(feed))
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{"hero", "rows", "eventHub"} {
		arr, ok := decoded[field].([]any)
		if !ok {
			t.Errorf("%s is not an array: %T", field, decoded[field])
			continue
		}
		if arr == nil {
			t.Errorf("%s is null, want empty array", field)
		}
	}
	if _, ok := decoded["topTen"].(map[string]any); !ok {
		t.Error("topTen is not an object")
	}
}

func TestSerializeMovieDevicePrecedence(t *testing.T) {
	m := models.Movie{
		Key:           "k",
		StreamURL:     "https://general/stream",
		RokuStreamURL: "https://roku/stream",
		PosterURL:     "https://general/poster",
		RokuPosterURL: "https://roku/poster",
		HeroURL:       "https://general/hero",
	}

	got := SerializeMovie(m)
	if got.StreamURL != "https://roku/stream" {
		t.Errorf("streamUrl = %q, want device override", got.StreamURL)
	}
	if got.PosterURL != "https://roku/poster" {
		t.Errorf("posterUrl = %q, want device override", got.PosterURL)
	}

	// Without overrides the general fields serve.
	m.RokuStreamURL, m.RokuPosterURL = "", ""
	got = SerializeMovie(m)
	if got.StreamURL != "https://general/stream" || got.PosterURL != "https://general/poster" {
		t.Error("general fields not used when overrides absent")
	}

	// With nothing at all, empty strings, never an error.
	got = SerializeMovie(models.Movie{Key: "empty"})
	if got.StreamURL != "" || got.PosterURL != "" || got.HeroImage != "" {
		t.Error("missing fields not coerced to empty strings")
	}
	if got.Cast == nil {
		t.Error("cast is nil, want empty array")
	}
}

func TestSerializeHeroImageFallbackChain(t *testing.T) {
	m := models.Movie{Key: "k", PosterURL: "https://general/poster"}
	if got := SerializeMovie(m); got.HeroImage != "https://general/poster" {
		t.Errorf("heroImage = %q, want poster fallback", got.HeroImage)
	}

	m.RokuHeroImage = "https://roku/hero"
	if got := SerializeMovie(m); got.HeroImage != "https://roku/hero" {
		t.Errorf("heroImage = %q, want device hero", got.HeroImage)
	}
}

func TestSerializeReleaseDate(t *testing.T) {
	released := time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC)
	m := models.Movie{Key: "k", ReleaseDateTime: &released}
	if got := SerializeMovie(m); got.ReleaseDate != "2026-03-01T18:30:00Z" {
		t.Errorf("releaseDate = %q", got.ReleaseDate)
	}
	if got := SerializeMovie(models.Movie{Key: "k"}); got.ReleaseDate != "" {
		t.Errorf("releaseDate = %q, want empty for undated movie", got.ReleaseDate)
	}
}
