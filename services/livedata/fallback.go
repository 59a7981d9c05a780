package livedata

import (
	_ "embed"
	"fmt"

	"github.com/goccy/go-json"

	"reelhouse/models"
)

// fallbackJSON is the bundled last-known-good snapshot, served whenever
// the live store is unreachable or returns garbage. It ships with the
// binary so a feed response can always be produced.
//
//go:embed fallback.json
var fallbackJSON []byte

// Fallback returns a copy of the bundled snapshot.
func Fallback() models.LiveData {
	data, err := parseFallback()
	if err != nil {
		// The bundled snapshot is validated by tests; if it is broken the
		// build is broken. Serve the minimal valid document rather than
		// panicking in the request path.
		return models.LiveData{
			Movies:     map[string]models.Movie{},
			Categories: map[string]models.Category{},
			Revision:   "bundled-fallback",
		}
	}
	return data
}

func parseFallback() (models.LiveData, error) {
	var data models.LiveData
	if err := json.Unmarshal(fallbackJSON, &data); err != nil {
		return models.LiveData{}, fmt.Errorf("decode bundled fallback: %w", err)
	}
	data.Normalize()
	return data, nil
}
