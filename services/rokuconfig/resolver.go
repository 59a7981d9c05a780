// Package rokuconfig resolves the persisted Roku device-configuration
// document against hard-coded defaults. The document is editor-written
// and routinely partial or absent; resolution always yields a fully
// populated config and never an error.
package rokuconfig

import (
	"encoding/json"

	"reelhouse/models"
)

// DefaultConfig returns the configuration used when no document has ever
// been saved, and the per-section fallback for partial documents.
func DefaultConfig() models.RokuConfig {
	return models.RokuConfig{
		Version: 0,
		Hero: models.HeroConfig{
			Mode:  models.ModeAuto,
			Items: []models.HeroItem{},
		},
		TopTen: models.TopTenConfig{
			Enabled:     true,
			Mode:        models.ModeAuto,
			ShowNumbers: true,
			MovieKeys:   []string{},
		},
		NowStreaming: models.NowStreamingConfig{
			Enabled:   true,
			Mode:      models.ModeAuto,
			DaysBack:  30,
			MovieKeys: []string{},
		},
		Categories: models.CategoriesConfig{
			Hidden:          map[string]bool{},
			Order:           []string{},
			SeparateSection: map[string]bool{},
		},
		Content: models.ContentConfig{
			HiddenMovies: map[string]bool{},
		},
		Features: models.FeatureFlags{},
	}
}

// Resolve merges a raw persisted document over the defaults, one top-level
// section at a time: a section present in the document is decoded over a
// copy of its default (so fields the editor never touched keep their
// defaults), a section absent from the document stays pure default. A nil
// or empty document yields DefaultConfig. Malformed sections are dropped
// in favor of their defaults; this path never fails.
func Resolve(raw json.RawMessage) models.RokuConfig {
	cfg := DefaultConfig()
	if len(raw) == 0 {
		return cfg
	}

	var sections map[string]json.RawMessage
	if err := json.Unmarshal(raw, &sections); err != nil {
		return cfg
	}

	if v, ok := sections["_version"]; ok {
		_ = json.Unmarshal(v, &cfg.Version)
	}
	if v, ok := sections["hero"]; ok {
		_ = json.Unmarshal(v, &cfg.Hero)
	}
	if v, ok := sections["topTen"]; ok {
		_ = json.Unmarshal(v, &cfg.TopTen)
	}
	if v, ok := sections["nowStreaming"]; ok {
		_ = json.Unmarshal(v, &cfg.NowStreaming)
	}
	if v, ok := sections["categories"]; ok {
		_ = json.Unmarshal(v, &cfg.Categories)
	}
	if v, ok := sections["content"]; ok {
		_ = json.Unmarshal(v, &cfg.Content)
	}
	if v, ok := sections["features"]; ok {
		_ = json.Unmarshal(v, &cfg.Features)
	}

	normalize(&cfg)
	return cfg
}

// normalize replaces nils left by explicit JSON nulls so consumers can
// index and range without checks.
func normalize(cfg *models.RokuConfig) {
	if cfg.Hero.Items == nil {
		cfg.Hero.Items = []models.HeroItem{}
	}
	if cfg.TopTen.MovieKeys == nil {
		cfg.TopTen.MovieKeys = []string{}
	}
	if cfg.NowStreaming.MovieKeys == nil {
		cfg.NowStreaming.MovieKeys = []string{}
	}
	if cfg.Categories.Hidden == nil {
		cfg.Categories.Hidden = map[string]bool{}
	}
	if cfg.Categories.Order == nil {
		cfg.Categories.Order = []string{}
	}
	if cfg.Categories.SeparateSection == nil {
		cfg.Categories.SeparateSection = map[string]bool{}
	}
	if cfg.Content.HiddenMovies == nil {
		cfg.Content.HiddenMovies = map[string]bool{}
	}
	if cfg.NowStreaming.DaysBack <= 0 {
		cfg.NowStreaming.DaysBack = DefaultConfig().NowStreaming.DaysBack
	}
}
