package models

import "time"

// CastMember is a single credited performer on a movie.
type CastMember struct {
	Name  string `json:"name"`
	Photo string `json:"photo,omitempty"`
	Bio   string `json:"bio,omitempty"`
}

// Movie is a catalog entry as stored in the live data document.
// Fields are editor-supplied and may be partially filled; downstream
// consumers must coerce rather than reject.
type Movie struct {
	Key         string       `json:"key" validate:"required"`
	Title       string       `json:"title" validate:"required"`
	Synopsis    string       `json:"synopsis,omitempty"`
	Director    string       `json:"director,omitempty"`
	Cast        []CastMember `json:"cast,omitempty"`
	TrailerURL  string       `json:"trailerUrl,omitempty"`
	StreamURL   string       `json:"streamUrl,omitempty"`
	PosterURL   string       `json:"posterUrl,omitempty"`
	HeroURL     string       `json:"heroUrl,omitempty"`

	// Device-specific overrides. When set they win over the general
	// stream/poster fields for set-top output.
	RokuStreamURL string `json:"rokuStreamUrl,omitempty"`
	RokuPosterURL string `json:"rokuPosterUrl,omitempty"`
	RokuHeroImage string `json:"rokuHeroImage,omitempty"`

	// ReleaseDateTime gates visibility: nil means always released, a
	// future value hides the movie from every feed until it passes.
	ReleaseDateTime *time.Time `json:"releaseDateTime,omitempty"`
	PublishedAt     *time.Time `json:"publishedAt,omitempty"`

	IsUnlisted          bool `json:"isUnlisted,omitempty"`
	IsSeries            bool `json:"isSeries,omitempty"`
	HasCopyrightMusic   bool `json:"hasCopyrightMusic,omitempty"`
	IsWatchPartyEnabled bool `json:"isWatchPartyEnabled,omitempty"`

	LiveStreamURL    string `json:"liveStreamUrl,omitempty"`
	LiveStreamStatus string `json:"liveStreamStatus,omitempty"`
}

// ReleasedAt returns the instant the movie became (or becomes) available,
// preferring the release date and falling back to the publish time.
func (m Movie) ReleasedAt() time.Time {
	if m.ReleaseDateTime != nil {
		return *m.ReleaseDateTime
	}
	if m.PublishedAt != nil {
		return *m.PublishedAt
	}
	return time.Time{}
}

// EligibleAt reports whether the movie is released relative to now.
// A movie with no release date is always eligible.
func (m Movie) EligibleAt(now time.Time) bool {
	if m.ReleaseDateTime == nil {
		return true
	}
	return !m.ReleaseDateTime.After(now)
}
