package feed

import (
	"time"

	"reelhouse/models"
)

// The Roku client runs on a constrained embedded runtime that crashes on
// missing or mistyped fields, so the wire structs below emit every field
// on every response: strings are never null, arrays never nil, and
// device-specific overrides are folded in here so the client never
// chooses between fields.

// RokuCastMember is a coerced cast credit.
type RokuCastMember struct {
	Name  string `json:"name"`
	Photo string `json:"photo"`
	Bio   string `json:"bio"`
}

// RokuMovie is the device-facing movie record.
type RokuMovie struct {
	ID                  string           `json:"id"`
	Title               string           `json:"title"`
	Description         string           `json:"description"`
	Director            string           `json:"director"`
	Cast                []RokuCastMember `json:"cast"`
	StreamURL           string           `json:"streamUrl"`
	TrailerURL          string           `json:"trailerUrl"`
	PosterURL           string           `json:"posterUrl"`
	HeroImage           string           `json:"heroImage"`
	ReleaseDate         string           `json:"releaseDate"`
	IsSeries            bool             `json:"isSeries"`
	HasCopyrightMusic   bool             `json:"hasCopyrightMusic"`
	IsWatchPartyEnabled bool             `json:"isWatchPartyEnabled"`
	LiveStreamStatus    string           `json:"liveStreamStatus"`
}

// RokuRow is a titled shelf of movies.
type RokuRow struct {
	Title  string      `json:"title"`
	Movies []RokuMovie `json:"movies"`
}

// RokuTopTen carries the ranked row and its numbering flag. Always
// present in the feed; Enabled false with an empty list when the row is
// turned off.
type RokuTopTen struct {
	Enabled     bool        `json:"enabled"`
	ShowNumbers bool        `json:"showNumbers"`
	Movies      []RokuMovie `json:"movies"`
}

// RokuNowStreaming is the recent-releases row.
type RokuNowStreaming struct {
	Enabled bool        `json:"enabled"`
	Title   string      `json:"title"`
	Movies  []RokuMovie `json:"movies"`
}

// RokuFeed is the complete client contract.
type RokuFeed struct {
	Hero         []RokuMovie      `json:"hero"`
	TopTen       RokuTopTen       `json:"topTen"`
	NowStreaming RokuNowStreaming `json:"nowStreaming"`
	Rows         []RokuRow        `json:"rows"`
	EventHub     []RokuRow        `json:"eventHub"`
	EventMode    string           `json:"eventMode"`
	GeneratedAt  string           `json:"generatedAt"`
}

// Serialize projects an assembled feed onto the client contract.
func Serialize(f Feed) RokuFeed {
	out := RokuFeed{
		Hero:         serializeMovies(f.Hero),
		TopTen:       RokuTopTen{Movies: []RokuMovie{}},
		NowStreaming: RokuNowStreaming{Title: "", Movies: []RokuMovie{}},
		Rows:         serializeRows(f.Rows),
		EventHub:     serializeRows(f.EventHub),
		EventMode:    string(f.EventKind),
		GeneratedAt:  f.GeneratedAt.UTC().Format(time.RFC3339),
	}

	if f.TopTen != nil {
		out.TopTen = RokuTopTen{
			Enabled:     true,
			ShowNumbers: f.TopTen.ShowNumbers,
			Movies:      serializeMovies(f.TopTen.Movies),
		}
	}
	if f.NowStreaming != nil {
		out.NowStreaming = RokuNowStreaming{
			Enabled: true,
			Title:   f.NowStreaming.Title,
			Movies:  serializeMovies(f.NowStreaming.Movies),
		}
	}
	return out
}

// SerializeMovie coerces one movie for device output. Precedence for
// every device-aliased field is: device override, then general field,
// then empty string. Never an error.
func SerializeMovie(m models.Movie) RokuMovie {
	out := RokuMovie{
		ID:                  m.Key,
		Title:               m.Title,
		Description:         m.Synopsis,
		Director:            m.Director,
		Cast:                serializeCast(m.Cast),
		StreamURL:           firstNonEmpty(m.RokuStreamURL, m.StreamURL, m.LiveStreamURL),
		TrailerURL:          m.TrailerURL,
		PosterURL:           firstNonEmpty(m.RokuPosterURL, m.PosterURL),
		HeroImage:           firstNonEmpty(m.RokuHeroImage, m.HeroURL, m.RokuPosterURL, m.PosterURL),
		IsSeries:            m.IsSeries,
		HasCopyrightMusic:   m.HasCopyrightMusic,
		IsWatchPartyEnabled: m.IsWatchPartyEnabled,
		LiveStreamStatus:    m.LiveStreamStatus,
	}
	if m.ReleaseDateTime != nil {
		out.ReleaseDate = m.ReleaseDateTime.UTC().Format(time.RFC3339)
	}
	return out
}

func serializeMovies(movies []models.Movie) []RokuMovie {
	out := make([]RokuMovie, 0, len(movies))
	for _, m := range movies {
		out = append(out, SerializeMovie(m))
	}
	return out
}

func serializeRows(rows []Row) []RokuRow {
	out := make([]RokuRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, RokuRow{
			Title:  row.Title,
			Movies: serializeMovies(row.Movies),
		})
	}
	return out
}

func serializeCast(cast []models.CastMember) []RokuCastMember {
	out := make([]RokuCastMember, 0, len(cast))
	for _, c := range cast {
		out = append(out, RokuCastMember{Name: c.Name, Photo: c.Photo, Bio: c.Bio})
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
