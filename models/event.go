package models

import "time"

// FilmBlock is one programmed slot of a festival day: a titled group of
// movies shown together at a display time. DisplayTime is a free-form
// editor string ("Friday 7:00 PM"), not a parsed timestamp.
type FilmBlock struct {
	Title       string   `json:"title"`
	DisplayTime string   `json:"displayTime"`
	MovieKeys   []string `json:"movieKeys"`
}

// FestivalDay groups the blocks programmed for a single day.
type FestivalDay struct {
	Title  string      `json:"title"`
	Blocks []FilmBlock `json:"blocks"`
}

// FestivalConfig describes the ordinary festival event document.
type FestivalConfig struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	IsLive      bool       `json:"isLive"`
}

// CrateFestConfig is the independently evolving CrateFest event document.
// Structurally similar to the festival document (ordered blocks of movie
// keys) but a separate product with its own fields; the two are never
// merged.
type CrateFestConfig struct {
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Price       string      `json:"price,omitempty"`
	StartDate   *time.Time  `json:"startDate,omitempty"`
	EndDate     *time.Time  `json:"endDate,omitempty"`
	IsLive      bool        `json:"isLive"`
	MovieBlocks []FilmBlock `json:"movieBlocks"`
}

// EventKind tags which event document an EventSource was built from.
type EventKind string

const (
	EventKindNone      EventKind = ""
	EventKindFestival  EventKind = "festival"
	EventKindCrateFest EventKind = "crateFest"
)

// EventSource is the assembler-boundary view of whichever event system is
// active: a tagged variant normalizing both documents to ordered blocks,
// so row generation is written once.
type EventSource struct {
	Kind   EventKind
	Title  string
	Live   bool
	Blocks []FilmBlock
}
