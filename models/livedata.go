package models

import "time"

// AboutData backs the about page on the client.
type AboutData struct {
	Heading string `json:"heading,omitempty"`
	Body    string `json:"body,omitempty"`
	Contact string `json:"contact,omitempty"`
}

// FestivalData is the programmed schedule for the ordinary festival.
type FestivalData struct {
	Days []FestivalDay `json:"days"`
}

// LiveData is the aggregate editorial document: the single JSON blob the
// publish path writes wholesale and the feed path reads. The feed path
// never mutates it in place; a new snapshot replaces the old one.
type LiveData struct {
	Movies         map[string]Movie    `json:"movies" validate:"dive"`
	Categories     map[string]Category `json:"categories"`
	Festival       FestivalData        `json:"festival"`
	FestivalConfig FestivalConfig      `json:"festivalConfig"`
	CrateFest      *CrateFestConfig    `json:"crateFest,omitempty"`
	About          AboutData           `json:"about"`

	// PublishedAt and Revision identify the publish that produced this
	// document. Informational only.
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Revision    string     `json:"revision,omitempty"`
}

// Normalize replaces nil maps with empty ones so consumers can index
// without nil checks. Called after every decode.
func (d *LiveData) Normalize() {
	if d.Movies == nil {
		d.Movies = map[string]Movie{}
	}
	if d.Categories == nil {
		d.Categories = map[string]Category{}
	}
}
