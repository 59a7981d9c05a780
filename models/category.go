package models

// Category is an editor-curated, ordered list of movie keys. Keys are
// referential only; a key pointing at a deleted movie is expected during
// editing and is skipped at assembly time, never treated as an error.
type Category struct {
	Title     string   `json:"title"`
	MovieKeys []string `json:"movieKeys"`
}
