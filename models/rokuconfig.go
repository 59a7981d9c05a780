package models

// Selection modes for configurable feed rows.
const (
	ModeAuto   = "auto"
	ModeManual = "manual"
)

// Caps applied to curated rows regardless of configuration.
const (
	HeroMaxItems   = 5
	TopTenMaxItems = 10
)

// HeroItem is one manually curated hero slot.
type HeroItem struct {
	MovieKey string `json:"movieKey"`
	Order    int    `json:"order"`
}

// HeroConfig controls the hero rotation at the top of the feed.
type HeroConfig struct {
	Mode  string     `json:"mode"`
	Items []HeroItem `json:"items"`
}

// TopTenConfig controls the ranked top-ten row.
type TopTenConfig struct {
	Enabled     bool     `json:"enabled"`
	Mode        string   `json:"mode"`
	ShowNumbers bool     `json:"showNumbers"`
	MovieKeys   []string `json:"movieKeys"`
}

// NowStreamingConfig controls the recently released row. DaysBack is the
// trailing window, in days, used by auto mode.
type NowStreamingConfig struct {
	Enabled   bool     `json:"enabled"`
	Mode      string   `json:"mode"`
	DaysBack  int      `json:"daysBack"`
	MovieKeys []string `json:"movieKeys"`
}

// CategoriesConfig controls visibility, order and event-hub placement of
// category rows. Hidden and SeparateSection are key sets.
type CategoriesConfig struct {
	Hidden          map[string]bool `json:"hidden"`
	Order           []string        `json:"order"`
	SeparateSection map[string]bool `json:"separateSection"`
}

// ContentConfig carries explicit per-movie overrides. HiddenMovies is a
// block-list: absence means visible.
type ContentConfig struct {
	HiddenMovies map[string]bool `json:"hiddenMovies"`
}

// FeatureFlags toggles feed-level behavior. FestivalMode and
// CrateFestMode select which event document (if any) may supersede the
// category rows.
type FeatureFlags struct {
	FestivalMode  bool `json:"festivalMode"`
	CrateFestMode bool `json:"crateFestMode"`
	WatchParty    bool `json:"watchParty"`
	LiveBadges    bool `json:"liveBadges"`
}

// RokuConfig is the device configuration document. Version is bumped on
// every write so concurrent editors can detect (not resolve) overwrites;
// last write wins by design.
type RokuConfig struct {
	Version      int64              `json:"_version"`
	Hero         HeroConfig         `json:"hero"`
	TopTen       TopTenConfig       `json:"topTen"`
	NowStreaming NowStreamingConfig `json:"nowStreaming"`
	Categories   CategoriesConfig   `json:"categories"`
	Content      ContentConfig      `json:"content"`
	Features     FeatureFlags       `json:"features"`
}
