// Package feed turns an editorial snapshot plus resolved device
// configuration into the ordered row structure the set-top client
// renders. Assembly is pure: same inputs and the same now always produce
// the same feed, so repeated polls inside one cache window are stable.
package feed

import (
	"sort"
	"strconv"
	"time"

	"reelhouse/models"
)

// Row is one horizontal shelf of fully resolved movies. Key is the
// category key (or block index for event rows) and is internal; only the
// title and movies reach the client.
type Row struct {
	Key    string
	Title  string
	Movies []models.Movie
}

// TopTen is the ranked row with its presentation flag carried through.
type TopTen struct {
	ShowNumbers bool
	Movies      []models.Movie
}

// Feed is the assembled output: hero rotation, optional ranked rows, the
// ordered main rows and the event-hub bucket. Every movie referenced is
// embedded and eligible; no bare keys survive assembly.
type Feed struct {
	Hero         []models.Movie
	TopTen       *TopTen
	NowStreaming *Row
	Rows         []Row
	EventHub     []Row
	EventKind    models.EventKind
	GeneratedAt  time.Time
}

// Assemble builds the feed. playCounts is the engagement signal supplied
// by analytics; it ranks the automatic top ten and is otherwise unused.
func Assemble(data models.LiveData, cfg models.RokuConfig, playCounts map[string]int64, now time.Time) Feed {
	out := Feed{
		Hero:        assembleHero(data, cfg, now),
		GeneratedAt: now,
	}

	if cfg.TopTen.Enabled {
		out.TopTen = assembleTopTen(data, cfg, playCounts, now)
	}
	if cfg.NowStreaming.Enabled {
		out.NowStreaming = assembleNowStreaming(data, cfg, now)
	}

	event := ResolveEventSource(data, cfg)
	if event.Kind != models.EventKindNone && event.Live {
		// Full substitution: the ordinary category pipeline does not run
		// at all while an event is live, so row titles cannot collide.
		out.Rows = assembleEventRows(data, cfg, event, now)
		out.EventKind = event.Kind
		return out
	}

	out.Rows, out.EventHub = assembleCategoryRows(data, cfg, now)
	return out
}

// visible is the hard gate applied before any mode-specific selection:
// released (or undated) and not on the explicit hide list. Manual lists
// express intent; this gate still wins.
func visible(m models.Movie, cfg models.RokuConfig, now time.Time) bool {
	return m.EligibleAt(now) && !cfg.Content.HiddenMovies[m.Key]
}

// resolveKeys maps movie keys to visible movies, silently skipping
// dangling references. Deleted movies behind stale keys are a normal
// editing state, not a failure.
func resolveKeys(keys []string, data models.LiveData, cfg models.RokuConfig, now time.Time) []models.Movie {
	movies := make([]models.Movie, 0, len(keys))
	for _, key := range keys {
		m, ok := data.Movies[key]
		if !ok {
			continue
		}
		if !visible(m, cfg, now) {
			continue
		}
		movies = append(movies, m)
	}
	return movies
}

func assembleHero(data models.LiveData, cfg models.RokuConfig, now time.Time) []models.Movie {
	if cfg.Hero.Mode == models.ModeManual {
		items := append([]models.HeroItem(nil), cfg.Hero.Items...)
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].Order != items[j].Order {
				return items[i].Order < items[j].Order
			}
			return items[i].MovieKey < items[j].MovieKey
		})
		keys := make([]string, 0, len(items))
		for _, item := range items {
			keys = append(keys, item.MovieKey)
		}
		return capMovies(resolveKeys(keys, data, cfg, now), models.HeroMaxItems)
	}

	// Auto mode: most recently released, listed, with artwork. Sorted
	// with a full tie-break so the rotation is stable between polls.
	var candidates []models.Movie
	for _, m := range data.Movies {
		if !visible(m, cfg, now) || m.IsUnlisted {
			continue
		}
		if m.PosterURL == "" && m.RokuPosterURL == "" {
			continue
		}
		candidates = append(candidates, m)
	}
	sort.Slice(candidates, func(i, j int) bool {
		ri, rj := candidates[i].ReleasedAt(), candidates[j].ReleasedAt()
		if !ri.Equal(rj) {
			return ri.After(rj)
		}
		return candidates[i].Key < candidates[j].Key
	})
	return capMovies(candidates, models.HeroMaxItems)
}

func assembleTopTen(data models.LiveData, cfg models.RokuConfig, playCounts map[string]int64, now time.Time) *TopTen {
	row := &TopTen{ShowNumbers: cfg.TopTen.ShowNumbers}

	if cfg.TopTen.Mode == models.ModeManual {
		// The configured order is the ranking; keep it verbatim.
		row.Movies = capMovies(resolveKeys(cfg.TopTen.MovieKeys, data, cfg, now), models.TopTenMaxItems)
		return row
	}

	var candidates []models.Movie
	for _, m := range data.Movies {
		if !visible(m, cfg, now) || m.IsUnlisted {
			continue
		}
		candidates = append(candidates, m)
	}
	sort.Slice(candidates, func(i, j int) bool {
		ci, cj := playCounts[candidates[i].Key], playCounts[candidates[j].Key]
		if ci != cj {
			return ci > cj
		}
		return candidates[i].Key < candidates[j].Key
	})
	row.Movies = capMovies(candidates, models.TopTenMaxItems)
	return row
}

func assembleNowStreaming(data models.LiveData, cfg models.RokuConfig, now time.Time) *Row {
	row := &Row{Key: "now-streaming", Title: "Now Streaming"}

	if cfg.NowStreaming.Mode == models.ModeManual {
		row.Movies = resolveKeys(cfg.NowStreaming.MovieKeys, data, cfg, now)
		return row
	}

	// Pure time-window filter over the trailing daysBack window; no
	// engagement ranking here.
	cutoff := now.AddDate(0, 0, -cfg.NowStreaming.DaysBack)
	var candidates []models.Movie
	for _, m := range data.Movies {
		if !visible(m, cfg, now) || m.IsUnlisted {
			continue
		}
		released := m.ReleasedAt()
		if released.IsZero() || released.Before(cutoff) || released.After(now) {
			continue
		}
		candidates = append(candidates, m)
	}
	sort.Slice(candidates, func(i, j int) bool {
		ri, rj := candidates[i].ReleasedAt(), candidates[j].ReleasedAt()
		if !ri.Equal(rj) {
			return ri.After(rj)
		}
		return candidates[i].Key < candidates[j].Key
	})
	row.Movies = candidates
	return row
}

// assembleCategoryRows builds the main rows and the event-hub bucket.
// Each category lands in exactly one bucket; hidden categories and
// categories with no visible movies produce nothing.
func assembleCategoryRows(data models.LiveData, cfg models.RokuConfig, now time.Time) (main, hub []Row) {
	resolved := map[string]Row{}
	for key, cat := range data.Categories {
		if cfg.Categories.Hidden[key] {
			continue
		}
		movies := resolveKeys(cat.MovieKeys, data, cfg, now)
		if len(movies) == 0 {
			// A category whose only content is unreleased is the same as
			// an empty category: no row.
			continue
		}
		resolved[key] = Row{Key: key, Title: cat.Title, Movies: movies}
	}

	ordered := orderRows(resolved, cfg.Categories.Order)
	for _, row := range ordered {
		if cfg.Categories.SeparateSection[row.Key] {
			hub = append(hub, row)
		} else {
			main = append(main, row)
		}
	}
	return main, hub
}

// orderRows applies the configured order, then appends the rest in
// alphabetical key order so the tail is deterministic.
func orderRows(resolved map[string]Row, order []string) []Row {
	out := make([]Row, 0, len(resolved))
	seen := map[string]bool{}
	for _, key := range order {
		if row, ok := resolved[key]; ok && !seen[key] {
			out = append(out, row)
			seen[key] = true
		}
	}

	rest := make([]string, 0, len(resolved))
	for key := range resolved {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		out = append(out, resolved[key])
	}
	return out
}

func assembleEventRows(data models.LiveData, cfg models.RokuConfig, event models.EventSource, now time.Time) []Row {
	rows := make([]Row, 0, len(event.Blocks))
	for i, block := range event.Blocks {
		movies := resolveKeys(block.MovieKeys, data, cfg, now)
		if len(movies) == 0 {
			continue
		}
		title := block.DisplayTime
		if title == "" {
			title = block.Title
		}
		rows = append(rows, Row{
			Key:    "event-block-" + strconv.Itoa(i),
			Title:  title,
			Movies: movies,
		})
	}
	return rows
}

// ResolveEventSource picks whichever event document the feature flags
// select and normalizes it to ordered blocks. The two event systems are
// separate products; CrateFest wins when both flags are set because it is
// the paid event, but they are never merged.
func ResolveEventSource(data models.LiveData, cfg models.RokuConfig) models.EventSource {
	if cfg.Features.CrateFestMode && data.CrateFest != nil {
		return models.EventSource{
			Kind:   models.EventKindCrateFest,
			Title:  data.CrateFest.Title,
			Live:   data.CrateFest.IsLive,
			Blocks: data.CrateFest.MovieBlocks,
		}
	}
	if cfg.Features.FestivalMode {
		var blocks []models.FilmBlock
		for _, day := range data.Festival.Days {
			blocks = append(blocks, day.Blocks...)
		}
		return models.EventSource{
			Kind:   models.EventKindFestival,
			Title:  data.FestivalConfig.Title,
			Live:   data.FestivalConfig.IsLive,
			Blocks: blocks,
		}
	}
	return models.EventSource{Kind: models.EventKindNone}
}

func capMovies(movies []models.Movie, max int) []models.Movie {
	if len(movies) > max {
		return movies[:max]
	}
	return movies
}
