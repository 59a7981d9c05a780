// Package analytics records playback beacons from devices and exposes
// aggregate play counts. The feed assembler treats these counts as an
// opaque external signal; nothing here knows about rows or ranking.
package analytics

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrMovieKeyRequired = errors.New("movie key is required")

// Service persists play counts in the shared sqlite database.
type Service struct {
	db  *sql.DB
	now func() time.Time
}

func NewService(db *sql.DB, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{db: db, now: now}
}

// RecordPlay increments the play count for a movie key. Keys are not
// validated against the catalog; a beacon for a since-deleted movie is
// harmless and simply never ranks.
func (s *Service) RecordPlay(movieKey string) error {
	movieKey = strings.TrimSpace(movieKey)
	if movieKey == "" {
		return ErrMovieKeyRequired
	}

	_, err := s.db.Exec(`
		INSERT INTO play_counts (movie_key, plays, last_played)
		VALUES (?, 1, ?)
		ON CONFLICT (movie_key) DO UPDATE SET
			plays = plays + 1,
			last_played = excluded.last_played`,
		movieKey, s.now().UTC())
	if err != nil {
		return fmt.Errorf("record play: %w", err)
	}
	return nil
}

// PlayCounts returns every movie's total plays.
func (s *Service) PlayCounts() (map[string]int64, error) {
	rows, err := s.db.Query(`SELECT movie_key, plays FROM play_counts`)
	if err != nil {
		return nil, fmt.Errorf("query play counts: %w", err)
	}
	defer rows.Close()

	counts := map[string]int64{}
	for rows.Next() {
		var key string
		var plays int64
		if err := rows.Scan(&key, &plays); err != nil {
			return nil, fmt.Errorf("scan play count: %w", err)
		}
		counts[key] = plays
	}
	return counts, rows.Err()
}
