package livedata

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"

	"reelhouse/models"
)

// snapshot pairs a fetched document with its fetch time. Swapped as a
// unit so concurrent readers never observe a half-updated value.
type snapshot struct {
	data      models.LiveData
	fetchedAt time.Time
}

// Service is the time-boxed cache in front of the object store holding
// the live data blob. The TTL is short (seconds) because editors expect
// near-real-time reflection of publishes; the cache exists to keep a
// polling set-top fleet from hammering the bucket.
//
// Get never fails: any upstream problem degrades to the bundled fallback
// snapshot.
type Service struct {
	store ObjectStore
	ttl   time.Duration
	now   func() time.Time
	cur   atomic.Pointer[snapshot]
}

// NewService creates the cache. now may be nil, in which case the wall
// clock is used; tests inject their own.
func NewService(store ObjectStore, ttl time.Duration, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, ttl: ttl, now: now}
}

// Get returns the current live data document. With bypass false a value
// fetched within the TTL window is returned without I/O. On a miss (or
// bypass) the store is read; failure of any kind returns the bundled
// fallback without touching the cached snapshot or its timestamp, so the
// next call retries instead of sticking to the fallback.
//
// Two goroutines racing past an expired TTL both fetch and last writer
// wins the cache slot; the payload is immutable so the duplicate fetch is
// waste, not a bug.
func (s *Service) Get(ctx context.Context, bypass bool) models.LiveData {
	if !bypass {
		if snap := s.cur.Load(); snap != nil && s.now().Sub(snap.fetchedAt) < s.ttl {
			return snap.data
		}
	}

	raw, err := s.store.Fetch(ctx)
	if err != nil {
		log.Printf("[livedata] fetch failed, serving fallback: %v", err)
		return Fallback()
	}

	var data models.LiveData
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Printf("[livedata] malformed live data, serving fallback: %v", err)
		return Fallback()
	}
	data.Normalize()

	s.cur.Store(&snapshot{data: data, fetchedAt: s.now()})
	return data
}

// Invalidate zeroes the cached fetch time so every caller misses the TTL
// window on its next read. The cached value itself is kept; a reader that
// races the subsequent refresh still sees a consistent document.
func (s *Service) Invalidate() {
	if snap := s.cur.Load(); snap != nil {
		s.cur.Store(&snapshot{data: snap.data})
	}
}

// Publish writes a new live data document to the store, then refreshes
// the cache with a bypass read so the publisher and every subsequent
// feed request observe the change immediately.
func (s *Service) Publish(ctx context.Context, data models.LiveData) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode live data: %w", err)
	}
	if err := s.store.Put(ctx, raw); err != nil {
		return fmt.Errorf("persist live data: %w", err)
	}

	s.Invalidate()
	s.Get(ctx, true)
	return nil
}
