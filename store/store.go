// Package store holds the current dataset snapshot. A snapshot bundles the
// finalized donor records, their statistics and the spatial indexes built
// from them, so every reader sees mutually consistent derived artifacts.
// Snapshots are immutable; reloading a dataset builds a new one and swaps the
// reference, never mutating what concurrent queries may be reading.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"lifeline/cluster"
	"lifeline/processor"
	"lifeline/types"
)

// Snapshot is one processed dataset. Donors, Stats and Skipped come from a
// single aggregation pass; indexes are derived lazily per blood-group filter
// and cached for the snapshot's lifetime.
type Snapshot struct {
	ID      string
	BuiltAt time.Time
	Donors  []types.DonorRecord
	Stats   types.Stats
	Skipped int

	opts cluster.Options

	mu      sync.Mutex
	indexes map[string]*cluster.Index // keyed by blood-group filter, "" = all donors
}

// NewSnapshot wraps an aggregation result with a fresh snapshot id.
func NewSnapshot(res *processor.Result, opts cluster.Options) *Snapshot {
	return &Snapshot{
		ID:      uuid.NewString(),
		BuiltAt: time.Now().UTC(),
		Donors:  res.Donors,
		Stats:   res.Stats,
		Skipped: res.Skipped,
		opts:    opts,
		indexes: make(map[string]*cluster.Index),
	}
}

// Index returns the spatial index for a blood-group filter ("" for all
// donors), building it on first use. Donors without usable coordinates are
// left out entirely. The returned index is immutable and safe for concurrent
// queries.
func (s *Snapshot) Index(bloodGroup string) *cluster.Index {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx, ok := s.indexes[bloodGroup]; ok {
		return idx
	}

	points := []cluster.Point{}
	for i := range s.Donors {
		d := &s.Donors[i]
		if bloodGroup != "" && d.BloodGroup != bloodGroup {
			continue
		}
		lat, lng, ok := d.Coordinates()
		if !ok {
			continue
		}
		points = append(points, cluster.Point{DonorKey: d.Key, Lat: lat, Lng: lng})
	}

	idx := cluster.NewIndex(s.opts)
	idx.Load(points)
	s.indexes[bloodGroup] = idx
	return idx
}

// DonorByBridgeID returns the first donor carrying the given bridge id.
// Bridge ids are display handles and may repeat; first match wins.
func (s *Snapshot) DonorByBridgeID(bridgeID string) (*types.DonorRecord, bool) {
	for i := range s.Donors {
		if s.Donors[i].BridgeID == bridgeID {
			return &s.Donors[i], true
		}
	}
	return nil, false
}

// Store is the swap point between dataset rebuilds and request handlers.
type Store struct {
	mu      sync.RWMutex
	current *Snapshot
}

func New() *Store {
	return &Store{}
}

// Swap installs a new snapshot for subsequent reads.
func (st *Store) Swap(s *Snapshot) {
	st.mu.Lock()
	st.current = s
	st.mu.Unlock()
}

// Current returns the active snapshot, or nil when no dataset has been
// loaded yet.
func (st *Store) Current() *Snapshot {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current
}
