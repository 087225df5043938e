package frame

import "sync/atomic"

// Stats counts tiles written and frames presented. Purely diagnostic; no
// pipeline behavior depends on it.
type Stats struct {
	tiles  atomic.Uint64
	frames atomic.Uint64
}

func NewStats() *Stats { return &Stats{} }

func (s *Stats) AddTile() {
	if s != nil {
		s.tiles.Add(1)
	}
}

func (s *Stats) AddFrame() {
	if s != nil {
		s.frames.Add(1)
	}
}

// Snapshot returns the running tile and frame totals.
func (s *Stats) Snapshot() (tiles, frames uint64) {
	if s == nil {
		return 0, 0
	}
	return s.tiles.Load(), s.frames.Load()
}
