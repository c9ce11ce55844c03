package region

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bethropolis/tilegrid/internal/types"
)

var (
	// ErrIndexOutOfRange is returned for an index with no region.
	ErrIndexOutOfRange = errors.New("region index out of range")
	// ErrInvalidEdge is returned when an edge operation gets EdgeNone.
	ErrInvalidEdge = errors.New("invalid region edge")
)

// Snapshot is an immutable copy of a region sequence.
type Snapshot struct {
	regions []Region
}

// Len returns the number of regions in the snapshot.
func (s Snapshot) Len() int { return len(s.regions) }

// Regions returns a copy of the snapshot's regions.
func (s Snapshot) Regions() []Region {
	return cloneRegions(s.regions)
}

// NewSnapshot copies regions into a snapshot.
func NewSnapshot(regions []Region) Snapshot {
	return Snapshot{regions: cloneRegions(regions)}
}

// Store is the ordered, live sequence of regions. Not safe for concurrent use.
type Store struct {
	regions []Region
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Add appends a region. Overlaps with existing regions are allowed.
func (s *Store) Add(r Region) {
	s.regions = append(s.regions, r)
}

// UpdateEdge writes value into one edge of the region at index, in place.
// No clamping against the opposite edge is applied.
func (s *Store) UpdateEdge(index int, edge Edge, value float64) error {
	if index < 0 || index >= len(s.regions) {
		return fmt.Errorf("update edge %s of %d: %w", edge, index, ErrIndexOutOfRange)
	}
	r := &s.regions[index]
	switch edge {
	case EdgeLeft:
		r.StartX = value
	case EdgeRight:
		r.EndX = value
	case EdgeTop:
		r.StartY = value
	case EdgeBottom:
		r.EndY = value
	default:
		return fmt.Errorf("update region %d: %w", index, ErrInvalidEdge)
	}
	return nil
}

// Clear empties the store.
func (s *Store) Clear() {
	s.regions = nil
}

// Len returns the number of regions.
func (s *Store) Len() int { return len(s.regions) }

// At returns the region at index.
func (s *Store) At(index int) (Region, bool) {
	if index < 0 || index >= len(s.regions) {
		return Region{}, false
	}
	return s.regions[index], true
}

// Regions returns a copy of the live sequence.
func (s *Store) Regions() []Region {
	return cloneRegions(s.regions)
}

// Snapshot returns a deep, independent copy of the current sequence.
func (s *Store) Snapshot() Snapshot {
	return NewSnapshot(s.regions)
}

// Restore replaces the live sequence with a copy of snap.
func (s *Store) Restore(snap Snapshot) {
	s.regions = cloneRegions(snap.regions)
}

// HitTest returns the index of the first region, in store order, whose open
// interval strictly contains p. Overlapping regions resolve by order alone.
func (s *Store) HitTest(p types.Point) (int, bool) {
	for i, r := range s.regions {
		if r.Contains(p) {
			return i, true
		}
	}
	return -1, false
}

// ResizeEdge returns the edge of the region at index that p is within
// threshold of, or EdgeNone.
func (s *Store) ResizeEdge(index int, p types.Point, threshold float64) Edge {
	r, ok := s.At(index)
	if !ok {
		return EdgeNone
	}
	return NearestEdge(r, p, threshold)
}

// MarshalJSON encodes the sequence as a JSON array of regions.
func (s *Store) MarshalJSON() ([]byte, error) {
	return Encode(s.regions)
}

// Encode writes regions as a JSON array; nil encodes as [].
func Encode(regions []Region) ([]byte, error) {
	if regions == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(regions)
}

// Decode parses a JSON region array as written by MarshalJSON.
func Decode(data []byte) ([]Region, error) {
	var regions []Region
	if err := json.Unmarshal(data, &regions); err != nil {
		return nil, fmt.Errorf("decode regions: %w", err)
	}
	return regions, nil
}

// Replace swaps the live sequence for a copy of regions.
func (s *Store) Replace(regions []Region) {
	s.regions = cloneRegions(regions)
}

func cloneRegions(in []Region) []Region {
	if len(in) == 0 {
		return nil
	}
	out := make([]Region, len(in))
	copy(out, in)
	return out
}
