package pack

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/tilezen/hilbert/pkg/coord"
)

// Set is a set of tiles stored as their ToU64 keys in a compressed
// bitmap. Tiles close on the curve share bitmap containers, so dense
// regions stay small. Iteration yields tiles by zoom, then curve order.
type Set struct {
	rb *roaring64.Bitmap
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{rb: roaring64.New()}
}

// Add inserts c. It fails for tiles ToU64 can't pack.
func (s *Set) Add(c coord.Coord) error {
	key, err := ToU64(c)
	if err != nil {
		return err
	}
	s.rb.Add(key)
	return nil
}

// Remove deletes c if present.
func (s *Set) Remove(c coord.Coord) {
	if key, err := ToU64(c); err == nil {
		s.rb.Remove(key)
	}
}

// Contains reports whether c is in the set.
func (s *Set) Contains(c coord.Coord) bool {
	key, err := ToU64(c)
	if err != nil {
		return false
	}
	return s.rb.Contains(key)
}

// Len is the number of tiles in the set.
func (s *Set) Len() uint64 {
	return s.rb.GetCardinality()
}

// AndNot removes every tile of o from s.
func (s *Set) AndNot(o *Set) {
	s.rb.AndNot(o.rb)
}

// Each calls fn for every tile in order until fn returns false.
func (s *Set) Each(fn func(coord.Coord) bool) {
	it := s.rb.Iterator()
	for it.HasNext() {
		if !fn(FromU64(it.Next())) {
			return
		}
	}
}

// Coords returns every tile in order.
func (s *Set) Coords() []coord.Coord {
	result := make([]coord.Coord, 0, s.Len())
	s.Each(func(c coord.Coord) bool {
		result = append(result, c)
		return true
	})
	return result
}

// Union adds every tile of o to s.
func (s *Set) Union(o *Set) {
	s.rb.Or(o.rb)
}
