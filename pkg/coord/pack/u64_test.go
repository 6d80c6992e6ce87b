package pack

import (
	"testing"
	"testing/quick"

	"github.com/tilezen/hilbert/pkg/coord"
)

func TestPackU64Symmetric(t *testing.T) {
	maxZoomToGen := uint(29)
	cfg := quick.Config{
		MaxCount: 1000,
		Values:   newValidCoordGenerator(maxZoomToGen),
	}
	f := func(c *coord.Coord) bool {
		packed, err := ToU64(*c)
		if err != nil {
			panic(err)
		}
		unpackedCoord := FromU64(packed)
		return unpackedCoord == *c
	}
	if err := quick.Check(f, &cfg); err != nil {
		t.Error(err)
	}
}

func TestPackU64CurveOrder(t *testing.T) {
	// zoom 1 tiles pack in curve order, then zoom 2 follows all of zoom 1
	order := []coord.Coord{{Z: 1, X: 0, Y: 0}, {Z: 1, X: 0, Y: 1}, {Z: 1, X: 1, Y: 1}, {Z: 1, X: 1, Y: 0}, {Z: 2, X: 0, Y: 0}}
	var last uint64
	for i, c := range order {
		packed, err := ToU64(c)
		if err != nil {
			t.Fatal(err)
		}
		if i > 0 && packed <= last {
			t.Errorf("%s packed to %d, not after %d", c, packed, last)
		}
		last = packed
	}
}

func TestPackU64TooDeep(t *testing.T) {
	if _, err := ToU64(coord.Coord{Z: 30}); err == nil {
		t.Fail()
	}
}

func TestPackOutsideGrid(t *testing.T) {
	for _, c := range []coord.Coord{{Z: 1, X: 3, Y: 0}, {Z: 1, X: 0, Y: 2}, {Z: 0, X: 1, Y: 0}, {Z: 14, X: 1 << 14, Y: 0}} {
		if _, err := ToU64(c); err == nil {
			t.Errorf("ToU64(%s) should fail", c)
		}
		if _, err := ToU32(c); err == nil {
			t.Errorf("ToU32(%s) should fail", c)
		}
		if _, err := ToU32Var(c); err == nil {
			t.Errorf("ToU32Var(%s) should fail", c)
		}
	}
}
