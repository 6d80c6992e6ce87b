package coord

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZoomTo(t *testing.T) {
	z4 := Coord{4, 8, 7}

	z2 := z4.ZoomTo(2)
	exp := Coord{2, 2, 1}
	if z2 != exp {
		t.Fail()
	}

	z5 := z2.ZoomTo(5)
	exp = Coord{5, 16, 8}
	if z5 != exp {
		t.Fail()
	}
}

func TestHilbertZoom1(t *testing.T) {
	// the four zoom 1 tiles in curve order
	order := []Coord{{1, 0, 0}, {1, 0, 1}, {1, 1, 1}, {1, 1, 0}}
	for i, c := range order {
		assert.Equal(t, uint64(i), c.Hilbert(), "%s", c)
		assert.Equal(t, c, FromHilbert(1, uint64(i)))
	}
	assert.Equal(t, uint64(0), Coord{}.Hilbert())
	assert.Equal(t, Coord{}, FromHilbert(0, 0))
}

func TestHilbertRoundTrip(t *testing.T) {
	for z := uint(1); z <= 10; z++ {
		side := uint(1) << z
		for _, c := range []Coord{{z, 0, 0}, {z, side - 1, 0}, {z, side - 1, side - 1}, {z, side / 3, side / 2}} {
			require.Equal(t, c, FromHilbert(z, c.Hilbert()))
		}
	}
	c := Coord{MaxZoom, 1<<32 - 1, 12345}
	assert.Equal(t, c, FromHilbert(MaxZoom, c.Hilbert()))
}

func TestParentShiftsHilbert(t *testing.T) {
	for z := uint(1); z <= 6; z++ {
		side := uint(1) << z
		for x := uint(0); x < side; x++ {
			for y := uint(0); y < side; y++ {
				c := Coord{z, x, y}
				p := c.Parent()
				require.Equal(t, c.Hilbert()>>2, p.Hilbert(), "%s -> %s", c, p)
			}
		}
	}
	assert.Equal(t, Coord{}, Coord{}.Parent())
}

func TestLessHilbert(t *testing.T) {
	a := Coord{1, 0, 1}
	b := Coord{1, 1, 0}
	assert.True(t, a.LessHilbert(b))
	assert.False(t, b.LessHilbert(a))
	assert.False(t, a.LessHilbert(a))
	assert.True(t, Coord{0, 0, 0}.LessHilbert(a))
}

func TestSort(t *testing.T) {
	coords := []Coord{
		Coord{3, 2, 1},
		Coord{2, 1, 2},
		Coord{2, 2, 1},
		Coord{1, 1, 0},
		Coord{1, 0, 1},
	}
	sort.Sort(ByHilbert(coords))
	for i := 0; i < len(coords)-1; i++ {
		a := coords[i]
		b := coords[i+1]
		if !a.LessHilbert(b) {
			t.Errorf("%s sorted before %s", a, b)
		}
	}
	assert.Equal(t, Coord{1, 0, 1}, coords[0])
}

func TestDecode(t *testing.T) {
	s := "3/2/1"
	c, err := Decode(s)
	exp := Coord{3, 2, 1}
	if c == nil || err != nil || *c != exp {
		t.Fail()
	}

	for _, bad := range []string{"3/2/foo", "3/2", "1/2/0", "40/0/0"} {
		c, err = Decode(bad)
		if c != nil || err == nil {
			t.Errorf("expected %q to fail", bad)
		}
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Coord{0, 0, 0}.Valid())
	assert.False(t, Coord{0, 1, 0}.Valid())
	assert.True(t, Coord{14, 16383, 16383}.Valid())
	assert.False(t, Coord{14, 16384, 0}.Valid())
}

func TestSortHilbertMatchesByHilbert(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	coords := make([]Coord, 500)
	for i := range coords {
		z := uint(rnd.Intn(12))
		side := 1 << z
		coords[i] = Coord{z, uint(rnd.Intn(side)), uint(rnd.Intn(side))}
	}
	want := append([]Coord(nil), coords...)
	sort.Sort(ByHilbert(want))

	SortHilbert(coords)
	assert.Equal(t, want, coords)

	SortHilbert(nil)
}
