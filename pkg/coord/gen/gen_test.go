package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilezen/hilbert/pkg/coord"
)

func drain(g Generator) []coord.Coord {
	var result []coord.Coord
	for c := g.Next(); c != nil; c = g.Next() {
		result = append(result, *c)
	}
	return result
}

func TestZoomRange(t *testing.T) {
	got := drain(NewZoomRange(0, 1))
	assert.Equal(t, []coord.Coord{
		{Z: 0, X: 0, Y: 0},
		{Z: 1, X: 0, Y: 0},
		{Z: 1, X: 0, Y: 1},
		{Z: 1, X: 1, Y: 1},
		{Z: 1, X: 1, Y: 0},
	}, got)
}

func TestZoomRangeIsSortedAndAdjacent(t *testing.T) {
	got := drain(NewZoomRange(3, 5))
	require.Len(t, got, 64+256+1024)
	for i := 1; i < len(got); i++ {
		a, b := got[i-1], got[i]
		require.True(t, a.LessHilbert(b), "%s then %s", a, b)
		if a.Z != b.Z {
			continue
		}
		dx := int(a.X) - int(b.X)
		dy := int(a.Y) - int(b.Y)
		require.Equal(t, 1, dx*dx+dy*dy, "%s then %s are not neighbours", a, b)
	}
}

func TestEmptyRange(t *testing.T) {
	assert.Nil(t, NewZoomRange(3, 2).Next())
}

func TestSlice(t *testing.T) {
	coords := []coord.Coord{{Z: 1, X: 1, Y: 1}, {Z: 2}}
	assert.Equal(t, coords, drain(NewSlice(coords)))
	assert.Nil(t, drain(NewSlice(nil)))
}
