package hilbert

import (
	"fmt"
	"math/rand"
	"reflect"
)

// Test utility functions for the hilbert package.

// validParams lists every dims/bits pair of interest for property tests.
var validParams = [][2]int{
	{1, 1}, {1, 7}, {1, 64},
	{2, 1}, {2, 3}, {2, 16}, {2, 32},
	{3, 1}, {3, 4}, {3, 21},
	{4, 16}, {5, 2}, {8, 8}, {16, 4}, {64, 1},
}

// newIndexGenerator yields random in-range indices for c.
func newIndexGenerator(c *Curve) func([]reflect.Value, *rand.Rand) {
	return func(values []reflect.Value, rand *rand.Rand) {
		if len(values) != 1 {
			panic(fmt.Errorf("unexpected number of values to gen: %d", len(values)))
		}
		values[0] = reflect.ValueOf(rand.Uint64() & c.MaxIndex())
	}
}

// newPointGenerator yields random in-range points for c.
func newPointGenerator(c *Curve) func([]reflect.Value, *rand.Rand) {
	return func(values []reflect.Value, rand *rand.Rand) {
		if len(values) != 1 {
			panic(fmt.Errorf("unexpected number of values to gen: %d", len(values)))
		}
		p := make([]uint64, c.Dims())
		for i := range p {
			p[i] = rand.Uint64() & c.Side()
		}
		values[0] = reflect.ValueOf(p)
	}
}
