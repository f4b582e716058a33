package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceZeroForSamePoint(t *testing.T) {
	p := Point{Lat: 40.4168, Lon: -3.7038}
	assert.Equal(t, 0.0, Distance(p, p))
}

func TestDistanceIsSymmetric(t *testing.T) {
	madrid := Point{Lat: 40.4168, Lon: -3.7038}
	barcelona := Point{Lat: 41.3874, Lon: 2.1686}

	assert.InDelta(t, Distance(madrid, barcelona), Distance(barcelona, madrid), 1e-9)
}

func TestDistanceKnownValue(t *testing.T) {
	madrid := Point{Lat: 40.4168, Lon: -3.7038}
	barcelona := Point{Lat: 41.3874, Lon: 2.1686}

	// Great-circle distance Madrid <-> Barcelona is roughly 505 km.
	d := Distance(madrid, barcelona)
	assert.InDelta(t, 505, d, 5)
}

func TestDistanceNaNPropagates(t *testing.T) {
	p := Point{Lat: math.NaN(), Lon: 0}
	assert.True(t, math.IsNaN(Distance(p, Point{})))
}
