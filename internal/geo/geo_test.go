package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type place struct {
	name string
	lat  *float64
	lon  *float64
}

func (p place) Position() (float64, float64, bool) {
	if p.lat == nil || p.lon == nil {
		return 0, 0, false
	}
	return *p.lat, *p.lon, true
}

func at(name string, lat, lon float64) place {
	return place{name: name, lat: &lat, lon: &lon}
}

func names(places []place) []string {
	out := make([]string, len(places))
	for i, p := range places {
		out[i] = p.name
	}
	return out
}

var origin = Point{Lat: 28.61, Lon: 77.20}

func TestDistance(t *testing.T) {
	assert.Zero(t, Distance(origin, origin))

	// One degree of latitude along a meridian.
	d := Distance(Point{Lat: 0, Lon: 0}, Point{Lat: 1, Lon: 0})
	assert.InDelta(t, 111.195, d, 0.01)

	// Antipodal points are half the circumference apart.
	d = Distance(Point{Lat: 0, Lon: 0}, Point{Lat: 0, Lon: 180})
	assert.InDelta(t, math.Pi*EarthRadiusKm, d, 1e-6)

	a := Point{Lat: 28.6139, Lon: 77.2090}
	b := Point{Lat: 28.5355, Lon: 77.3910}
	assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-9)
}

func TestFindNearbyAllWithinRadius(t *testing.T) {
	candidates := []place{
		at("City Hospital", 28.6139, 77.2090),
		at("Urgent Care Clinic", 28.5355, 77.3910),
		at("Family Clinic", 28.7041, 77.1025),
	}

	got := FindNearby(candidates, origin, 50, 20)
	assert.Equal(t, []string{"City Hospital", "Family Clinic", "Urgent Care Clinic"}, names(got))
}

func TestFindNearbyEmpty(t *testing.T) {
	got := FindNearby([]place{}, origin, 10, 20)
	assert.Empty(t, got)

	got = FindNearby[place](nil, origin, 10, 20)
	assert.Empty(t, got)
}

func TestFindNearbyFiltersRadiusAndLimit(t *testing.T) {
	candidates := []place{
		at("far", 40.7128, -74.0060),
		at("near", 28.6139, 77.2090),
		{name: "unlocated"},
		at("mid", 28.7041, 77.1025),
		at("edge", 28.5355, 77.3910),
	}

	got := FindNearby(candidates, origin, 15, 20)
	assert.Equal(t, []string{"near", "mid"}, names(got))

	got = FindNearby(candidates, origin, 50, 1)
	assert.Equal(t, []string{"near"}, names(got))
}

func TestFindNearbySkipsCorruptCoordinates(t *testing.T) {
	candidates := []place{
		at("nan", math.NaN(), 77.2),
		at("inf", 28.61, math.Inf(1)),
		at("out-of-range", 128.61, 77.2),
		at("ok", 28.6139, 77.2090),
	}

	got := FindNearby(candidates, origin, 10, 20)
	assert.Equal(t, []string{"ok"}, names(got))
}

func TestFindNearbyTiesKeepInputOrder(t *testing.T) {
	candidates := []place{
		at("first", 28.62, 77.20),
		at("second", 28.62, 77.20),
		at("third", 28.62, 77.20),
	}

	got := FindNearby(candidates, origin, 10, 20)
	assert.Equal(t, []string{"first", "second", "third"}, names(got))
}

func TestFindNearbyProperties(t *testing.T) {
	var candidates []place
	for i := 0; i < 200; i++ {
		lat := 28.0 + float64(i%20)*0.07
		lon := 76.5 + float64(i/20)*0.15
		if i%7 == 0 {
			candidates = append(candidates, place{name: "unlocated"})
			continue
		}
		candidates = append(candidates, at("p", lat, lon))
	}

	const radius, limit = 40.0, 25
	got := FindNearby(candidates, origin, radius, limit)
	require.NotEmpty(t, got)
	assert.LessOrEqual(t, len(got), limit)

	prev := 0.0
	for _, p := range got {
		lat, lon, ok := p.Position()
		require.True(t, ok)
		d := Distance(origin, Point{Lat: lat, Lon: lon})
		assert.LessOrEqual(t, d, radius)
		assert.GreaterOrEqual(t, d, prev)
		prev = d
	}
}
