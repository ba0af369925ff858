package geo

import (
	"cmp"
	"slices"
)

// Located is implemented by records that may carry a position.
type Located interface {
	Position() (lat, lon float64, ok bool)
}

type candidate[T Located] struct {
	record   T
	distance float64
}

// FindNearby returns the candidates within radiusKm of origin, nearest first,
// truncated to limit. Candidates without a position, or with a corrupt one,
// are skipped. Records at equal distance keep their input order.
func FindNearby[T Located](candidates []T, origin Point, radiusKm float64, limit int) []T {
	matches := make([]candidate[T], 0, len(candidates))
	for _, c := range candidates {
		lat, lon, ok := c.Position()
		if !ok {
			continue
		}
		p := Point{Lat: lat, Lon: lon}
		if !p.Valid() {
			continue
		}
		d := Distance(origin, p)
		if d > radiusKm {
			continue
		}
		matches = append(matches, candidate[T]{record: c, distance: d})
	}

	slices.SortStableFunc(matches, func(a, b candidate[T]) int {
		return cmp.Compare(a.distance, b.distance)
	})

	if limit >= 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]T, len(matches))
	for i, m := range matches {
		out[i] = m.record
	}
	return out
}
