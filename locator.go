package elevroute

import (
	"fmt"

	"github.com/golang/geo/s2"
)

// SpatialLocator finds the nearest admissible node to a query coordinate
// using GraphStore's SpatialGrid, the cell-spiral search of spec.md §4.3.
type SpatialLocator struct {
	store *GraphStore
}

// NewSpatialLocator wraps a GraphStore for point-to-node lookups.
func NewSpatialLocator(store *GraphStore) *SpatialLocator {
	return &SpatialLocator{store: store}
}

// maxRingSearch bounds the spiral in cells (±100 degrees at 0.01-degree
// cells): beyond this the grid cannot plausibly hold a matching node and
// the search gives up rather than scanning forever.
const maxRingSearch = 10000

// Locate finds the nearest node within gridCell reach of (lat, lon) whose
// edges include at least one admissible for mode, expanding the search
// ring by Chebyshev distance until a match is found or the grid is
// exhausted. Returns ErrUnreachable when no admissible node exists.
//
// The query coordinate is validated and normalized through s2.LatLng
// before any grid math runs, rejecting out-of-range degrees rather than
// silently hashing them into a nonsensical cell.
func (l *SpatialLocator) Locate(lat, lon float64, mode Mode) (int32, error) {
	ll := s2.LatLngFromDegrees(lat, lon)
	if !ll.IsValid() {
		return 0, fmt.Errorf("%w: invalid coordinate (%g, %g)", ErrMalformedInput, lat, lon)
	}
	lat, lon = ll.Lat.Degrees(), ll.Lng.Degrees()

	center := gridKeyFor(lat, lon)
	allowed := allowedTravelTypes(mode)

	for radius := 0; radius <= maxRingSearch; radius++ {
		candidates := l.ring(center, radius)
		if len(candidates) == 0 {
			if radius > 0 && l.gridExhausted(center, radius) {
				break
			}
			continue
		}

		best, bestDist, found := int32(-1), 0.0, false
		for _, id := range candidates {
			if !l.isAdmissible(id, allowed) {
				continue
			}
			n := l.store.Nodes[id]
			d := distanceLatLonKM(lat, lon, n.Lat, n.Lon)
			if !found || d < bestDist {
				best, bestDist, found = id, d, true
			}
		}
		if found {
			return best, nil
		}
	}
	return 0, ErrUnreachable
}

// ring collects every node in the cells forming the Chebyshev ring of the
// given radius around center (radius 0 is just the center cell itself).
func (l *SpatialLocator) ring(center GridKey, radius int) []int32 {
	var out []int32
	if radius == 0 {
		return append(out, l.store.Grid[center]...)
	}
	for dLat := -radius; dLat <= radius; dLat++ {
		for dLon := -radius; dLon <= radius; dLon++ {
			if abs(dLat) != radius && abs(dLon) != radius {
				continue // interior of the ring, already visited at a smaller radius
			}
			key := GridKey{LatCell: center.LatCell + dLat, LonCell: center.LonCell + dLon}
			out = append(out, l.store.Grid[key]...)
		}
	}
	return out
}

// gridExhausted reports whether every non-empty grid cell lies within
// radius of center, in which case widening further cannot reach any node
// not already scanned and Locate should give up.
func (l *SpatialLocator) gridExhausted(center GridKey, radius int) bool {
	for key, ids := range l.store.Grid {
		if len(ids) == 0 {
			continue
		}
		if abs(key.LatCell-center.LatCell) > radius || abs(key.LonCell-center.LonCell) > radius {
			return false
		}
	}
	return true
}

func (l *SpatialLocator) isAdmissible(id int32, allowed map[TravelType]struct{}) bool {
	for _, e := range l.store.OutEdges(id) {
		if _, ok := allowed[e.TravelType]; ok {
			return true
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
