package elevroute

import (
	"fmt"

	geojson "github.com/paulmach/go.geojson"
)

// QueryRequest is one end-to-end routing request: locate the nearest
// admissible node to each endpoint, then plan a route between them.
// UseDistance selects the search basis (spec.md §4.4/§6's by_distance):
// true weighs edges by kilometers, false by hours via each mode's
// effective speed, so a car or bike query can trade a shorter route for
// a faster one (foot speed is a fixed 7 km/h, so both bases rank foot
// routes alike).
type QueryRequest struct {
	FromLat, FromLon float64
	ToLat, ToLon     float64
	Mode             Mode
	UseDistance      bool
	MaxRise          float64
	AllPaths         bool
}

// QueryResult is the resolved answer to a QueryRequest: the node path plus
// its metrics in user-facing units.
type QueryResult struct {
	Paths        []PathResult
	DistanceKM   float64
	DurationH    float64
	DurationUnit string
}

// Query locates both endpoints in store for the requested mode, then runs
// LaracPlanner between them, returning the optimal route (and, when
// AllPaths is set, the full bracketing history) subject to req.MaxRise
// meters of cumulative climb. When LaracPlanner finds the endpoints
// unreachable from one another it returns an empty Paths list rather than
// an error (spec.md §7: Unreachable surfaces as an empty result list).
func Query(store *GraphStore, req QueryRequest) (QueryResult, error) {
	locator := NewSpatialLocator(store)
	from, err := locator.Locate(req.FromLat, req.FromLon, req.Mode)
	if err != nil {
		return QueryResult{}, fmt.Errorf("locating origin: %w", err)
	}
	to, err := locator.Locate(req.ToLat, req.ToLon, req.Mode)
	if err != nil {
		return QueryResult{}, fmt.Errorf("locating destination: %w", err)
	}

	core := NewDijkstraCore(store, req.Mode, req.UseDistance)
	planner := NewLaracPlanner(core, from, to)
	paths, err := planner.Plan(req.MaxRise, req.AllPaths)
	if err != nil {
		return QueryResult{}, err
	}
	if len(paths) == 0 {
		return QueryResult{Paths: []PathResult{}}, nil
	}

	best := paths[len(paths)-1]

	var distanceKM, hours float64
	if req.UseDistance {
		distanceKM = best.Distance
		hours = estimateHours(store, best.Path, req.Mode)
	} else {
		distanceKM = sumDistanceKM(store, best.Path)
		hours = best.Distance
	}
	value, unit := FormatDuration(hours)

	return QueryResult{
		Paths:        paths,
		DistanceKM:   distanceKM,
		DurationH:    value,
		DurationUnit: unit,
	}, nil
}

// estimateHours sums travel time along a resolved path using each edge's
// mode-adjusted speed. Used when the search itself optimized for distance,
// so the duration still needs computing after the fact.
func estimateHours(store *GraphStore, path []int32, mode Mode) float64 {
	if len(path) < 2 {
		return 0
	}
	total := 0.0
	for i := 1; i < len(path); i++ {
		src, dst := path[i-1], path[i]
		for _, e := range store.OutEdges(src) {
			if e.Target == dst {
				total += e.Distance / speedForMode(mode, e.SpeedLimit)
				break
			}
		}
	}
	return total
}

// sumDistanceKM sums true edge distance along a resolved path. Used when
// the search optimized for time, so the real-world distance still needs
// computing after the fact.
func sumDistanceKM(store *GraphStore, path []int32) float64 {
	if len(path) < 2 {
		return 0
	}
	total := 0.0
	for i := 1; i < len(path); i++ {
		src, dst := path[i-1], path[i]
		for _, e := range store.OutEdges(src) {
			if e.Target == dst {
				total += e.Distance
				break
			}
		}
	}
	return total
}

// FormatDuration reports a travel-time duration using a single consistent
// rule (spec.md §9 design-notes redesign, replacing the original's
// integer-part-only minute formatting): durations of an hour or more are
// reported in hours, anything under an hour in minutes — never both, and
// never silently dropped.
func FormatDuration(hours float64) (value float64, unit string) {
	if hours >= 1 {
		return hours, "h"
	}
	return hours * 60, "min"
}

// RouteToGeoJSON exports a resolved node path as a GeoJSON LineString
// FeatureCollection, grounded on the teacher's own route-inspection test
// and the original web server's debug route export. It is a supplemental,
// library-level export: no HTTP handler is implied or provided.
func RouteToGeoJSON(store *GraphStore, path []int32) *geojson.FeatureCollection {
	coords := make([][]float64, len(path))
	for i, id := range path {
		n := store.Nodes[id]
		coords[i] = []float64{n.Lon, n.Lat}
	}
	fc := geojson.NewFeatureCollection()
	fc.AddFeature(geojson.NewLineStringFeature(coords))
	return fc
}
