package elevroute

import (
	"github.com/umahmood/haversine"
)

// DistanceKM returns the great-circle distance between two nodes in
// kilometers, using the haversine formula (earth radius 6371km, spec.md
// §4.2 pass 3). The teacher package used this same library for edge
// distance backfill.
func DistanceKM(a, b Node) float64 {
	_, km := haversine.Distance(
		haversine.Coord{Lat: a.Lat, Lon: a.Lon},
		haversine.Coord{Lat: b.Lat, Lon: b.Lon},
	)
	return km
}

// distanceLatLonKM is DistanceKM without constructing intermediate Nodes,
// used by the spatial locator and by ingest before nodes are finalized.
func distanceLatLonKM(lat1, lon1, lat2, lon2 float64) float64 {
	_, km := haversine.Distance(
		haversine.Coord{Lat: lat1, Lon: lon1},
		haversine.Coord{Lat: lat2, Lon: lon2},
	)
	return km
}
