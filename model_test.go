package elevroute

import "testing"

func TestGridKeyForSigned(t *testing.T) {
	cases := []struct {
		lat, lon float64
		want     GridKey
	}{
		{0.005, 0.005, GridKey{0, 0}},
		{-0.005, -0.005, GridKey{-1, -1}},
		{1.2345, -1.2345, GridKey{123, -124}},
	}
	for _, c := range cases {
		if got := gridKeyFor(c.lat, c.lon); got != c.want {
			t.Errorf("gridKeyFor(%v, %v) = %v, want %v", c.lat, c.lon, got, c.want)
		}
	}
}

func TestFloorIntNegative(t *testing.T) {
	if got := floorInt(-0.5); got != -1 {
		t.Errorf("floorInt(-0.5) = %d, want -1", got)
	}
	if got := floorInt(-1.0); got != -1 {
		t.Errorf("floorInt(-1.0) = %d, want -1", got)
	}
	if got := floorInt(1.9); got != 1 {
		t.Errorf("floorInt(1.9) = %d, want 1", got)
	}
}

func buildTestStore() GraphStore {
	// a -- b -- c, each 1km apart on the equator, offsets baked by hand.
	nodes := []Node{
		{Lat: 0, Lon: 0, Elevation: 0},
		{Lat: 0, Lon: 0.01, Elevation: 0},
		{Lat: 0, Lon: 0.02, Elevation: 0},
	}
	edges := []Edge{
		{Source: 0, Target: 1, SpeedLimit: 50, Distance: 1.1, TravelType: TravelAll},
		{Source: 1, Target: 0, SpeedLimit: 50, Distance: 1.1, TravelType: TravelAll},
		{Source: 1, Target: 2, SpeedLimit: 50, Distance: 1.1, TravelType: TravelAll},
		{Source: 2, Target: 1, SpeedLimit: 50, Distance: 1.1, TravelType: TravelAll},
	}
	offset := OffsetIndex{0, 1, 3, 4}
	grid := make(SpatialGrid)
	for i, n := range nodes {
		grid.insert(n.Lat, n.Lon, int32(i))
	}
	return GraphStore{Nodes: nodes, Edges: edges, Offset: offset, Grid: grid}
}

func TestValidateInvariantsAcceptsWellFormedGraph(t *testing.T) {
	s := buildTestStore()
	if err := s.ValidateInvariants(); err != nil {
		t.Fatalf("ValidateInvariants() = %v, want nil", err)
	}
}

func TestValidateInvariantsCatchesBadOffsetLength(t *testing.T) {
	s := buildTestStore()
	s.Offset = s.Offset[:len(s.Offset)-1]
	if err := s.ValidateInvariants(); err == nil {
		t.Fatal("ValidateInvariants() = nil, want error on truncated offset")
	}
}

func TestValidateInvariantsCatchesMisplacedGridNode(t *testing.T) {
	s := buildTestStore()
	s.Grid[GridKey{999, 999}] = []int32{0}
	if err := s.ValidateInvariants(); err == nil {
		t.Fatal("ValidateInvariants() = nil, want error on misplaced grid node")
	}
}

func TestOutEdges(t *testing.T) {
	s := buildTestStore()
	edges := s.OutEdges(1)
	if len(edges) != 2 {
		t.Fatalf("OutEdges(1) returned %d edges, want 2", len(edges))
	}
}
