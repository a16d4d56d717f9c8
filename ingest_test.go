package elevroute

import "testing"

// IngestPBF itself needs a real PBF fixture, which this retrieval pack does
// not ship; finalize is the pass-3 logic it's most valuable to pin down
// directly, since it's responsible for two of the testable CSR invariants.
func TestFinalizeSortsByBuildsOffsetAndBackfillsDistance(t *testing.T) {
	store := EmptyGraphStore()
	store.Nodes = []Node{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 0.01},
		{Lat: 0, Lon: 0.02},
	}
	pending := []pendingEdge{
		{source: 2, target: 1, travelType: TravelAll},
		{source: 0, target: 1, travelType: TravelAll},
		{source: 1, target: 2, travelType: TravelAll},
		{source: 1, target: 0, travelType: TravelAll},
	}
	finalize(&store, pending)

	if err := store.ValidateInvariants(); err != nil {
		t.Fatalf("ValidateInvariants() = %v", err)
	}
	for i, e := range store.Edges {
		if e.Distance <= 0 {
			t.Errorf("edge %d (%d->%d) has non-positive backfilled distance %v", i, e.Source, e.Target, e.Distance)
		}
	}
	for i := 1; i < len(store.Edges); i++ {
		if store.Edges[i-1].Source > store.Edges[i].Source {
			t.Fatalf("edges not sorted by source: %+v before %+v", store.Edges[i-1], store.Edges[i])
		}
	}
}

func TestFinalizeEmptyGraph(t *testing.T) {
	store := EmptyGraphStore()
	finalize(&store, nil)
	if err := store.ValidateInvariants(); err != nil {
		t.Fatalf("ValidateInvariants() on empty graph = %v", err)
	}
	if len(store.Offset) != 1 || store.Offset[0] != 0 {
		t.Errorf("Offset on empty graph = %v, want [0]", store.Offset)
	}
}
