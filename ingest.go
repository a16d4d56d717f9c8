package elevroute

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"sort"

	"github.com/qedus/osmpbf"
)

// pendingEdge mirrors Edge before pass 3 fills in the haversine distance.
type pendingEdge struct {
	source, target int32
	speedLimit     int32
	travelType     TravelType
}

// IngestPBF runs the three-pass OsmIngest of spec.md §4.2 over a PBF file,
// resolving node elevation through srtm, and returns a finalized
// GraphStore. srtm may be nil, in which case every node's elevation is 0
// (useful for tests that don't exercise elevation-aware routing).
func IngestPBF(ctx context.Context, path string, srtm *SrtmTileStore) (GraphStore, error) {
	if _, err := os.Stat(path); err != nil {
		return GraphStore{}, fmt.Errorf("%w: %q", ErrInputMissing, path)
	}

	osmIDs, edges, err := ingestWays(path)
	if err != nil {
		return GraphStore{}, err
	}
	log.Printf("ingest: resolved %d directed edges over %d nodes", len(edges), len(osmIDs))

	store := EmptyGraphStore()
	store.Nodes = make([]Node, len(osmIDs))
	if err := ingestNodes(ctx, path, osmIDs, srtm, &store); err != nil {
		return GraphStore{}, err
	}

	finalize(&store, edges)
	return store, nil
}

// ingestWays is pass 1: classify ways, resolve speed and direction, and
// assign dense node indices in first-seen order.
func ingestWays(path string) (map[int64]int32, []pendingEdge, error) {
	d, f, err := openAndDecodePBF(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	osmIDs := make(map[int64]int32)
	edges := make([]pendingEdge, 0)
	nextID := int32(0)

	denseID := func(osmID int64) int32 {
		if id, ok := osmIDs[osmID]; ok {
			return id
		}
		id := nextID
		osmIDs[osmID] = id
		nextID++
		return id
	}

	for {
		obj, err := d.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: decoding ways: %v", ErrMalformedInput, err)
		}
		way, ok := obj.(*osmpbf.Way)
		if !ok {
			continue
		}
		highway, hasHighway := way.Tags[tagHighway]
		if !hasHighway {
			continue
		}
		sidewalk, hasSidewalk := way.Tags[tagSidewalk]
		travelType := classifyHighway(highway, sidewalk, hasSidewalk)
		if travelType == TravelSkip {
			continue
		}
		speed := resolveSpeed(way.Tags[tagMaxSpeed], highway)
		forward, reverse := edgeDirections(way.Tags[tagOneway], way.Tags[tagJunction])

		if len(way.NodeIDs) < 2 {
			continue
		}
		prev := denseID(way.NodeIDs[0])
		for _, osmID := range way.NodeIDs[1:] {
			id := denseID(osmID)
			if forward {
				edges = append(edges, pendingEdge{source: prev, target: id, speedLimit: int32(speed), travelType: travelType})
			}
			if reverse {
				edges = append(edges, pendingEdge{source: id, target: prev, speedLimit: int32(speed), travelType: travelType})
			}
			prev = id
		}
	}
	return osmIDs, edges, nil
}

// ingestNodes is pass 2: resolve coordinates and elevation for every dense
// node, inserting it into the spatial grid.
func ingestNodes(ctx context.Context, path string, osmIDs map[int64]int32, srtm *SrtmTileStore, store *GraphStore) error {
	d, f, err := openAndDecodePBF(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for {
		obj, err := d.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: decoding nodes: %v", ErrMalformedInput, err)
		}
		n, ok := obj.(*osmpbf.Node)
		if !ok {
			continue
		}
		id, ok := osmIDs[n.ID]
		if !ok {
			continue
		}

		elevation := 0.0
		if srtm != nil {
			v, found := srtm.Elevation(ctx, n.Lat, n.Lon, true)
			if !found {
				return fmt.Errorf("%w: node %d (first unresolved elevation)", ErrTileUnavailable, n.ID)
			}
			elevation = v
		}

		store.Nodes[id] = Node{Lat: n.Lat, Lon: n.Lon, Elevation: elevation}
		store.Grid.insert(n.Lat, n.Lon, id)
	}
	return nil
}

// finalize is pass 3: sort edges by source, compute the offset
// prefix-sum, and backfill each edge's haversine distance.
func finalize(store *GraphStore, pending []pendingEdge) {
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].source < pending[j].source
	})

	n := len(store.Nodes)
	store.Offset = make(OffsetIndex, n+1)
	store.Edges = make([]Edge, len(pending))
	for i, pe := range pending {
		src, dst := store.Nodes[pe.source], store.Nodes[pe.target]
		store.Edges[i] = Edge{
			Source:     pe.source,
			Target:     pe.target,
			SpeedLimit: pe.speedLimit,
			Distance:   distanceLatLonKM(src.Lat, src.Lon, dst.Lat, dst.Lon),
			TravelType: pe.travelType,
		}
		store.Offset[pe.source+1]++
	}
	for i := 1; i <= n; i++ {
		store.Offset[i] += store.Offset[i-1]
	}
}

// openAndDecodePBF opens path and starts a parallel osmpbf decoder, the
// same configuration the teacher package used.
func openAndDecodePBF(path string) (*osmpbf.Decoder, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %q: %v", ErrInputMissing, path, err)
	}
	d := osmpbf.NewDecoder(f)
	d.SetBufferSize(osmpbf.MaxBlobSize)
	if err := d.Start(runtime.GOMAXPROCS(-1)); err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("%w: starting pbf decoder: %v", ErrMalformedInput, err)
	}
	return d, f, nil
}
