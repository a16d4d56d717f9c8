package elevroute

import "math"

// edgeCost returns the scalar weight DijkstraCore should relax an edge
// with. LARAC drives search with a blended Lagrangian objective
// (basis + lambda*rise); a plain shortest-path or shortest-rise search is
// just lambda == 0 against the right base metric.
type edgeCost func(e Edge, fromElevation, toElevation float64) float64

// riseOf returns the elevation gain crossing an edge, clamped to zero for
// descents: rise never gives a path "credit" for going downhill.
func riseOf(fromElevation, toElevation float64) float64 {
	d := toElevation - fromElevation
	if d < 0 {
		return 0
	}
	return d
}

// speedForMode caps a way's signed speed limit at the travel mode's
// practical pace, mirroring the original implementation's per-mode speed
// rules: cars use the posted limit, bikes are capped at 20 km/h, walking is
// fixed at 7 km/h regardless of the way's maxspeed tag.
func speedForMode(mode Mode, limit int32) float64 {
	switch mode {
	case ModeCar:
		return math.Max(float64(limit), 1)
	case ModeBike:
		return math.Min(math.Max(float64(limit), 1), 20)
	case ModeFoot:
		return 7
	default:
		return math.Max(float64(limit), 1)
	}
}

// basisCost is an edge's weight before any elevation term: kilometers when
// useDistance, hours (kilometers / effective speed) otherwise (spec.md
// §4.4's cost_kind=Multiplier(λ) edge_weight rule).
func (d *DijkstraCore) basisCost(e Edge) float64 {
	if d.useDistance {
		return e.Distance
	}
	return e.Distance / speedForMode(d.mode, e.SpeedLimit)
}

// distanceCost weighs an edge by its basis cost alone (lambda == 0).
func (d *DijkstraCore) distanceCost(e Edge, _, _ float64) float64 {
	return d.basisCost(e)
}

// lagrangianCost blends the basis cost and rise for a given multiplier
// lambda, the inner relaxation LaracPlanner iterates over (spec.md
// §4.4/§4.5).
func (d *DijkstraCore) lagrangianCost(lambda float64) edgeCost {
	return func(e Edge, fromElevation, toElevation float64) float64 {
		return d.basisCost(e) + lambda*riseOf(fromElevation, toElevation)
	}
}

// DijkstraResult is a resolved shortest path: predecessors form the path
// from Target back to Source. Distance is the accumulated basis metric
// DijkstraCore was configured with — kilometers when useDistance,
// hours otherwise (spec.md §3) — and Rise is the true accumulated
// elevation gain, neither of which is the blended Cost a Lagrangian
// search ran against.
type DijkstraResult struct {
	Reached     bool
	Cost        float64
	Distance    float64
	Rise        float64
	predecessor map[int32]int32
}

// Path reconstructs the node sequence from source to target, inclusive.
func (r DijkstraResult) Path(source, target int32) []int32 {
	if !r.Reached {
		return nil
	}
	path := []int32{target}
	cur := target
	for cur != source {
		prev, ok := r.predecessor[cur]
		if !ok {
			break
		}
		path = append(path, prev)
		cur = prev
	}
	reverse32(path)
	return path
}

func reverse32(s []int32) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// DijkstraCore runs lazy-decrease-key Dijkstra over a GraphStore, relaxing
// only edges whose TravelType is admissible for a mode. It carries
// accumulated basis distance and rise alongside the driving cost so callers
// get both the search objective and the real-world metrics for the winning
// path (spec.md §4.4). useDistance selects the basis: kilometers when true,
// hours (kilometers / effective speed) when false.
type DijkstraCore struct {
	store       *GraphStore
	allowed     map[TravelType]struct{}
	mode        Mode
	useDistance bool
}

// NewDijkstraCore builds a search core over store restricted to the travel
// types mode allows, weighing edges by kilometers when useDistance is true
// or by hours (via each mode's effective speed) when it is false.
func NewDijkstraCore(store *GraphStore, mode Mode, useDistance bool) *DijkstraCore {
	return &DijkstraCore{store: store, allowed: allowedTravelTypes(mode), mode: mode, useDistance: useDistance}
}

// ShortestPath runs Dijkstra from source to target using cost to weigh
// edges. It stops as soon as target is popped from the frontier (spec.md
// §4.4: "search may terminate early once the target is settled").
func (d *DijkstraCore) ShortestPath(source, target int32, cost edgeCost) DijkstraResult {
	heap := Create()
	visited := NewBitset()
	best := make(map[int32]HNode)
	pred := make(map[int32]int32)

	heap.Insert(HNode{Node: source, Cost: 0, AccDistance: 0, AccRise: 0})
	best[source] = HNode{Node: source, Cost: 0}

	for !heap.IsEmpty() {
		cur, err := heap.Min()
		if err != nil {
			break
		}
		_ = heap.DeleteMin()

		if visited.Exists(cur.Node) {
			continue
		}
		visited.Set(cur.Node, true)
		if cur.HasPredecessor {
			pred[cur.Node] = cur.Predecessor
		}

		if cur.Node == target {
			return DijkstraResult{
				Reached:     true,
				Cost:        cur.Cost,
				Distance:    cur.AccDistance,
				Rise:        cur.AccRise,
				predecessor: pred,
			}
		}

		fromElevation := d.store.Nodes[cur.Node].Elevation
		for _, e := range d.store.OutEdges(cur.Node) {
			if _, ok := d.allowed[e.TravelType]; !ok {
				continue
			}
			if visited.Exists(e.Target) {
				continue
			}
			toElevation := d.store.Nodes[e.Target].Elevation
			next := HNode{
				Node:           e.Target,
				Cost:           cur.Cost + cost(e, fromElevation, toElevation),
				AccDistance:    cur.AccDistance + d.basisCost(e),
				AccRise:        cur.AccRise + riseOf(fromElevation, toElevation),
				Predecessor:    cur.Node,
				HasPredecessor: true,
			}
			if b, ok := best[e.Target]; ok && b.Cost <= next.Cost {
				continue
			}
			best[e.Target] = next
			heap.Insert(next)
		}
	}
	return DijkstraResult{Reached: false}
}

// ShortestDistance is the plain, rise-agnostic shortest path LARAC uses to
// establish its lower bound (lambda == 0 against the basis metric alone).
func (d *DijkstraCore) ShortestDistance(source, target int32) DijkstraResult {
	return d.ShortestPath(source, target, d.distanceCost)
}

// MinimumRise finds the path minimizing accumulated rise, breaking ties
// toward a smaller basis cost by nudging the rise cost with a vanishingly
// small basis term. LARAC uses this to test feasibility of its rise
// budget at all (spec.md §4.5 step 1).
func (d *DijkstraCore) MinimumRise(source, target int32) DijkstraResult {
	const epsilon = 1e-9
	return d.ShortestPath(source, target, func(e Edge, from, to float64) float64 {
		return riseOf(from, to) + epsilon*d.basisCost(e)
	})
}

// Lagrangian runs the blended basis+lambda*rise search LaracPlanner
// iterates with during its bracket search over lambda.
func (d *DijkstraCore) Lagrangian(source, target int32, lambda float64) DijkstraResult {
	return d.ShortestPath(source, target, d.lagrangianCost(lambda))
}

// feasible reports whether r satisfies a rise budget, allowing for
// floating point slack.
func feasible(r DijkstraResult, maxRise float64) bool {
	return r.Reached && r.Rise <= maxRise+laracTolerance
}
