package elevroute

import "math"

// laracTolerance bounds the floating point slack used when comparing two
// DijkstraResults for equality and when checking a rise budget (spec.md
// §9 open-question decision: 1e-9 absolute tolerance throughout).
const laracTolerance = 1e-9

// laracMaxIterations bounds the outer multiplier search. The original
// algorithm terminates once a multiplier reproduces a previously seen
// result; this cap only guards against float drift that prevents exact
// convergence, it is never expected to bind on a well-formed graph.
const laracMaxIterations = 64

// PathResult is one candidate route LaracPlanner produces: the node
// sequence, its accumulated basis metric (kilometers, or hours when the
// DijkstraCore weighs edges by time) and elevation rise (m), and the
// Lagrangian multiplier that made it optimal (nil for the two boundary
// searches).
type PathResult struct {
	Path     []int32
	Distance float64
	Rise     float64
	Lambda   *float64
}

func sameMetrics(a, b DijkstraResult) bool {
	return math.Abs(a.Distance-b.Distance) < laracTolerance && math.Abs(a.Rise-b.Rise) < laracTolerance
}

// LaracPlanner finds a shortest path subject to an elevation-rise budget,
// using Lagrangian Relaxation with Aggregated Cost (spec.md §4.5): it
// brackets the optimal multiplier between the pure-distance and
// pure-rise shortest paths, tightening the bracket by re-running the
// blended search at the multiplier implied by the two endpoints until it
// reproduces one of them.
type LaracPlanner struct {
	core   *DijkstraCore
	source int32
	target int32
}

// NewLaracPlanner builds a planner for one source/target pair over core.
func NewLaracPlanner(core *DijkstraCore, source, target int32) *LaracPlanner {
	return &LaracPlanner{core: core, source: source, target: target}
}

// Plan returns the optimal path honoring maxRise, plus the alternatives
// the multiplier search recorded when allPaths is true (the minimum-rise
// route and every feasible candidate found after the multiplier moved by
// more than the recommendation threshold, useful for presenting
// alternatives to a caller). allPaths=false returns just the final optimal
// result.
func (p *LaracPlanner) Plan(maxRise float64, allPaths bool) ([]PathResult, error) {
	distanceResult := p.core.ShortestDistance(p.source, p.target)
	if !distanceResult.Reached {
		// no path exists at all: Unreachable surfaces as an empty result
		// list, not a propagated error (spec.md §7).
		return []PathResult{}, nil
	}
	if feasible(distanceResult, maxRise) {
		// the unconstrained shortest path already satisfies the budget.
		return []PathResult{toPathResult(p, distanceResult, nil)}, nil
	}

	elevationResult := p.core.MinimumRise(p.source, p.target)
	if !elevationResult.Reached {
		return []PathResult{}, nil
	}
	if !feasible(elevationResult, maxRise) {
		return nil, &InfeasibleError{MinRise: elevationResult.Rise}
	}

	if sameMetrics(elevationResult, distanceResult) {
		return []PathResult{toPathResult(p, elevationResult, nil)}, nil
	}

	found := []PathResult{toPathResult(p, elevationResult, nil)}
	optimal := found[0]

	lambda := -1.0
	prevLambda := lambda
	const recommendationThreshold = 0.01

	for i := 0; i < laracMaxIterations; i++ {
		prevLambda = lambda
		denom := elevationResult.Rise - distanceResult.Rise
		if denom == 0 {
			break
		}
		lambda = (distanceResult.Distance - elevationResult.Distance) / denom

		latest := p.core.Lagrangian(p.source, p.target, lambda)
		if !latest.Reached {
			break
		}

		if sameMetrics(latest, elevationResult) || sameMetrics(latest, distanceResult) {
			break
		}

		if feasible(latest, maxRise) {
			usedLambda := lambda
			optimal = toPathResult(p, latest, &usedLambda)
			if math.Abs(lambda-prevLambda) > recommendationThreshold {
				found = append(found, optimal)
			}
			elevationResult = latest
		} else {
			distanceResult = latest
		}
	}

	if !allPaths {
		return []PathResult{optimal}, nil
	}
	return found, nil
}

func toPathResult(p *LaracPlanner, r DijkstraResult, lambda *float64) PathResult {
	return PathResult{
		Path:     r.Path(p.source, p.target),
		Distance: r.Distance,
		Rise:     r.Rise,
		Lambda:   lambda,
	}
}
