package elevroute

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLaracReturnsUnconstrainedWhenWithinBudget(t *testing.T) {
	store := diamond()
	core := NewDijkstraCore(&store, ModeCar, true)
	planner := NewLaracPlanner(core, 0, 3)

	paths, err := planner.Plan(1000, false)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("Plan() returned %d paths, want 1", len(paths))
	}
	if paths[0].Distance != 1.0 {
		t.Errorf("Plan().Distance = %v, want 1.0 (unconstrained shortest)", paths[0].Distance)
	}
}

func TestLaracTradesDistanceForLowerRise(t *testing.T) {
	store := diamond()
	core := NewDijkstraCore(&store, ModeCar, true)
	planner := NewLaracPlanner(core, 0, 3)

	// Budget of 10m rise rules out the 50m-climb shortcut, forcing the
	// flat but longer route via node 1.
	paths, err := planner.Plan(10, false)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	best := paths[len(paths)-1]
	if best.Rise > 10+laracTolerance {
		t.Errorf("Plan(maxRise=10).Rise = %v, want <= 10", best.Rise)
	}
	if best.Distance != 2.0 {
		t.Errorf("Plan(maxRise=10).Distance = %v, want 2.0 (forced onto flat route)", best.Distance)
	}
}

func TestLaracInfeasibleBelowMinimumRise(t *testing.T) {
	store := diamond()
	core := NewDijkstraCore(&store, ModeCar, true)
	planner := NewLaracPlanner(core, 0, 3)

	_, err := planner.Plan(-1, false)
	require.Error(t, err)
	var infeasible *InfeasibleError
	require.ErrorAs(t, err, &infeasible)
	require.Equal(t, 0.0, infeasible.MinRise, "flat route achieves zero rise")
}

func TestLaracUnreachableWhenNoPath(t *testing.T) {
	store := diamond()
	store.Nodes = append(store.Nodes, Node{Lat: 1, Lon: 1})
	store.Offset = append(store.Offset, store.Offset[len(store.Offset)-1])
	core := NewDijkstraCore(&store, ModeCar, true)
	planner := NewLaracPlanner(core, 0, 4)

	paths, err := planner.Plan(1000, false)
	if err != nil {
		t.Fatalf("Plan() to unconnected node error = %v, want nil (Unreachable surfaces as empty result)", err)
	}
	if len(paths) != 0 {
		t.Errorf("Plan() to unconnected node returned %d paths, want 0", len(paths))
	}
}
