package elevroute

import "testing"

func TestClassifyHighway(t *testing.T) {
	cases := []struct {
		highway, sidewalk string
		hasSidewalk       bool
		want              TravelType
	}{
		{"motorway", "", false, TravelMotor},
		{"secondary", "", false, TravelMotorBike},
		{"cycleway", "", false, TravelBike},
		{"path", "", false, TravelBikeFoot},
		{"footway", "", false, TravelFoot},
		{"residential", "", false, TravelAll},
		{"something_unknown", "", false, TravelAll},
		{"construction", "", false, TravelSkip},
		{"secondary", "both", true, TravelAll},
		{"cycleway", "left", true, TravelBikeFoot},
		{"path", "right", true, TravelAll},
		{"secondary", "none", true, TravelMotorBike},
	}
	for _, c := range cases {
		got := classifyHighway(c.highway, c.sidewalk, c.hasSidewalk)
		if got != c.want {
			t.Errorf("classifyHighway(%q, %q, %v) = %v, want %v", c.highway, c.sidewalk, c.hasSidewalk, got, c.want)
		}
	}
}

func TestResolveSpeed(t *testing.T) {
	cases := []struct {
		maxSpeed, highway string
		want              int
	}{
		{"50", "residential", 50},
		{"DE:urban", "residential", 50},
		{"", "motorway", 120},
		{"", "unknownhighway", defaultSpeedFallback},
		{"50 mph", "unknownhighway", defaultSpeedFallback},
	}
	for _, c := range cases {
		got := resolveSpeed(c.maxSpeed, c.highway)
		if got != c.want {
			t.Errorf("resolveSpeed(%q, %q) = %d, want %d", c.maxSpeed, c.highway, got, c.want)
		}
	}
}

func TestEdgeDirections(t *testing.T) {
	cases := []struct {
		oneway, junction        string
		wantForward, wantReverse bool
	}{
		{"", "", true, true},
		{"yes", "", true, false},
		{"-1", "", false, true},
		{"", "roundabout", true, false},
	}
	for _, c := range cases {
		forward, reverse := edgeDirections(c.oneway, c.junction)
		if forward != c.wantForward || reverse != c.wantReverse {
			t.Errorf("edgeDirections(%q, %q) = (%v, %v), want (%v, %v)",
				c.oneway, c.junction, forward, reverse, c.wantForward, c.wantReverse)
		}
	}
}

func TestParseOnewayTuple(t *testing.T) {
	// spec.md testable property 4's literal tuple semantics.
	if oneWay, reverseDir := parseOneway("yes"); oneWay != true || reverseDir != false {
		t.Errorf(`parseOneway("yes") = (%v, %v), want (true, false)`, oneWay, reverseDir)
	}
	if oneWay, reverseDir := parseOneway("-1"); oneWay != true || reverseDir != true {
		t.Errorf(`parseOneway("-1") = (%v, %v), want (true, true)`, oneWay, reverseDir)
	}
	if oneWay, reverseDir := parseOneway("no"); oneWay != false || reverseDir != false {
		t.Errorf(`parseOneway("no") = (%v, %v), want (false, false)`, oneWay, reverseDir)
	}
}
