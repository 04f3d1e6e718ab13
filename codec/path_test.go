package codec

import (
	"math"
	"testing"
)

func TestParsePathDataRect(t *testing.T) {
	contours, err := parsePathData("M0 0h24v24H0z")
	if err != nil {
		t.Fatalf("parsePathData: %v", err)
	}
	if len(contours) != 1 {
		t.Fatalf("contours = %d, want 1", len(contours))
	}
	c := contours[0]
	want := []outlinePoint{
		{0, 0, true},
		{24, 0, true},
		{24, 24, true},
		{0, 24, true},
	}
	if len(c) != len(want) {
		t.Fatalf("points = %d, want %d", len(c), len(want))
	}
	for i, p := range c {
		if p != want[i] {
			t.Errorf("point %d = %+v, want %+v", i, p, want[i])
		}
	}
}

func TestParsePathDataQuadratic(t *testing.T) {
	contours, err := parsePathData("M0 0Q5 10 10 0z")
	if err != nil {
		t.Fatalf("parsePathData: %v", err)
	}
	if len(contours) != 1 {
		t.Fatalf("contours = %d, want 1", len(contours))
	}
	c := contours[0]
	if len(c) != 3 {
		t.Fatalf("points = %d, want 3", len(c))
	}
	if !c[0].on || c[1].on || !c[2].on {
		t.Errorf("on-curve flags = %v %v %v, want true false true", c[0].on, c[1].on, c[2].on)
	}
	if c[1].x != 5 || c[1].y != 10 {
		t.Errorf("control point = (%g, %g), want (5, 10)", c[1].x, c[1].y)
	}
}

func TestParsePathDataCubicEndsOnTarget(t *testing.T) {
	contours, err := parsePathData("M0 0C0 10 10 10 10 0z")
	if err != nil {
		t.Fatalf("parsePathData: %v", err)
	}
	c := contours[0]
	last := c[len(c)-1]
	if !last.on || last.x != 10 || last.y != 0 {
		t.Errorf("last point = %+v, want on-curve (10, 0)", last)
	}
	// The cubic subdivides into quadratics: alternating off/on points
	// after the start.
	offs := 0
	for _, p := range c {
		if !p.on {
			offs++
		}
	}
	if offs != 4 {
		t.Errorf("off-curve points = %d, want 4", offs)
	}
}

func TestParsePathDataSmoothChain(t *testing.T) {
	// A chain of smooth quadratics reflects the previous control point.
	contours, err := parsePathData("M0 0Q2 4 4 0T8 0T12 0")
	if err != nil {
		t.Fatalf("parsePathData: %v", err)
	}
	c := contours[0]
	// start, then three quad segments of two points each
	if len(c) != 7 {
		t.Fatalf("points = %d, want 7", len(c))
	}
	// First T reflects (2,4) about (4,0) giving (6,-4); the second
	// reflects that about (8,0) giving (10,4).
	if c[3].x != 6 || c[3].y != -4 {
		t.Errorf("first reflected control = (%g, %g), want (6, -4)", c[3].x, c[3].y)
	}
	if c[5].x != 10 || c[5].y != 4 {
		t.Errorf("second reflected control = (%g, %g), want (10, 4)", c[5].x, c[5].y)
	}
}

func TestParsePathDataArcFlagsPacked(t *testing.T) {
	// Arc flags may be packed without separators.
	if _, err := parsePathData("M0 0A5 5 0 0110 0z"); err != nil {
		t.Fatalf("parsePathData: %v", err)
	}
}

func TestParsePathDataScientificNotation(t *testing.T) {
	contours, err := parsePathData("M1e1 0L2.5e-1 0L0 1E2z")
	if err != nil {
		t.Fatalf("parsePathData: %v", err)
	}
	c := contours[0]
	if c[0].x != 10 || c[1].x != 0.25 || c[2].y != 100 {
		t.Errorf("parsed coordinates = %g, %g, %g", c[0].x, c[1].x, c[2].y)
	}
}

func TestParsePathDataErrors(t *testing.T) {
	tests := []string{
		"X0 0",       // unknown command
		"M0",         // missing coordinate
		"M0 0A5 5 0", // truncated arc
		"M0 0L2 x",   // malformed number
	}
	for _, d := range tests {
		if _, err := parsePathData(d); err == nil {
			t.Errorf("parsePathData(%q) succeeded, want error", d)
		}
	}
}

func TestCubicToQuadsEndpoints(t *testing.T) {
	c := cubic{point{0, 0}, point{0, 10}, point{10, 10}, point{10, 0}}
	quads := cubicToQuads(c)
	if len(quads) != 4 {
		t.Fatalf("quads = %d, want 4", len(quads))
	}
	last := quads[len(quads)-1].end
	if last != c.p3 {
		t.Errorf("final endpoint = %+v, want %+v", last, c.p3)
	}
}

func TestArcToCubicsFullSweep(t *testing.T) {
	// A half-circle arc of radius 5 from (0,0) to (10,0).
	cubics := arcToCubics(point{0, 0}, 5, 5, 0, false, false, point{10, 0})
	if len(cubics) < 2 {
		t.Fatalf("segments = %d, want at least 2", len(cubics))
	}
	if cubics[0].p0 != (point{0, 0}) {
		t.Errorf("start = %+v, want (0, 0)", cubics[0].p0)
	}
	end := cubics[len(cubics)-1].p3
	if end != (point{10, 0}) {
		t.Errorf("end = %+v, want (10, 0)", end)
	}
	// The counter-sweep arc bulges toward positive y; its midpoint
	// should sit near (5, 5).
	mid := cubics[len(cubics)/2].p0
	if math.Abs(mid.x-5) > 0.01 || math.Abs(mid.y-5) > 0.01 {
		t.Errorf("midpoint = (%g, %g), want near (5, 5)", mid.x, mid.y)
	}
}

func TestArcToCubicsDegenerate(t *testing.T) {
	cubics := arcToCubics(point{0, 0}, 0, 5, 0, false, false, point{10, 0})
	if len(cubics) != 1 {
		t.Fatalf("segments = %d, want 1 straight segment", len(cubics))
	}
	if cubics[0].p3 != (point{10, 0}) {
		t.Errorf("end = %+v, want (10, 0)", cubics[0].p3)
	}
}
