package tool

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestClosestParam(t *testing.T) {
	tests := []struct {
		name   string
		p1, d1 mgl64.Vec3
		p2, d2 mgl64.Vec3
		want   float64
		ok     bool
	}{
		{
			"perpendicular crossing",
			mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0},
			mgl64.Vec3{5, 2, 0}, mgl64.Vec3{-1, 0, 0},
			2, true,
		},
		{
			"skew lines",
			mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0},
			mgl64.Vec3{5, 3, 1}, mgl64.Vec3{-1, 0, 0},
			3, true,
		},
		{
			"parallel",
			mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0},
			mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0},
			0, false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := closestParam(tt.p1, tt.d1, tt.p2, tt.d2)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && math.Abs(s-tt.want) > 1e-9 {
				t.Errorf("s = %g, want %g", s, tt.want)
			}
		})
	}
}

func TestDragDistanceFollowsCursor(t *testing.T) {
	var d Drag

	// Axis straight up from the origin; cursor rays slide along X at
	// increasing heights, as if the user dragged upward.
	d.Begin(
		mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0},
		mgl64.Vec3{5, 0, 0}, mgl64.Vec3{-1, 0, 0},
	)
	if !d.Active {
		t.Fatal("drag did not start")
	}
	if d.Baseline != 0 {
		t.Fatalf("baseline = %g, want 0", d.Baseline)
	}

	dist, ok := d.Update(mgl64.Vec3{5, 2, 0}, mgl64.Vec3{-1, 0, 0})
	if !ok || math.Abs(dist-2) > 1e-9 {
		t.Errorf("Update = (%g, %v), want (2, true)", dist, ok)
	}

	// Dragging below the baseline yields a negative distance.
	dist, ok = d.Update(mgl64.Vec3{5, -1.5, 0}, mgl64.Vec3{-1, 0, 0})
	if !ok || math.Abs(dist+1.5) > 1e-9 {
		t.Errorf("Update = (%g, %v), want (-1.5, true)", dist, ok)
	}
}

func TestDragParallelRayLeavesDistance(t *testing.T) {
	var d Drag
	d.Begin(
		mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0},
		mgl64.Vec3{5, 0, 0}, mgl64.Vec3{-1, 0, 0},
	)

	// A view ray parallel to the axis has no unique closest point; the
	// frame reports not-ok instead of dividing by a near-zero value.
	if _, ok := d.Update(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}); ok {
		t.Error("parallel ray should not produce a distance")
	}
}

func TestDragBeginDegenerateAxis(t *testing.T) {
	var d Drag
	d.Begin(mgl64.Vec3{}, mgl64.Vec3{}, mgl64.Vec3{5, 0, 0}, mgl64.Vec3{-1, 0, 0})
	if d.Active {
		t.Error("drag started with a zero axis direction")
	}
}

func TestDragEnd(t *testing.T) {
	var d Drag
	d.Begin(
		mgl64.Vec3{1, 2, 3}, mgl64.Vec3{0, 1, 0},
		mgl64.Vec3{5, 0, 0}, mgl64.Vec3{-1, 0, 0},
	)
	d.End()
	if d.Active || d.Origin.Len() != 0 || d.Normal.Len() != 0 || d.Baseline != 0 {
		t.Errorf("End() left transient state: %+v", d)
	}
}
