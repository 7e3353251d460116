package tool

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// parallelEpsilon bounds the closest-approach denominator below which
// the extrude axis and the view ray are treated as parallel.
const parallelEpsilon = 1e-9

// Drag accumulates state across consecutive frames while the pointer
// button is held: the extrude axis captured once at drag start and the
// baseline parameter that maps cursor motion to a distance of zero.
type Drag struct {
	Active   bool
	Origin   mgl64.Vec3 // extrude axis origin: selection centroid
	Normal   mgl64.Vec3 // extrude axis direction: averaged normal
	Baseline float64
}

// Begin captures the extrude axis and the baseline under the initial
// cursor ray. A degenerate axis direction leaves the drag inactive.
func (d *Drag) Begin(origin, normal, rayOrigin, rayDir mgl64.Vec3) {
	if normal.Len() == 0 {
		d.End()
		return
	}
	d.Active = true
	d.Origin = origin
	d.Normal = normal.Normalize()
	if s, ok := closestParam(origin, d.Normal, rayOrigin, rayDir); ok {
		d.Baseline = s
	} else {
		d.Baseline = 0
	}
}

// Update returns the extrude distance for the current cursor ray: the
// signed travel along the axis from the baseline. When the axis and the
// ray are near parallel the previous distance stays in effect and ok is
// false.
func (d *Drag) Update(rayOrigin, rayDir mgl64.Vec3) (distance float64, ok bool) {
	if !d.Active {
		return 0, false
	}
	s, ok := closestParam(d.Origin, d.Normal, rayOrigin, rayDir)
	if !ok {
		return 0, false
	}
	return s - d.Baseline, true
}

// End clears the transient drag fields on pointer release.
func (d *Drag) End() {
	*d = Drag{}
}

// closestParam solves the two-line least-squares closest approach and
// returns the parameter along the first line (p1 + s*d1) at which the
// lines are nearest. ok is false when the denominator is near zero
// (parallel lines).
func closestParam(p1, d1, p2, d2 mgl64.Vec3) (s float64, ok bool) {
	w0 := p1.Sub(p2)
	a := d1.Dot(d1)
	b := d1.Dot(d2)
	c := d2.Dot(d2)
	d := d1.Dot(w0)
	e := d2.Dot(w0)

	denom := a*c - b*b
	if math.Abs(denom) < parallelEpsilon {
		return 0, false
	}
	return (b*e - c*d) / denom, true
}
