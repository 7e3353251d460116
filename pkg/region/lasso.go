package region

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Nub/meshedit/pkg/mesh"
)

// Projector maps a mesh-local point to screen coordinates.
type Projector func(mgl64.Vec3) mgl64.Vec2

// SelectLasso returns every face whose screen-projected centroid lies
// inside the closed polygon, tested with the even-odd ray-casting rule.
// The polygon comes from the points the user clicked while drawing;
// keeping it simple (non-self-intersecting) is the caller's problem, the
// test does not validate it.
func SelectLasso(m *mesh.EditMesh, polygon []mgl64.Vec2, project Projector) FaceSet {
	out := NewFaceSet()
	if len(polygon) < 3 || project == nil {
		return out
	}
	for i := 0; i < m.FaceCount(); i++ {
		if pointInPolygon(project(m.FaceCenter(i)), polygon) {
			out.Add(i)
		}
	}
	return out
}

// pointInPolygon is the standard even-odd crossing test: cast a ray to
// +X and count edge crossings.
func pointInPolygon(p mgl64.Vec2, poly []mgl64.Vec2) bool {
	inside := false
	j := len(poly) - 1
	for i := 0; i < len(poly); i++ {
		a, b := poly[i], poly[j]
		if (a[1] > p[1]) != (b[1] > p[1]) {
			x := a[0] + (p[1]-a[1])/(b[1]-a[1])*(b[0]-a[0])
			if p[0] < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}
