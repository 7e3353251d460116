// Package pick resolves local-space rays to mesh faces.
package pick

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Nub/meshedit/pkg/mesh"
)

// epsilon below which a ray is considered parallel to a triangle plane.
const epsilon = 1e-9

// Ray is a picking ray in the mesh's local coordinate space.
type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

// Hit describes a ray/face intersection.
type Hit struct {
	Face     int
	Point    mgl64.Vec3
	Distance float64
}

// Face intersects the ray against every triangle and returns the closest
// hit in front of the ray origin. With xray false, triangles whose normal
// faces away from the ray origin are excluded before the distance
// comparison, so a back-face can never win; with xray true both sides are
// eligible and the nearest of either wins.
func Face(m *mesh.EditMesh, ray Ray, xray bool) (Hit, bool) {
	best := Hit{Face: -1, Distance: math.Inf(1)}

	for i := 0; i < m.FaceCount(); i++ {
		if !xray {
			// Back-face: normal does not oppose the ray direction.
			n := m.FaceNormal(i)
			if n.Dot(ray.Dir) >= 0 {
				continue
			}
		}
		dist, ok := intersectTriangle(m, i, ray)
		if !ok || dist <= 0 {
			continue
		}
		if dist < best.Distance {
			best = Hit{
				Face:     i,
				Point:    ray.Origin.Add(ray.Dir.Mul(dist)),
				Distance: dist,
			}
		}
	}

	return best, best.Face >= 0
}

// intersectTriangle runs the Moller-Trumbore test against triangle i and
// returns the distance along the ray, valid for both winding directions.
func intersectTriangle(m *mesh.EditMesh, i int, ray Ray) (float64, bool) {
	t := m.Face(i)
	v0 := m.Vertex(t[0]).Position
	v1 := m.Vertex(t[1]).Position
	v2 := m.Vertex(t[2]).Position

	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)

	p := ray.Dir.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < epsilon {
		return 0, false
	}
	inv := 1 / det

	s := ray.Origin.Sub(v0)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(e1)
	v := ray.Dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	return e2.Dot(q) * inv, true
}
