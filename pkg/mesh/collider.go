package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Collider is the collision shape derived from a mesh after a committed
// edit: its axis-aligned bounding box plus the local-space triangle soup.
type Collider struct {
	Min       mgl64.Vec3
	Max       mgl64.Vec3
	Triangles [][3]mgl64.Vec3
}

// IsEmpty returns true if the collider has no triangles.
func (c *Collider) IsEmpty() bool {
	return len(c.Triangles) == 0
}

// DeriveCollider builds a collision shape from an EditMesh.
func DeriveCollider(m *EditMesh) Collider {
	c := Collider{
		Min: mgl64.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)},
		Max: mgl64.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}
	if m.FaceCount() == 0 {
		return Collider{}
	}
	c.Triangles = make([][3]mgl64.Vec3, 0, m.FaceCount())
	for i := 0; i < m.FaceCount(); i++ {
		t := m.Face(i)
		var tri [3]mgl64.Vec3
		for j, vi := range t {
			p := m.Vertex(vi).Position
			tri[j] = p
			for k := 0; k < 3; k++ {
				if p[k] < c.Min[k] {
					c.Min[k] = p[k]
				}
				if p[k] > c.Max[k] {
					c.Max[k] = p[k]
				}
			}
		}
		c.Triangles = append(c.Triangles, tri)
	}
	return c
}
