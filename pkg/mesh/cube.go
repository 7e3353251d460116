package mesh

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Cube returns an axis-aligned cube of the given edge length centered at
// the origin. Each of the six faces has its own four vertices (24 total)
// so face normals and UVs are flat per side, 12 triangles in CCW winding.
func Cube(size float64) *EditMesh {
	h := size / 2
	m := New()

	// One entry per side: outward normal and the four corners in CCW
	// order as seen from outside.
	sides := []struct {
		n       mgl64.Vec3
		corners [4]mgl64.Vec3
	}{
		{mgl64.Vec3{0, 0, 1}, [4]mgl64.Vec3{{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h}}},
		{mgl64.Vec3{0, 0, -1}, [4]mgl64.Vec3{{h, -h, -h}, {-h, -h, -h}, {-h, h, -h}, {h, h, -h}}},
		{mgl64.Vec3{1, 0, 0}, [4]mgl64.Vec3{{h, -h, h}, {h, -h, -h}, {h, h, -h}, {h, h, h}}},
		{mgl64.Vec3{-1, 0, 0}, [4]mgl64.Vec3{{-h, -h, -h}, {-h, -h, h}, {-h, h, h}, {-h, h, -h}}},
		{mgl64.Vec3{0, 1, 0}, [4]mgl64.Vec3{{-h, h, h}, {h, h, h}, {h, h, -h}, {-h, h, -h}}},
		{mgl64.Vec3{0, -1, 0}, [4]mgl64.Vec3{{-h, -h, -h}, {h, -h, -h}, {h, -h, h}, {-h, -h, h}}},
	}
	uvs := [4]mgl64.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	for _, s := range sides {
		base := m.VertexCount()
		for i, p := range s.corners {
			m.AddVertex(Vertex{Position: p, Normal: s.n, UV: uvs[i]})
		}
		m.AddFace(base, base+1, base+2)
		m.AddFace(base, base+2, base+3)
	}
	return m
}
