// Package mesh defines the editable triangle mesh (EditMesh) and its
// renderable buffer form. An EditMesh is the single source of truth for
// one edit session; structural operations produce new EditMesh values
// rather than mutating in place, so callers always hold a stable snapshot.
package mesh

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Vertex is one mesh vertex: position, normal and texture coordinate.
// Two vertices at the same position are distinct entries unless an
// operation explicitly merges them.
type Vertex struct {
	Position mgl64.Vec3
	Normal   mgl64.Vec3
	UV       mgl64.Vec2
}

// Triangle references three vertices by index, CCW winding.
type Triangle [3]int

// EditMesh is the in-memory editable triangle mesh. It owns its vertex
// and triangle sequences exclusively; access goes through methods only.
type EditMesh struct {
	verts []Vertex
	tris  []Triangle
}

// New returns an empty EditMesh.
func New() *EditMesh {
	return &EditMesh{}
}

// VertexCount returns the number of vertices.
func (m *EditMesh) VertexCount() int {
	return len(m.verts)
}

// FaceCount returns the number of triangles.
func (m *EditMesh) FaceCount() int {
	return len(m.tris)
}

// Vertex returns the vertex at index i.
func (m *EditMesh) Vertex(i int) Vertex {
	return m.verts[i]
}

// Face returns the triangle at index i.
func (m *EditMesh) Face(i int) Triangle {
	return m.tris[i]
}

// AddVertex appends a vertex and returns its index.
func (m *EditMesh) AddVertex(v Vertex) int {
	m.verts = append(m.verts, v)
	return len(m.verts) - 1
}

// AddFace appends a triangle over existing vertex indices and returns
// its face index.
func (m *EditMesh) AddFace(a, b, c int) int {
	m.tris = append(m.tris, Triangle{a, b, c})
	return len(m.tris) - 1
}

// Clone returns a deep copy of the mesh.
func (m *EditMesh) Clone() *EditMesh {
	c := &EditMesh{
		verts: make([]Vertex, len(m.verts)),
		tris:  make([]Triangle, len(m.tris)),
	}
	copy(c.verts, m.verts)
	copy(c.tris, m.tris)
	return c
}

// FaceNormal returns the unit-length normal of triangle i, computed as
// the cross product of its two edge vectors in winding order. Degenerate
// triangles yield the zero vector.
func (m *EditMesh) FaceNormal(i int) mgl64.Vec3 {
	t := m.tris[i]
	a := m.verts[t[0]].Position
	b := m.verts[t[1]].Position
	c := m.verts[t[2]].Position
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Len() == 0 {
		return mgl64.Vec3{}
	}
	return n.Normalize()
}

// FaceCenter returns the centroid of triangle i.
func (m *EditMesh) FaceCenter(i int) mgl64.Vec3 {
	t := m.tris[i]
	a := m.verts[t[0]].Position
	b := m.verts[t[1]].Position
	c := m.verts[t[2]].Position
	return a.Add(b).Add(c).Mul(1.0 / 3.0)
}

// FaceArea returns the area of triangle i. Degenerate triangles have
// zero area.
func (m *EditMesh) FaceArea(i int) float64 {
	t := m.tris[i]
	a := m.verts[t[0]].Position
	b := m.verts[t[1]].Position
	c := m.verts[t[2]].Position
	return b.Sub(a).Cross(c.Sub(a)).Len() / 2
}

// FaceUV returns the averaged texture coordinate of triangle i.
func (m *EditMesh) FaceUV(i int) mgl64.Vec2 {
	t := m.tris[i]
	a := m.verts[t[0]].UV
	b := m.verts[t[1]].UV
	c := m.verts[t[2]].UV
	return a.Add(b).Add(c).Mul(1.0 / 3.0)
}
