package mesh

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// singleTriangle builds a right triangle in the XY plane with legs of
// length 2, area 2, normal +Z.
func singleTriangle() *EditMesh {
	m := New()
	a := m.AddVertex(Vertex{Position: mgl64.Vec3{0, 0, 0}})
	b := m.AddVertex(Vertex{Position: mgl64.Vec3{2, 0, 0}})
	c := m.AddVertex(Vertex{Position: mgl64.Vec3{0, 2, 0}})
	m.AddFace(a, b, c)
	return m
}

func TestFaceNormal(t *testing.T) {
	tests := []struct {
		name string
		a, b, c mgl64.Vec3
		want mgl64.Vec3
	}{
		{"xy plane ccw", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, 1}},
		{"xy plane cw", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, -1}},
		{"degenerate collinear", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{2, 0, 0}, mgl64.Vec3{}},
		{"degenerate zero area", mgl64.Vec3{1, 1, 1}, mgl64.Vec3{1, 1, 1}, mgl64.Vec3{1, 1, 1}, mgl64.Vec3{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			m.AddFace(
				m.AddVertex(Vertex{Position: tt.a}),
				m.AddVertex(Vertex{Position: tt.b}),
				m.AddVertex(Vertex{Position: tt.c}),
			)
			got := m.FaceNormal(0)
			if !got.ApproxEqualThreshold(tt.want, 1e-9) {
				t.Errorf("FaceNormal(0) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFaceCenterAndArea(t *testing.T) {
	m := singleTriangle()

	center := m.FaceCenter(0)
	want := mgl64.Vec3{2.0 / 3.0, 2.0 / 3.0, 0}
	if !center.ApproxEqualThreshold(want, 1e-9) {
		t.Errorf("FaceCenter(0) = %v, want %v", center, want)
	}

	if area := m.FaceArea(0); math.Abs(area-2) > 1e-9 {
		t.Errorf("FaceArea(0) = %g, want 2", area)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m := singleTriangle()
	c := m.Clone()

	c.AddVertex(Vertex{Position: mgl64.Vec3{9, 9, 9}})
	c.AddFace(0, 1, 3)

	if m.VertexCount() != 3 || m.FaceCount() != 1 {
		t.Errorf("mutating clone changed original: %d verts, %d faces",
			m.VertexCount(), m.FaceCount())
	}
	if c.VertexCount() != 4 || c.FaceCount() != 2 {
		t.Errorf("clone has %d verts, %d faces, want 4 and 2",
			c.VertexCount(), c.FaceCount())
	}
}

func TestCube(t *testing.T) {
	m := Cube(1)

	if m.FaceCount() != 12 {
		t.Fatalf("Cube has %d faces, want 12", m.FaceCount())
	}
	if m.VertexCount() != 24 {
		t.Fatalf("Cube has %d vertices, want 24", m.VertexCount())
	}

	// Every face normal must point away from the cube center.
	for i := 0; i < m.FaceCount(); i++ {
		n := m.FaceNormal(i)
		c := m.FaceCenter(i)
		if n.Dot(c) <= 0 {
			t.Errorf("face %d normal %v points inward (center %v)", i, n, c)
		}
		if math.Abs(m.FaceArea(i)-0.5) > 1e-9 {
			t.Errorf("face %d area = %g, want 0.5", i, m.FaceArea(i))
		}
	}
}

func TestDeriveCollider(t *testing.T) {
	t.Run("cube bounds", func(t *testing.T) {
		c := DeriveCollider(Cube(2))
		if len(c.Triangles) != 12 {
			t.Fatalf("collider has %d triangles, want 12", len(c.Triangles))
		}
		wantMin := mgl64.Vec3{-1, -1, -1}
		wantMax := mgl64.Vec3{1, 1, 1}
		if !c.Min.ApproxEqualThreshold(wantMin, 1e-9) {
			t.Errorf("Min = %v, want %v", c.Min, wantMin)
		}
		if !c.Max.ApproxEqualThreshold(wantMax, 1e-9) {
			t.Errorf("Max = %v, want %v", c.Max, wantMax)
		}
	})

	t.Run("empty mesh", func(t *testing.T) {
		c := DeriveCollider(New())
		if !c.IsEmpty() {
			t.Error("collider of empty mesh should be empty")
		}
	})
}
