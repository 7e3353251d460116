package sdfx

import (
	"math"
	"testing"

	"github.com/Nub/meshedit/pkg/mesh"
)

func TestBox(t *testing.T) {
	k := New()
	box := k.Box(100, 50, 25)
	r, err := k.ToRenderable(box)
	if err != nil {
		t.Fatalf("ToRenderable failed: %v", err)
	}
	if r.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if r.VertexCount() == 0 {
		t.Fatal("expected non-zero vertex count")
	}
	triCount := r.TriangleCount()
	if triCount == 0 {
		t.Fatal("expected non-zero triangle count")
	}
	// Verify vertex, normal, UV and index array sizes are consistent.
	if len(r.Vertices) != len(r.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(r.Vertices), len(r.Normals))
	}
	if len(r.UVs) != r.VertexCount()*2 {
		t.Fatalf("UVs length %d != 2 per vertex (%d vertices)", len(r.UVs), r.VertexCount())
	}
	if len(r.Indices) != triCount*3 {
		t.Fatalf("indices length %d != triCount*3 %d", len(r.Indices), triCount*3)
	}
}

func TestBoxOpensEditSession(t *testing.T) {
	k := New()
	r, err := k.ToRenderable(k.Box(10, 10, 10))
	if err != nil {
		t.Fatalf("ToRenderable failed: %v", err)
	}
	m, err := mesh.FromRenderable(r)
	if err != nil {
		t.Fatalf("kernel output rejected by FromRenderable: %v", err)
	}
	if m.FaceCount() != r.TriangleCount() {
		t.Errorf("edit mesh has %d faces, renderable has %d triangles",
			m.FaceCount(), r.TriangleCount())
	}
}

func TestUVsInUnitSquare(t *testing.T) {
	k := New()
	r, err := k.ToRenderable(k.Box(20, 10, 5))
	if err != nil {
		t.Fatalf("ToRenderable failed: %v", err)
	}
	const tol = 1e-4
	for i, v := range r.UVs {
		if v < -tol || v > 1+tol {
			t.Fatalf("UVs[%d] = %f, outside [0, 1]", i, v)
		}
	}
}

func TestCylinder(t *testing.T) {
	k := New()
	cyl := k.Cylinder(50, 10, 32)
	r, err := k.ToRenderable(cyl)
	if err != nil {
		t.Fatalf("ToRenderable failed: %v", err)
	}
	if r.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if r.TriangleCount() == 0 {
		t.Fatal("expected non-zero triangle count")
	}
	t.Logf("cylinder triangle count: %d", r.TriangleCount())
}

func TestSphere(t *testing.T) {
	k := New()
	s := k.Sphere(10)

	min, max := s.BoundingBox()
	const tol = 1.0
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]+10) > tol {
			t.Errorf("min[%d] = %f, expected ~-10", i, min[i])
		}
		if math.Abs(max[i]-10) > tol {
			t.Errorf("max[%d] = %f, expected ~10", i, max[i])
		}
	}

	r, err := k.ToRenderable(s)
	if err != nil {
		t.Fatalf("ToRenderable failed: %v", err)
	}
	if r.IsEmpty() {
		t.Fatal("sphere mesh is empty")
	}
}

func TestDifference(t *testing.T) {
	k := New()

	box := k.Box(100, 100, 100)
	boxMesh, err := k.ToRenderable(box)
	if err != nil {
		t.Fatalf("ToRenderable(box) failed: %v", err)
	}

	cyl := k.Cylinder(120, 20, 32)
	diff := k.Difference(box, cyl)
	diffMesh, err := k.ToRenderable(diff)
	if err != nil {
		t.Fatalf("ToRenderable(diff) failed: %v", err)
	}
	if diffMesh.IsEmpty() {
		t.Fatal("difference mesh is empty")
	}
	// A box with a hole should have more triangles than a plain box.
	if diffMesh.TriangleCount() <= boxMesh.TriangleCount() {
		t.Fatalf("difference (%d triangles) should have more triangles than box (%d triangles)",
			diffMesh.TriangleCount(), boxMesh.TriangleCount())
	}
}

func TestUnion(t *testing.T) {
	k := New()
	box1 := k.Box(50, 50, 50)
	box2 := k.Translate(k.Box(50, 50, 50), 30, 0, 0)
	u := k.Union(box1, box2)
	r, err := k.ToRenderable(u)
	if err != nil {
		t.Fatalf("ToRenderable failed: %v", err)
	}
	if r.IsEmpty() {
		t.Fatal("union mesh is empty")
	}
}

func TestTranslate(t *testing.T) {
	k := New()
	box := k.Box(10, 10, 10)
	translated := k.Translate(box, 100, 200, 300)

	min, max := translated.BoundingBox()

	// Box(10,10,10) is centered at the origin; translated by
	// (100,200,300) its bounds run (95,195,295) to (105,205,305).
	const tol = 0.5
	expectMin := [3]float64{95, 195, 295}
	expectMax := [3]float64{105, 205, 305}

	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected ~%f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected ~%f", i, max[i], expectMax[i])
		}
	}
}

func TestBoundingBox(t *testing.T) {
	k := New()
	box := k.Box(100, 50, 25)
	min, max := box.BoundingBox()

	const tol = 0.01
	expectMin := [3]float64{-50, -25, -12.5}
	expectMax := [3]float64{50, 25, 12.5}

	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected %f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected %f", i, max[i], expectMax[i])
		}
	}
}

func TestIntersection(t *testing.T) {
	k := New()
	box1 := k.Box(100, 100, 100)
	box2 := k.Translate(k.Box(100, 100, 100), 50, 0, 0)
	inter := k.Intersection(box1, box2)
	r, err := k.ToRenderable(inter)
	if err != nil {
		t.Fatalf("ToRenderable failed: %v", err)
	}
	if r.IsEmpty() {
		t.Fatal("intersection mesh is empty")
	}
}

func TestRotate(t *testing.T) {
	k := New()
	box := k.Box(100, 10, 10)

	// A long box along X rotated 90 degrees around Z should extend along Y instead.
	rotated := k.Rotate(box, 0, 0, 90)
	min, max := rotated.BoundingBox()

	xExtent := max[0] - min[0]
	yExtent := max[1] - min[1]

	const tol = 1.0
	if math.Abs(xExtent-10) > tol {
		t.Errorf("rotated X extent = %f, expected ~10", xExtent)
	}
	if math.Abs(yExtent-100) > tol {
		t.Errorf("rotated Y extent = %f, expected ~100", yExtent)
	}
}
