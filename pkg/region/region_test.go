package region

import (
	"math"
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Nub/meshedit/pkg/mesh"
)

func TestSelectWorldGrid(t *testing.T) {
	m := mesh.Cube(1)

	t.Run("whole mesh in one cell", func(t *testing.T) {
		// Moved into the positive octant so every centroid shares the
		// cell containing (5,5,5) at size 10.
		model := mgl64.Translate3D(5, 5, 5)
		got := SelectWorldGrid(m, model, mgl64.Vec3{5, 5, 5}, 10)
		if got.Len() != m.FaceCount() {
			t.Errorf("selected %d faces, want all %d", got.Len(), m.FaceCount())
		}
	})

	t.Run("cell membership matches the clicked cell", func(t *testing.T) {
		model := mgl64.Ident4()
		point := mgl64.Vec3{0.1, 0.1, 0.1}
		size := 0.5
		got := SelectWorldGrid(m, model, point, size)
		want := worldCell(point, size)
		for _, f := range got.Sorted() {
			c := worldCell(m.FaceCenter(f), size)
			if c != want {
				t.Errorf("face %d cell %v != clicked cell %v", f, c, want)
			}
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		model := mgl64.HomogRotate3DY(0.3).Mul4(mgl64.Translate3D(1, 2, 3))
		point := mgl64.Vec3{1.2, 2.1, 3.4}
		a := SelectWorldGrid(m, model, point, 0.75)
		b := SelectWorldGrid(m, model, point, 0.75)
		if !reflect.DeepEqual(a.Sorted(), b.Sorted()) {
			t.Errorf("re-running selected %v then %v", a.Sorted(), b.Sorted())
		}
	})

	t.Run("non-positive size selects nothing", func(t *testing.T) {
		if got := SelectWorldGrid(m, mgl64.Ident4(), mgl64.Vec3{}, 0); got.Len() != 0 {
			t.Errorf("size 0 selected %d faces", got.Len())
		}
	})
}

func TestSelectUVGrid(t *testing.T) {
	m := mesh.Cube(1)

	t.Run("one cell covers the whole atlas", func(t *testing.T) {
		// Every cube face spans UV [0,1]^2, so with cell size 1 all
		// averaged UVs land in cell (0,0).
		got := SelectUVGrid(m, mgl64.Vec2{0.5, 0.5}, 1)
		if got.Len() != 12 {
			t.Errorf("selected %d faces, want 12", got.Len())
		}
	})

	t.Run("half cell splits each quad", func(t *testing.T) {
		// Each side's first triangle averages to (2/3, 1/3), the second
		// to (1/3, 2/3); cell size 0.5 separates them.
		got := SelectUVGrid(m, mgl64.Vec2{0.7, 0.3}, 0.5)
		if got.Len() != 6 {
			t.Errorf("selected %d faces, want 6 (one triangle per side)", got.Len())
		}
		for _, f := range got.Sorted() {
			if f%2 != 0 {
				t.Errorf("face %d selected, want only first triangles of each side", f)
			}
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		a := SelectUVGrid(m, mgl64.Vec2{0.7, 0.3}, 0.5)
		b := SelectUVGrid(m, mgl64.Vec2{0.7, 0.3}, 0.5)
		if !reflect.DeepEqual(a.Sorted(), b.Sorted()) {
			t.Errorf("re-running selected %v then %v", a.Sorted(), b.Sorted())
		}
	})
}

// strip builds three quads joined edge to edge along Y, each bent by
// step radians more than the previous around the shared edge, vertices
// shared between neighbors.
func strip(step float64) *mesh.EditMesh {
	m := mesh.New()
	v := func(p mgl64.Vec3) int { return m.AddVertex(mesh.Vertex{Position: p}) }

	v0 := v(mgl64.Vec3{0, 0, 0})
	v1 := v(mgl64.Vec3{1, 0, 0})
	v2 := v(mgl64.Vec3{1, 1, 0})
	v3 := v(mgl64.Vec3{0, 1, 0})
	m.AddFace(v0, v1, v2) // face 0, normal +Z
	m.AddFace(v0, v2, v3) // face 1, normal +Z

	c1, s1 := math.Cos(step), math.Sin(step)
	v4 := v(mgl64.Vec3{1, 1 + c1, s1})
	v5 := v(mgl64.Vec3{0, 1 + c1, s1})
	m.AddFace(v3, v2, v4) // face 2, tilted by step
	m.AddFace(v3, v4, v5) // face 3

	c2, s2 := math.Cos(2*step), math.Sin(2*step)
	v6 := v(mgl64.Vec3{1, 1 + c1 + c2, s1 + s2})
	v7 := v(mgl64.Vec3{0, 1 + c1 + c2, s1 + s2})
	m.AddFace(v5, v4, v6) // face 4, tilted by 2*step
	m.AddFace(v5, v6, v7) // face 5
	return m
}

func TestSelectFloodFill(t *testing.T) {
	t.Run("includes seed and honors threshold", func(t *testing.T) {
		// Quads at 0, 20 and 40 degrees from the seed normal; a 30
		// degree bound admits the first two only.
		m := strip(20 * math.Pi / 180)
		got := SelectFloodFill(m, 0, 30*math.Pi/180)

		want := []int{0, 1, 2, 3}
		if !reflect.DeepEqual(got.Sorted(), want) {
			t.Errorf("flood fill = %v, want %v", got.Sorted(), want)
		}
	})

	t.Run("deviation measured from the seed not the neighbor", func(t *testing.T) {
		// Every neighbor step is 20 degrees, under the bound, but the
		// last quad sits 40 degrees from the seed and must stay out.
		m := strip(20 * math.Pi / 180)
		got := SelectFloodFill(m, 0, 30*math.Pi/180)
		if got.Has(4) || got.Has(5) {
			t.Error("flood fill crossed the seed-normal bound transitively")
		}
	})

	t.Run("normal bound is respected for every selected face", func(t *testing.T) {
		m := strip(10 * math.Pi / 180)
		threshold := 15 * math.Pi / 180
		got := SelectFloodFill(m, 0, threshold)
		seedNormal := m.FaceNormal(0)
		for _, f := range got.Sorted() {
			if a := angleBetween(seedNormal, m.FaceNormal(f)); a > threshold+1e-9 {
				t.Errorf("face %d deviates %.3f rad, threshold %.3f", f, a, threshold)
			}
		}
		if !got.Has(0) {
			t.Error("seed face missing from its own fill")
		}
	})

	t.Run("cube sides are disconnected", func(t *testing.T) {
		// Cube sides share no vertex indices, so the fill can only
		// cover the seeded side's two triangles.
		m := mesh.Cube(1)
		got := SelectFloodFill(m, 0, math.Pi)
		if !reflect.DeepEqual(got.Sorted(), []int{0, 1}) {
			t.Errorf("flood fill = %v, want [0 1]", got.Sorted())
		}
	})

	t.Run("out of range seed", func(t *testing.T) {
		m := mesh.Cube(1)
		if got := SelectFloodFill(m, 99, math.Pi); got.Len() != 0 {
			t.Errorf("out-of-range seed selected %d faces", got.Len())
		}
	})
}

func TestSelectLasso(t *testing.T) {
	m := mesh.Cube(1)

	// Orthographic projection looking down -Z.
	project := func(p mgl64.Vec3) mgl64.Vec2 { return mgl64.Vec2{p[0], p[1]} }

	t.Run("polygon around the whole footprint", func(t *testing.T) {
		poly := []mgl64.Vec2{{-2, -2}, {2, -2}, {2, 2}, {-2, 2}}
		got := SelectLasso(m, poly, project)
		if got.Len() != m.FaceCount() {
			t.Errorf("selected %d faces, want all %d", got.Len(), m.FaceCount())
		}
	})

	t.Run("polygon outside the footprint", func(t *testing.T) {
		poly := []mgl64.Vec2{{5, 5}, {6, 5}, {6, 6}, {5, 6}}
		if got := SelectLasso(m, poly, project); got.Len() != 0 {
			t.Errorf("selected %d faces, want 0", got.Len())
		}
	})

	t.Run("open polygon selects nothing", func(t *testing.T) {
		poly := []mgl64.Vec2{{-2, -2}, {2, -2}}
		if got := SelectLasso(m, poly, project); got.Len() != 0 {
			t.Errorf("two-point polygon selected %d faces", got.Len())
		}
	})
}

func TestPointInPolygon(t *testing.T) {
	square := []mgl64.Vec2{{0, 0}, {2, 0}, {2, 2}, {0, 2}}
	tests := []struct {
		name string
		p    mgl64.Vec2
		want bool
	}{
		{"center", mgl64.Vec2{1, 1}, true},
		{"outside right", mgl64.Vec2{3, 1}, false},
		{"outside above", mgl64.Vec2{1, 3}, false},
		{"near edge inside", mgl64.Vec2{1.99, 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pointInPolygon(tt.p, square); got != tt.want {
				t.Errorf("pointInPolygon(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}
