// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library. Solids are tessellated
// with marching cubes into renderable buffers that edit sessions open
// directly.
package sdfx

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/Nub/meshedit/pkg/kernel"
	"github.com/Nub/meshedit/pkg/mesh"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// defaultMeshCells controls marching cubes tessellation resolution.
const defaultMeshCells = 100

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct{}

// New returns a new SdfxKernel.
func New() *SdfxKernel {
	return &SdfxKernel{}
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

// Box creates a box with the given dimensions, centered at the origin.
func (k *SdfxKernel) Box(x, y, z float64) kernel.Solid {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Box3D: %v", err))
	}
	return wrap(s)
}

// Cylinder creates a cylinder with the given height and radius.
// The segments parameter is ignored since SDF represents smooth surfaces.
func (k *SdfxKernel) Cylinder(height, radius float64, segments int) kernel.Solid {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Cylinder3D: %v", err))
	}
	return wrap(s)
}

// Sphere creates a sphere with the given radius, centered at the origin.
func (k *SdfxKernel) Sphere(radius float64) kernel.Solid {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Sphere3D: %v", err))
	}
	return wrap(s)
}

// Union returns the union of two solids.
func (k *SdfxKernel) Union(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Union3D(unwrap(a), unwrap(b)))
}

// Difference returns the difference a - b.
func (k *SdfxKernel) Difference(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Difference3D(unwrap(a), unwrap(b)))
}

// Intersection returns the intersection of two solids.
func (k *SdfxKernel) Intersection(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Intersect3D(unwrap(a), unwrap(b)))
}

// Translate moves a solid by (x, y, z).
func (k *SdfxKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	m := sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z})
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Rotate rotates a solid by Euler angles (degrees) around X, Y, Z axes.
func (k *SdfxKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	xRad := x * math.Pi / 180.0
	yRad := y * math.Pi / 180.0
	zRad := z * math.Pi / 180.0

	m := sdf.RotateZ(zRad).Mul(sdf.RotateY(yRad)).Mul(sdf.RotateX(xRad))
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// weldEpsilon quantizes positions when merging coincident marching
// cubes vertices.
const weldEpsilon = 1e-6

// ToRenderable tessellates a solid with marching cubes. Coincident
// vertices are welded so the output carries real edge adjacency (flood
// fill and extrusion rely on shared indices). Vertex normals accumulate
// the face normals of the welded triangles; UVs are a planar projection
// along each face normal's dominant axis, first writer wins at seams.
func (k *SdfxKernel) ToRenderable(s kernel.Solid) (*mesh.Renderable, error) {
	sdf3 := unwrap(s)

	renderer := render.NewMarchingCubesUniform(defaultMeshCells)
	triangles := render.ToTriangles(sdf3, renderer)
	if len(triangles) == 0 {
		return nil, fmt.Errorf("sdfx: tessellation produced no triangles")
	}

	bb := sdf3.BoundingBox()
	min := [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max := [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}

	type weldKey [3]int64
	lookup := make(map[weldKey]uint32)

	var vertices []float32
	var normalSums []v3.Vec
	var uvs []float32
	indices := make([]uint32, 0, len(triangles)*3)

	for _, tri := range triangles {
		n := tri.Normal()
		ua, va := planarAxes(n)

		for j := 0; j < 3; j++ {
			v := tri[j]
			key := weldKey{
				int64(math.Round(v.X / weldEpsilon)),
				int64(math.Round(v.Y / weldEpsilon)),
				int64(math.Round(v.Z / weldEpsilon)),
			}
			idx, seen := lookup[key]
			if !seen {
				idx = uint32(len(vertices) / 3)
				lookup[key] = idx
				vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
				normalSums = append(normalSums, v3.Vec{})
				p := [3]float64{v.X, v.Y, v.Z}
				uvs = append(uvs,
					float32(normalized(p[ua], min[ua], max[ua])),
					float32(normalized(p[va], min[va], max[va])),
				)
			}
			normalSums[idx] = normalSums[idx].Add(n)
			indices = append(indices, idx)
		}
	}

	normals := make([]float32, 0, len(normalSums)*3)
	for _, sum := range normalSums {
		if sum.Length() > 0 {
			sum = sum.Normalize()
		}
		normals = append(normals, float32(sum.X), float32(sum.Y), float32(sum.Z))
	}

	return &mesh.Renderable{
		Vertices: vertices,
		Normals:  normals,
		UVs:      uvs,
		Indices:  indices,
	}, nil
}

// planarAxes picks the two axes perpendicular to the normal's dominant
// component, in (u, v) order.
func planarAxes(n v3.Vec) (u, v int) {
	ax, ay, az := math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)
	switch {
	case ax >= ay && ax >= az:
		return 1, 2 // project onto YZ
	case ay >= az:
		return 0, 2 // project onto XZ
	default:
		return 0, 1 // project onto XY
	}
}

// normalized maps v from [min, max] to [0, 1]; a degenerate extent maps
// to 0.
func normalized(v, min, max float64) float64 {
	if max-min < 1e-12 {
		return 0
	}
	return (v - min) / (max - min)
}
