// Package kernel defines the abstract geometry kernel interface.
// Implementations (sdfx) provide the solid primitives and boolean
// operations used to seed edit sessions with starting meshes. The
// kernel abstraction allows swapping backends without changing the
// rest of the system.
package kernel

import "github.com/Nub/meshedit/pkg/mesh"

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives
	Box(x, y, z float64) Solid
	Cylinder(height, radius float64, segments int) Solid
	Sphere(radius float64) Solid

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// Mesh output: a renderable triangle buffer ready to open an edit
	// session on, with per-vertex normals and synthesized UVs.
	ToRenderable(s Solid) (*mesh.Renderable, error)
}
