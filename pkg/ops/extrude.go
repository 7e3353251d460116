// Package ops implements the structural mesh edits: extrusion and
// cutting. Both produce brand-new EditMesh values with renumbered faces;
// selections computed against the input are invalid against the output.
package ops

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Nub/meshedit/pkg/mesh"
	"github.com/Nub/meshedit/pkg/region"
)

// edgeKey is an undirected edge between two vertex indices.
type edgeKey [2]int

func newEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// AverageNormal returns the area-weighted average normal over the face
// set, unit length. Zero-area faces contribute nothing; a fully
// degenerate selection yields the zero vector.
func AverageNormal(m *mesh.EditMesh, faces region.FaceSet) mgl64.Vec3 {
	var sum mgl64.Vec3
	for f := range faces {
		if f < 0 || f >= m.FaceCount() {
			continue
		}
		sum = sum.Add(m.FaceNormal(f).Mul(m.FaceArea(f)))
	}
	if sum.Len() == 0 {
		return mgl64.Vec3{}
	}
	return sum.Normalize()
}

// Centroid returns the area-weighted centroid of the face set.
func Centroid(m *mesh.EditMesh, faces region.FaceSet) mgl64.Vec3 {
	var sum mgl64.Vec3
	var total float64
	for f := range faces {
		if f < 0 || f >= m.FaceCount() {
			continue
		}
		a := m.FaceArea(f)
		sum = sum.Add(m.FaceCenter(f).Mul(a))
		total += a
	}
	if total == 0 {
		return mgl64.Vec3{}
	}
	return sum.Mul(1 / total)
}

// tiltAxis picks an axis perpendicular to n in the extrusion plane:
// n crossed with the world basis axis least aligned with it.
func tiltAxis(n mgl64.Vec3) mgl64.Vec3 {
	basis := [3]mgl64.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	best := basis[0]
	bestDot := math.Inf(1)
	for _, b := range basis {
		if d := math.Abs(n.Dot(b)); d < bestDot {
			bestDot = d
			best = b
		}
	}
	axis := n.Cross(best)
	if axis.Len() == 0 {
		return mgl64.Vec3{}
	}
	return axis.Normalize()
}

// Extrude duplicates the selected faces, offsets the duplicates by
// distance along the selection's averaged normal rotated by tilt
// (radians), rewires the selected triangles onto the duplicates and
// stitches a two-triangle wall across every boundary edge. Faces outside
// the selection carry over unchanged, keeping their face numbering.
// A zero distance is accepted and produces a degenerate zero-thickness
// wall; rejecting that as a no-op is the caller's job.
func Extrude(m *mesh.EditMesh, faces region.FaceSet, distance, tilt float64) *mesh.EditMesh {
	faces = faces.Clone()
	faces.Clamp(m.FaceCount())

	dir := AverageNormal(m, faces)
	if tilt != 0 && dir.Len() > 0 {
		if axis := tiltAxis(dir); axis.Len() > 0 {
			dir = mgl64.TransformNormal(dir, mgl64.HomogRotate3D(tilt, axis))
		}
	}
	offset := dir.Mul(distance)

	out := mesh.New()
	for i := 0; i < m.VertexCount(); i++ {
		out.AddVertex(m.Vertex(i))
	}

	// Duplicate every vertex referenced by a selected face, offset to
	// its cap position.
	capIndex := make(map[int]int)
	for f := range faces {
		for _, vi := range m.Face(f) {
			if _, ok := capIndex[vi]; ok {
				continue
			}
			v := m.Vertex(vi)
			v.Position = v.Position.Add(offset)
			capIndex[vi] = out.AddVertex(v)
		}
	}

	// Selected triangles move onto the cap vertices; everything else
	// carries over as-is.
	for i := 0; i < m.FaceCount(); i++ {
		t := m.Face(i)
		if faces.Has(i) {
			out.AddFace(capIndex[t[0]], capIndex[t[1]], capIndex[t[2]])
		} else {
			out.AddFace(t[0], t[1], t[2])
		}
	}

	// A boundary edge is used by exactly one selected triangle. The
	// hashed undirected pair count keeps detection linear in the number
	// of faces.
	edgeUse := make(map[edgeKey]int)
	for f := range faces {
		t := m.Face(f)
		for j := 0; j < 3; j++ {
			edgeUse[newEdgeKey(t[j], t[(j+1)%3])]++
		}
	}

	// One quad wall (two triangles) per boundary edge, wound from the
	// directed edge as it appears in its unique selected triangle so the
	// wall normal points outward from the selection interior. Sorted
	// iteration keeps the output face order reproducible.
	for _, f := range faces.Sorted() {
		t := m.Face(f)
		for j := 0; j < 3; j++ {
			a, b := t[j], t[(j+1)%3]
			if edgeUse[newEdgeKey(a, b)] != 1 {
				continue
			}
			ac, bc := capIndex[a], capIndex[b]
			out.AddFace(a, b, bc)
			out.AddFace(a, bc, ac)
		}
	}

	return out
}
