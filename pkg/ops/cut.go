package ops

import (
	"github.com/Nub/meshedit/pkg/mesh"
	"github.com/Nub/meshedit/pkg/region"
)

// Cut partitions the mesh by face membership: the selected triangles
// become cutOut, everything else becomes remaining. Both outputs are
// fresh meshes with independently compacted vertex buffers; they share
// no indices with each other or with the source, and no new geometry is
// synthesized. Either side may be empty; committing an empty side is the
// caller's responsibility to reject.
func Cut(m *mesh.EditMesh, faces region.FaceSet) (remaining, cutOut *mesh.EditMesh) {
	faces = faces.Clone()
	faces.Clamp(m.FaceCount())

	remaining = mesh.New()
	cutOut = mesh.New()
	remainMap := make(map[int]int)
	cutMap := make(map[int]int)

	for i := 0; i < m.FaceCount(); i++ {
		dst, vmap := remaining, remainMap
		if faces.Has(i) {
			dst, vmap = cutOut, cutMap
		}
		t := m.Face(i)
		var idx [3]int
		for j, vi := range t {
			ni, ok := vmap[vi]
			if !ok {
				ni = dst.AddVertex(m.Vertex(vi))
				vmap[vi] = ni
			}
			idx[j] = ni
		}
		dst.AddFace(idx[0], idx[1], idx[2])
	}

	return remaining, cutOut
}

// Delete removes the selected faces, returning only the remaining mesh.
// It backs the host's delete intent; the cut-out geometry is discarded.
func Delete(m *mesh.EditMesh, faces region.FaceSet) *mesh.EditMesh {
	remaining, _ := Cut(m, faces)
	return remaining
}
