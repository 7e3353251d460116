package mesh

import "fmt"

// Renderable is a triangle mesh in flat GPU-buffer form.
// vertices has 3 floats per vertex (x,y,z), normals has 3 floats per
// vertex, uvs has 2 floats per vertex, indices has 3 uint32s per triangle.
type Renderable struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	UVs      []float32 `json:"uvs"`      // [u0,v0, u1,v1, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
}

// VertexCount returns the number of vertices.
func (r *Renderable) VertexCount() int {
	return len(r.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (r *Renderable) TriangleCount() int {
	return len(r.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (r *Renderable) IsEmpty() bool {
	return len(r.Vertices) == 0
}

// FromRenderable builds an EditMesh from a renderable buffer.
// It fails when position data is missing or the index buffer is not a
// triangle list; no partial mesh is produced on failure. Missing normals
// are synthesized from face geometry and missing UVs default to zero.
func FromRenderable(r *Renderable) (*EditMesh, error) {
	if r == nil || len(r.Vertices) == 0 {
		return nil, fmt.Errorf("mesh: renderable has no position data")
	}
	if len(r.Vertices)%3 != 0 {
		return nil, fmt.Errorf("mesh: position buffer length %d is not a multiple of 3", len(r.Vertices))
	}
	if len(r.Indices)%3 != 0 {
		return nil, fmt.Errorf("mesh: index buffer length %d is not a triangle list", len(r.Indices))
	}

	nv := len(r.Vertices) / 3
	hasNormals := len(r.Normals) == len(r.Vertices)
	hasUVs := len(r.UVs) == nv*2

	m := &EditMesh{
		verts: make([]Vertex, nv),
		tris:  make([]Triangle, 0, len(r.Indices)/3),
	}
	for i := 0; i < nv; i++ {
		v := Vertex{}
		v.Position[0] = float64(r.Vertices[i*3])
		v.Position[1] = float64(r.Vertices[i*3+1])
		v.Position[2] = float64(r.Vertices[i*3+2])
		if hasNormals {
			v.Normal[0] = float64(r.Normals[i*3])
			v.Normal[1] = float64(r.Normals[i*3+1])
			v.Normal[2] = float64(r.Normals[i*3+2])
		}
		if hasUVs {
			v.UV[0] = float64(r.UVs[i*2])
			v.UV[1] = float64(r.UVs[i*2+1])
		}
		m.verts[i] = v
	}

	for i := 0; i+2 < len(r.Indices); i += 3 {
		a, b, c := int(r.Indices[i]), int(r.Indices[i+1]), int(r.Indices[i+2])
		if a >= nv || b >= nv || c >= nv {
			return nil, fmt.Errorf("mesh: triangle %d references vertex out of range", i/3)
		}
		m.tris = append(m.tris, Triangle{a, b, c})
	}

	if !hasNormals {
		m.synthesizeNormals()
	}
	return m, nil
}

// synthesizeNormals assigns each vertex the normal of the first face that
// references it. Unreferenced vertices keep a zero normal.
func (m *EditMesh) synthesizeNormals() {
	for i := range m.tris {
		n := m.FaceNormal(i)
		for _, vi := range m.tris[i] {
			if m.verts[vi].Normal.Len() == 0 {
				m.verts[vi].Normal = n
			}
		}
	}
}

// ToRenderable emits fresh position/normal/UV/index buffers.
// It always succeeds and does not mutate the mesh.
func (m *EditMesh) ToRenderable() *Renderable {
	nv := len(m.verts)
	r := &Renderable{
		Vertices: make([]float32, 0, nv*3),
		Normals:  make([]float32, 0, nv*3),
		UVs:      make([]float32, 0, nv*2),
		Indices:  make([]uint32, 0, len(m.tris)*3),
	}
	for _, v := range m.verts {
		r.Vertices = append(r.Vertices, float32(v.Position[0]), float32(v.Position[1]), float32(v.Position[2]))
		r.Normals = append(r.Normals, float32(v.Normal[0]), float32(v.Normal[1]), float32(v.Normal[2]))
		r.UVs = append(r.UVs, float32(v.UV[0]), float32(v.UV[1]))
	}
	for _, t := range m.tris {
		r.Indices = append(r.Indices, uint32(t[0]), uint32(t[1]), uint32(t[2]))
	}
	return r
}
