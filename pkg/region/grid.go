package region

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Nub/meshedit/pkg/mesh"
)

// cell3 is a cubic world-space grid cell coordinate.
type cell3 [3]int

func worldCell(p mgl64.Vec3, size float64) cell3 {
	return cell3{cellOf(p[0], size), cellOf(p[1], size), cellOf(p[2], size)}
}

// SelectWorldGrid returns every face whose world-space centroid falls in
// the same cubic cell as the clicked world-space point. model transforms
// mesh-local coordinates to world space.
func SelectWorldGrid(m *mesh.EditMesh, model mgl64.Mat4, point mgl64.Vec3, size float64) FaceSet {
	out := NewFaceSet()
	if size <= 0 {
		return out
	}
	target := worldCell(point, size)
	for i := 0; i < m.FaceCount(); i++ {
		c := mgl64.TransformCoordinate(m.FaceCenter(i), model)
		if worldCell(c, size) == target {
			out.Add(i)
		}
	}
	return out
}

// cell2 is a UV-space grid cell coordinate.
type cell2 [2]int

func uvCell(uv mgl64.Vec2, size float64) cell2 {
	return cell2{cellOf(uv[0], size), cellOf(uv[1], size)}
}

// SelectUVGrid returns every face whose averaged UV coordinate falls in
// the same cell as the given UV point. Used where the mesh geometry gives
// no useful world-space grouping, such as curved surfaces.
func SelectUVGrid(m *mesh.EditMesh, uv mgl64.Vec2, size float64) FaceSet {
	out := NewFaceSet()
	if size <= 0 {
		return out
	}
	target := uvCell(uv, size)
	for i := 0; i < m.FaceCount(); i++ {
		if uvCell(m.FaceUV(i), size) == target {
			out.Add(i)
		}
	}
	return out
}
