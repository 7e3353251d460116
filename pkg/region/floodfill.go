package region

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Nub/meshedit/pkg/mesh"
)

// edgeKey is an undirected edge between two vertex indices.
type edgeKey [2]int

func newEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// edgeAdjacency maps every undirected edge to the faces that use it.
func edgeAdjacency(m *mesh.EditMesh) map[edgeKey][]int {
	adj := make(map[edgeKey][]int, m.FaceCount()*3/2)
	for i := 0; i < m.FaceCount(); i++ {
		t := m.Face(i)
		for j := 0; j < 3; j++ {
			k := newEdgeKey(t[j], t[(j+1)%3])
			adj[k] = append(adj[k], i)
		}
	}
	return adj
}

// SelectFloodFill grows a region from the seed face breadth-first across
// shared-edge adjacency, admitting a neighbor only when the angle between
// its normal and the seed face's normal stays within maxAngle (radians).
// The seed is always included. Each face is visited at most once, so the
// fill runs in O(faces).
func SelectFloodFill(m *mesh.EditMesh, seed int, maxAngle float64) FaceSet {
	out := NewFaceSet()
	if seed < 0 || seed >= m.FaceCount() {
		return out
	}

	adj := edgeAdjacency(m)
	seedNormal := m.FaceNormal(seed)

	out.Add(seed)
	frontier := []int{seed}

	for len(frontier) > 0 {
		face := frontier[0]
		frontier = frontier[1:]

		t := m.Face(face)
		for j := 0; j < 3; j++ {
			k := newEdgeKey(t[j], t[(j+1)%3])
			for _, nb := range adj[k] {
				if nb == face || out.Has(nb) {
					continue
				}
				if angleBetween(seedNormal, m.FaceNormal(nb)) > maxAngle {
					continue
				}
				out.Add(nb)
				frontier = append(frontier, nb)
			}
		}
	}

	return out
}

// angleBetween returns the angle between two unit vectors in radians.
// A zero vector (degenerate face) compares as fully deviated.
func angleBetween(a, b mgl64.Vec3) float64 {
	if a.Len() == 0 || b.Len() == 0 {
		return math.Pi
	}
	d := a.Dot(b)
	if d > 1 {
		d = 1
	} else if d < -1 {
		d = -1
	}
	return math.Acos(d)
}
