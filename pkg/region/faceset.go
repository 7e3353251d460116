// Package region expands a picked face (or a screen-space polygon) into a
// set of face indices using one of four interchangeable selection modes.
// A FaceSet is only meaningful against the exact EditMesh it was computed
// from; structural edits renumber faces.
package region

import "sort"

// FaceSet is a set of face indices, unique and order-irrelevant.
type FaceSet map[int]struct{}

// NewFaceSet returns a set containing the given faces.
func NewFaceSet(faces ...int) FaceSet {
	s := make(FaceSet, len(faces))
	for _, f := range faces {
		s[f] = struct{}{}
	}
	return s
}

// Add inserts a face index.
func (s FaceSet) Add(f int) {
	s[f] = struct{}{}
}

// Has reports whether the face is in the set.
func (s FaceSet) Has(f int) bool {
	_, ok := s[f]
	return ok
}

// Len returns the number of faces in the set.
func (s FaceSet) Len() int {
	return len(s)
}

// Sorted returns the face indices in ascending order.
func (s FaceSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for f := range s {
		out = append(out, f)
	}
	sort.Ints(out)
	return out
}

// Merge adds every face of other into s.
func (s FaceSet) Merge(other FaceSet) {
	for f := range other {
		s[f] = struct{}{}
	}
}

// Clone returns an independent copy.
func (s FaceSet) Clone() FaceSet {
	c := make(FaceSet, len(s))
	for f := range s {
		c[f] = struct{}{}
	}
	return c
}

// Clamp removes every index outside [0, faceCount). Selections that
// survived a structural edit by mistake are dropped here instead of
// reading out of range.
func (s FaceSet) Clamp(faceCount int) {
	for f := range s {
		if f < 0 || f >= faceCount {
			delete(s, f)
		}
	}
}

// All returns the set of every face index below faceCount.
func All(faceCount int) FaceSet {
	s := make(FaceSet, faceCount)
	for i := 0; i < faceCount; i++ {
		s[i] = struct{}{}
	}
	return s
}

// Inverted returns the complement of s within [0, faceCount).
func (s FaceSet) Inverted(faceCount int) FaceSet {
	out := make(FaceSet, faceCount-len(s))
	for i := 0; i < faceCount; i++ {
		if !s.Has(i) {
			out[i] = struct{}{}
		}
	}
	return out
}
