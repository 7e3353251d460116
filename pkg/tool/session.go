package tool

import (
	"fmt"

	"github.com/Nub/meshedit/pkg/mesh"
	"github.com/Nub/meshedit/pkg/region"
)

// Session binds one EditMesh to the selection computed against it.
// Face indices are only valid for the mesh generation they were computed
// from; replacing the mesh bumps the generation and clears the
// selection, so stale indices cannot survive a commit.
type Session struct {
	mesh       *mesh.EditMesh
	selection  region.FaceSet
	generation uint64
}

// StartSession converts a renderable buffer into a fresh edit session.
// Invalid input (no positions, non-triangle topology) fails the session
// outright; no partial state is created.
func StartSession(r *mesh.Renderable) (*Session, error) {
	m, err := mesh.FromRenderable(r)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	return &Session{
		mesh:      m,
		selection: region.NewFaceSet(),
	}, nil
}

// Mesh returns the current mesh snapshot.
func (s *Session) Mesh() *mesh.EditMesh {
	return s.mesh
}

// Generation counts structural edits; it increments on every commit.
func (s *Session) Generation() uint64 {
	return s.generation
}

// Selection returns a copy of the current selection for UI highlighting.
func (s *Session) Selection() region.FaceSet {
	return s.selection.Clone()
}

// SelectionCount returns the number of selected faces.
func (s *Session) SelectionCount() int {
	return s.selection.Len()
}

// setSelection installs a fresh selection, bounds-checked against the
// current mesh.
func (s *Session) setSelection(fs region.FaceSet) {
	fs.Clamp(s.mesh.FaceCount())
	s.selection = fs
}

// mergeSelection adds faces to the current selection, bounds-checked.
func (s *Session) mergeSelection(fs region.FaceSet) {
	fs.Clamp(s.mesh.FaceCount())
	s.selection.Merge(fs)
}

// replace swaps in the result of a committed edit: the old mesh and its
// now-invalid selection are discarded and the generation advances.
func (s *Session) replace(m *mesh.EditMesh) {
	s.mesh = m
	s.selection = region.NewFaceSet()
	s.generation++
}
