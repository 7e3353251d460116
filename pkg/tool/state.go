// Package tool drives an edit session: a small Select/Extrude/Cut state
// machine, the session binding a mesh to its selection, and the drag
// controller that derives extrude distance from cursor motion.
package tool

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Nub/meshedit/pkg/region"
)

// Mode is the pending operation. Modes cycle only via explicit user
// action, never automatically.
type Mode int

const (
	ModeSelect Mode = iota
	ModeExtrude
	ModeCut
)

func (m Mode) String() string {
	switch m {
	case ModeSelect:
		return "select"
	case ModeExtrude:
		return "extrude"
	case ModeCut:
		return "cut"
	default:
		return "unknown"
	}
}

// State is the mutable tool state, owned by the controller and passed
// explicitly rather than living in globals. It is created when the tool
// activates on a target and reset whenever the target changes or the
// tool deactivates.
type State struct {
	Mode       Mode
	RegionMode region.Mode
	Params     region.Params

	Distance float64 // extrude distance
	Tilt     float64 // extrude tilt angle, radians

	// In-progress freeform polygon, as world-space points, exposed for
	// UI preview rendering.
	Polygon []mgl64.Vec3

	Drag Drag
}

// NewState returns tool state with default parameters.
func NewState() *State {
	s := &State{}
	s.Reset()
	return s
}

// Reset restores defaults and clears all transient fields.
func (s *State) Reset() {
	s.Mode = ModeSelect
	s.RegionMode = region.WorldGrid
	s.Params = region.DefaultParams()
	s.Distance = 0
	s.Tilt = 0
	s.Polygon = nil
	s.Drag = Drag{}
}
