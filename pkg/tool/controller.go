package tool

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Nub/meshedit/pkg/camera"
	"github.com/Nub/meshedit/pkg/mesh"
	"github.com/Nub/meshedit/pkg/ops"
	"github.com/Nub/meshedit/pkg/pick"
	"github.com/Nub/meshedit/pkg/region"
)

// gridStepFactor is the multiplier applied per grid-size increment.
const gridStepFactor = 2.0

// minGridSize keeps repeated decrements from collapsing a cell to zero.
const minGridSize = 1e-3

// Commit is the outcome of a confirmed edit, handed back to the host:
// the replacement mesh, its derived collision shape, and, for cuts, the
// separated piece as its own mesh + collider pair.
type Commit struct {
	Mesh     *mesh.Renderable
	Collider mesh.Collider

	CutOut         *mesh.Renderable
	CutOutCollider mesh.Collider
}

// Controller maps discrete user intents to engine calls for one edit
// session. It is the only mutator of the tool state and the session.
type Controller struct {
	session *Session
	state   *State
	model   mgl64.Mat4 // target entity local-to-world transform
}

// NewController returns an inactive controller.
func NewController() *Controller {
	return &Controller{state: NewState(), model: mgl64.Ident4()}
}

// Start begins an edit session on the target's renderable mesh, with
// model as its local-to-world transform. Any previous session and its
// selection are discarded without persisting (the host captures
// snapshots before calling in).
func (c *Controller) Start(r *mesh.Renderable, model mgl64.Mat4) error {
	s, err := StartSession(r)
	if err != nil {
		return err
	}
	c.session = s
	c.model = model
	c.state.Reset()
	return nil
}

// Active reports whether a session is live.
func (c *Controller) Active() bool {
	return c.session != nil
}

// Session exposes the live session, nil when inactive.
func (c *Controller) Session() *Session {
	return c.session
}

// State exposes the tool state for the host UI.
func (c *Controller) State() *State {
	return c.state
}

// SetMode switches the pending operation. Entering Extrude or Cut with
// an empty selection is legal; nothing changes until a selection exists.
func (c *Controller) SetMode(m Mode) {
	c.state.Mode = m
}

// SetRegionMode switches the selection algorithm for following clicks.
func (c *Controller) SetRegionMode(m region.Mode) {
	c.state.RegionMode = m
}

// SetDistance sets the pending extrude distance.
func (c *Controller) SetDistance(d float64) {
	c.state.Distance = d
}

// SetTilt sets the pending extrude tilt angle in radians.
func (c *Controller) SetTilt(t float64) {
	c.state.Tilt = t
}

// GridStep scales the active grid cell size by powers of the step
// factor: positive delta grows the cell, negative shrinks it. The world
// or UV grid is chosen by the current region mode.
func (c *Controller) GridStep(delta int) {
	size := &c.state.Params.GridSize
	if c.state.RegionMode == region.UVGrid {
		size = &c.state.Params.UVGridSize
	}
	for ; delta > 0; delta-- {
		*size *= gridStepFactor
	}
	for ; delta < 0; delta++ {
		if next := *size / gridStepFactor; next >= minGridSize {
			*size = next
		}
	}
}

// Click resolves a local-space ray to a face and expands it into a
// selection with the active region mode. With additive true the result
// merges into the existing selection, otherwise it replaces it. In
// lasso mode a click appends the hit point to the in-progress polygon
// instead. A miss is a normal no-result outcome: nothing changes.
func (c *Controller) Click(ray pick.Ray, xray, additive bool) (pick.Hit, bool) {
	if c.session == nil {
		return pick.Hit{}, false
	}
	hit, ok := pick.Face(c.session.Mesh(), ray, xray)
	if !ok {
		return pick.Hit{}, false
	}

	if c.state.RegionMode == region.Lasso {
		world := mgl64.TransformCoordinate(hit.Point, c.model)
		c.state.Polygon = append(c.state.Polygon, world)
		return hit, true
	}

	m := c.session.Mesh()
	var sel region.FaceSet
	switch c.state.RegionMode {
	case region.WorldGrid:
		world := mgl64.TransformCoordinate(hit.Point, c.model)
		sel = region.SelectWorldGrid(m, c.model, world, c.state.Params.GridSize)
	case region.UVGrid:
		sel = region.SelectUVGrid(m, m.FaceUV(hit.Face), c.state.Params.UVGridSize)
	case region.FloodFill:
		sel = region.SelectFloodFill(m, hit.Face, c.state.Params.AngleThreshold)
	default:
		sel = region.NewFaceSet(hit.Face)
	}

	if additive {
		c.session.mergeSelection(sel)
	} else {
		c.session.setSelection(sel)
	}
	return hit, true
}

// LassoPolygon returns the in-progress polygon for UI preview.
func (c *Controller) LassoPolygon() []mgl64.Vec3 {
	return c.state.Polygon
}

// LassoClose projects the collected world points through the camera and
// selects every face whose projected centroid falls inside the polygon.
// The polygon is consumed. Closing with fewer than three points discards
// the points and selects nothing new.
func (c *Controller) LassoClose(cam *camera.Camera, additive bool) {
	if c.session == nil {
		return
	}
	poly := c.state.Polygon
	c.state.Polygon = nil
	if len(poly) < 3 || cam == nil {
		return
	}

	screen := make([]mgl64.Vec2, len(poly))
	for i, p := range poly {
		screen[i] = cam.Project(p)
	}
	project := func(local mgl64.Vec3) mgl64.Vec2 {
		return cam.Project(mgl64.TransformCoordinate(local, c.model))
	}

	sel := region.SelectLasso(c.session.Mesh(), screen, project)
	if additive {
		c.session.mergeSelection(sel)
	} else {
		c.session.setSelection(sel)
	}
}

// SelectAll selects every face of the current mesh.
func (c *Controller) SelectAll() {
	if c.session == nil {
		return
	}
	c.session.setSelection(region.All(c.session.Mesh().FaceCount()))
}

// InvertSelection complements the selection within the current mesh.
func (c *Controller) InvertSelection() {
	if c.session == nil {
		return
	}
	c.session.setSelection(c.session.selection.Inverted(c.session.Mesh().FaceCount()))
}

// ClearSelection empties the selection.
func (c *Controller) ClearSelection() {
	if c.session == nil {
		return
	}
	c.session.setSelection(region.NewFaceSet())
}

// DragBegin captures the extrude axis from the current selection and the
// baseline under the cursor's view ray. With an empty or degenerate
// selection the drag does not start.
func (c *Controller) DragBegin(rayOrigin, rayDir mgl64.Vec3) {
	if c.session == nil || c.session.SelectionCount() == 0 {
		return
	}
	m := c.session.Mesh()
	origin := ops.Centroid(m, c.session.selection)
	normal := ops.AverageNormal(m, c.session.selection)
	c.state.Drag.Begin(origin, normal, rayOrigin, rayDir)
}

// DragUpdate recomputes the extrude distance for the current cursor
// ray. Near-parallel geometry leaves the distance unchanged this frame.
func (c *Controller) DragUpdate(rayOrigin, rayDir mgl64.Vec3) {
	if d, ok := c.state.Drag.Update(rayOrigin, rayDir); ok {
		c.state.Distance = d
	}
}

// DragEnd clears the transient drag state on pointer release.
func (c *Controller) DragEnd() {
	c.state.Drag.End()
}

// Escape steps the tool back: an in-progress polygon is discarded
// first; then a non-Select mode falls back to Select; escaping from
// Select deactivates the tool and returns false.
func (c *Controller) Escape() bool {
	if len(c.state.Polygon) > 0 {
		c.state.Polygon = nil
		if c.state.Mode != ModeSelect {
			c.state.Mode = ModeSelect
		}
		return true
	}
	if c.state.Mode != ModeSelect {
		c.state.Mode = ModeSelect
		return true
	}
	c.Deactivate()
	return false
}

// Deactivate drops the session and resets the state; the in-memory mesh
// and selection are discarded without persisting.
func (c *Controller) Deactivate() {
	c.session = nil
	c.state.Reset()
	c.model = mgl64.Ident4()
}

// Confirm applies the pending operation. A successful commit replaces
// the session mesh, clears the selection (its face indices are invalid
// against the new mesh), returns the tool to Select and hands back the
// new renderable + collider. No-op confirms — empty selection, zero
// extrude distance, a cut with an empty side — leave everything
// untouched and return a nil commit with the reason.
func (c *Controller) Confirm() (*Commit, string) {
	if c.session == nil {
		return nil, "no active session"
	}

	switch c.state.Mode {
	case ModeExtrude:
		return c.confirmExtrude()
	case ModeCut:
		return c.confirmCut()
	default:
		return nil, "nothing to confirm in select mode"
	}
}

func (c *Controller) confirmExtrude() (*Commit, string) {
	if c.session.SelectionCount() == 0 {
		return nil, "extrude: empty selection"
	}
	if c.state.Distance == 0 {
		return nil, "extrude: distance is zero"
	}

	out := ops.Extrude(c.session.Mesh(), c.session.selection, c.state.Distance, c.state.Tilt)
	c.session.replace(out)
	c.state.Mode = ModeSelect
	c.state.Distance = 0

	return &Commit{
		Mesh:     out.ToRenderable(),
		Collider: mesh.DeriveCollider(out),
	}, ""
}

func (c *Controller) confirmCut() (*Commit, string) {
	if c.session.SelectionCount() == 0 {
		return nil, "cut: empty selection"
	}

	remaining, cutOut := ops.Cut(c.session.Mesh(), c.session.selection)
	if remaining.FaceCount() == 0 || cutOut.FaceCount() == 0 {
		return nil, fmt.Sprintf("cut: empty result (remaining %d, cut %d faces)",
			remaining.FaceCount(), cutOut.FaceCount())
	}

	c.session.replace(remaining)
	c.state.Mode = ModeSelect

	return &Commit{
		Mesh:           remaining.ToRenderable(),
		Collider:       mesh.DeriveCollider(remaining),
		CutOut:         cutOut.ToRenderable(),
		CutOutCollider: mesh.DeriveCollider(cutOut),
	}, ""
}

// Delete removes the selected faces outright. Deleting nothing or
// everything is rejected as a no-op, mirroring the cut rules.
func (c *Controller) Delete() (*Commit, string) {
	if c.session == nil {
		return nil, "no active session"
	}
	if c.session.SelectionCount() == 0 {
		return nil, "delete: empty selection"
	}

	out := ops.Delete(c.session.Mesh(), c.session.selection)
	if out.FaceCount() == 0 {
		return nil, "delete: selection covers the whole mesh"
	}

	c.session.replace(out)
	return &Commit{
		Mesh:     out.ToRenderable(),
		Collider: mesh.DeriveCollider(out),
	}, ""
}
