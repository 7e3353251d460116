// Package camera provides the screen projection used by lasso selection
// and the drag controller: world points to screen coordinates and screen
// coordinates back to view rays.
package camera

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Camera holds a view/projection pair and the viewport it maps to.
// Screen coordinates are in pixels with the origin at the top left,
// Y growing downward.
type Camera struct {
	View   mgl64.Mat4
	Proj   mgl64.Mat4
	Width  int
	Height int
}

// NewPerspective builds a camera at eye looking at target with the given
// vertical field of view (radians) over a width x height viewport.
func NewPerspective(eye, target, up mgl64.Vec3, fovy float64, width, height int) *Camera {
	aspect := float64(width) / float64(height)
	return &Camera{
		View:   mgl64.LookAtV(eye, target, up),
		Proj:   mgl64.Perspective(fovy, aspect, 0.01, 1000),
		Width:  width,
		Height: height,
	}
}

// Eye returns the camera position in world space.
func (c *Camera) Eye() mgl64.Vec3 {
	inv := c.View.Inv()
	return mgl64.TransformCoordinate(mgl64.Vec3{}, inv)
}

// Project maps a world-space point to screen coordinates.
func (c *Camera) Project(world mgl64.Vec3) mgl64.Vec2 {
	win := mgl64.Project(world, c.View, c.Proj, 0, 0, c.Width, c.Height)
	// mgl projects into GL window coordinates with Y up; flip to the
	// screen convention.
	return mgl64.Vec2{win[0], float64(c.Height) - win[1]}
}

// ViewRay returns the world-space ray under the screen position (sx, sy):
// origin at the camera eye, unit direction through the pixel.
func (c *Camera) ViewRay(sx, sy float64) (origin, dir mgl64.Vec3) {
	gy := float64(c.Height) - sy
	near, err := mgl64.UnProject(mgl64.Vec3{sx, gy, 0}, c.View, c.Proj, 0, 0, c.Width, c.Height)
	if err != nil {
		return c.Eye(), mgl64.Vec3{}
	}
	far, err := mgl64.UnProject(mgl64.Vec3{sx, gy, 1}, c.View, c.Proj, 0, 0, c.Width, c.Height)
	if err != nil {
		return c.Eye(), mgl64.Vec3{}
	}
	origin = c.Eye()
	dir = far.Sub(near).Normalize()
	return origin, dir
}
