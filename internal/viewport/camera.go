// Package viewport maps world-space gesture motion onto the screen.
package viewport

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type Projector interface {
	WorldToScreenPoint(p mgl32.Vec3) mgl32.Vec2
}

// CenterProvider reports the point the user is looking at, in screen and in
// world coordinates.
type CenterProvider interface {
	ScreenCenter() mgl32.Vec2
	WorldScreenCenter() mgl32.Vec3
}

// Camera is a perspective camera. It is both a Projector and a
// CenterProvider.
type Camera struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3
	// FovY is the vertical field of view in degrees.
	FovY      float32
	Near, Far float32
	Width     int
	Height    int
	// FocusDistance is how far in front of the eye the world screen centre lies.
	FocusDistance float32
}

func NewCamera(width, height int) *Camera {
	return &Camera{
		Eye:           mgl32.Vec3{0, 0, 0},
		Target:        mgl32.Vec3{0, 0, 1},
		Up:            mgl32.Vec3{0, 1, 0},
		FovY:          60,
		Near:          0.1,
		Far:           1000,
		Width:         width,
		Height:        height,
		FocusDistance: 2,
	}
}

func (c *Camera) aspect() float32 {
	if c.Height == 0 {
		return 1
	}
	return float32(c.Width) / float32(c.Height)
}

func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Target, c.Up)
}

func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), c.aspect(), c.Near, c.Far)
}

// WorldToScreenPoint projects p into window pixel coordinates with the origin
// at the bottom left.
func (c *Camera) WorldToScreenPoint(p mgl32.Vec3) mgl32.Vec2 {
	win := mgl32.Project(p, c.View(), c.Projection(), 0, 0, c.Width, c.Height)
	return win.Vec2()
}

// ScreenDelta maps a world-space motion d onto the screen as the motion of
// the world screen centre moved by d. Motion that cannot be projected, such
// as onto the eye plane, maps to zero.
func (c *Camera) ScreenDelta(d mgl32.Vec3) mgl32.Vec2 {
	p := c.WorldToScreenPoint(c.WorldScreenCenter().Add(d))
	r := p.Sub(c.ScreenCenter())
	if !finite(r[0]) || !finite(r[1]) {
		return mgl32.Vec2{}
	}
	return r
}

func finite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}

// DeltaProjector is the Projector for world deltas: it projects through the
// camera's ScreenDelta instead of treating the delta as a point.
type DeltaProjector struct {
	Camera *Camera
}

func (d DeltaProjector) WorldToScreenPoint(p mgl32.Vec3) mgl32.Vec2 {
	return d.Camera.ScreenDelta(p)
}

func (c *Camera) Forward() mgl32.Vec3 {
	f := c.Target.Sub(c.Eye)
	if f.Len() == 0 {
		return mgl32.Vec3{0, 0, 1}
	}
	return f.Normalize()
}

func (c *Camera) ScreenCenter() mgl32.Vec2 {
	return mgl32.Vec2{float32(c.Width) / 2, float32(c.Height) / 2}
}

func (c *Camera) WorldScreenCenter() mgl32.Vec3 {
	return c.Eye.Add(c.Forward().Mul(c.FocusDistance))
}

// Resize updates the viewport dimensions, such as when a window is resized.
func (c *Camera) Resize(width, height int) {
	c.Width = width
	c.Height = height
}
