package obj

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/yeginemre/Candleabra/common"
)

// Camera renders the world centered on its current position and chases a
// target point with an exponential-decay lerp. The sequencer owns the
// target; everything else only reads the view.
type Camera struct {
	PosX float64
	PosY float64

	targetX float64
	targetY float64

	screenW int
	screenH int
	zoom    float64
	// speed is the lerp rate per second toward the target.
	speed float64

	off *ebiten.Image
}

// NewCamera creates a camera with the given logical screen size and initial zoom.
func NewCamera(screenW, screenH int, zoom, speed float64) *Camera {
	if zoom <= 0 {
		zoom = 1
	}
	c := &Camera{screenW: screenW, screenH: screenH, zoom: zoom, speed: speed}
	return c
}

// SetSpeed updates the lerp rate per second.
func (c *Camera) SetSpeed(v float64) {
	if v < 0 {
		v = 0
	}
	c.speed = v
}

// SetTargetX retargets the camera horizontally, preserving the vertical target.
func (c *Camera) SetTargetX(x float64) {
	c.targetX = x
}

func (c *Camera) SetTarget(x, y float64) {
	c.targetX = x
	c.targetY = y
}

func (c *Camera) Target() (float64, float64) {
	return c.targetX, c.targetY
}

// Update moves the camera toward the target. The step scales with dt, so
// the chase is frame-rate independent but still eases out near the target.
func (c *Camera) Update(dt float64) {
	t := c.speed * dt
	if t > 1 {
		t = 1
	}
	c.PosX = common.Lerp(c.PosX, c.targetX, t)
	c.PosY = common.Lerp(c.PosY, c.targetY, t)
}

// SnapTo immediately centers the camera on the given world coordinates and
// clears any in-flight chase. Use after a restart so the view doesn't sweep
// across the whole world.
func (c *Camera) SnapTo(x, y float64) {
	c.PosX = x
	c.PosY = y
	c.targetX = x
	c.targetY = y
}

// DistanceToTarget returns the remaining chase distance.
func (c *Camera) DistanceToTarget() float64 {
	return math.Hypot(c.targetX-c.PosX, c.targetY-c.PosY)
}

// HalfWidth returns half the view width in world units.
func (c *Camera) HalfWidth() float64 {
	if c.zoom == 0 {
		return float64(c.screenW) / 2.0
	}
	return float64(c.screenW) / c.zoom / 2.0
}

// ViewTopLeft returns the world-space top-left of the current view.
func (c *Camera) ViewTopLeft() (float64, float64) {
	viewW := float64(c.screenW) / c.zoom
	viewH := float64(c.screenH) / c.zoom
	return c.PosX - viewW/2.0, c.PosY - viewH/2.0
}

// Zoom returns the current camera zoom.
func (c *Camera) Zoom() float64 {
	return c.zoom
}

// Render clears the offscreen image, lets the caller draw the world into it
// using offsets from ViewTopLeft, then blits it to the screen.
func (c *Camera) Render(screen *ebiten.Image, drawWorld func(world *ebiten.Image)) {
	if c.off == nil {
		c.off = ebiten.NewImage(c.screenW, c.screenH)
	}

	c.off.Clear()
	if drawWorld != nil {
		drawWorld(c.off)
	}

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(c.off, op)
}
