package obj

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/yeginemre/Candleabra/common"
)

const (
	collectableSize = 24.0
	bobAmplitude    = 6.0
	bobPeriod       = 1.6 // seconds for a full up-down cycle
)

// Collectable is a floating pickup the player collects by touch. The hover
// bob runs on a looping tween sequence so it stays deterministic under the
// fixed timestep.
type Collectable struct {
	X, Y float64 // top-left of the resting position

	active    bool
	bob       *gween.Sequence
	bobOffset float64

	img *ebiten.Image
}

func NewCollectable(x, y float64) *Collectable {
	c := &Collectable{X: x, Y: y, active: true}
	c.bob = gween.NewSequence()
	c.bob.Add(
		gween.New(0, -bobAmplitude, bobPeriod/2, ease.InOutSine),
		gween.New(-bobAmplitude, 0, bobPeriod/2, ease.InOutSine),
	)
	c.bob.SetLoop(-1)
	return c
}

func (c *Collectable) Active() bool {
	if c == nil {
		return false
	}
	return c.active
}

// Deactivate removes the collectable from the world until restored.
func (c *Collectable) Deactivate() {
	if c == nil {
		return
	}
	c.active = false
}

// Restore reactivates the collectable at its recorded original position and
// rewinds the bob animation.
func (c *Collectable) Restore(x, y float64) {
	if c == nil {
		return
	}
	c.X = x
	c.Y = y
	c.active = true
	c.bob.Reset()
	c.bobOffset = 0
}

// Update advances the hover bob.
func (c *Collectable) Update(dt float64) {
	if c == nil || !c.active {
		return
	}
	offset, _, _ := c.bob.Update(float32(dt))
	c.bobOffset = float64(offset)
}

// AABB returns the collision box at the current bobbed position.
func (c *Collectable) AABB() common.Rect {
	return common.Rect{
		X:      c.X,
		Y:      c.Y + c.bobOffset,
		Width:  collectableSize,
		Height: collectableSize,
	}
}

func (c *Collectable) Draw(screen *ebiten.Image, camX, camY float64) {
	if c == nil || !c.active {
		return
	}
	if c.img == nil {
		c.img = ebiten.NewImage(collectableSize, collectableSize)
		c.img.Fill(color.RGBA{R: 0xff, G: 0xc8, B: 0x32, A: 0xff})
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(c.X-camX, c.Y+c.bobOffset-camY)
	screen.DrawImage(c.img, op)
}
