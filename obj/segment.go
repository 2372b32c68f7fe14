package obj

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/yeginemre/Candleabra/common"
	"github.com/yeginemre/Candleabra/levels"
)

// Segment is one fixed horizontal slice of the level, placed at
// index * level spacing. OffsetX is its world-space center; platforms,
// spawn, and collectables are stored in world coordinates.
type Segment struct {
	Index   int
	Name    string
	OffsetX float64

	SpawnX float64
	SpawnY float64

	Platforms    []common.Rect
	Collectables []*Collectable

	active bool

	platformImg *ebiten.Image
}

// NewSegment places a segment spec into the world at index * spacing.
func NewSegment(index int, spec *levels.SegmentSpec, spacing float64) *Segment {
	offset := float64(index) * spacing
	seg := &Segment{
		Index:   index,
		Name:    spec.Name,
		OffsetX: offset,
		SpawnX:  offset + spec.Spawn.X,
		SpawnY:  spec.Spawn.Y,
	}
	for _, platform := range spec.Platforms {
		seg.Platforms = append(seg.Platforms, common.Rect{
			X:      offset + platform.X,
			Y:      platform.Y,
			Width:  platform.Width,
			Height: platform.Height,
		})
	}
	for _, point := range spec.Collectables {
		seg.Collectables = append(seg.Collectables, NewCollectable(offset+point.X, point.Y))
	}
	return seg
}

func (s *Segment) Active() bool {
	if s == nil {
		return false
	}
	return s.active
}

func (s *Segment) SetActive(active bool) {
	if s == nil {
		return
	}
	s.active = active
}

// Update advances the segment's collectable animations.
func (s *Segment) Update(dt float64) {
	if s == nil || !s.active {
		return
	}
	for _, c := range s.Collectables {
		c.Update(dt)
	}
}

// Draw renders the segment's platforms and collectables. Inactive segments
// are invisible.
func (s *Segment) Draw(screen *ebiten.Image, camX, camY float64) {
	if s == nil || !s.active {
		return
	}
	if s.platformImg == nil {
		s.platformImg = ebiten.NewImage(1, 1)
		s.platformImg.Fill(color.RGBA{R: 0x3c, G: 0x32, B: 0x50, A: 0xff})
	}
	for _, platform := range s.Platforms {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(platform.Width, platform.Height)
		op.GeoM.Translate(platform.X-camX, platform.Y-camY)
		screen.DrawImage(s.platformImg, op)
	}
	for _, c := range s.Collectables {
		c.Draw(screen, camX, camY)
	}
}
