package obj

import (
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/yeginemre/Candleabra/common"
	"github.com/yeginemre/Candleabra/config"
)

// PlayerEvents is the notification surface the player raises domain events
// on; the level sequencer implements it. Keeping it an interface (rather
// than a direct sequencer reference) keeps the ownership acyclic: the
// sequencer commands the player, the player only signals.
type PlayerEvents interface {
	// PlayerDied is raised once per death; the sequencer responds by
	// respawning the player and restoring collectables.
	PlayerDied()
	// CollectableCollected is raised after a collectable was deactivated.
	CollectableCollected()
	// RestartRequested forwards the restart input event.
	RestartRequested()
}

// CollectableRegistry is the injected view of the collectables the player
// can currently touch.
type CollectableRegistry interface {
	ActiveCollectables() []*Collectable
}

type jumpState int

const (
	jumpGrounded jumpState = iota
	jumpAscending
	jumpReleased
)

const (
	playerWidth  = 28.0
	playerHeight = 56.0

	// meltOffsetFactor shifts the body down as it melts so the base stays
	// anchored instead of the shape floating at its original center.
	meltOffsetFactor = 2.5

	expressionBands = 5
)

// Player is the candle character: horizontal locomotion, a held-jump state
// machine, and the melt mechanic. Velocity set here is applied by the
// physics step at the end of the frame; the sequencer reads the previous
// step's settled position.
type Player struct {
	common.Rect
	VelocityX float64
	VelocityY float64

	Input *Input
	World *CollisionWorld

	events   PlayerEvents
	registry CollectableRegistry

	cfg config.Config

	facingRight bool
	grounded    bool
	sideContact bool

	jump              jumpState
	jumpHoldRemaining float64

	melting     bool
	meltRatio   float64
	meltOffsetY float64
	expression  int

	body  *cp.Body
	shape *cp.Shape

	img *ebiten.Image
}

func NewPlayer(x, y float64, input *Input, world *CollisionWorld, cfg config.Config) *Player {
	p := &Player{
		Rect: common.Rect{
			X:      x,
			Y:      y,
			Width:  playerWidth,
			Height: playerHeight,
		},
		Input:       input,
		World:       world,
		cfg:         cfg,
		facingRight: true,
		jump:        jumpGrounded,
		meltRatio:   1.0,
	}
	if world == nil {
		log.Printf("player: no collision world attached; contact sensing and physics disabled")
	} else {
		world.AttachPlayer(p, cfg)
	}
	return p
}

// SetEvents wires the sequencer's event sink. Without one, deaths and
// restarts are logged and dropped.
func (p *Player) SetEvents(events PlayerEvents) {
	p.events = events
}

// SetRegistry wires the collectable registry the player tests overlap against.
func (p *Player) SetRegistry(registry CollectableRegistry) {
	p.registry = registry
}

// SetConfig applies new tuning. Safe to call between frames (hot reload).
func (p *Player) SetConfig(cfg config.Config) {
	p.cfg = cfg
}

// Update runs one input/logic tick: contact sensing, locomotion, the jump
// state machine, the side-contact override, the melt mechanic, and external
// notifications, in that order.
func (p *Player) Update(dt float64) {
	if p.Input == nil {
		return
	}

	// contact sensing
	if p.World != nil {
		p.grounded = p.World.IsGrounded()
		wall := p.World.IsTouchingWall()
		p.sideContact = (wall == WALL_LEFT && !p.facingRight) ||
			(wall == WALL_RIGHT && p.facingRight)
	}

	// landing re-arms the jump; ascent is never interrupted by a lingering
	// grounded flag on the launch frame
	if p.grounded && p.jump == jumpReleased {
		p.jump = jumpGrounded
	}

	// horizontal input
	moveX := 0.0
	if p.Input.MoveX > 0 {
		moveX = 1
	} else if p.Input.MoveX < 0 {
		moveX = -1
	}
	if moveX > 0 && !p.facingRight {
		p.facingRight = true
	} else if moveX < 0 && p.facingRight {
		p.facingRight = false
	}

	_, vy := p.velocity()
	vx := moveX * p.cfg.MoveSpeed

	// jump state machine
	switch p.jump {
	case jumpGrounded:
		if p.Input.JumpPressed && (p.grounded || p.sideContact) {
			vy = -p.cfg.JumpForce
			p.jumpHoldRemaining = p.cfg.JumpTimeMax
			p.jump = jumpAscending
		}
	case jumpAscending:
		if p.Input.JumpReleased {
			if vy < 0 {
				vy *= p.cfg.JumpMultiplier
			}
			p.jump = jumpReleased
		} else if p.Input.JumpHeld && p.jumpHoldRemaining > 0 {
			vy = -p.cfg.JumpForce
			p.jumpHoldRemaining -= dt
			if p.jumpHoldRemaining <= 0 {
				p.jumpHoldRemaining = 0
				p.jump = jumpReleased
			}
		} else {
			p.jump = jumpReleased
		}
	case jumpReleased:
		// waiting for the grounded flag to re-arm
	}

	// a wall on the facing side blocks motion entirely this frame
	if p.sideContact {
		vx = 0
		vy = 0
	}

	p.setVelocity(vx, vy)

	// melt mechanic
	if p.Input.MeltPressed {
		p.melting = !p.melting
	}
	if p.melting {
		next := p.meltRatio - p.cfg.MeltSpeed*dt
		if next <= p.cfg.MinMeltScale {
			// melted to the floor: the ratio keeps its last valid value and
			// death fires exactly once (Die resets the melt state)
			p.Die()
		} else {
			p.meltRatio = next
			p.meltOffsetY = meltOffsetFactor * (1 - p.meltRatio) * (p.Height / 2)
			p.expression = expressionFor(p.meltRatio, p.cfg.MinMeltScale)
		}
	}

	// external notifications
	if p.registry != nil {
		box := p.AABB()
		for _, c := range p.registry.ActiveCollectables() {
			if !c.Active() || !box.Intersects(c.AABB()) {
				continue
			}
			c.Deactivate()
			if p.events != nil {
				p.events.CollectableCollected()
			}
		}
	}
	if p.Input.RestartPressed {
		if p.events != nil {
			p.events.RestartRequested()
		} else {
			log.Printf("player: restart requested with no event sink")
		}
	}
}

// SyncFromBody pulls the body's post-step position and velocity back into
// the controller. In degraded mode (no collision world) it integrates the
// stored velocity directly.
func (p *Player) SyncFromBody(dt float64) {
	if p.body != nil {
		pos := p.body.Position()
		vel := p.body.Velocity()
		if math.IsNaN(pos.X) || math.IsNaN(pos.Y) || math.IsInf(pos.X, 0) || math.IsInf(pos.Y, 0) {
			log.Printf("player: body position diverged, forcing death")
			p.Die()
			return
		}
		p.X = pos.X - p.Width/2
		p.Y = pos.Y - p.Height/2
		p.VelocityX = vel.X
		p.VelocityY = vel.Y
		return
	}

	if !p.grounded {
		p.VelocityY += common.Gravity * dt
	}
	p.X += p.VelocityX * dt
	p.Y += p.VelocityY * dt
}

// Die resets the melt state and notifies the sequencer to respawn the
// player and collectables. Safe to call repeatedly.
func (p *Player) Die() {
	p.melting = false
	p.meltRatio = 1.0
	p.meltOffsetY = 0
	p.expression = 0
	p.jump = jumpReleased
	if p.events != nil {
		p.events.PlayerDied()
	} else {
		log.Printf("player: died with no event sink; staying put")
	}
}

// Position returns the center of the collision box.
func (p *Player) Position() (float64, float64) {
	return p.X + p.Width/2, p.Y + p.Height/2
}

// SetPosition moves the collision box center, keeping the body in sync.
// Used by the sequencer for boundary clamping and respawn.
func (p *Player) SetPosition(x, y float64) {
	p.X = x - p.Width/2
	p.Y = y - p.Height/2
	if p.body != nil {
		p.body.SetPosition(cp.Vector{X: x, Y: y})
	}
}

// SetVelocity overrides the current velocity. Used by the sequencer during
// respawn and clamping.
func (p *Player) SetVelocity(x, y float64) {
	p.setVelocity(x, y)
}

func (p *Player) setVelocity(x, y float64) {
	p.VelocityX = x
	p.VelocityY = y
	if p.body != nil {
		p.body.SetVelocity(x, y)
	}
}

func (p *Player) velocity() (float64, float64) {
	if p.body != nil {
		v := p.body.Velocity()
		return v.X, v.Y
	}
	return p.VelocityX, p.VelocityY
}

// AABB returns the player's collision box.
func (p *Player) AABB() common.Rect {
	return common.Rect{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}
}

// Walking reports whether the run animation should play.
func (p *Player) Walking() bool {
	vx, _ := p.velocity()
	return p.grounded && vx != 0 && !p.sideContact
}

// Jumping reports whether the jump/fall animation should play.
func (p *Player) Jumping() bool {
	return !p.grounded
}

// Expression returns the face index (0 happiest .. 4 most melted).
func (p *Player) Expression() int {
	return p.expression
}

// MeltEffectActive reports whether the melt visual effect should show.
func (p *Player) MeltEffectActive() bool {
	return p.melting
}

// MeltRatio returns the current body compression in [MinMeltScale, 1].
func (p *Player) MeltRatio() float64 {
	return p.meltRatio
}

// FacingRight reports the current facing.
func (p *Player) FacingRight() bool {
	return p.facingRight
}

// expressionFor maps a melt ratio onto five equal-width bands between 1.0
// and minScale. A ratio at or below edge k (1 - k*bandWidth) selects band
// k; band 0 is the happiest face.
func expressionFor(ratio, minScale float64) int {
	bandWidth := (1 - minScale) / expressionBands
	if bandWidth <= 0 {
		return 0
	}
	idx := 0
	for k := 1; k < expressionBands; k++ {
		if ratio <= 1-float64(k)*bandWidth {
			idx = k
		}
	}
	return idx
}

// expressionTints darken the candle as it melts through the five bands.
var expressionTints = [expressionBands]float64{1.0, 0.9, 0.8, 0.7, 0.6}

func (p *Player) Draw(screen *ebiten.Image, camX, camY float64) {
	if p.img == nil {
		p.img = ebiten.NewImage(int(p.Width), int(p.Height))
		p.img.Fill(colornames.Crimson)
	}

	op := &ebiten.DrawImageOptions{}
	// squash vertically by the melt ratio, anchored at the base
	sx := 1.0
	if !p.facingRight {
		sx = -1.0
	}
	op.GeoM.Scale(sx, p.meltRatio)
	drawX := p.X - camX
	if !p.facingRight {
		drawX += p.Width
	}
	op.GeoM.Translate(math.Round(drawX), math.Round(p.Y+p.meltOffsetY-camY))
	tint := expressionTints[p.expression]
	op.ColorScale.Scale(float32(tint), float32(tint), 1, 1)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(p.img, op)
}
