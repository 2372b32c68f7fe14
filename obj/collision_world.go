package obj

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/yeginemre/Candleabra/common"
	"github.com/yeginemre/Candleabra/config"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypePlayerGround
	collisionTypePlayerSideLeft
	collisionTypePlayerSideRight
	collisionTypeSolid
)

type wallSide int

const (
	WALL_NONE wallSide = iota
	WALL_LEFT
	WALL_RIGHT
)

// CollisionWorld owns the Chipmunk space: static platform boxes for every
// segment, the player body, and the ground/side sensor shapes whose contact
// flags gameplay reads each frame. Flags latch during Step and are reset by
// BeginStep, so within a frame the controllers observe the previous step's
// settled contacts.
type CollisionWorld struct {
	space *cp.Space

	playerBody   *cp.Body
	playerShape  *cp.Shape
	groundSensor *cp.Shape
	leftSensor   *cp.Shape
	rightSensor  *cp.Shape

	grounded    bool
	wall        wallSide
	groundGrace int

	handlersReady bool
}

func NewCollisionWorld() *CollisionWorld {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})
	return &CollisionWorld{space: space}
}

// AddSegmentGeometry creates static boxes for a segment's platforms. All
// segments share one space; geometry never moves or despawns, so inactive
// segments keep their floors (the sequencer's bounds keep the player inside
// the active one).
func (cw *CollisionWorld) AddSegmentGeometry(seg *Segment) {
	if cw == nil || cw.space == nil || seg == nil {
		return
	}
	for _, platform := range seg.Platforms {
		bb := cp.BB{
			L: platform.X,
			B: platform.Y,
			R: platform.X + platform.Width,
			T: platform.Y + platform.Height,
		}
		shape := cp.NewBox2(cw.space.StaticBody, bb, 0)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeSolid)
		cw.space.AddShape(shape)
	}
}

// AttachPlayer creates the player's dynamic body plus its contact sensors.
// The body uses infinite moment so it never rotates; the sensor boxes are
// sized by the configured probe radii.
func (cw *CollisionWorld) AttachPlayer(p *Player, cfg config.Config) {
	if cw == nil || cw.space == nil || p == nil {
		return
	}
	if cw.playerBody != nil {
		return
	}

	// infinite moment keeps the body from rotating
	body := cp.NewBody(1.0, math.Inf(1))
	body.SetPosition(cp.Vector{X: p.X + p.Width/2, Y: p.Y + p.Height/2})
	shape := cp.NewBox(body, p.Width, p.Height, 0)
	shape.SetFriction(0.0)
	shape.SetCollisionType(collisionTypePlayer)

	groundR := cfg.GroundCheckRadius
	if groundR <= 0 {
		groundR = 2
	}
	sideR := cfg.SideCheckRadius
	if sideR <= 0 {
		sideR = 2
	}

	// bottom-center probe
	groundBB := cp.BB{
		L: -p.Width * 0.45,
		B: p.Height / 2.0,
		R: p.Width * 0.45,
		T: p.Height/2.0 + groundR,
	}
	groundSensor := cp.NewBox2(body, groundBB, 0)
	groundSensor.SetSensor(true)
	groundSensor.SetCollisionType(collisionTypePlayerGround)

	// mid-height probes on each side; the player reads the facing one
	leftBB := cp.BB{
		L: -p.Width/2.0 - sideR,
		B: -p.Height * 0.3,
		R: -p.Width / 2.0,
		T: p.Height * 0.3,
	}
	leftSensor := cp.NewBox2(body, leftBB, 0)
	leftSensor.SetSensor(true)
	leftSensor.SetCollisionType(collisionTypePlayerSideLeft)

	rightBB := cp.BB{
		L: p.Width / 2.0,
		B: -p.Height * 0.3,
		R: p.Width/2.0 + sideR,
		T: p.Height * 0.3,
	}
	rightSensor := cp.NewBox2(body, rightBB, 0)
	rightSensor.SetSensor(true)
	rightSensor.SetCollisionType(collisionTypePlayerSideRight)

	cw.space.AddBody(body)
	cw.space.AddShape(shape)
	cw.space.AddShape(groundSensor)
	cw.space.AddShape(leftSensor)
	cw.space.AddShape(rightSensor)

	cw.playerBody = body
	cw.playerShape = shape
	cw.groundSensor = groundSensor
	cw.leftSensor = leftSensor
	cw.rightSensor = rightSensor
	p.body = body
	p.shape = shape

	cw.setupHandlers()
}

func (cw *CollisionWorld) setupHandlers() {
	if cw.handlersReady || cw.space == nil {
		return
	}

	groundHandler := cw.space.NewCollisionHandler(collisionTypePlayerGround, collisionTypeSolid)
	groundHandler.UserData = cw
	groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*CollisionWorld)
		if ok && world != nil {
			world.grounded = true
			world.groundGrace = 6
		}
		return true
	}

	leftHandler := cw.space.NewCollisionHandler(collisionTypePlayerSideLeft, collisionTypeSolid)
	leftHandler.UserData = cw
	leftHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*CollisionWorld)
		if ok && world != nil {
			world.wall = WALL_LEFT
		}
		return true
	}

	rightHandler := cw.space.NewCollisionHandler(collisionTypePlayerSideRight, collisionTypeSolid)
	rightHandler.UserData = cw
	rightHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*CollisionWorld)
		if ok && world != nil {
			world.wall = WALL_RIGHT
		}
		return true
	}

	cw.handlersReady = true
}

// BeginStep resets the per-step contact flags. Call right before Step.
func (cw *CollisionWorld) BeginStep() {
	if cw == nil {
		return
	}
	if cw.groundGrace > 0 {
		cw.groundGrace--
	}
	cw.grounded = false
	cw.wall = WALL_NONE
}

func (cw *CollisionWorld) Step(dt float64) {
	if cw == nil || cw.space == nil {
		return
	}
	cw.space.Step(dt)
}

// IsGrounded returns true when the ground sensor touched solid geometry in
// the last step (with a short grace window to smooth contact jitter).
func (cw *CollisionWorld) IsGrounded() bool {
	if cw == nil {
		return false
	}
	return cw.grounded || cw.groundGrace > 0
}

// IsTouchingWall returns which side sensor touched solid geometry in the
// last step.
func (cw *CollisionWorld) IsTouchingWall() wallSide {
	if cw == nil {
		return WALL_NONE
	}
	return cw.wall
}
