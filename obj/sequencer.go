package obj

import (
	"log"

	"github.com/yeginemre/Candleabra/common"
	"github.com/yeginemre/Candleabra/config"
	"github.com/yeginemre/Candleabra/levels"
)

const (
	// cameraArriveEpsilon ends a transition once the camera is this close
	// to its target.
	cameraArriveEpsilon = 1.0
	// edgeCheckMargin is how near the right bound the player must be
	// before the completion check runs proactively.
	edgeCheckMargin = 24.0
)

// Character is the command surface the sequencer drives; the player
// implements it.
type Character interface {
	Die()
	Position() (x, y float64)
	SetPosition(x, y float64)
	SetVelocity(x, y float64)
}

type collectableSnapshot struct {
	ref *Collectable
	x   float64
	y   float64
}

// Sequencer owns the ordered level segments, the active segment's bounds,
// camera tracking, and the respawn/restart protocols. It observes the
// character's settled position each frame, after the character's own
// update.
type Sequencer struct {
	segments    []*Segment
	activeIndex int

	complete      bool
	transitioning bool
	previous      *Segment

	leftBound  float64
	rightBound float64

	snapshot []collectableSnapshot

	camera    *Camera
	character Character
	cfg       config.Config
}

// NewSequencer builds the segment row (index * LevelSpacing) and loads
// segment 0. A nil camera or character is a configuration error: it is
// logged and the dependent steps are skipped each frame.
func NewSequencer(specs []*levels.SegmentSpec, camera *Camera, character Character, cfg config.Config) *Sequencer {
	s := &Sequencer{
		camera:    camera,
		character: character,
		cfg:       cfg,
	}
	if camera == nil {
		log.Printf("sequencer: no camera attached; bounds fall back to level spacing")
	}
	if character == nil {
		log.Printf("sequencer: no character attached; position checks disabled")
	}
	for i, spec := range specs {
		s.segments = append(s.segments, NewSegment(i, spec, cfg.LevelSpacing))
	}
	if len(s.segments) == 0 {
		log.Printf("sequencer: no segments defined")
		return s
	}
	s.LoadSegment(0)
	if camera != nil {
		camera.SnapTo(s.segments[0].OffsetX, common.BaseHeight/2)
	}
	return s
}

// Segments returns the segment row (for geometry building and drawing).
func (s *Sequencer) Segments() []*Segment {
	return s.segments
}

// ActiveIndex returns the current segment index.
func (s *Sequencer) ActiveIndex() int {
	return s.activeIndex
}

// Complete reports whether the active segment has been cleared.
func (s *Sequencer) Complete() bool {
	return s.complete
}

// Transitioning reports whether the camera is still traveling to a newly
// loaded segment.
func (s *Sequencer) Transitioning() bool {
	return s.transitioning
}

// Bounds returns the active segment's horizontal clamp range.
func (s *Sequencer) Bounds() (left, right float64) {
	return s.leftBound, s.rightBound
}

// SetConfig applies new tuning. Segment placement is fixed at startup, so
// only the runtime values (camera speed, respawn height) take effect.
func (s *Sequencer) SetConfig(cfg config.Config) {
	s.cfg = cfg
	if s.camera != nil {
		s.camera.SetSpeed(cfg.CameraTransitionSpeed)
	}
}

// ActiveCollectables implements CollectableRegistry over the active
// segment only.
func (s *Sequencer) ActiveCollectables() []*Collectable {
	if len(s.segments) == 0 {
		return nil
	}
	seg := s.segments[s.activeIndex]
	if !seg.Active() {
		return nil
	}
	return seg.Collectables
}

// PlayerDied implements PlayerEvents.
func (s *Sequencer) PlayerDied() {
	s.RespawnPlayerAndCollectables()
}

// CollectableCollected implements PlayerEvents.
func (s *Sequencer) CollectableCollected() {
	s.CheckLevelComplete()
}

// RestartRequested implements PlayerEvents.
func (s *Sequencer) RestartRequested() {
	s.RestartGame()
}

// LoadSegment activates segment i: recomputes the camera bounds, clears the
// completion flag, snapshots the collectables, and retargets the camera.
// Out-of-range indices are logged no-ops. While a transition is in flight
// the prior segment stays alive until the camera arrives.
func (s *Sequencer) LoadSegment(i int) {
	if i < 0 || i >= len(s.segments) {
		log.Printf("sequencer: load segment %d out of range [0,%d)", i, len(s.segments))
		return
	}

	if !s.transitioning {
		if prev := s.segments[s.activeIndex]; prev.Index != i {
			prev.SetActive(false)
		}
	}

	s.activeIndex = i
	seg := s.segments[i]
	seg.SetActive(true)

	half := s.cfg.LevelSpacing / 2
	if s.camera != nil {
		half = s.camera.HalfWidth()
	}
	s.leftBound = seg.OffsetX - half
	s.rightBound = seg.OffsetX + half

	s.complete = false

	s.snapshot = s.snapshot[:0]
	for _, c := range seg.Collectables {
		s.snapshot = append(s.snapshot, collectableSnapshot{ref: c, x: c.X, y: c.Y})
	}

	if s.camera != nil {
		s.camera.SetTargetX(seg.OffsetX)
	}
}

// Update runs one sequencer frame: camera chase and transition completion,
// fall detection, boundary clamping, proactive completion checking, and the
// midpoint transition trigger.
func (s *Sequencer) Update(dt float64) {
	if len(s.segments) == 0 {
		return
	}

	if s.camera != nil {
		s.camera.Update(dt)
		if s.transitioning && s.camera.DistanceToTarget() < cameraArriveEpsilon {
			if s.previous != nil {
				s.previous.SetActive(false)
				s.previous = nil
			}
			s.transitioning = false
		}
	}

	seg := s.segments[s.activeIndex]
	seg.Update(dt)
	if s.previous != nil {
		s.previous.Update(dt)
	}

	if s.character == nil {
		return
	}

	x, y := s.character.Position()

	// falling out of the world kills; skip everything else this frame
	if y > s.cfg.RespawnY {
		s.character.Die()
		return
	}

	if !s.complete {
		clamped := common.Clamp(x, s.leftBound, s.rightBound)
		if clamped != x {
			s.character.SetPosition(clamped, y)
			x = clamped
		}
		if x >= s.rightBound-edgeCheckMargin {
			s.CheckLevelComplete()
		}
	}

	if s.complete && !s.transitioning && s.activeIndex+1 < len(s.segments) {
		next := s.segments[s.activeIndex+1]
		midpoint := (seg.OffsetX + next.OffsetX) / 2
		if x > midpoint {
			s.previous = seg
			s.transitioning = true
			s.LoadSegment(s.activeIndex + 1)
		}
	}
}

// CheckLevelComplete marks the segment complete iff no active collectables
// remain. Once complete, horizontal clamping is disabled.
func (s *Sequencer) CheckLevelComplete() {
	if len(s.segments) == 0 {
		return
	}
	for _, c := range s.segments[s.activeIndex].Collectables {
		if c.Active() {
			return
		}
	}
	s.complete = true
}

// RespawnPlayerAndCollectables moves the character to the active segment's
// spawn point and restores every snapshotted collectable. Restoring always
// reads the immutable snapshot, so repeated calls are idempotent.
func (s *Sequencer) RespawnPlayerAndCollectables() {
	if len(s.segments) == 0 {
		return
	}
	seg := s.segments[s.activeIndex]
	if s.character != nil {
		s.character.SetPosition(seg.SpawnX, seg.SpawnY)
		s.character.SetVelocity(0, 0)
	}
	for _, snap := range s.snapshot {
		snap.ref.Restore(snap.x, snap.y)
	}
	s.complete = false
}

// RestartGame resets the whole run to segment 0 with a snapped (not
// interpolated) camera, regardless of prior state.
func (s *Sequencer) RestartGame() {
	if len(s.segments) == 0 {
		return
	}

	s.transitioning = false
	s.previous = nil
	s.complete = false

	for _, seg := range s.segments[1:] {
		seg.SetActive(false)
	}
	s.activeIndex = 0
	s.LoadSegment(0)

	if s.camera != nil {
		s.camera.SnapTo(s.segments[0].OffsetX, s.camera.PosY)
	}

	if s.character != nil {
		// Die clears the melt state and triggers the respawn protocol;
		// reposition afterwards in case no event sink is wired.
		s.character.Die()
		s.character.SetPosition(s.segments[0].SpawnX, s.segments[0].SpawnY)
		s.character.SetVelocity(0, 0)
	}
}
