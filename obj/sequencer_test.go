package obj

import (
	"testing"

	"github.com/yeginemre/Candleabra/config"
	"github.com/yeginemre/Candleabra/levels"
)

type fakeCharacter struct {
	x, y   float64
	vx, vy float64
	deaths int
	onDie  func()
}

func (f *fakeCharacter) Die() {
	f.deaths++
	if f.onDie != nil {
		f.onDie()
	}
}

func (f *fakeCharacter) Position() (float64, float64) { return f.x, f.y }

func (f *fakeCharacter) SetPosition(x, y float64) { f.x, f.y = x, y }

func (f *fakeCharacter) SetVelocity(x, y float64) { f.vx, f.vy = x, y }

func testSpecs(n int) []*levels.SegmentSpec {
	specs := make([]*levels.SegmentSpec, 0, n)
	for i := 0; i < n; i++ {
		specs = append(specs, &levels.SegmentSpec{
			Name:  "test",
			Spawn: levels.PointSpec{X: 0, Y: 500},
			Platforms: []levels.RectSpec{
				{X: -640, Y: 600, Width: 1280, Height: 40},
			},
			Collectables: []levels.PointSpec{
				{X: -100, Y: 400},
				{X: 100, Y: 400},
			},
		})
	}
	return specs
}

func newTestSequencer(t *testing.T, n int) (*Sequencer, *fakeCharacter, *Camera) {
	t.Helper()
	cfg := config.Default()
	char := &fakeCharacter{x: 0, y: 500}
	camera := NewCamera(1280, 720, 1, cfg.CameraTransitionSpeed)
	seq := NewSequencer(testSpecs(n), camera, char, cfg)
	char.onDie = seq.PlayerDied
	return seq, char, camera
}

func collectAll(seq *Sequencer) {
	for _, c := range seq.ActiveCollectables() {
		c.Deactivate()
	}
}

func TestSequencerInitialLoad(t *testing.T) {
	seq, _, camera := newTestSequencer(t, 3)

	if seq.ActiveIndex() != 0 {
		t.Fatalf("expected segment 0 active, got %d", seq.ActiveIndex())
	}
	if !seq.Segments()[0].Active() {
		t.Fatalf("segment 0 should be active")
	}
	if seq.Segments()[1].Active() || seq.Segments()[2].Active() {
		t.Fatalf("later segments must start inactive")
	}

	left, right := seq.Bounds()
	if left != -640 || right != 640 {
		t.Fatalf("expected bounds [-640, 640], got [%v, %v]", left, right)
	}

	if camera.PosX != 0 {
		t.Fatalf("camera should snap to segment 0 offset, got %v", camera.PosX)
	}
	if got := len(seq.ActiveCollectables()); got != 2 {
		t.Fatalf("expected 2 active collectables, got %d", got)
	}
}

func TestSequencerLoadSegmentOutOfRange(t *testing.T) {
	seq, _, _ := newTestSequencer(t, 2)

	for _, i := range []int{-1, 2, 99} {
		seq.LoadSegment(i)
		if seq.ActiveIndex() != 0 {
			t.Fatalf("load %d must be a no-op, active index became %d", i, seq.ActiveIndex())
		}
	}
}

func TestSequencerBoundaryClamp(t *testing.T) {
	cases := []struct {
		name  string
		x     float64
		wantX float64
	}{
		{"past_right", 700, 640},
		{"past_left", -700, -640},
		{"inside", 100, 100},
		{"exactly_on_bound", 640, 640},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			seq, char, _ := newTestSequencer(t, 2)
			char.x = c.x
			seq.Update(testTick)
			if char.x != c.wantX {
				t.Fatalf("expected x clamped to %v, got %v", c.wantX, char.x)
			}
		})
	}

	t.Run("no_clamp_once_complete", func(t *testing.T) {
		seq, char, _ := newTestSequencer(t, 1)
		collectAll(seq)
		seq.CheckLevelComplete()
		char.x = 700
		seq.Update(testTick)
		if char.x != 700 {
			t.Fatalf("complete segment must not clamp, got %v", char.x)
		}
	})
}

func TestSequencerCompletion(t *testing.T) {
	t.Run("incomplete_while_collectables_remain", func(t *testing.T) {
		seq, _, _ := newTestSequencer(t, 1)
		seq.ActiveCollectables()[0].Deactivate()
		seq.CheckLevelComplete()
		if seq.Complete() {
			t.Fatalf("one remaining collectable must block completion")
		}
	})

	t.Run("complete_when_all_collected", func(t *testing.T) {
		seq, _, _ := newTestSequencer(t, 1)
		collectAll(seq)
		seq.CollectableCollected()
		if !seq.Complete() {
			t.Fatalf("expected completion after last collectable")
		}
	})

	t.Run("never_unsets", func(t *testing.T) {
		seq, _, _ := newTestSequencer(t, 1)
		collectAll(seq)
		seq.CheckLevelComplete()
		seq.Segments()[0].Collectables[0].Restore(0, 400)
		seq.CheckLevelComplete()
		if !seq.Complete() {
			t.Fatalf("completion must be sticky")
		}
	})

	t.Run("edge_proximity_triggers_check", func(t *testing.T) {
		seq, char, _ := newTestSequencer(t, 2)
		collectAll(seq)
		char.x = 630 // within the margin of the right bound
		seq.Update(testTick)
		if !seq.Complete() {
			t.Fatalf("expected proactive completion check near the right edge")
		}
	})
}

func TestSequencerTransition(t *testing.T) {
	seq, char, camera := newTestSequencer(t, 2)
	collectAll(seq)
	seq.CheckLevelComplete()

	// midpoint between offsets 0 and 1280
	char.x = 641
	seq.Update(testTick)

	if seq.ActiveIndex() != 1 {
		t.Fatalf("expected segment 1 loaded, got %d", seq.ActiveIndex())
	}
	if !seq.Transitioning() {
		t.Fatalf("expected transition in flight")
	}
	if !seq.Segments()[0].Active() || !seq.Segments()[1].Active() {
		t.Fatalf("both segments stay active mid transition")
	}
	if tx, _ := camera.Target(); tx != 1280 {
		t.Fatalf("camera should target the new offset, got %v", tx)
	}

	left, right := seq.Bounds()
	if left != 640 || right != 1920 {
		t.Fatalf("expected bounds [640, 1920], got [%v, %v]", left, right)
	}

	for i := 0; i < 300 && seq.Transitioning(); i++ {
		seq.Update(testTick)
	}
	if seq.Transitioning() {
		t.Fatalf("camera never arrived")
	}
	if seq.Segments()[0].Active() {
		t.Fatalf("previous segment must deactivate once the camera arrives")
	}
	if camera.DistanceToTarget() >= cameraArriveEpsilon {
		t.Fatalf("camera should be within epsilon, distance %v", camera.DistanceToTarget())
	}

	// a second crossing of the old midpoint must not retrigger
	if seq.ActiveIndex() != 1 {
		t.Fatalf("transition fired more than once, index %d", seq.ActiveIndex())
	}
}

func TestSequencerFallRespawn(t *testing.T) {
	seq, char, _ := newTestSequencer(t, 1)
	collectAll(seq)

	char.x = 200
	char.y = 1000
	char.vx, char.vy = 50, 50
	seq.Update(testTick)

	if char.deaths != 1 {
		t.Fatalf("expected one death from falling, got %d", char.deaths)
	}
	if char.x != 0 || char.y != 500 {
		t.Fatalf("expected respawn at (0, 500), got (%v, %v)", char.x, char.y)
	}
	if char.vx != 0 || char.vy != 0 {
		t.Fatalf("respawn must zero velocity, got (%v, %v)", char.vx, char.vy)
	}
	for _, c := range seq.ActiveCollectables() {
		if !c.Active() {
			t.Fatalf("collectables must restore on respawn")
		}
	}
	if seq.Complete() {
		t.Fatalf("respawn must clear completion")
	}
}

func TestSequencerRespawnIdempotent(t *testing.T) {
	seq, char, _ := newTestSequencer(t, 1)
	seq.ActiveCollectables()[0].Deactivate()

	seq.RespawnPlayerAndCollectables()
	seq.RespawnPlayerAndCollectables()

	if char.x != 0 || char.y != 500 {
		t.Fatalf("expected spawn position, got (%v, %v)", char.x, char.y)
	}
	for i, c := range seq.Segments()[0].Collectables {
		if !c.Active() {
			t.Fatalf("collectable %d should be restored", i)
		}
	}
}

func TestSequencerRestart(t *testing.T) {
	type state func(seq *Sequencer, char *fakeCharacter)

	cases := []struct {
		name  string
		setup state
	}{
		{"from_start", func(seq *Sequencer, char *fakeCharacter) {}},
		{"mid_segment", func(seq *Sequencer, char *fakeCharacter) {
			char.x = 300
			seq.ActiveCollectables()[0].Deactivate()
		}},
		{"complete", func(seq *Sequencer, char *fakeCharacter) {
			collectAll(seq)
			seq.CheckLevelComplete()
		}},
		{"mid_transition", func(seq *Sequencer, char *fakeCharacter) {
			collectAll(seq)
			seq.CheckLevelComplete()
			char.x = 700
			seq.Update(testTick)
		}},
		{"on_later_segment", func(seq *Sequencer, char *fakeCharacter) {
			collectAll(seq)
			seq.CheckLevelComplete()
			char.x = 700
			for i := 0; i < 300; i++ {
				seq.Update(testTick)
			}
		}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			seq, char, camera := newTestSequencer(t, 3)
			c.setup(seq, char)

			seq.RestartGame()

			if seq.ActiveIndex() != 0 {
				t.Fatalf("expected segment 0, got %d", seq.ActiveIndex())
			}
			if seq.Transitioning() {
				t.Fatalf("restart must cancel transitions")
			}
			if seq.Complete() {
				t.Fatalf("restart must clear completion")
			}
			if !seq.Segments()[0].Active() {
				t.Fatalf("segment 0 should be active")
			}
			for i, seg := range seq.Segments()[1:] {
				if seg.Active() {
					t.Fatalf("segment %d should be inactive after restart", i+1)
				}
			}
			if camera.PosX != 0 || camera.DistanceToTarget() != 0 {
				t.Fatalf("camera should snap to segment 0, pos %v distance %v", camera.PosX, camera.DistanceToTarget())
			}
			if char.x != 0 || char.y != 500 {
				t.Fatalf("expected spawn position, got (%v, %v)", char.x, char.y)
			}
			for i, col := range seq.Segments()[0].Collectables {
				if !col.Active() {
					t.Fatalf("collectable %d should be restored", i)
				}
			}
		})
	}
}
