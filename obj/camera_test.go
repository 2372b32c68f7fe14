package obj

import (
	"math"
	"testing"
)

func TestCameraConvergence(t *testing.T) {
	c := NewCamera(1280, 720, 1, 6)
	c.SnapTo(0, 360)
	c.SetTargetX(1280)

	prev := c.DistanceToTarget()
	for i := 0; i < 300; i++ {
		c.Update(testTick)
		d := c.DistanceToTarget()
		if d > prev {
			t.Fatalf("distance must shrink monotonically: %v -> %v", prev, d)
		}
		prev = d
	}
	if prev >= 1 {
		t.Fatalf("camera failed to converge, distance %v", prev)
	}
	if c.PosY != 360 {
		t.Fatalf("horizontal retarget must preserve vertical position, got %v", c.PosY)
	}
}

func TestCameraLargeStepClamps(t *testing.T) {
	// a speed*dt product above 1 must land exactly on the target, not overshoot
	c := NewCamera(1280, 720, 1, 6)
	c.SnapTo(0, 360)
	c.SetTargetX(500)
	c.Update(1.0)
	if c.PosX != 500 {
		t.Fatalf("expected exact arrival on clamped step, got %v", c.PosX)
	}
}

func TestCameraSnapTo(t *testing.T) {
	c := NewCamera(1280, 720, 1, 6)
	c.SetTargetX(1280)
	c.Update(testTick)

	c.SnapTo(2560, 100)
	if c.PosX != 2560 || c.PosY != 100 {
		t.Fatalf("snap must set position exactly, got (%v, %v)", c.PosX, c.PosY)
	}
	if c.DistanceToTarget() != 0 {
		t.Fatalf("snap must also retarget, distance %v", c.DistanceToTarget())
	}
}

func TestCameraHalfWidthAndView(t *testing.T) {
	cases := []struct {
		name     string
		zoom     float64
		wantHalf float64
	}{
		{"zoom_1", 1, 640},
		{"zoom_2", 2, 320},
		{"zoom_0_falls_back", 0, 640},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cam := NewCamera(1280, 720, c.zoom, 6)
			if got := cam.HalfWidth(); got != c.wantHalf {
				t.Fatalf("HalfWidth() = %v, want %v", got, c.wantHalf)
			}
		})
	}

	cam := NewCamera(1280, 720, 1, 6)
	cam.SnapTo(100, 200)
	x, y := cam.ViewTopLeft()
	if math.Abs(x-(100-640)) > 1e-9 || math.Abs(y-(200-360)) > 1e-9 {
		t.Fatalf("ViewTopLeft() = (%v, %v)", x, y)
	}
}
