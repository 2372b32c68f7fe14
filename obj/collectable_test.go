package obj

import (
	"math"
	"testing"
)

func TestCollectableBob(t *testing.T) {
	c := NewCollectable(100, 200)

	moved := false
	for i := 0; i < 120; i++ { // two full cycles at 60 TPS
		c.Update(testTick)
		box := c.AABB()
		offset := box.Y - 200
		if offset > 1e-6 || offset < -bobAmplitude-1e-6 {
			t.Fatalf("bob offset %v outside [-%v, 0]", offset, bobAmplitude)
		}
		if math.Abs(offset) > 0.5 {
			moved = true
		}
	}
	if !moved {
		t.Fatalf("bob never moved the collectable")
	}
}

func TestCollectableLifecycle(t *testing.T) {
	c := NewCollectable(100, 200)
	if !c.Active() {
		t.Fatalf("new collectable should be active")
	}

	for i := 0; i < 30; i++ {
		c.Update(testTick)
	}
	c.Deactivate()
	if c.Active() {
		t.Fatalf("should be inactive after Deactivate")
	}

	bobbed := c.bobOffset
	c.Update(testTick)
	if c.bobOffset != bobbed {
		t.Fatalf("inactive collectable must not animate")
	}

	c.Restore(100, 200)
	if !c.Active() {
		t.Fatalf("should be active after Restore")
	}
	if c.bobOffset != 0 {
		t.Fatalf("restore must rewind the bob, offset %v", c.bobOffset)
	}
	if c.X != 100 || c.Y != 200 {
		t.Fatalf("restore must reset position, got (%v, %v)", c.X, c.Y)
	}
}

func TestNilCollectableSafe(t *testing.T) {
	var c *Collectable
	if c.Active() {
		t.Fatalf("nil collectable must report inactive")
	}
	c.Deactivate()
	c.Restore(0, 0)
	c.Update(testTick)
}
