package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/rewind-arcade/internal/config"
)

func TestCameraFollow(t *testing.T) {
	cfg := config.DefaultRewindConfig()
	c := NewFollowCamera(cfg.Camera, newSeq(0.5))

	c.Follow(200)
	want := 200 - cfg.Camera.ViewWidth*cfg.Camera.Lead
	if c.X() != want {
		t.Errorf("X = %f, want %f", c.X(), want)
	}
}

func TestCameraShakeDecays(t *testing.T) {
	cfg := config.DefaultRewindConfig()
	c := NewFollowCamera(cfg.Camera, newSeq(0.99, 0.01))

	c.Shake(6, 0.4)
	c.Update(DefaultStep)
	if !c.Shaking() {
		t.Fatal("Expected shake to be active")
	}
	ox, oy := c.Offset()
	if math.Abs(ox) > 6 || math.Abs(oy) > 6 {
		t.Errorf("offset (%f, %f) exceeds intensity", ox, oy)
	}
	if ox == 0 && oy == 0 {
		t.Error("Expected a non-zero offset while shaking")
	}

	for i := 0; i < 30; i++ {
		c.Update(DefaultStep)
	}
	if c.Shaking() {
		t.Error("Shake should have decayed")
	}
	if ox, oy := c.Offset(); ox != 0 || oy != 0 {
		t.Errorf("Expected zero offset after decay, got (%f, %f)", ox, oy)
	}
}

func TestCameraZeroDurationShakeIgnored(t *testing.T) {
	c := NewFollowCamera(config.DefaultRewindConfig().Camera, newSeq(0.5))
	c.Shake(10, 0)
	if c.Shaking() {
		t.Error("Zero-duration shake should be ignored")
	}
}
