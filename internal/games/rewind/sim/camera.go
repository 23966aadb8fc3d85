package sim

import "github.com/vovakirdan/rewind-arcade/internal/config"

// Camera is the horizontal viewport the simulation reads and writes.
// Shake is fire-and-forget; the camera owns its decay.
type Camera interface {
	X() float64
	SetX(x float64)
	ViewWidth() float64
	Shake(intensity, duration float64)
}

// FollowCamera keeps the player at a fixed fraction of the view and
// jitters while a shake is active.
type FollowCamera struct {
	x         float64
	viewWidth float64
	lead      float64
	rng       Random

	shakeIntensity float64
	shakeDuration  float64
	shakeTimer     float64
	offsetX        float64
	offsetY        float64
}

// NewFollowCamera creates a camera at x = 0.
func NewFollowCamera(cfg config.CameraConfig, rng Random) *FollowCamera {
	return &FollowCamera{
		viewWidth: cfg.ViewWidth,
		lead:      cfg.Lead,
		rng:       rng,
	}
}

// X returns the left edge of the view in world units.
func (c *FollowCamera) X() float64 { return c.x }

// SetX moves the left edge of the view.
func (c *FollowCamera) SetX(x float64) { c.x = x }

// ViewWidth returns the visible width in world units.
func (c *FollowCamera) ViewWidth() float64 { return c.viewWidth }

// Shake starts a shake, replacing any shake in progress.
func (c *FollowCamera) Shake(intensity, duration float64) {
	if duration <= 0 {
		return
	}
	c.shakeIntensity = intensity
	c.shakeDuration = duration
	c.shakeTimer = duration
}

// Follow positions the view so playerX sits at the lead fraction.
func (c *FollowCamera) Follow(playerX float64) {
	c.x = playerX - c.viewWidth*c.lead
}

// Update decays the shake. Offsets fall off linearly with the remaining time.
func (c *FollowCamera) Update(dt float64) {
	if c.shakeTimer <= 0 {
		c.offsetX, c.offsetY = 0, 0
		return
	}
	c.shakeTimer -= dt
	if c.shakeTimer <= 0 {
		c.shakeTimer = 0
		c.offsetX, c.offsetY = 0, 0
		return
	}
	intensity := c.shakeIntensity * (c.shakeTimer / c.shakeDuration)
	c.offsetX = (c.rng.Float64() - 0.5) * 2 * intensity
	c.offsetY = (c.rng.Float64() - 0.5) * 2 * intensity
}

// Offset returns the current shake displacement.
func (c *FollowCamera) Offset() (float64, float64) {
	return c.offsetX, c.offsetY
}

// Shaking reports whether a shake is still decaying.
func (c *FollowCamera) Shaking() bool {
	return c.shakeTimer > 0
}

// Reset recenters the camera and stops any shake.
func (c *FollowCamera) Reset() {
	c.x = 0
	c.shakeTimer = 0
	c.offsetX, c.offsetY = 0, 0
}
