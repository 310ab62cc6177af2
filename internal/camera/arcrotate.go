package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Limits keep the orbit away from the poles and the target.
const (
	betaEpsilon     = 0.01
	MinRadius       = 1
	MaxRadius       = 50
	RotateSpeed     = 0.01 // radians per pixel dragged
	ZoomSpeed       = 0.5  // world units per wheel notch
	DefaultFovy     = 45
	defaultRadius   = 4
	defaultAlphaDiv = 2   // alpha = Pi/2
	defaultBetaDiv  = 2.5 // beta = Pi/2.5
)

// ArcRotate orbits a target. Alpha is the longitudinal angle around Y, Beta the latitudinal
// angle from +Y and Radius the distance to Target.
type ArcRotate struct {
	Alpha  float32
	Beta   float32
	Radius float32
	Target mgl32.Vec3
	Up     mgl32.Vec3
	Fovy   float32
}

// NewArcRotate returns a camera at the given spherical coordinates around target.
func NewArcRotate(alpha, beta, radius float32, target mgl32.Vec3) *ArcRotate {
	c := &ArcRotate{
		Alpha:  alpha,
		Beta:   beta,
		Radius: radius,
		Target: target,
		Up:     mgl32.Vec3{0, 1, 0},
		Fovy:   DefaultFovy,
	}
	c.clamp()
	return c
}

// Default returns the playground camera: alpha Pi/2, beta Pi/2.5, radius 4, looking at the origin.
func Default() *ArcRotate {
	return NewArcRotate(math32.Pi/defaultAlphaDiv, math32.Pi/defaultBetaDiv, defaultRadius, mgl32.Vec3{})
}

// Position returns the eye position in world space.
func (c *ArcRotate) Position() mgl32.Vec3 {
	sinB := math32.Sin(c.Beta)
	return c.Target.Add(mgl32.Vec3{
		c.Radius * math32.Cos(c.Alpha) * sinB,
		c.Radius * math32.Cos(c.Beta),
		c.Radius * math32.Sin(c.Alpha) * sinB,
	})
}

// Rotate applies a mouse drag of (dx, dy) pixels.
func (c *ArcRotate) Rotate(dx, dy float32) {
	c.Alpha -= dx * RotateSpeed
	c.Beta -= dy * RotateSpeed
	c.clamp()
}

// Zoom moves the eye toward the target for positive wheel deltas.
func (c *ArcRotate) Zoom(delta float32) {
	c.Radius -= delta * ZoomSpeed
	c.clamp()
}

func (c *ArcRotate) clamp() {
	c.Beta = mgl32.Clamp(c.Beta, betaEpsilon, math32.Pi-betaEpsilon)
	c.Radius = mgl32.Clamp(c.Radius, MinRadius, MaxRadius)
	if c.Alpha > 2*math32.Pi || c.Alpha < -2*math32.Pi {
		c.Alpha = math32.Mod(c.Alpha, 2*math32.Pi)
	}
}
