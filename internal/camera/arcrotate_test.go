package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertVec(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-4, "component %d of %v", i, got)
	}
}

func TestDefaultPosition(t *testing.T) {
	c := Default()
	beta := float32(math32.Pi / 2.5)
	want := mgl32.Vec3{0, 4 * math32.Cos(beta), 4 * math32.Sin(beta)}
	assertVec(t, want, c.Position())
	assert.InDelta(t, 4, c.Position().Sub(c.Target).Len(), 1e-4)
}

func TestPositionFollowsTarget(t *testing.T) {
	c := NewArcRotate(0, math32.Pi/2, 2, mgl32.Vec3{1, 1, 1})
	assertVec(t, mgl32.Vec3{3, 1, 1}, c.Position())
}

func TestRotateClampsBeta(t *testing.T) {
	c := Default()
	c.Rotate(0, 10000)
	assert.InDelta(t, betaEpsilon, c.Beta, 1e-6)
	c.Rotate(0, -10000)
	assert.InDelta(t, math32.Pi-betaEpsilon, c.Beta, 1e-5)

	before := c.Alpha
	c.Rotate(100, 0)
	assert.InDelta(t, before-1, c.Alpha, 1e-5)
}

func TestZoomClampsRadius(t *testing.T) {
	c := Default()
	c.Zoom(2)
	assert.InDelta(t, 3, c.Radius, 1e-6)
	c.Zoom(100)
	assert.Equal(t, float32(MinRadius), c.Radius)
	c.Zoom(-1000)
	assert.Equal(t, float32(MaxRadius), c.Radius)
}
