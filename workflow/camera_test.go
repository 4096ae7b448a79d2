package workflow

import (
	"math"
	"testing"

	"github.com/xlab/linmath"
)

func almostEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestFlightCameraInitialFront(t *testing.T) {
	c := NewFlightCamera(linmath.Vec3{0, 0, 3})
	// Yaw -90, pitch 0 looks down negative Z.
	if !almostEqual(c.front[0], 0) || !almostEqual(c.front[1], 0) || !almostEqual(c.front[2], -1) {
		t.Errorf("front = %v, want looking down -Z", c.front)
	}
}

func TestFlightCameraPitchClamp(t *testing.T) {
	c := NewFlightCamera(linmath.Vec3{})
	c.Pitch = 200
	e := &EventController{}
	c.Update(e, 0.016)
	if c.Pitch > 89 {
		t.Errorf("pitch %v escaped the clamp", c.Pitch)
	}
}

func TestFlightCameraProjectionFlipsY(t *testing.T) {
	flipped := NewFlightCamera(linmath.Vec3{})
	flipped.SetProjection(45, 16.0/9.0, 0.1, 100)

	straight := NewFlightCamera(linmath.Vec3{})
	straight.FlipY = false
	straight.SetProjection(45, 16.0/9.0, 0.1, 100)

	var p1, p2 linmath.Mat4x4
	flipped.ProjMatrix(&p1)
	straight.ProjMatrix(&p2)
	if !almostEqual(p1[1][1], -p2[1][1]) {
		t.Errorf("flipped [1][1]=%v, straight [1][1]=%v, want negated", p1[1][1], p2[1][1])
	}
}

func TestCrossAndNormalize(t *testing.T) {
	up := cross(linmath.Vec3{1, 0, 0}, linmath.Vec3{0, 1, 0})
	if !almostEqual(up[2], 1) {
		t.Errorf("x cross y = %v, want z", up)
	}

	v := linmath.Vec3{3, 0, 4}
	normalize(&v)
	if !almostEqual(v[0], 0.6) || !almostEqual(v[2], 0.8) {
		t.Errorf("normalized = %v, want {0.6 0 0.8}", v)
	}
}
