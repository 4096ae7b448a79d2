package workflow

import (
	"math"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/linmath"
)

// FlightCamera is a free-flying first person camera: WASD moves, the cursor
// turns. Angles are kept in degrees.
type FlightCamera struct {
	Position linmath.Vec3
	WorldUp  linmath.Vec3

	Yaw   float32
	Pitch float32

	MoveSpeed   float32
	RotateSpeed float32

	// FlipY negates the projection's Y axis for Vulkan's inverted clip
	// space. On by default.
	FlipY bool

	front linmath.Vec3
	proj  linmath.Mat4x4
}

// NewFlightCamera places the camera at position looking down negative Z.
func NewFlightCamera(position linmath.Vec3) *FlightCamera {
	c := &FlightCamera{
		Position:    position,
		WorldUp:     linmath.Vec3{0, 1, 0},
		Yaw:         -90,
		MoveSpeed:   2.5,
		RotateSpeed: 8,
		FlipY:       true,
	}
	c.updateFront()
	return c
}

// SetProjection stores a perspective projection. fovy is in degrees.
func (c *FlightCamera) SetProjection(fovy, aspect, near, far float32) {
	c.proj.Perspective(fovy*math.Pi/180, aspect, near, far)
	if c.FlipY {
		c.proj[1][1] *= -1
	}
}

// Update consumes the frame's input: held movement keys and cursor motion.
func (c *FlightCamera) Update(events *EventController, delta float32) {
	velocity := c.MoveSpeed * delta
	if events.IsKeyHeld(glfw.KeyW) {
		c.step(c.front, velocity)
	}
	if events.IsKeyHeld(glfw.KeyS) {
		c.step(c.front, -velocity)
	}
	right := cross(c.front, c.WorldUp)
	normalize(&right)
	if events.IsKeyHeld(glfw.KeyD) {
		c.step(right, velocity)
	}
	if events.IsKeyHeld(glfw.KeyA) {
		c.step(right, -velocity)
	}
	if events.IsKeyHeld(glfw.KeyE) {
		c.step(c.WorldUp, velocity)
	}
	if events.IsKeyHeld(glfw.KeyQ) {
		c.step(c.WorldUp, -velocity)
	}

	dx, dy := events.CursorDelta()
	c.Yaw += dx * c.RotateSpeed * delta
	c.Pitch -= dy * c.RotateSpeed * delta
	if c.Pitch > 89 {
		c.Pitch = 89
	}
	if c.Pitch < -89 {
		c.Pitch = -89
	}
	c.updateFront()
}

func (c *FlightCamera) step(dir linmath.Vec3, amount float32) {
	c.Position[0] += dir[0] * amount
	c.Position[1] += dir[1] * amount
	c.Position[2] += dir[2] * amount
}

func (c *FlightCamera) updateFront() {
	yaw := float64(c.Yaw) * math.Pi / 180
	pitch := float64(c.Pitch) * math.Pi / 180
	c.front = linmath.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}
	normalize(&c.front)
}

// ViewMatrix writes the camera's view matrix into out.
func (c *FlightCamera) ViewMatrix(out *linmath.Mat4x4) {
	center := linmath.Vec3{
		c.Position[0] + c.front[0],
		c.Position[1] + c.front[1],
		c.Position[2] + c.front[2],
	}
	out.LookAt(&c.Position, &center, &c.WorldUp)
}

// ProjMatrix writes the stored projection matrix into out.
func (c *FlightCamera) ProjMatrix(out *linmath.Mat4x4) {
	*out = c.proj
}

func cross(a, b linmath.Vec3) linmath.Vec3 {
	return linmath.Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func normalize(v *linmath.Vec3) {
	length := float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
	if length == 0 {
		return
	}
	v[0] /= length
	v[1] /= length
	v[2] /= length
}
