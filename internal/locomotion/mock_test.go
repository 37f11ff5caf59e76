package locomotion

import "github.com/Faultbox/locomotion/pkg/math"

// mockWorld answers queries from fixed results.
type mockWorld struct {
	sphere  bool
	capsule bool
	cast    func(origin, dir math.Vec3) (Hit, bool)

	capsuleCalls int
}

func (w *mockWorld) CheckSphere(math.Vec3, float32, LayerMask) bool { return w.sphere }

func (w *mockWorld) CheckCapsule(math.Vec3, math.Vec3, float32, LayerMask) bool {
	w.capsuleCalls++
	return w.capsule
}

func (w *mockWorld) SphereCast(origin math.Vec3, _ float32, dir math.Vec3, _ float32, _ LayerMask) (Hit, bool) {
	if w.cast == nil {
		return Hit{}, false
	}
	return w.cast(origin, dir)
}

func (w *mockWorld) Raycast(math.Vec3, math.Vec3, float32, LayerMask) (Hit, bool) {
	return Hit{}, false
}

// mockBody moves freely and reports a fixed contact flag.
type mockBody struct {
	pos      math.Vec3
	rot      math.Quat
	vel      math.Vec3
	grounded bool
	height   float32
	center   math.Vec3
	step     float32
	moves    int
}

func newMockBody() *mockBody {
	return &mockBody{rot: math.QuatIdentity(), height: 1.8, center: math.Vec3{Y: 0.9}}
}

func (b *mockBody) Position() math.Vec3     { return b.pos }
func (b *mockBody) Rotation() math.Quat     { return b.rot }
func (b *mockBody) SetRotation(q math.Quat) { b.rot = q }
func (b *mockBody) Velocity() math.Vec3     { return b.vel }
func (b *mockBody) Grounded() bool          { return b.grounded }
func (b *mockBody) Radius() float32         { return 0.35 }
func (b *mockBody) Height() float32         { return b.height }
func (b *mockBody) Center() math.Vec3       { return b.center }
func (b *mockBody) SetHeight(h float32)     { b.height = h }
func (b *mockBody) SetCenter(c math.Vec3)   { b.center = c }
func (b *mockBody) StepOffset() float32     { return b.step }
func (b *mockBody) SetStepOffset(o float32) { b.step = o }

func (b *mockBody) Move(delta math.Vec3, dt float32) {
	b.pos = b.pos.Add(delta)
	b.vel = delta.Scale(1 / dt)
	b.moves++
}

// mockCamera looks along a fixed yaw.
type mockCamera struct {
	yaw float32
}

func (c mockCamera) Forward() math.Vec3 { return math.QuatFromYaw(c.yaw).Forward() }
func (c mockCamera) Right() math.Vec3   { return math.QuatFromYaw(c.yaw).RightAxis() }

func approx(a, b, tol float32) bool {
	return abs(a-b) <= tol
}
