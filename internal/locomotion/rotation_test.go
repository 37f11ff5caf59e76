package locomotion

import (
	"testing"

	"github.com/Faultbox/locomotion/pkg/math"
)

func TestRotator_IdleTurnIsMonotonic(t *testing.T) {
	p := DefaultParams().Rotation
	r := NewRotator(p)
	body := newMockBody()
	cam := mockCamera{yaw: 120}

	r.Update(tick, body, cam, true, true)
	if !r.Turning() {
		t.Fatal("120 degree mismatch above tolerance should start a turn")
	}

	prev := r.Mismatch()
	maxTicks := int(p.TimeToTarget/tick) + 2
	done := false
	for i := 0; i < maxTicks; i++ {
		r.Update(tick, body, cam, true, true)
		m := r.Mismatch()
		if m < 0 {
			t.Fatalf("tick %d: overshoot, mismatch %v", i, m)
		}
		if m > prev {
			t.Fatalf("tick %d: mismatch grew from %v to %v", i, prev, m)
		}
		prev = m
		if m == 0 {
			done = true
			break
		}
	}
	if !done {
		t.Fatalf("mismatch %v did not reach 0 within the countdown", prev)
	}
	if r.Turning() {
		t.Error("countdown should be finished")
	}
}

func TestRotator_IdleWithinTolerance(t *testing.T) {
	r := NewRotator(DefaultParams().Rotation)
	body := newMockBody()
	cam := mockCamera{yaw: 60}

	for i := 0; i < 60; i++ {
		r.Update(tick, body, cam, true, true)
	}
	if body.rot != math.QuatIdentity() {
		t.Errorf("body rotated to %+v inside the tolerance", body.rot)
	}
	if !approx(r.Mismatch(), 60, 0.01) {
		t.Errorf("mismatch = %v, want 60", r.Mismatch())
	}
}

func TestRotator_CounterClockwise(t *testing.T) {
	r := NewRotator(DefaultParams().Rotation)
	body := newMockBody()
	cam := mockCamera{yaw: -120}

	r.Update(tick, body, cam, true, true)
	if r.Mismatch() >= 0 {
		t.Fatalf("mismatch = %v, want negative for a counter-clockwise target", r.Mismatch())
	}
	for i := 0; i < 60; i++ {
		r.Update(tick, body, cam, true, true)
	}
	if r.Mismatch() != 0 {
		t.Errorf("mismatch = %v, want 0", r.Mismatch())
	}
}

func TestRotator_MovingFollowsCamera(t *testing.T) {
	p := DefaultParams().Rotation
	r := NewRotator(p)
	body := newMockBody()
	cam := mockCamera{yaw: 30}

	r.Update(tick, body, cam, false, true)
	// One slerp step of speed*dt of the way.
	want := 30 * (1 - p.Speed*tick)
	if !approx(r.Mismatch(), want, 0.05) {
		t.Errorf("mismatch after one tick = %v, want %v", r.Mismatch(), want)
	}

	r.Update(tick, body, cam, false, false)
	if !approx(r.Mismatch(), want, 1e-3) {
		t.Errorf("untracked tick changed mismatch to %v", r.Mismatch())
	}
}

func TestRotator_MovingKeepsIdleCountdown(t *testing.T) {
	p := DefaultParams().Rotation
	r := NewRotator(p)
	body := newMockBody()
	cam := mockCamera{yaw: 120}

	r.Update(tick, body, cam, true, true)
	if !r.Turning() {
		t.Fatal("idle turn should be armed")
	}
	before := r.Mismatch()
	timer := r.Timer()

	r.Update(tick, body, cam, false, true)
	// The countdown factor dt/remaining turns far less than speed*dt.
	want := before * (1 - tick/timer)
	if !approx(r.Mismatch(), want, 0.5) {
		t.Errorf("mismatch = %v, want %v from the countdown", r.Mismatch(), want)
	}
	if !approx(r.Timer(), timer-tick, 1e-5) {
		t.Errorf("timer = %v, want %v", r.Timer(), timer-tick)
	}

	for i := 0; i < int(timer/tick)+1; i++ {
		r.Update(tick, body, cam, false, true)
	}
	if r.Mismatch() != 0 {
		t.Errorf("mismatch = %v, want 0 once the countdown elapses", r.Mismatch())
	}
	if r.Turning() {
		t.Error("countdown should be finished")
	}
}
