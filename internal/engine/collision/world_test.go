package collision

import (
	"testing"

	"github.com/Faultbox/locomotion/internal/locomotion"
	"github.com/Faultbox/locomotion/pkg/math"
)

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func floorWorld() *World {
	w := NewWorld()
	w.AddBox(math.Vec3{X: -50, Y: -1, Z: -50}, math.Vec3{X: 50, Y: 0, Z: 50}, 0)
	return w
}

func TestNewAABBOrdersCorners(t *testing.T) {
	box := NewAABB(math.Vec3{X: 1, Y: -1, Z: 3}, math.Vec3{X: -1, Y: 1, Z: 0})
	if box.Min != (math.Vec3{X: -1, Y: -1, Z: 0}) || box.Max != (math.Vec3{X: 1, Y: 1, Z: 3}) {
		t.Errorf("NewAABB = %+v", box)
	}
	if !box.Contains(box.Center()) {
		t.Error("box should contain its center")
	}
}

func TestRayIntersectAABB(t *testing.T) {
	box := NewAABB(math.Vec3{X: -1, Y: -1, Z: -1}, math.Vec3{X: 1, Y: 1, Z: 1})

	tests := []struct {
		name  string
		ray   Ray
		hit   bool
		wantT float32
	}{
		{"hit from outside", NewRay(math.Vec3{Z: -5}, math.Forward), true, 4},
		{"miss", NewRay(math.Vec3{X: 3, Z: -5}, math.Forward), false, 0},
		{"inside returns exit", NewRay(math.Vec3{}, math.Forward), true, 1},
		{"pointing away", NewRay(math.Vec3{Z: -5}, math.Vec3{Z: -1}), false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.ray.IntersectAABB(box)
			if ok != tt.hit {
				t.Fatalf("hit = %v, want %v", ok, tt.hit)
			}
			if ok && abs(got-tt.wantT) > 1e-5 {
				t.Errorf("t = %v, want %v", got, tt.wantT)
			}
		})
	}
}

func TestRayIntersectTriangle(t *testing.T) {
	tri := NewTriangle(math.Vec3{X: -1, Z: -1}, math.Vec3{X: 0, Z: 1}, math.Vec3{X: 1, Z: -1})
	r := NewRay(math.Vec3{Y: 2}, math.Down)
	got, ok := r.IntersectTriangle(tri)
	if !ok || abs(got-2) > 1e-5 {
		t.Errorf("IntersectTriangle = %v, %v; want 2, true", got, ok)
	}

	r = NewRay(math.Vec3{X: 5, Y: 2}, math.Down)
	if _, ok := r.IntersectTriangle(tri); ok {
		t.Error("ray beside the triangle should miss")
	}
}

func TestCheckSphere(t *testing.T) {
	w := floorWorld()
	if !w.CheckSphere(math.Vec3{Y: 0.2}, 0.35, locomotion.AllLayers) {
		t.Error("sphere dipping into the floor should overlap")
	}
	if w.CheckSphere(math.Vec3{Y: 0.5}, 0.35, locomotion.AllLayers) {
		t.Error("sphere above the floor should not overlap")
	}
	if !w.CheckSphere(math.Vec3{Y: -0.5}, 0.1, locomotion.AllLayers) {
		t.Error("sphere inside the floor should overlap")
	}
	if w.CheckSphere(math.Vec3{Y: 0.2}, 0.35, locomotion.LayerMask(1<<3)) {
		t.Error("mask without layer 0 should ignore the floor")
	}
}

func TestCheckSphereStraddlesTriangle(t *testing.T) {
	w := NewWorld()
	w.AddTriangle(math.Vec3{X: -1, Z: -1}, math.Vec3{X: 0, Z: 1}, math.Vec3{X: 1, Z: -1}, 0)

	tests := []struct {
		name   string
		center math.Vec3
		want   bool
	}{
		{"in front", math.Vec3{Y: 0.2}, true},
		{"center behind the plane", math.Vec3{Y: -0.1}, true},
		{"fully behind", math.Vec3{Y: -0.5}, false},
		{"beside", math.Vec3{X: 3, Y: -0.1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.CheckSphere(tt.center, 0.3, locomotion.AllLayers); got != tt.want {
				t.Errorf("CheckSphere(%+v) = %v, want %v", tt.center, got, tt.want)
			}
		})
	}
}

func TestCheckSphereBelowRampSurface(t *testing.T) {
	w := NewWorld()
	// 30 degrees: rises 5.77 over 10.
	w.AddRamp(math.Vec3{Z: 2}, 6, 10, 5.77, 0)

	surfaceY := float32(5) * 0.577
	for _, x := range []float32{-2, -0.5, 0, 0.5, 2} {
		center := math.Vec3{X: x, Y: surfaceY - 0.25, Z: 7}
		if !w.CheckSphere(center, 0.3, locomotion.AllLayers) {
			t.Errorf("sphere at %+v crossing the ramp face should overlap", center)
		}
	}
}

func TestCheckCapsule(t *testing.T) {
	w := floorWorld()
	w.AddBox(math.Vec3{X: -1, Y: 1.5, Z: -1}, math.Vec3{X: 1, Y: 2, Z: 1}, 0)

	if !w.CheckCapsule(math.Vec3{Y: 1}, math.Vec3{Y: 1.8}, 0.3, locomotion.AllLayers) {
		t.Error("capsule reaching into the ceiling should overlap")
	}
	if w.CheckCapsule(math.Vec3{Y: 0.5}, math.Vec3{Y: 1}, 0.3, locomotion.AllLayers) {
		t.Error("capsule below the ceiling should not overlap")
	}
}

func TestSphereCastDown(t *testing.T) {
	w := floorWorld()
	hit, ok := w.SphereCast(math.Vec3{Y: 2}, 0.5, math.Down, 5, locomotion.AllLayers)
	if !ok {
		t.Fatal("expected a hit")
	}
	if abs(hit.Distance-1.5) > 1e-3 {
		t.Errorf("distance = %v, want 1.5", hit.Distance)
	}
	if !hit.Normal.ApproxEqual(math.Up, 1e-4) {
		t.Errorf("normal = %+v, want up", hit.Normal)
	}
	if abs(hit.Point.Y) > 1e-3 {
		t.Errorf("point.Y = %v, want 0", hit.Point.Y)
	}

	if _, ok := w.SphereCast(math.Vec3{Y: 2}, 0.5, math.Down, 1, locomotion.AllLayers); ok {
		t.Error("cast shorter than the gap should miss")
	}
}

func TestSphereCastIgnoresStartOverlap(t *testing.T) {
	w := floorWorld()
	if _, ok := w.SphereCast(math.Vec3{Y: 0.1}, 0.5, math.Down, 2, locomotion.AllLayers); ok {
		t.Error("colliders overlapped at the origin must be ignored")
	}
}

func TestSphereCastRampNormal(t *testing.T) {
	w := NewWorld()
	// 1 unit up over 1 unit forward: 45 degrees.
	w.AddRamp(math.Vec3{}, 4, 4, 4, 0)

	hit, ok := w.SphereCast(math.Vec3{Y: 5, Z: 2}, 0.3, math.Down, 10, locomotion.AllLayers)
	if !ok {
		t.Fatal("expected to hit the ramp")
	}
	if got := hit.Normal.Angle(math.Up); abs(got-45) > 0.5 {
		t.Errorf("ramp angle = %v, want 45", got)
	}
	if hit.Normal.Z >= 0 {
		t.Errorf("ramp rising along +Z should face -Z, normal = %+v", hit.Normal)
	}
}

func TestRaycastNearest(t *testing.T) {
	w := floorWorld()
	w.AddBox(math.Vec3{X: -1, Y: 0, Z: -1}, math.Vec3{X: 1, Y: 1, Z: 1}, 0)

	hit, ok := w.Raycast(math.Vec3{Y: 5}, math.Down, 10, locomotion.AllLayers)
	if !ok || abs(hit.Point.Y-1) > 1e-4 {
		t.Fatalf("Raycast = %+v, %v; want the top of the crate", hit, ok)
	}
	if !hit.Normal.ApproxEqual(math.Up, 1e-4) {
		t.Errorf("normal = %+v, want up", hit.Normal)
	}
}

func TestGroundHeight(t *testing.T) {
	w := floorWorld()
	w.AddBox(math.Vec3{X: 2, Y: 0, Z: 2}, math.Vec3{X: 3, Y: 0.5, Z: 3}, 0)

	if h, ok := w.GroundHeight(0, 0); !ok || abs(h) > 1e-4 {
		t.Errorf("GroundHeight(0, 0) = %v, %v; want 0", h, ok)
	}
	if h, ok := w.GroundHeight(2.5, 2.5); !ok || abs(h-0.5) > 1e-4 {
		t.Errorf("GroundHeight on crate = %v, %v; want 0.5", h, ok)
	}
	if _, ok := w.GroundHeight(100, 100); ok {
		t.Error("no ground outside the floor")
	}
}

func TestRemove(t *testing.T) {
	w := floorWorld()
	i := w.AddBox(math.Vec3{Y: 1}, math.Vec3{X: 1, Y: 2, Z: 1}, 0)
	w.Remove(i)
	if len(w.Colliders()) != 1 {
		t.Errorf("colliders = %d, want 1", len(w.Colliders()))
	}
	w.Remove(10)
}
