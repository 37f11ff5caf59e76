// Package collision is a small kinematic collision world: static boxes and
// one-sided triangles, sphere and capsule queries, and a capsule body that
// slides along what it hits. It implements the locomotion physics contract.
package collision

import (
	"github.com/Faultbox/locomotion/internal/locomotion"
	"github.com/Faultbox/locomotion/pkg/math"
)

const (
	// castStepFraction is the sphere cast march step as a fraction of the radius.
	castStepFraction = 0.25
	minCastStep      = 0.01
	refineIterations = 16

	groundProbeHeight = 1000
)

// Shape is the collider kind.
type Shape uint8

// Collider kinds.
const (
	ShapeBox Shape = iota
	ShapeTriangle
)

// Collider is one static piece of geometry.
type Collider struct {
	Shape    Shape
	Layer    uint8
	Box      AABB
	Triangle Triangle
}

func (c *Collider) closest(p math.Vec3) (point, normal math.Vec3, dist float32) {
	if c.Shape == ShapeTriangle {
		return c.Triangle.closest(p)
	}
	return c.Box.closest(p)
}

// overlap is the distance used by CheckSphere. Boxes report their signed
// distance; triangles ignore which side p is on.
func (c *Collider) overlap(p math.Vec3) float32 {
	if c.Shape == ShapeTriangle {
		return c.Triangle.distance(p)
	}
	_, _, d := c.Box.closest(p)
	return d
}

func (c *Collider) raycast(r Ray) (float32, math.Vec3, bool) {
	if c.Shape == ShapeTriangle {
		t, ok := r.IntersectTriangle(c.Triangle)
		if !ok {
			return 0, math.Vec3{}, false
		}
		n := c.Triangle.Normal
		if n.Dot(r.Direction) > 0 {
			n = n.Neg()
		}
		return t, n, true
	}
	t, ok := r.IntersectAABB(c.Box)
	if !ok {
		return 0, math.Vec3{}, false
	}
	_, n, _ := c.Box.closest(r.At(t))
	return t, faceNormal(c.Box, r.At(t), n), true
}

// faceNormal snaps a normal at a box surface point to the face it lies on.
func faceNormal(b AABB, p, fallback math.Vec3) math.Vec3 {
	const eps = 1e-4
	switch {
	case p.Y >= b.Max.Y-eps:
		return math.Up
	case p.Y <= b.Min.Y+eps:
		return math.Down
	case p.X >= b.Max.X-eps:
		return math.Vec3{X: 1}
	case p.X <= b.Min.X+eps:
		return math.Vec3{X: -1}
	case p.Z >= b.Max.Z-eps:
		return math.Vec3{Z: 1}
	case p.Z <= b.Min.Z+eps:
		return math.Vec3{Z: -1}
	}
	return fallback
}

// World holds the static colliders. It is not safe for concurrent use.
type World struct {
	colliders []Collider
}

// NewWorld returns an empty world.
func NewWorld() *World {
	return &World{}
}

// AddBox adds a solid box and returns its index.
func (w *World) AddBox(a, b math.Vec3, layer uint8) int {
	w.colliders = append(w.colliders, Collider{Shape: ShapeBox, Layer: layer, Box: NewAABB(a, b)})
	return len(w.colliders) - 1
}

// AddTriangle adds a one-sided triangle and returns its index.
func (w *World) AddTriangle(a, b, c math.Vec3, layer uint8) int {
	w.colliders = append(w.colliders, Collider{Shape: ShapeTriangle, Layer: layer, Triangle: NewTriangle(a, b, c)})
	return len(w.colliders) - 1
}

// AddRamp adds an inclined quad that starts at base and rises by height
// over length along +Z. base is the middle of the low edge.
func (w *World) AddRamp(base math.Vec3, width, length, height float32, layer uint8) {
	half := width / 2
	a := base.Add(math.Vec3{X: -half})
	b := base.Add(math.Vec3{X: half})
	c := base.Add(math.Vec3{X: half, Y: height, Z: length})
	d := base.Add(math.Vec3{X: -half, Y: height, Z: length})
	// Counter-clockwise seen from above.
	w.AddTriangle(a, d, c, layer)
	w.AddTriangle(a, c, b, layer)
}

// Remove deletes the collider at index i. Later indices shift down.
func (w *World) Remove(i int) {
	if i < 0 || i >= len(w.colliders) {
		return
	}
	w.colliders = append(w.colliders[:i], w.colliders[i+1:]...)
}

// Colliders returns the colliders. The slice must not be modified.
func (w *World) Colliders() []Collider {
	return w.colliders
}

// CheckSphere reports whether a sphere overlaps any collider on mask.
func (w *World) CheckSphere(center math.Vec3, radius float32, mask locomotion.LayerMask) bool {
	for i := range w.colliders {
		c := &w.colliders[i]
		if !mask.Contains(c.Layer) {
			continue
		}
		if c.overlap(center) < radius {
			return true
		}
	}
	return false
}

// CheckCapsule reports whether the capsule swept between a and b overlaps
// any collider on mask.
func (w *World) CheckCapsule(a, b math.Vec3, radius float32, mask locomotion.LayerMask) bool {
	for _, p := range segmentSamples(a, b, radius) {
		if w.CheckSphere(p, radius, mask) {
			return true
		}
	}
	return false
}

// SphereCast sweeps a sphere along dir and returns the first surface it
// touches. Colliders the sphere overlaps at origin are ignored.
func (w *World) SphereCast(origin math.Vec3, radius float32, dir math.Vec3, maxDist float32, mask locomotion.LayerMask) (locomotion.Hit, bool) {
	dir = dir.Normalize()
	if dir.LengthSq() == 0 || maxDist <= 0 {
		return locomotion.Hit{}, false
	}

	var candidates []*Collider
	for i := range w.colliders {
		c := &w.colliders[i]
		if !mask.Contains(c.Layer) {
			continue
		}
		if _, _, d := c.closest(origin); d < radius {
			continue
		}
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		return locomotion.Hit{}, false
	}

	touching := func(t float32) bool {
		p := origin.Add(dir.Scale(t))
		for _, c := range candidates {
			if _, _, d := c.closest(p); d < radius {
				return true
			}
		}
		return false
	}

	step := radius * castStepFraction
	if step < minCastStep {
		step = minCastStep
	}

	var prev float32
	for t := step; ; t += step {
		if t > maxDist {
			t = maxDist
		}
		if touching(t) {
			return refineCast(origin, dir, prev, t, candidates, touching), true
		}
		if t >= maxDist {
			return locomotion.Hit{}, false
		}
		prev = t
	}
}

// refineCast bisects between a free distance lo and a touching distance hi.
func refineCast(origin, dir math.Vec3, lo, hi float32, candidates []*Collider, touching func(float32) bool) locomotion.Hit {
	for i := 0; i < refineIterations; i++ {
		mid := (lo + hi) / 2
		if touching(mid) {
			hi = mid
		} else {
			lo = mid
		}
	}

	center := origin.Add(dir.Scale(lo))
	hit := locomotion.Hit{Distance: lo}
	best := noContact
	for _, c := range candidates {
		point, normal, d := c.closest(center)
		if d < best {
			best = d
			hit.Point = point
			hit.Normal = normal
		}
	}
	return hit
}

// Raycast returns the nearest surface hit by the ray within maxDist.
func (w *World) Raycast(origin, dir math.Vec3, maxDist float32, mask locomotion.LayerMask) (locomotion.Hit, bool) {
	r := NewRay(origin, dir)
	if r.Direction.LengthSq() == 0 {
		return locomotion.Hit{}, false
	}

	var best locomotion.Hit
	found := false
	for i := range w.colliders {
		c := &w.colliders[i]
		if !mask.Contains(c.Layer) {
			continue
		}
		t, n, ok := c.raycast(r)
		if !ok || t > maxDist {
			continue
		}
		if !found || t < best.Distance {
			best = locomotion.Hit{Point: r.At(t), Normal: n, Distance: t}
			found = true
		}
	}
	return best, found
}

// GroundHeight returns the height of the highest surface under (x, z).
func (w *World) GroundHeight(x, z float32) (float32, bool) {
	hit, ok := w.Raycast(math.Vec3{X: x, Y: groundProbeHeight, Z: z}, math.Down, 2*groundProbeHeight, locomotion.AllLayers)
	if !ok {
		return 0, false
	}
	return hit.Point.Y, true
}
