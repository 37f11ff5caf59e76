package collision

import (
	gomath "math"

	"github.com/chewxy/math32"

	"github.com/Faultbox/locomotion/pkg/math"
)

// noContact is the distance reported when a shape cannot touch a point.
const noContact = float32(gomath.MaxFloat32)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// NewAABB creates an AABB from two corners in any order.
func NewAABB(a, b math.Vec3) AABB {
	box := AABB{Min: a, Max: b}
	if box.Min.X > box.Max.X {
		box.Min.X, box.Max.X = box.Max.X, box.Min.X
	}
	if box.Min.Y > box.Max.Y {
		box.Min.Y, box.Max.Y = box.Max.Y, box.Min.Y
	}
	if box.Min.Z > box.Max.Z {
		box.Min.Z, box.Max.Z = box.Max.Z, box.Min.Z
	}
	return box
}

// Center returns the midpoint of the box.
func (b AABB) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Contains reports whether p is inside or on the box.
func (b AABB) Contains(p math.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// closest returns the surface point nearest to c, the outward normal at
// that point and the signed distance from c. The distance is negative when
// c is inside the box.
func (b AABB) closest(c math.Vec3) (point, normal math.Vec3, dist float32) {
	point = math.Vec3{
		X: math.Clamp(c.X, b.Min.X, b.Max.X),
		Y: math.Clamp(c.Y, b.Min.Y, b.Max.Y),
		Z: math.Clamp(c.Z, b.Min.Z, b.Max.Z),
	}
	diff := c.Sub(point)
	if l := diff.Length(); l > 1e-6 {
		return point, diff.Scale(1 / l), l
	}

	// Inside: leave through the nearest face.
	faces := [6]struct {
		depth  float32
		normal math.Vec3
	}{
		{c.X - b.Min.X, math.Vec3{X: -1}},
		{b.Max.X - c.X, math.Vec3{X: 1}},
		{c.Y - b.Min.Y, math.Vec3{Y: -1}},
		{b.Max.Y - c.Y, math.Vec3{Y: 1}},
		{c.Z - b.Min.Z, math.Vec3{Z: -1}},
		{b.Max.Z - c.Z, math.Vec3{Z: 1}},
	}
	best := 0
	for i := 1; i < len(faces); i++ {
		if faces[i].depth < faces[best].depth {
			best = i
		}
	}
	f := faces[best]
	return c.Add(f.normal.Scale(f.depth)), f.normal, -f.depth
}

// Triangle is a one-sided triangle. Its front face is counter-clockwise
// when seen from the side Normal points to.
type Triangle struct {
	A, B, C math.Vec3
	Normal  math.Vec3
}

// NewTriangle computes the face normal from the winding.
func NewTriangle(a, b, c math.Vec3) Triangle {
	return Triangle{A: a, B: b, C: c, Normal: b.Sub(a).Cross(c.Sub(a)).Normalize()}
}

// closest returns the point of the triangle nearest to c. Points behind the
// face never touch it.
func (t Triangle) closest(c math.Vec3) (point, normal math.Vec3, dist float32) {
	if c.Sub(t.A).Dot(t.Normal) < 0 {
		return math.Vec3{}, math.Vec3{}, noContact
	}
	point = closestOnTriangle(c, t.A, t.B, t.C)
	diff := c.Sub(point)
	l := diff.Length()
	if l < 1e-6 {
		return point, t.Normal, 0
	}
	return point, diff.Scale(1 / l), l
}

// distance is the unsigned distance from c to the triangle. Overlap tests
// use it so a sphere straddling the plane touches from either side.
func (t Triangle) distance(c math.Vec3) float32 {
	return c.Distance(closestOnTriangle(c, t.A, t.B, t.C))
}

// closestOnTriangle finds the nearest point by Voronoi region.
func closestOnTriangle(p, a, b, c math.Vec3) math.Vec3 {
	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := p.Sub(a)
	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		return a.Add(ab.Scale(d1 / (d1 - d3)))
	}

	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		return a.Add(ac.Scale(d2 / (d2 - d6)))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		return b.Add(c.Sub(b).Scale((d4 - d3) / ((d4 - d3) + (d5 - d6))))
	}

	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return a.Add(ab.Scale(v)).Add(ac.Scale(w))
}

// segmentSamples returns sphere centers covering the segment a-b at a
// spacing of at most radius.
func segmentSamples(a, b math.Vec3, radius float32) []math.Vec3 {
	length := a.Distance(b)
	n := 1
	if radius > 0 {
		n = int(math32.Ceil(length/radius)) + 1
	}
	if n < 2 {
		n = 2
	}
	out := make([]math.Vec3, n)
	for i := range out {
		out[i] = a.Lerp(b, float32(i)/float32(n-1))
	}
	return out
}
