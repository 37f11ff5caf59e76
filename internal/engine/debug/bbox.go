// Package debug generates line geometry for visualizing the collision world
// and the character's probes.
package debug

import "github.com/Faultbox/locomotion/pkg/math"

// Color is an RGB color.
type Color [3]float32

// Vertex is a colored point, laid out as [x, y, z, r, g, b].
type Vertex struct {
	X, Y, Z float32
	R, G, B float32
}

// Lines accumulates line-list vertices, two per segment.
type Lines []Vertex

// Segment adds a segment from a to b.
func (l *Lines) Segment(a, b math.Vec3, c Color) {
	*l = append(*l,
		Vertex{a.X, a.Y, a.Z, c[0], c[1], c[2]},
		Vertex{b.X, b.Y, b.Z, c[0], c[1], c[2]},
	)
}

// Ray adds a segment from origin along dir scaled by length.
func (l *Lines) Ray(origin, dir math.Vec3, length float32, c Color) {
	l.Segment(origin, origin.Add(dir.Scale(length)), c)
}

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// Box adds the 12 edges of an axis-aligned box.
func (l *Lines) Box(lo, hi math.Vec3, c Color) {
	corner := func(x, y, z bool) math.Vec3 {
		p := lo
		if x {
			p.X = hi.X
		}
		if y {
			p.Y = hi.Y
		}
		if z {
			p.Z = hi.Z
		}
		return p
	}

	for _, y := range []bool{false, true} {
		// Bottom and top faces
		l.Segment(corner(false, y, false), corner(true, y, false), c)
		l.Segment(corner(true, y, false), corner(true, y, true), c)
		l.Segment(corner(true, y, true), corner(false, y, true), c)
		l.Segment(corner(false, y, true), corner(false, y, false), c)
	}
	// Vertical edges
	l.Segment(corner(false, false, false), corner(false, true, false), c)
	l.Segment(corner(true, false, false), corner(true, true, false), c)
	l.Segment(corner(true, false, true), corner(true, true, true), c)
	l.Segment(corner(false, false, true), corner(false, true, true), c)
}

// Triangle adds the three edges of a triangle.
func (l *Lines) Triangle(a, b, c math.Vec3, col Color) {
	l.Segment(a, b, col)
	l.Segment(b, c, col)
	l.Segment(c, a, col)
}
