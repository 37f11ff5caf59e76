package collision

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/locomotion/internal/locomotion"
	"github.com/Faultbox/locomotion/pkg/math"
)

const (
	// belowNormalY is the minimum normal Y of a contact that counts as below.
	belowNormalY = 0.05
	// substepFraction bounds each substep to this fraction of the radius.
	substepFraction   = 0.5
	maxSubsteps       = 32
	resolveIterations = 4
	skin              = 1e-4

	// faceContactDot is how close an edge contact normal must be to its
	// triangle's face normal to resolve as a face contact. Edges shared by
	// coplanar triangles then push along the face, not sideways.
	faceContactDot = 0.9

	defaultSlopeLimit = 45
)

// Body is a kinematic capsule. Position is the bottom of the capsule when
// Center sits at half the height.
type Body struct {
	world *World
	mask  locomotion.LayerMask

	position math.Vec3
	rotation math.Quat
	velocity math.Vec3
	grounded bool

	radius     float32
	height     float32
	center     math.Vec3
	stepOffset float32
	slopeLimit float32
}

// NewBody places a capsule in world with its base at position.
func NewBody(world *World, position math.Vec3, radius, height float32) *Body {
	return &Body{
		world:      world,
		mask:       locomotion.AllLayers,
		position:   position,
		rotation:   math.QuatIdentity(),
		radius:     radius,
		height:     height,
		center:     math.Up.Scale(height / 2),
		slopeLimit: defaultSlopeLimit,
	}
}

// Position returns the base of the body.
func (b *Body) Position() math.Vec3 { return b.position }

// SetPosition teleports the body and clears its velocity.
func (b *Body) SetPosition(p math.Vec3) {
	b.position = p
	b.velocity = math.Vec3{}
	b.grounded = false
}

func (b *Body) Rotation() math.Quat       { return b.rotation }
func (b *Body) SetRotation(q math.Quat)   { b.rotation = q.Normalize() }
func (b *Body) Velocity() math.Vec3       { return b.velocity }
func (b *Body) Grounded() bool            { return b.grounded }
func (b *Body) Radius() float32           { return b.radius }
func (b *Body) Height() float32           { return b.height }
func (b *Body) Center() math.Vec3         { return b.center }
func (b *Body) SetHeight(h float32)       { b.height = h }
func (b *Body) SetCenter(c math.Vec3)     { b.center = c }
func (b *Body) StepOffset() float32       { return b.stepOffset }
func (b *Body) SetStepOffset(o float32)   { b.stepOffset = o }
func (b *Body) SlopeLimit() float32       { return b.slopeLimit }
func (b *Body) SetSlopeLimit(deg float32) { b.slopeLimit = deg }

// SetMask selects the layers the body collides with.
func (b *Body) SetMask(mask locomotion.LayerMask) { b.mask = mask }

// Segment returns the bottom and top sphere centers of the capsule at its
// current position.
func (b *Body) Segment() (bottom, top math.Vec3) {
	return b.segmentAt(b.position)
}

func (b *Body) segmentAt(pos math.Vec3) (bottom, top math.Vec3) {
	half := b.height/2 - b.radius
	if half < 0 {
		half = 0
	}
	c := pos.Add(b.center)
	return c.Sub(math.Up.Scale(half)), c.Add(math.Up.Scale(half))
}

// Move displaces the body by delta, sliding along anything it hits and
// stepping onto boxes up to the step offset. Velocity becomes the achieved
// displacement over dt.
func (b *Body) Move(delta math.Vec3, dt float32) {
	start := b.position
	b.grounded = false

	n := 1
	if limit := b.radius * substepFraction; limit > 0 {
		n = int(math32.Ceil(delta.Length() / limit))
	}
	if n < 1 {
		n = 1
	}
	if n > maxSubsteps {
		n = maxSubsteps
	}
	step := delta.Scale(1 / float32(n))

	for i := 0; i < n; i++ {
		pos, normals := b.depenetrate(b.position.Add(step))
		for _, nrm := range normals {
			if nrm.Y > belowNormalY {
				b.grounded = true
			}
			if d := step.Dot(nrm); d < 0 {
				step = step.Sub(nrm.Scale(d))
			}
		}
		b.position = pos
	}

	if dt > 0 {
		b.velocity = b.position.Sub(start).Scale(1 / dt)
	}
}

// steppable reports whether c is a box whose top is within the step offset
// of the feet at pos.
func (b *Body) steppable(c *Collider, pos math.Vec3) bool {
	if c.Shape != ShapeBox || b.stepOffset <= 0 {
		return false
	}
	rise := c.Box.Max.Y - pos.Y
	return rise <= b.stepOffset
}

// stepUp returns the vertical push that rests sample on top of box.
func (b *Body) stepUp(box AABB, sample math.Vec3) math.Vec3 {
	top := math.Vec3{
		X: math.Clamp(sample.X, box.Min.X, box.Max.X),
		Y: box.Max.Y,
		Z: math.Clamp(sample.Z, box.Min.Z, box.Max.Z),
	}
	horiz := sample.Sub(top).Flat().Length()
	if horiz >= b.radius {
		return math.Vec3{}
	}
	needY := top.Y + math32.Sqrt(b.radius*b.radius-horiz*horiz) + skin
	if needY <= sample.Y {
		return math.Vec3{}
	}
	return math.Up.Scale(needY - sample.Y)
}

// walkable reports whether a contact normal is within the slope limit.
func (b *Body) walkable(n math.Vec3) bool {
	return n.Y > belowNormalY && n.Angle(math.Up) <= b.slopeLimit
}

// depenetrate pushes pos out of every collider the capsule overlaps and
// returns the contact normals. Walkable contacts and boxes low enough to step
// onto resolve straight up, so the body neither creeps down gentle slopes nor
// stalls at a curb.
func (b *Body) depenetrate(pos math.Vec3) (math.Vec3, []math.Vec3) {
	var normals []math.Vec3
	for iter := 0; iter < resolveIterations; iter++ {
		moved := false
		bottom, top := b.segmentAt(math.Vec3{})
		for _, offset := range segmentSamples(bottom, top, b.radius) {
			for i := range b.world.colliders {
				c := &b.world.colliders[i]
				if !b.mask.Contains(c.Layer) {
					continue
				}
				sample := pos.Add(offset)
				_, n, d := c.closest(sample)
				if d >= b.radius {
					continue
				}
				if c.Shape == ShapeTriangle && n.Dot(c.Triangle.Normal) >= faceContactDot {
					n = c.Triangle.Normal
				}

				var push math.Vec3
				switch {
				case b.steppable(c, pos):
					push = b.stepUp(c.Box, sample)
					n = math.Up
				case b.walkable(n):
					push = math.Up.Scale((b.radius - d + skin) / n.Y)
				default:
					push = n.Scale(b.radius - d + skin)
				}
				if push.LengthSq() == 0 {
					continue
				}
				pos = pos.Add(push)
				normals = append(normals, n)
				moved = true
			}
		}
		if !moved {
			break
		}
	}
	return pos, normals
}

var _ locomotion.Body = (*Body)(nil)
var _ locomotion.World = (*World)(nil)
