package scenario

import (
	"github.com/Faultbox/locomotion/internal/engine/collision"
	"github.com/Faultbox/locomotion/pkg/math"
)

// Box is a solid axis-aligned block.
type Box struct {
	Min   math.Vec3 `yaml:"min"`
	Max   math.Vec3 `yaml:"max"`
	Layer uint8     `yaml:"layer"`
}

// Ramp is a slope rising along +Z. Base is the middle of its low edge.
type Ramp struct {
	Base   math.Vec3 `yaml:"base"`
	Width  float32   `yaml:"width"`
	Length float32   `yaml:"length"`
	Height float32   `yaml:"height"`
	Layer  uint8     `yaml:"layer"`
}

// Scene is the static geometry a scenario runs in.
type Scene struct {
	Boxes []Box  `yaml:"boxes"`
	Ramps []Ramp `yaml:"ramps"`
}

// Empty reports whether the scene has no geometry.
func (s Scene) Empty() bool {
	return len(s.Boxes) == 0 && len(s.Ramps) == 0
}

// Build adds the scene's colliders to w.
func (s Scene) Build(w *collision.World) {
	for _, b := range s.Boxes {
		w.AddBox(b.Min, b.Max, b.Layer)
	}
	for _, r := range s.Ramps {
		w.AddRamp(r.Base, r.Width, r.Length, r.Height, r.Layer)
	}
}

// Bounds returns the box enclosing all geometry.
func (s Scene) Bounds() (lo, hi math.Vec3) {
	first := true
	grow := func(a, b math.Vec3) {
		box := collision.NewAABB(a, b)
		if first {
			lo, hi = box.Min, box.Max
			first = false
			return
		}
		lo = math.Vec3{X: min(lo.X, box.Min.X), Y: min(lo.Y, box.Min.Y), Z: min(lo.Z, box.Min.Z)}
		hi = math.Vec3{X: max(hi.X, box.Max.X), Y: max(hi.Y, box.Max.Y), Z: max(hi.Z, box.Max.Z)}
	}
	for _, b := range s.Boxes {
		grow(b.Min, b.Max)
	}
	for _, r := range s.Ramps {
		half := r.Width / 2
		grow(r.Base.Add(math.Vec3{X: -half}), r.Base.Add(math.Vec3{X: half, Y: r.Height, Z: r.Length}))
	}
	return lo, hi
}

// Course is the built-in test course: a floor with a step, a low ledge, a
// walkable ramp, a ramp too steep to climb, a raised platform and a crouch
// tunnel.
func Course() Scene {
	return Scene{
		Boxes: []Box{
			// Floor, top at y = 0.
			{Min: math.Vec3{X: -30, Y: -1, Z: -30}, Max: math.Vec3{X: 30, Y: 0, Z: 30}},
			// Step the character walks up.
			{Min: math.Vec3{X: -6, Y: 0, Z: 4}, Max: math.Vec3{X: -3, Y: 0.2, Z: 7}},
			// Ledge that needs a jump.
			{Min: math.Vec3{X: -6, Y: 0, Z: 9}, Max: math.Vec3{X: -3, Y: 0.6, Z: 12}},
			// Platform at the top of the gentle ramp.
			{Min: math.Vec3{X: 3, Y: 0, Z: 10}, Max: math.Vec3{X: 7, Y: 3, Z: 16}},
			// Crouch tunnel: two walls and a roof at y = 1.5.
			{Min: math.Vec3{X: 10, Y: 0, Z: 0}, Max: math.Vec3{X: 10.5, Y: 2, Z: 8}},
			{Min: math.Vec3{X: 12.5, Y: 0, Z: 0}, Max: math.Vec3{X: 13, Y: 2, Z: 8}},
			{Min: math.Vec3{X: 10, Y: 1.5, Z: 0}, Max: math.Vec3{X: 13, Y: 2, Z: 8}},
		},
		Ramps: []Ramp{
			// About 27 degrees, walkable.
			{Base: math.Vec3{X: 5, Y: 0, Z: 4}, Width: 4, Length: 6, Height: 3},
			// About 63 degrees, too steep.
			{Base: math.Vec3{X: -12, Y: 0, Z: 4}, Width: 4, Length: 2, Height: 4},
		},
	}
}
