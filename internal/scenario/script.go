// Package scenario replays scripted input against a character in a static
// scene and records what it does each tick.
package scenario

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/locomotion/internal/locomotion"
	"github.com/Faultbox/locomotion/pkg/math"
)

// defaultDT is used when a script leaves dt out.
const defaultDT = float32(1) / 60

// ErrInvalidScript wraps every script validation failure.
var ErrInvalidScript = errors.New("scenario: invalid script")

// Step holds one input for a number of ticks. Buttons are levels: true means
// the button is down for the whole step, and presses and releases are
// derived at step boundaries.
type Step struct {
	Ticks    int       `yaml:"ticks"`
	Move     math.Vec2 `yaml:"move"`
	Look     math.Vec2 `yaml:"look"`
	Jump     bool      `yaml:"jump"`
	Crouch   bool      `yaml:"crouch"`
	Sprint   bool      `yaml:"sprint"`
	Walk     bool      `yaml:"walk"`
	Attack   bool      `yaml:"attack"`
	Aim      bool      `yaml:"aim"`
	Interact bool      `yaml:"interact"`
	// Expect, when set, is the state the character must be in after the
	// step's last tick.
	Expect string `yaml:"expect"`
}

// Script is a scripted run.
type Script struct {
	Name      string    `yaml:"name"`
	DT        float32   `yaml:"dt"`
	CameraYaw float32   `yaml:"camera_yaw"`
	Spawn     math.Vec3 `yaml:"spawn"`
	// Scene is the geometry; an empty scene uses the built-in course.
	Scene Scene  `yaml:"scene"`
	Steps []Step `yaml:"steps"`
	// Locomotion overrides tuning on top of the parameters passed to Parse.
	Locomotion locomotion.Params `yaml:"locomotion"`
}

// Load reads a script file. Tuning the file leaves out comes from base.
func Load(path string, base locomotion.Params) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	s, err := Parse(data, base)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a script.
func Parse(data []byte, base locomotion.Params) (*Script, error) {
	s := &Script{Locomotion: base}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if s.DT == 0 {
		s.DT = defaultDT
	}
	if s.Scene.Empty() {
		s.Scene = Course()
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the script and its tuning.
func (s *Script) Validate() error {
	var errs []error
	if s.DT <= 0 {
		errs = append(errs, fmt.Errorf("dt must be positive, got %v", s.DT))
	}
	if len(s.Steps) == 0 {
		errs = append(errs, errors.New("no steps"))
	}
	for i, st := range s.Steps {
		if st.Ticks <= 0 {
			errs = append(errs, fmt.Errorf("step %d: ticks must be positive, got %d", i, st.Ticks))
		}
		if st.Expect != "" {
			if _, ok := locomotion.ParseMovementState(st.Expect); !ok {
				errs = append(errs, fmt.Errorf("step %d: unknown state %q", i, st.Expect))
			}
		}
	}
	if err := s.Locomotion.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidScript, errors.Join(errs...))
}

// Ticks returns the total number of ticks in the script.
func (s *Script) Ticks() int {
	n := 0
	for _, st := range s.Steps {
		n += st.Ticks
	}
	return n
}

// Snapshots expands the steps into one input snapshot per tick.
func (s *Script) Snapshots() []locomotion.Snapshot {
	out := make([]locomotion.Snapshot, 0, s.Ticks())
	var prev Step
	for _, st := range s.Steps {
		for i := 0; i < st.Ticks; i++ {
			out = append(out, locomotion.Snapshot{
				Movement: st.Move,
				Look:     st.Look,
				Jump:     locomotion.EdgeOf(prev.Jump, st.Jump),
				Crouch:   locomotion.EdgeOf(prev.Crouch, st.Crouch),
				Sprint:   locomotion.EdgeOf(prev.Sprint, st.Sprint),
				Walk:     locomotion.EdgeOf(prev.Walk, st.Walk),
				Attack:   locomotion.EdgeOf(prev.Attack, st.Attack),
				Aim:      locomotion.EdgeOf(prev.Aim, st.Aim),
				Interact: locomotion.EdgeOf(prev.Interact, st.Interact),
			})
			prev = st
		}
	}
	return out
}
