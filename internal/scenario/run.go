package scenario

import (
	"context"
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/locomotion/internal/config"
	"github.com/Faultbox/locomotion/internal/engine/camera"
	"github.com/Faultbox/locomotion/internal/engine/collision"
	"github.com/Faultbox/locomotion/internal/locomotion"
	"github.com/Faultbox/locomotion/internal/logger"
	"github.com/Faultbox/locomotion/pkg/math"
)

// Record is the character's condition after one tick.
type Record struct {
	Tick             int
	Time             float32
	State            locomotion.MovementState
	Grounded         bool
	NearWall         bool
	Position         math.Vec3
	Velocity         math.Vec3
	VerticalVelocity float32
	// Yaw is the body heading in degrees.
	Yaw    float32
	Height float32
	Blend  math.Vec2

	Attacking   bool
	Aiming      bool
	Interacting bool
}

// Failure is an expectation that did not hold.
type Failure struct {
	Step int
	Tick int
	Want locomotion.MovementState
	Got  locomotion.MovementState
}

func (f Failure) String() string {
	return fmt.Sprintf("step %d (tick %d): state %v, want %v", f.Step, f.Tick, f.Got, f.Want)
}

// Result is the outcome of a run.
type Result struct {
	Name     string
	Records  []Record
	Failures []Failure
}

// Passed reports whether every expectation held.
func (r *Result) Passed() bool {
	return len(r.Failures) == 0
}

// Summary condenses a run.
type Summary struct {
	Ticks       int
	Duration    float32
	Final       Record
	MaxHeight   float32
	MaxSpeed    float32
	Distance    float32
	Transitions int
	// TimeIn is the time spent in each state, in seconds.
	TimeIn map[locomotion.MovementState]float32
}

// Summarize computes the summary of the recorded ticks.
func (r *Result) Summarize() Summary {
	s := Summary{TimeIn: make(map[locomotion.MovementState]float32)}
	if len(r.Records) == 0 {
		return s
	}

	first := r.Records[0]
	s.Ticks = len(r.Records)
	s.Final = r.Records[len(r.Records)-1]
	s.Duration = s.Final.Time
	s.MaxHeight = first.Position.Y

	prev := first
	step := first.Time
	for i, rec := range r.Records {
		s.MaxHeight = max(s.MaxHeight, rec.Position.Y)
		s.MaxSpeed = max(s.MaxSpeed, rec.Velocity.Flat().Length())
		s.TimeIn[rec.State] += step
		if i > 0 {
			s.Distance += rec.Position.Sub(prev.Position).Flat().Length()
			if rec.State != prev.State {
				s.Transitions++
			}
		}
		prev = rec
	}
	return s
}

// Run replays the script. Look input turns a camera rig built from cam,
// starting at the script's camera yaw.
func Run(ctx context.Context, s *Script, cam config.CameraConfig) (*Result, error) {
	log := logger.Named("scenario")

	world := collision.NewWorld()
	s.Scene.Build(world)

	p := s.Locomotion
	body := collision.NewBody(world, s.Spawn, p.Shape.Radius, p.Shape.StandingHeight)
	body.SetSlopeLimit(p.SlopeLimit)
	body.SetMask(p.GroundMask)

	rig := camera.NewRig(cam)
	rig.Yaw = s.CameraYaw

	c, err := locomotion.NewCharacter(p, body, world, rig)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}

	res := &Result{Name: s.Name, Records: make([]Record, 0, s.Ticks())}
	snaps := s.Snapshots()

	var actions locomotion.ActionTimer
	tick := 0
	for i, st := range s.Steps {
		for j := 0; j < st.Ticks; j++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			snap := snaps[tick]
			rig.Look(snap.Look)
			frame := c.Tick(s.DT, locomotion.Fixed(snap))
			actions.Update(s.DT, c)
			tick++
			res.Records = append(res.Records, record(tick, s.DT, c, body, frame))
		}

		if st.Expect == "" {
			continue
		}
		want, _ := locomotion.ParseMovementState(st.Expect)
		if got := c.State(); got != want {
			f := Failure{Step: i, Tick: tick, Want: want, Got: got}
			res.Failures = append(res.Failures, f)
			log.Warn("expectation failed", zap.String("scenario", s.Name), zap.Stringer("failure", f))
		}
	}

	log.Info("scenario finished",
		zap.String("scenario", s.Name),
		zap.Int("ticks", tick),
		zap.Int("failures", len(res.Failures)),
	)
	return res, nil
}

func record(tick int, dt float32, c *locomotion.Character, body *collision.Body, frame locomotion.AnimationFrame) Record {
	fwd := body.Rotation().Forward()
	return Record{
		Tick:             tick,
		Time:             float32(tick) * dt,
		State:            frame.State,
		Grounded:         c.Grounded(),
		NearWall:         c.NearWall(),
		Position:         body.Position(),
		Velocity:         body.Velocity(),
		VerticalVelocity: frame.VerticalVelocity,
		Yaw:              math32.Atan2(fwd.X, fwd.Z) * math.Rad2Deg,
		Height:           body.Height(),
		Blend:            frame.Blend,
		Attacking:        frame.Attacking,
		Aiming:           frame.Aiming,
		Interacting:      frame.Interacting,
	}
}
