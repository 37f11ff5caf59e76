package locomotion

import (
	"errors"
	"fmt"

	"github.com/Faultbox/locomotion/pkg/math"
)

// GaitParams tunes one grounded gait.
type GaitParams struct {
	Acceleration float32 `yaml:"acceleration"`
	TopSpeed     float32 `yaml:"top_speed"`
	Drag         float32 `yaml:"drag"`
	// BlendMax scales the animation blend vector while in this gait.
	BlendMax float32 `yaml:"blend_max"`
}

// AirParams tunes lateral control while airborne. Airborne top speed is the
// sprint top speed so air control never exceeds a ground sprint.
type AirParams struct {
	Acceleration float32 `yaml:"acceleration"`
	Drag         float32 `yaml:"drag"`
}

// ShapeParams describes the collision capsule in standing and crouched form.
type ShapeParams struct {
	Radius          float32   `yaml:"radius"`
	StandingHeight  float32   `yaml:"standing_height"`
	StandingCenter  math.Vec3 `yaml:"standing_center"`
	CrouchHeight    float32   `yaml:"crouch_height"`
	CrouchCenter    math.Vec3 `yaml:"crouch_center"`
	TransitionSpeed float32   `yaml:"transition_speed"`
	StepOffset      float32   `yaml:"step_offset"`
}

// RotationParams tunes the camera-relative body rotation.
type RotationParams struct {
	// Speed is the slerp rate per second while moving.
	Speed float32 `yaml:"speed"`
	// TimeToTarget is how long an idle turn-in-place takes.
	TimeToTarget float32 `yaml:"time_to_target"`
	// Tolerance is the idle mismatch in degrees that triggers a turn.
	Tolerance float32 `yaml:"tolerance"`
	// SnapAngle is the residual angle in degrees below which rotation snaps.
	SnapAngle float32 `yaml:"snap_angle"`
}

// Params is the flat set of tuning values supplied when a character spawns.
// Lengths are in world units, times in seconds, angles in degrees.
type Params struct {
	MovementThreshold float32 `yaml:"movement_threshold"`
	Gravity           float32 `yaml:"gravity"`
	TerminalVelocity  float32 `yaml:"terminal_velocity"`
	JumpHeight        float32 `yaml:"jump_height"`
	CoyoteTime        float32 `yaml:"coyote_time"`
	// AntiBump is the downward bias held while grounded. Zero uses the
	// sprint top speed.
	AntiBump          float32   `yaml:"anti_bump"`
	SpeedSmoothing    float32   `yaml:"speed_smoothing"`
	SlopeLimit        float32   `yaml:"slope_limit"`
	WallCheckDistance float32   `yaml:"wall_check_distance"`
	SteepWallCooldown float32   `yaml:"steep_wall_cooldown"`
	SteepFriction     float32   `yaml:"steep_friction"`
	BlendSpeed        float32   `yaml:"blend_speed"`
	HoldToSprint      bool      `yaml:"hold_to_sprint"`
	FaceMoveDirection bool      `yaml:"face_move_direction"`
	HoldToAim         bool      `yaml:"hold_to_aim"`
	GroundMask        LayerMask `yaml:"ground_mask"`

	Walk   GaitParams `yaml:"walk"`
	Run    GaitParams `yaml:"run"`
	Sprint GaitParams `yaml:"sprint"`
	Crouch GaitParams `yaml:"crouch"`
	Air    AirParams  `yaml:"air"`

	Shape    ShapeParams    `yaml:"shape"`
	Rotation RotationParams `yaml:"rotation"`
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return Params{
		MovementThreshold: 0.01,
		Gravity:           25,
		TerminalVelocity:  50,
		JumpHeight:        1,
		CoyoteTime:        0.1,
		SpeedSmoothing:    8,
		SlopeLimit:        45,
		WallCheckDistance: 0.25,
		SteepWallCooldown: 0.12,
		SteepFriction:     0.5,
		BlendSpeed:        4,
		HoldToSprint:      true,
		GroundMask:        AllLayers,

		Walk:   GaitParams{Acceleration: 25, TopSpeed: 3, Drag: 20, BlendMax: 0.75},
		Run:    GaitParams{Acceleration: 35, TopSpeed: 6, Drag: 20, BlendMax: 1},
		Sprint: GaitParams{Acceleration: 50, TopSpeed: 9, Drag: 20, BlendMax: 1.5},
		Crouch: GaitParams{Acceleration: 30, TopSpeed: 3, Drag: 20, BlendMax: 0.5},
		Air:    AirParams{Acceleration: 25, Drag: 5},

		Shape: ShapeParams{
			Radius:          0.35,
			StandingHeight:  1.8,
			StandingCenter:  math.Vec3{Y: 0.9},
			CrouchHeight:    1.2,
			CrouchCenter:    math.Vec3{Y: 0.595},
			TransitionSpeed: 5,
			StepOffset:      0.3,
		},
		Rotation: RotationParams{
			Speed:        10,
			TimeToTarget: 0.67,
			Tolerance:    90,
			SnapAngle:    0.1,
		},
	}
}

// EffectiveAntiBump resolves the anti-bump bias.
func (p *Params) EffectiveAntiBump() float32 {
	if p.AntiBump > 0 {
		return p.AntiBump
	}
	return p.Sprint.TopSpeed
}

// JumpVelocity is the launch speed of a jump. The formula is deliberately
// sqrt(h*3*g), not the kinematic sqrt(2*g*h).
func (p *Params) JumpVelocity() float32 {
	return sqrt(p.JumpHeight * 3 * p.Gravity)
}

// Validate reports every out-of-range value at once.
func (p *Params) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(p.Gravity > 0, "gravity must be positive, got %v", p.Gravity)
	check(p.TerminalVelocity > 0, "terminal_velocity must be positive, got %v", p.TerminalVelocity)
	check(p.JumpHeight >= 0, "jump_height must not be negative, got %v", p.JumpHeight)
	check(p.CoyoteTime >= 0, "coyote_time must not be negative, got %v", p.CoyoteTime)
	check(p.AntiBump >= 0, "anti_bump must not be negative, got %v", p.AntiBump)
	check(p.SpeedSmoothing > 0, "speed_smoothing must be positive, got %v", p.SpeedSmoothing)
	check(p.SlopeLimit > 0 && p.SlopeLimit < 90, "slope_limit must be in (0, 90), got %v", p.SlopeLimit)
	check(p.WallCheckDistance >= 0, "wall_check_distance must not be negative, got %v", p.WallCheckDistance)
	check(p.SteepWallCooldown >= 0, "steep_wall_cooldown must not be negative, got %v", p.SteepWallCooldown)
	check(p.SteepFriction >= 0 && p.SteepFriction <= 1, "steep_friction must be in [0, 1], got %v", p.SteepFriction)
	check(p.MovementThreshold >= 0, "movement_threshold must not be negative, got %v", p.MovementThreshold)
	check(p.BlendSpeed >= 0, "blend_speed must not be negative, got %v", p.BlendSpeed)

	for name, g := range map[string]GaitParams{"walk": p.Walk, "run": p.Run, "sprint": p.Sprint, "crouch": p.Crouch} {
		check(g.Acceleration >= 0, "%s.acceleration must not be negative, got %v", name, g.Acceleration)
		check(g.TopSpeed > 0, "%s.top_speed must be positive, got %v", name, g.TopSpeed)
		check(g.Drag >= 0, "%s.drag must not be negative, got %v", name, g.Drag)
		check(g.BlendMax >= 0, "%s.blend_max must not be negative, got %v", name, g.BlendMax)
	}
	check(p.Air.Acceleration >= 0, "air.acceleration must not be negative, got %v", p.Air.Acceleration)
	check(p.Air.Drag >= 0, "air.drag must not be negative, got %v", p.Air.Drag)

	s := p.Shape
	check(s.Radius > 0, "shape.radius must be positive, got %v", s.Radius)
	check(s.StandingHeight >= 2*s.Radius, "shape.standing_height must be at least twice the radius, got %v", s.StandingHeight)
	check(s.CrouchHeight >= 2*s.Radius, "shape.crouch_height must be at least twice the radius, got %v", s.CrouchHeight)
	check(s.CrouchHeight <= s.StandingHeight, "shape.crouch_height must not exceed standing_height, got %v", s.CrouchHeight)
	check(s.TransitionSpeed > 0, "shape.transition_speed must be positive, got %v", s.TransitionSpeed)
	check(s.StepOffset >= 0, "shape.step_offset must not be negative, got %v", s.StepOffset)

	r := p.Rotation
	check(r.Speed >= 0, "rotation.speed must not be negative, got %v", r.Speed)
	check(r.TimeToTarget >= 0, "rotation.time_to_target must not be negative, got %v", r.TimeToTarget)
	check(r.Tolerance >= 0 && r.Tolerance <= 180, "rotation.tolerance must be in [0, 180], got %v", r.Tolerance)
	check(r.SnapAngle >= 0, "rotation.snap_angle must not be negative, got %v", r.SnapAngle)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidParams, errors.Join(errs...))
}

// StateParams is the lateral tuning that applies while a state is active.
type StateParams struct {
	Acceleration float32
	TopSpeed     float32
	Drag         float32
	BlendMax     float32
}

// StateTable maps every MovementState to its lateral tuning.
type StateTable [numStates]StateParams

// Table builds the per-state lookup. Idle and the reserved Swimming state use
// the run gait for motion; airborne states use air control capped at the
// sprint top speed.
func (p *Params) Table() StateTable {
	fromGait := func(g GaitParams) StateParams {
		return StateParams{Acceleration: g.Acceleration, TopSpeed: g.TopSpeed, Drag: g.Drag, BlendMax: g.BlendMax}
	}
	air := StateParams{
		Acceleration: p.Air.Acceleration,
		TopSpeed:     p.Sprint.TopSpeed,
		Drag:         p.Air.Drag,
		BlendMax:     p.Run.BlendMax,
	}

	var t StateTable
	t[Idle] = fromGait(p.Run)
	t[Idle].BlendMax = p.Walk.BlendMax
	t[Walking] = fromGait(p.Walk)
	t[Running] = fromGait(p.Run)
	t[Sprinting] = fromGait(p.Sprint)
	t[Crouching] = fromGait(p.Crouch)
	t[Jumping] = air
	t[Falling] = air
	t[Swimming] = fromGait(p.Run)
	return t
}

// Lookup returns the tuning for s; unknown states get the run gait.
func (t StateTable) Lookup(s MovementState) StateParams {
	if !s.Valid() {
		return t[Running]
	}
	return t[s]
}
