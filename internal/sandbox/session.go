// Package sandbox is the interactive playground: one character in a scene,
// driven tick by tick, with tuning that can change while it runs.
package sandbox

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/locomotion/internal/config"
	"github.com/Faultbox/locomotion/internal/engine/camera"
	"github.com/Faultbox/locomotion/internal/engine/collision"
	"github.com/Faultbox/locomotion/internal/engine/debug"
	"github.com/Faultbox/locomotion/internal/locomotion"
	"github.com/Faultbox/locomotion/internal/logger"
	"github.com/Faultbox/locomotion/internal/scenario"
	"github.com/Faultbox/locomotion/pkg/math"
)

// DefaultSpawn is where the character starts on the built-in course.
var DefaultSpawn = math.Vec3{Z: -10}

// Session owns the simulated world and the character in it.
type Session struct {
	cfg   *config.Config
	scene scenario.Scene
	spawn math.Vec3

	World     *collision.World
	Body      *collision.Body
	Character *locomotion.Character
	Rig       *camera.Rig

	actions locomotion.ActionTimer
	ticks   int
	log   *zap.Logger
}

// NewSession builds the scene and spawns the character.
func NewSession(cfg *config.Config, scene scenario.Scene, spawn math.Vec3) (*Session, error) {
	s := &Session{
		cfg:   cfg,
		scene: scene,
		spawn: spawn,
		World: collision.NewWorld(),
		Rig:   camera.NewRig(cfg.Camera),
		log:   logger.Named("sandbox"),
	}
	scene.Build(s.World)

	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load picks the scene named in the config, or the built-in course.
func Load(cfg *config.Config) (*Session, error) {
	if cfg.Sandbox.Scene == "" {
		return NewSession(cfg, scenario.Course(), DefaultSpawn)
	}
	script, err := scenario.Load(cfg.Sandbox.Scene, cfg.Locomotion)
	if err != nil {
		return nil, fmt.Errorf("loading scene: %w", err)
	}
	return NewSession(cfg, script.Scene, script.Spawn)
}

// Reset respawns the character at the spawn point with fresh state.
func (s *Session) Reset() error {
	p := s.cfg.Locomotion
	body := collision.NewBody(s.World, s.spawn, p.Shape.Radius, p.Shape.StandingHeight)
	body.SetSlopeLimit(p.SlopeLimit)
	body.SetMask(p.GroundMask)

	c, err := locomotion.NewCharacter(p, body, s.World, s.Rig)
	if err != nil {
		return fmt.Errorf("spawning character: %w", err)
	}
	s.Body, s.Character = body, c
	s.actions = locomotion.ActionTimer{}
	s.ticks = 0
	s.log.Info("character spawned", zap.Float32("x", s.spawn.X), zap.Float32("y", s.spawn.Y), zap.Float32("z", s.spawn.Z))
	return nil
}

// Step runs one tick: the look delta turns the camera first, then the
// character moves relative to it.
func (s *Session) Step(dt float32, snap locomotion.Snapshot) locomotion.AnimationFrame {
	s.Rig.Look(snap.Look)
	s.ticks++
	frame := s.Character.Tick(dt, locomotion.Fixed(snap))
	s.actions.Update(dt, s.Character)
	return frame
}

// Ticks returns the ticks run since the last reset.
func (s *Session) Ticks() int {
	return s.ticks
}

// Apply switches to a reloaded config. Invalid tuning is rejected and the
// running session keeps its previous config.
func (s *Session) Apply(cfg *config.Config) error {
	if err := s.Character.SetParams(cfg.Locomotion); err != nil {
		return err
	}
	s.Body.SetSlopeLimit(cfg.Locomotion.SlopeLimit)
	s.Body.SetMask(cfg.Locomotion.GroundMask)
	s.Rig.SetConfig(cfg.Camera)
	s.cfg = cfg
	s.log.Info("tuning applied")
	return nil
}

// Config returns the active config.
func (s *Session) Config() *config.Config {
	return s.cfg
}

// Bounds returns the extent of the scene.
func (s *Session) Bounds() (lo, hi math.Vec3) {
	return s.scene.Bounds()
}

// Lines draws the scene, the floor grid and the character.
func (s *Session) Lines(showProbes bool) debug.Lines {
	var l debug.Lines
	lo, hi := s.scene.Bounds()
	l.Grid(lo, hi, 1, 0.001)
	l.World(s.World, s.cfg.Locomotion.SlopeLimit)
	l.Character(s.Body, s.Character.State(), s.Character.SurfaceNormal(), showProbes)
	return l
}

// Status is a one-line description of the character for the window title.
func (s *Session) Status() string {
	c := s.Character
	status := fmt.Sprintf("%v  speed %.2f  vy %.2f  grounded %v",
		c.State(), s.Body.Velocity().Flat().Length(), c.VerticalVelocity(), c.Grounded())
	f := c.Frame()
	switch {
	case f.Attacking:
		status += "  attack"
	case f.Interacting:
		status += "  interact"
	}
	if f.Aiming {
		status += "  aim"
	}
	return status
}
