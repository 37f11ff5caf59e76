// Package viewer runs the sandbox in an SDL2 window.
package viewer

import (
	"context"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/locomotion/internal/config"
	"github.com/Faultbox/locomotion/internal/engine/audio"
	"github.com/Faultbox/locomotion/internal/engine/camera"
	"github.com/Faultbox/locomotion/internal/engine/debug"
	"github.com/Faultbox/locomotion/internal/engine/input"
	"github.com/Faultbox/locomotion/internal/engine/renderer"
	"github.com/Faultbox/locomotion/internal/engine/window"
	"github.com/Faultbox/locomotion/internal/locomotion"
	"github.com/Faultbox/locomotion/internal/logger"
	"github.com/Faultbox/locomotion/internal/sandbox"
	"github.com/Faultbox/locomotion/pkg/math"
)

const title = "Locomotion Sandbox"

// Viewer is the sandbox window and its loop.
type Viewer struct {
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	clock    *sandbox.Clock

	session *sandbox.Session
	orbit   *camera.OrbitCamera
	watcher *config.Watcher
	shots   *debug.ScreenshotCapture
	audio   *audio.Manager
	frame   locomotion.AnimationFrame

	overview   bool
	showProbes bool
	captured   bool

	log *zap.Logger
}

// New opens the window and spawns the session.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		clock:      sandbox.NewClock(cfg.Sandbox.TickRate),
		orbit:      camera.NewOrbitCamera(),
		shots:      debug.NewScreenshotCapture("screenshots", "sandbox"),
		showProbes: cfg.Sandbox.ShowProbes,
		log:        logger.Named("viewer"),
	}

	var err error
	v.session, err = sandbox.Load(cfg)
	if err != nil {
		return nil, err
	}
	v.orbit.FitToBounds(v.session.Bounds())

	// Create window (this also creates OpenGL context)
	v.window, err = window.New(window.ConfigFrom(title, cfg.Graphics))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	v.renderer, err = renderer.New(renderer.Config{
		Width:  cfg.Graphics.Width,
		Height: cfg.Graphics.Height,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.input = input.New(input.DefaultBindings())

	// Sound is optional; the sandbox runs silent without an output device.
	v.audio = audio.New()
	v.audio.Apply(cfg.Audio)
	if err := v.audio.Init(); err != nil {
		v.log.Warn("audio disabled", zap.Error(err))
	}

	if cfg.Sandbox.HotReload {
		if path := config.Path(); path != "" {
			v.watcher, err = config.NewWatcher(path)
			if err != nil {
				v.log.Warn("hot reload disabled", zap.String("path", path), zap.Error(err))
			} else {
				v.log.Info("watching config", zap.String("path", path))
			}
		} else {
			v.log.Warn("hot reload needs a config file; none found")
		}
	}

	v.setCapture(true)
	v.log.Info("sandbox initialized")
	return v, nil
}

// Run is the main loop. It returns when the window closes or ctx is done.
func (v *Viewer) Run(ctx context.Context) error {
	v.running = true

	lastTime := time.Now()
	titleTimer := time.Now()

	v.log.Info("starting sandbox loop", zap.Float32("dt", v.clock.DT()))

	for v.running && ctx.Err() == nil {
		now := time.Now()
		elapsed := now.Sub(lastTime)
		lastTime = now

		// 1. Process input
		if v.input.Update() {
			break
		}
		v.handleEvents()

		// 2. Pick up reloaded tuning between ticks
		v.applyReload()

		// 3. Fixed-step simulation
		for n := v.clock.Advance(elapsed); n > 0; n-- {
			v.step()
		}
		if wheel := v.input.Wheel(); wheel != 0 {
			if v.overview {
				v.orbit.HandleZoom(wheel)
			} else {
				v.session.Rig.Zoom(wheel)
			}
		}

		// 4. Render and present
		v.render()
		v.window.SwapBuffers()

		if time.Since(titleTimer) >= 250*time.Millisecond {
			v.window.SetTitle(title + "  |  " + v.session.Status())
			titleTimer = time.Now()
		}
	}

	if d := v.clock.Dropped(); d > 0 {
		v.log.Warn("ticks dropped after stalls", zap.Int("ticks", d))
	}
	return nil
}

// Close cleans up sandbox resources.
func (v *Viewer) Close() {
	v.log.Info("closing sandbox")

	if v.watcher != nil {
		_ = v.watcher.Close()
	}
	if v.audio != nil {
		v.audio.Close()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			v.renderer.Resize(event.Width, event.Height)
		case input.EventMouseDown:
			if !v.captured {
				v.setCapture(true)
			}
		case input.EventKeyDown:
			v.handleKey(event.Key)
		}
	}
}

func (v *Viewer) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		if v.captured {
			v.setCapture(false)
		} else {
			v.running = false
		}
	case sdl.SCANCODE_TAB:
		v.overview = !v.overview
	case sdl.SCANCODE_F1:
		v.showProbes = !v.showProbes
	case sdl.SCANCODE_F5:
		if err := v.session.Reset(); err != nil {
			v.log.Error("reset failed", zap.Error(err))
		}
		v.frame = v.session.Character.Frame()
	case sdl.SCANCODE_F12:
		v.screenshot()
	}
}

func (v *Viewer) step() {
	frame := v.session.Step(v.clock.DT(), v.snapshot())
	cue := audio.DetectCue(v.frame, frame)
	v.frame = frame
	if cue == audio.CueNone || !v.audio.IsInitialized() {
		return
	}
	if err := v.audio.Play(cue); err != nil {
		v.log.Debug("cue dropped", zap.Stringer("cue", cue), zap.Error(err))
	}
}

// snapshot routes mouse motion to the overview camera while it is active,
// and drops it while the mouse is not captured.
func (v *Viewer) snapshot() locomotion.Snapshot {
	snap := v.input.Snapshot()
	switch {
	case !v.captured:
		snap.Look = math.Vec2{}
	case v.overview:
		v.orbit.HandleDrag(snap.Look.X, snap.Look.Y)
		snap.Look = math.Vec2{}
	}
	return snap
}

func (v *Viewer) setCapture(on bool) {
	v.captured = on
	v.window.CaptureMouse(on)
}

func (v *Viewer) applyReload() {
	if v.watcher == nil {
		return
	}
	select {
	case cfg, ok := <-v.watcher.Updates():
		if !ok {
			v.watcher = nil
			return
		}
		if err := v.session.Apply(cfg); err != nil {
			v.log.Warn("reloaded tuning rejected", zap.Error(err))
			return
		}
		v.showProbes = cfg.Sandbox.ShowProbes
		v.audio.Apply(cfg.Audio)
	default:
	}
}

func (v *Viewer) render() {
	var view math.Mat4
	if v.overview {
		view = v.orbit.ViewMatrix()
	} else {
		view = v.session.Rig.ViewMatrix(v.session.Body.Position())
	}
	proj := v.session.Rig.Projection(v.window.Aspect())

	v.renderer.Begin(proj.Mul(view))
	v.renderer.DrawLines(v.session.Lines(v.showProbes))
	v.renderer.End()
}

func (v *Viewer) screenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.shots.CaptureFromPixels(pixels, w, h, v.session.Character.State().String())
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}
