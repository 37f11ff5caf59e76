// Package config handles locomotion tuning and sandbox configuration.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/locomotion/internal/locomotion"
)

// Config holds all settings.
type Config struct {
	Locomotion locomotion.Params `yaml:"locomotion"`
	Camera     CameraConfig      `yaml:"camera"`
	Graphics   GraphicsConfig    `yaml:"graphics"`
	Sandbox    SandboxConfig     `yaml:"sandbox"`
	Audio      AudioConfig       `yaml:"audio"`
	Logging    LoggingConfig     `yaml:"logging"`
}

// CameraConfig holds third-person camera settings. Angles are in degrees.
type CameraConfig struct {
	Distance        float32 `yaml:"distance"`
	MinDistance     float32 `yaml:"min_distance"`
	MaxDistance     float32 `yaml:"max_distance"`
	Pitch           float32 `yaml:"pitch"`
	LookSenseH      float32 `yaml:"look_sense_h"`
	LookSenseV      float32 `yaml:"look_sense_v"`
	LookLimitV      float32 `yaml:"look_limit_v"`
	ZoomSensitivity float32 `yaml:"zoom_sensitivity"`
	TargetHeight    float32 `yaml:"target_height"`
	FOV             float32 `yaml:"fov"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// SandboxConfig holds debug sandbox settings.
type SandboxConfig struct {
	TickRate   int    `yaml:"tick_rate"`
	HotReload  bool   `yaml:"hot_reload"`
	Scene      string `yaml:"scene"` // Scenario file whose scene is loaded; empty uses the built-in course
	ShowProbes bool   `yaml:"show_probes"`
}

// AudioConfig holds sandbox sound cue settings.
type AudioConfig struct {
	MasterVolume float64 `yaml:"master_volume"`
	SFXVolume    float64 `yaml:"sfx_volume"`
	Muted        bool    `yaml:"muted"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Locomotion: locomotion.DefaultParams(),
		Camera: CameraConfig{
			Distance:        5,
			MinDistance:     2,
			MaxDistance:     12,
			Pitch:           20,
			LookSenseH:      0.15,
			LookSenseV:      0.15,
			LookLimitV:      70,
			ZoomSensitivity: 0.1,
			TargetHeight:    1.5,
			FOV:             60,
		},
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Sandbox: SandboxConfig{
			TickRate:   60,
			HotReload:  false,
			ShowProbes: true,
		},
		Audio: AudioConfig{
			MasterVolume: 0.8,
			SFXVolume:    0.8,
			Muted:        false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks every section and reports all problems together.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Locomotion.Validate(); err != nil {
		errs = append(errs, err)
	}

	cam := c.Camera
	if cam.MinDistance <= 0 || cam.MaxDistance < cam.MinDistance {
		errs = append(errs, fmt.Errorf("camera distance range [%v, %v] is invalid", cam.MinDistance, cam.MaxDistance))
	}
	if cam.LookLimitV <= 0 || cam.LookLimitV >= 90 {
		errs = append(errs, fmt.Errorf("camera.look_limit_v must be in (0, 90), got %v", cam.LookLimitV))
	}
	if cam.FOV <= 0 || cam.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera.fov must be in (0, 180), got %v", cam.FOV))
	}
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics size %dx%d is invalid", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Sandbox.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("sandbox.tick_rate must be positive, got %d", c.Sandbox.TickRate))
	}
	if v := c.Audio.MasterVolume; v < 0 || v > 1 {
		errs = append(errs, fmt.Errorf("audio.master_volume must be in [0, 1], got %v", v))
	}
	if v := c.Audio.SFXVolume; v < 0 || v > 1 {
		errs = append(errs, fmt.Errorf("audio.sfx_volume must be in [0, 1], got %v", v))
	}
	return errors.Join(errs...)
}
