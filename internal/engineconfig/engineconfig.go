package engineconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"primitive-playground/internal/logger"
	"primitive-playground/internal/primitives"
)

// DefaultPath is the config file, relative to the process working directory.
const DefaultPath = "config/playground.yaml"

// Config holds everything the playground reads at startup. Session state is never written back.
type Config struct {
	Window     WindowConfig            `yaml:"window"`
	Scene      SceneConfig             `yaml:"scene"`
	Primitives primitives.PrimitiveDef `yaml:"primitives"`
	Bounce     BounceConfig            `yaml:"bounce"`
	Controls   map[string]SliderRange  `yaml:"controls"`
	UI         UIConfig                `yaml:"ui"`
	Audio      AudioConfig             `yaml:"audio"`
	Debug      DebugConfig             `yaml:"debug"`
	Log        LogConfig               `yaml:"log"`
}

type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int32  `yaml:"width"`
	Height    int32  `yaml:"height"`
	Resizable bool   `yaml:"resizable"`
	MSAA      bool   `yaml:"msaa"`
	TargetFPS int32  `yaml:"target_fps"`
}

// SceneConfig covers the camera and the hemispheric light. Angles are in radians.
type SceneConfig struct {
	CameraAlpha  float32    `yaml:"camera_alpha"`
	CameraBeta   float32    `yaml:"camera_beta"`
	CameraRadius float32    `yaml:"camera_radius"`
	LightDir     [3]float32 `yaml:"light_dir"`
	SkyColor     string     `yaml:"sky_color"`
	GroundColor  string     `yaml:"ground_color"`
	MeshColor    string     `yaml:"mesh_color"`
	Background   string     `yaml:"background"`
	GridVisible  bool       `yaml:"grid_visible"`
}

type BounceConfig struct {
	Amplitude float32 `yaml:"amplitude"`
	Duration  float32 `yaml:"duration"`
}

// SliderRange bounds one control. Step 0 means continuous.
type SliderRange struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

type UIConfig struct {
	Stylesheet string `yaml:"stylesheet"`
}

type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // gain in doublings, 0 is unchanged
}

type DebugConfig struct {
	ShowFPS       bool `yaml:"show_fps"`
	ShowMemAlloc  bool `yaml:"show_memalloc"`
	ShowInspector bool `yaml:"show_inspector"`
	Verbose       bool `yaml:"verbose"`
}

type LogConfig struct {
	File string `yaml:"file"`
}

// Default returns the stock configuration: 1280x720 resizable window, the default camera and
// light, stock primitive records and a 24 frame bounce. Overlays are off.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:     "Primitive Playground",
			Width:     1280,
			Height:    720,
			Resizable: true,
			MSAA:      true,
			TargetFPS: 60,
		},
		Scene: SceneConfig{
			CameraAlpha:  1.5707964,
			CameraBeta:   1.2566371,
			CameraRadius: 4,
			LightDir:     [3]float32{0.5, 1, 0.8},
			SkyColor:     "#ffffff",
			GroundColor:  "#000000",
			MeshColor:    "#c8c8c8",
			Background:   "#334d66",
			GridVisible:  true,
		},
		Primitives: primitives.DefaultDef(),
		Bounce:     BounceConfig{Amplitude: 1, Duration: 24},
		Controls: map[string]SliderRange{
			"cubeWidth":             {Min: 0.1, Max: 3, Step: 0.1},
			"cubeHeight":            {Min: 0.1, Max: 3, Step: 0.1},
			"cubeDepth":             {Min: 0.1, Max: 3, Step: 0.1},
			"cylinderDiameter":      {Min: 0.1, Max: 3, Step: 0.1},
			"cylinderHeight":        {Min: 0.1, Max: 4, Step: 0.1},
			"icosphereDiameter":     {Min: 0.1, Max: 3, Step: 0.1},
			"icosphereSubdivisions": {Min: 1, Max: 8, Step: 1},
		},
		UI:    UIConfig{Stylesheet: "config/playground.css"},
		Audio: AudioConfig{Enabled: true},
		Log:   LogConfig{File: logger.DefaultFilePath},
	}
}

// Load reads path over Default, so a partial file only overrides what it names. A missing file
// yields Default and no error; a malformed one yields Default and the parse error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Range returns the slider range for control, falling back to [0, 10] continuous.
func (c Config) Range(control string) SliderRange {
	if r, ok := c.Controls[control]; ok && r.Max > r.Min {
		return r
	}
	return SliderRange{Min: 0, Max: 10}
}
