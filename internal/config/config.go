package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/heroviz/internal/render"
	"github.com/san-kum/heroviz/internal/scene"
	"github.com/san-kum/heroviz/internal/sim"
	"github.com/san-kum/heroviz/internal/surface"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("config: invalid configuration")

const (
	DefaultTitle      = "heroviz"
	DefaultWidth      = 1280
	DefaultHeight     = 720
	DefaultFPS        = 60
	DefaultBackground = "#020617"
	DefaultTheme      = "hero"
	DefaultDotScale   = 5.0
)

type Config struct {
	Population scene.Params   `yaml:"population"`
	Physics    sim.Params     `yaml:"physics"`
	Render     render.Params  `yaml:"render"`
	Window     WindowConfig   `yaml:"window"`
	Terminal   TerminalConfig `yaml:"terminal"`
	Log        LogConfig      `yaml:"log"`
	Seed       int64          `yaml:"seed"`
	Theme      string         `yaml:"theme"`
}

type WindowConfig struct {
	Title         string  `yaml:"title"`
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	FPS           int     `yaml:"fps"`
	HUD           bool    `yaml:"hud"`
	FontPath      string  `yaml:"font_path"`
	Background    string  `yaml:"background"`
	MaxPixelRatio float64 `yaml:"max_pixel_ratio"`
}

type TerminalConfig struct {
	FPS int `yaml:"fps"`
	// DotScale is the number of logical units covered by one Braille dot.
	DotScale  float64 `yaml:"dot_scale"`
	ShowStats bool    `yaml:"show_stats"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func DefaultConfig() *Config {
	return &Config{
		Population: scene.DefaultParams(),
		Physics:    sim.DefaultParams(),
		Render:     render.DefaultParams(),
		Window: WindowConfig{
			Title:         DefaultTitle,
			Width:         DefaultWidth,
			Height:        DefaultHeight,
			FPS:           DefaultFPS,
			HUD:           true,
			Background:    DefaultBackground,
			MaxPixelRatio: surface.MaxPixelRatio,
		},
		Terminal: TerminalConfig{
			FPS:       30,
			DotScale:  DefaultDotScale,
			ShowStats: true,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Seed:  1,
		Theme: DefaultTheme,
	}
}

// Load reads a YAML file over the defaults, so a file only needs the keys
// it changes.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a YAML file over base, which it modifies and returns.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := base
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	for _, err := range []error{
		c.Population.Validate(),
		c.Physics.Validate(),
		c.Render.Validate(),
	} {
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Window.FPS <= 0 || c.Terminal.FPS <= 0 {
		return fmt.Errorf("%w: frame rates must be positive", ErrInvalid)
	}
	if c.Window.MaxPixelRatio < 0 {
		return fmt.Errorf("%w: negative max pixel ratio", ErrInvalid)
	}
	if c.Terminal.DotScale <= 0 {
		return fmt.Errorf("%w: dot scale must be positive, got %f", ErrInvalid, c.Terminal.DotScale)
	}
	if _, err := ParseColor(c.Window.Background); err != nil {
		return fmt.Errorf("%w: background: %w", ErrInvalid, err)
	}
	return nil
}

func (c *Config) SceneParams() scene.Params   { return c.Population }
func (c *Config) SimParams() sim.Params       { return c.Physics }
func (c *Config) RenderParams() render.Params { return c.Render }

// Background returns the window background, or the default when the
// configured value does not parse.
func (c *Config) Background() scene.RGB {
	rgb, err := ParseColor(c.Window.Background)
	if err != nil {
		rgb, _ = ParseColor(DefaultBackground)
	}
	return rgb
}

// SurfaceOptions assembles manager options from the config.
func (c *Config) SurfaceOptions(log *slog.Logger) surface.Options {
	return surface.Options{
		Scene:         c.Population,
		Sim:           c.Physics,
		Render:        c.Render,
		Seed:          c.Seed,
		MaxPixelRatio: c.Window.MaxPixelRatio,
		Logger:        log,
	}
}

// ParseColor parses a #rrggbb color.
func ParseColor(s string) (scene.RGB, error) {
	if len(s) != 7 || !strings.HasPrefix(s, "#") {
		return scene.RGB{}, fmt.Errorf("color %q is not #rrggbb", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return scene.RGB{}, fmt.Errorf("color %q: %w", s, err)
	}
	return scene.RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}
