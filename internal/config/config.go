package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultPath is read when CHOPPER_CONFIG is not set.
const DefaultPath = "config/game.toml"

// EnvPath names the environment variable that overrides DefaultPath.
const EnvPath = "CHOPPER_CONFIG"

type Config struct {
	Window   WindowConfig   `toml:"window"`
	Frame    FrameConfig    `toml:"frame"`
	Logging  LoggingConfig  `toml:"logging"`
	Paths    PathsConfig    `toml:"paths"`
	Debug    DebugConfig    `toml:"debug"`
	Registry RegistryConfig `toml:"registry"`
}

type WindowConfig struct {
	Title      string `toml:"title"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Borderless bool   `toml:"borderless"`
}

type FrameConfig struct {
	FPS      int     `toml:"fps"`
	MaxDelta float64 `toml:"max_delta"` // seconds; longer frames are clamped
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type PathsConfig struct {
	Level  string `toml:"level"`
	Assets string `toml:"assets"`
}

type DebugConfig struct {
	ShowColliders bool `toml:"show_colliders"`
	Imgui         bool `toml:"imgui"`
}

type RegistryConfig struct {
	MaxEntities int `toml:"max_entities"`
}

// FrameTime returns the target duration of one frame.
func (c FrameConfig) FrameTime() time.Duration {
	if c.FPS <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.FPS)
}

// Path returns the config file to load: $CHOPPER_CONFIG, or DefaultPath.
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return DefaultPath
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Frame.MaxDelta <= 0 {
		return fmt.Errorf("frame.max_delta must be positive, got %v", c.Frame.MaxDelta)
	}
	if c.Registry.MaxEntities <= 0 {
		return fmt.Errorf("registry.max_entities must be positive, got %d", c.Registry.MaxEntities)
	}
	return nil
}

// Defaults returns the configuration used for any key the file omits.
func Defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Chopper",
			Width:  1280,
			Height: 720,
		},
		Frame: FrameConfig{
			FPS:      60,
			MaxDelta: 0.05,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Paths: PathsConfig{
			Level:  "assets/levels/jungle.yaml",
			Assets: "assets",
		},
		Debug: DebugConfig{
			ShowColliders: false,
			Imgui:         false,
		},
		Registry: RegistryConfig{
			MaxEntities: 5000,
		},
	}
}
