// Package config loads settings from defaults, an optional config file, .env
// files and LIGHTGLOBE_ environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. LIGHTGLOBE_LOG_LEVEL.
const EnvPrefix = "LIGHTGLOBE"

type Config struct {
	Window  WindowConfig  `mapstructure:"window"`
	Log     LogConfig     `mapstructure:"log"`
	Assets  AssetsConfig  `mapstructure:"assets"`
	Markers MarkersConfig `mapstructure:"markers"`
	Pick    PickConfig    `mapstructure:"pick"`
	Camera  CameraConfig  `mapstructure:"camera"`
	Ambient AmbientConfig `mapstructure:"ambient"`
}

type WindowConfig struct {
	Title  string `mapstructure:"title"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Scale  int    `mapstructure:"scale"`
	TPS    int    `mapstructure:"tps"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	// File, when set, receives a plain-text copy of the log.
	File string `mapstructure:"file"`
}

type AssetsConfig struct {
	// Catalog is a GeoJSON marker file. Empty means the built-in list.
	Catalog   string `mapstructure:"catalog"`
	Texture   string `mapstructure:"texture"`
	LabelFont string `mapstructure:"label_font"`
	ListFont  string `mapstructure:"list_font"`
}

type MarkersConfig struct {
	RiseDuration time.Duration `mapstructure:"rise_duration"`
	SurfaceScale float64       `mapstructure:"surface_scale"`
}

type PickConfig struct {
	HoverLevel float32       `mapstructure:"hover_level"`
	FocusLevel float32       `mapstructure:"focus_level"`
	Duration   time.Duration `mapstructure:"duration"`
	Threshold  float64       `mapstructure:"threshold"`
}

type CameraConfig struct {
	ScaleX    float64       `mapstructure:"scale_x"`
	ScaleY    float64       `mapstructure:"scale_y"`
	ScaleZ    float64       `mapstructure:"scale_z"`
	Duration  time.Duration `mapstructure:"duration"`
	Distance  float64       `mapstructure:"distance"`
	DragSpeed float64       `mapstructure:"drag_speed"`
}

type AmbientConfig struct {
	Debounce  time.Duration `mapstructure:"debounce"`
	StarCount int           `mapstructure:"star_count"`
	Seed      int64         `mapstructure:"seed"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("window.title", "lightglobe")
	v.SetDefault("window.width", 480)
	v.SetDefault("window.height", 320)
	v.SetDefault("window.scale", 2)
	v.SetDefault("window.tps", 60)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetDefault("assets.catalog", "")
	v.SetDefault("assets.texture", "")
	v.SetDefault("assets.label_font", "proggy")
	v.SetDefault("assets.list_font", "proggy")

	v.SetDefault("markers.rise_duration", "2s")
	v.SetDefault("markers.surface_scale", 1.015)

	v.SetDefault("pick.hover_level", 2)
	v.SetDefault("pick.focus_level", 3)
	v.SetDefault("pick.duration", "300ms")
	v.SetDefault("pick.threshold", 0.5)

	v.SetDefault("camera.scale_x", 8)
	v.SetDefault("camera.scale_y", 3)
	v.SetDefault("camera.scale_z", 3)
	v.SetDefault("camera.duration", "1s")
	v.SetDefault("camera.distance", 5)
	v.SetDefault("camera.drag_speed", 0.005)

	v.SetDefault("ambient.debounce", "500ms")
	v.SetDefault("ambient.star_count", 2000)
	v.SetDefault("ambient.seed", 1)
}

// Default returns the built-in settings without consulting files or the
// environment.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	// Defaults always decode.
	_ = v.Unmarshal(&c)
	return c
}

// Load reads the configuration. path names a TOML, JSON or YAML file; when
// empty, lightglobe.* is looked up in the working directory and in
// $HOME/.config/lightglobe, and a missing file is not an error. envFiles are
// loaded into the process environment first; missing ones are skipped.
func Load(path string, envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load env file %s: %w", f, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("lightglobe")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "lightglobe"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the globe cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size %dx%d: must be positive", c.Window.Width, c.Window.Height)
	case c.Window.TPS <= 0:
		return fmt.Errorf("window tps %d: must be positive", c.Window.TPS)
	case c.Pick.HoverLevel < 0 || c.Pick.FocusLevel < 0:
		return errors.New("pick levels must not be negative")
	case c.Pick.Threshold <= 0:
		return fmt.Errorf("pick threshold %v: must be positive", c.Pick.Threshold)
	case c.Ambient.Debounce < 0:
		return fmt.Errorf("ambient debounce %v: must not be negative", c.Ambient.Debounce)
	case c.Ambient.StarCount < 0:
		return fmt.Errorf("ambient star count %d: must not be negative", c.Ambient.StarCount)
	}
	return nil
}
