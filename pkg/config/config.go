// Package config loads netcanvas settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/netcanvas/config.toml (falling back
// to ~/.config/netcanvas). Every key is optional; missing keys keep their
// defaults and command-line flags override whatever the file sets.
//
//	[options]
//	brush = true
//	tooltips = true
//	zoom = false
//
//	[styles]
//	color = "#68a1e5"
//	stroke = "white"
//	size = 6
//
//	[canvas]
//	width = 800
//	height = 600
//
//	[hit]
//	tolerance = 2
//
//	[server]
//	addr = ":8080"
//	session_ttl = "30m"
//	metrics = true
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/netcanvas/pkg/errors"
	"github.com/matzehuels/netcanvas/pkg/interact"
	"github.com/matzehuels/netcanvas/pkg/network"
	"github.com/matzehuels/netcanvas/pkg/viz"
)

// Config holds netcanvas configuration.
type Config struct {
	Options viz.Options    `toml:"options"`
	Styles  network.Styles `toml:"styles"`
	Canvas  CanvasConfig   `toml:"canvas"`
	Hit     HitConfig      `toml:"hit"`
	Server  ServerConfig   `toml:"server"`
}

// CanvasConfig sets the drawing surface size in pixels.
type CanvasConfig struct {
	Width  float64 `toml:"width" validate:"gt=0,lte=16384"`
	Height float64 `toml:"height" validate:"gt=0,lte=16384"`
}

// HitConfig tunes click hit-testing.
type HitConfig struct {
	Tolerance float64 `toml:"tolerance" validate:"gte=0"`
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Addr       string   `toml:"addr" validate:"required"`
	SessionTTL Duration `toml:"session_ttl"`
	Metrics    bool     `toml:"metrics"`
}

// Duration is a time.Duration written as a Go duration string ("30m").
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Options: viz.DefaultOptions(),
		Styles:  network.DefaultStyles(),
		Canvas:  CanvasConfig{Width: 800, Height: 600},
		Hit:     HitConfig{Tolerance: interact.DefaultTolerance},
		Server:  ServerConfig{Addr: ":8080", SessionTTL: Duration{30 * time.Minute}, Metrics: true},
	}
}

// ConfigDir returns the netcanvas config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "netcanvas")
}

// DefaultPath returns the path of the default config file.
func DefaultPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file at path, or at [DefaultPath] when path is
// empty. A missing file yields the defaults. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path, or to [DefaultPath] when path is empty.
func Save(path string, cfg *Config) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create config dir")
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, formatValidationError(err), "invalid config")
	}
	if c.Server.SessionTTL.Duration <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "[server] session_ttl must be positive")
	}
	return nil
}

// formatValidationError reports the first failed field as "[table] key".
func formatValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err
	}
	e := verrs[0]
	ns := strings.TrimPrefix(e.Namespace(), "Config.")
	field := ns
	if table, key, found := strings.Cut(ns, "."); found {
		field = "[" + table + "] " + key
	}

	switch e.Tag() {
	case "required":
		return fmt.Errorf("%s is required", field)
	case "gt":
		return fmt.Errorf("%s must be greater than %s, got %v", field, e.Param(), e.Value())
	case "gte":
		return fmt.Errorf("%s must not be below %s, got %v", field, e.Param(), e.Value())
	case "lte":
		return fmt.Errorf("%s must not exceed %s, got %v", field, e.Param(), e.Value())
	default:
		return fmt.Errorf("%s is invalid (%s), got %v", field, e.Tag(), e.Value())
	}
}
