// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package config loads the bootstrap configuration from the built-in
// defaults, an optional file and the environment, in that order.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gobuffalo/envy"
	"github.com/gobuffalo/packr"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/devblok/vkboot/core"
)

const defaultsFile = "bootstrap.toml"

// Defaults holds the built-in configuration
var Defaults packr.Box

func init() {
	Defaults = packr.NewBox("./defaults")
}

// Environment variables that override the configuration
const (
	EnvPlatform    = "VKBOOT_PLATFORM"
	EnvDiagnostics = "VKBOOT_DIAGNOSTICS"
	EnvLayers      = "VKBOOT_LAYERS"
	EnvWidth       = "VKBOOT_WIDTH"
	EnvHeight      = "VKBOOT_HEIGHT"
	EnvTitle       = "VKBOOT_TITLE"
)

// Config is the on-disk form of the bootstrap configuration
type Config struct {
	Platform       string      `json:"platform" yaml:"platform" toml:"platform"`
	EventPollDelay int         `json:"event_poll_delay" yaml:"event_poll_delay" toml:"event_poll_delay"`
	Application    Application `json:"application" yaml:"application" toml:"application"`
	Window         Window      `json:"window" yaml:"window" toml:"window"`
	Diagnostics    Diagnostics `json:"diagnostics" yaml:"diagnostics" toml:"diagnostics"`
	Device         Device      `json:"device" yaml:"device" toml:"device"`
}

// Application describes the application to the driver.
// Versions are written as "major.minor.patch"
type Application struct {
	Name          string `json:"name" yaml:"name" toml:"name"`
	Version       string `json:"version" yaml:"version" toml:"version"`
	Engine        string `json:"engine" yaml:"engine" toml:"engine"`
	EngineVersion string `json:"engine_version" yaml:"engine_version" toml:"engine_version"`
	APIVersion    string `json:"api_version" yaml:"api_version" toml:"api_version"`
}

// Window configures the window
type Window struct {
	Width  uint32 `json:"width" yaml:"width" toml:"width"`
	Height uint32 `json:"height" yaml:"height" toml:"height"`
	Title  string `json:"title" yaml:"title" toml:"title"`
}

// Diagnostics configures validation layers
type Diagnostics struct {
	Enabled bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	Layers  []string `json:"layers" yaml:"layers" toml:"layers"`
}

// Device configures physical device selection
type Device struct {
	Select   bool     `json:"select" yaml:"select" toml:"select"`
	Types    []string `json:"types" yaml:"types" toml:"types"`
	Features []string `json:"features" yaml:"features" toml:"features"`
}

// Default returns the built-in configuration
func Default() (Config, error) {
	var cfg Config
	b, err := Defaults.Find(defaultsFile)
	if err != nil {
		return cfg, errors.Wrap(err, "built-in defaults")
	}
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return cfg, errors.Wrap(err, "built-in defaults")
	}
	return cfg, nil
}

// Load reads a configuration file over the built-in defaults, based
// on its extension. Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return cfg, err
	}
	if path == "" {
		return cfg, errors.New("empty config path")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".json":
		err = json.Unmarshal(b, &cfg)
	case ".toml":
		err = toml.Unmarshal(b, &cfg)
	default:
		return cfg, errors.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, errors.Wrap(err, path)
}

// ApplyEnv overrides the configuration with VKBOOT_* variables
func (c *Config) ApplyEnv() error {
	if v := envy.Get(EnvPlatform, ""); v != "" {
		c.Platform = v
	}
	if v := envy.Get(EnvTitle, ""); v != "" {
		c.Window.Title = v
	}
	if v := envy.Get(EnvLayers, ""); v != "" {
		c.Diagnostics.Layers = strings.Split(v, ",")
	}
	if v := envy.Get(EnvDiagnostics, ""); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(err, EnvDiagnostics)
		}
		c.Diagnostics.Enabled = enabled
	}
	for key, dst := range map[string]*uint32{EnvWidth: &c.Window.Width, EnvHeight: &c.Window.Height} {
		v := envy.Get(key, "")
		if v == "" {
			continue
		}
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return errors.Wrap(err, key)
		}
		*dst = uint32(n)
	}
	return nil
}

// BootstrapConfig converts the configuration for the context
func (c Config) BootstrapConfig() (core.BootstrapConfig, error) {
	var (
		cfg core.BootstrapConfig
		err error
	)

	cfg.Application.Name = c.Application.Name
	cfg.Application.EngineName = c.Application.Engine
	for _, v := range []struct {
		text string
		dst  *core.Version
	}{
		{c.Application.Version, &cfg.Application.Version},
		{c.Application.EngineVersion, &cfg.Application.EngineVersion},
		{c.Application.APIVersion, &cfg.Application.APIVersion},
	} {
		if *v.dst, err = ParseVersion(v.text); err != nil {
			return cfg, err
		}
	}

	cfg.Window = core.WindowConfiguration{
		Width:  c.Window.Width,
		Height: c.Window.Height,
		Title:  c.Window.Title,
	}
	cfg.Time.EventPollDelay = c.EventPollDelay
	cfg.Device = core.DeviceConfiguration{
		Select:   c.Device.Select,
		Types:    c.Device.Types,
		Features: c.Device.Features,
	}

	cfg.EnableDiagnostics = c.Diagnostics.Enabled
	for _, layer := range c.Diagnostics.Layers {
		cfg.RequestedLayers = append(cfg.RequestedLayers, core.LayerName(strings.TrimSpace(layer)))
	}
	return cfg, cfg.Validate()
}

// ParseVersion parses "major.minor.patch", missing parts are zero
func ParseVersion(s string) (core.Version, error) {
	var v core.Version
	if s == "" {
		return v, nil
	}

	parts := strings.Split(s, ".")
	if len(parts) > 3 {
		return v, errors.WithMessagef(core.ErrInvalidConfiguration, "version %q", s)
	}
	fields := []*uint32{&v.Major, &v.Minor, &v.Patch}
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 10, 10)
		if err != nil {
			return core.Version{}, errors.WithMessagef(core.ErrInvalidConfiguration, "version %q", s)
		}
		*fields[i] = uint32(n)
	}
	return v, nil
}

func (c Config) String() string {
	return fmt.Sprintf("%s %dx%d %q diagnostics=%t select=%t",
		c.Platform, c.Window.Width, c.Window.Height, c.Window.Title, c.Diagnostics.Enabled, c.Device.Select)
}
