// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/gobuffalo/envy"

	"github.com/devblok/vkboot/config"
	"github.com/devblok/vkboot/core"
)

func writeFile(c *qt.C, name, content string) string {
	path := filepath.Join(c.TempDir(), name)
	c.Assert(os.WriteFile(path, []byte(content), 0o644), qt.IsNil)
	return path
}

func TestDefault(t *testing.T) {
	c := qt.New(t)

	cfg, err := config.Default()
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Platform, qt.Equals, "sdl")
	c.Assert(cfg.EventPollDelay, qt.Equals, 10)
	c.Assert(cfg.Window, qt.DeepEquals, config.Window{Width: 1920, Height: 1080, Title: "vkboot"})
	c.Assert(cfg.Diagnostics.Enabled, qt.IsFalse)
	c.Assert(cfg.Diagnostics.Layers, qt.DeepEquals, []string{string(core.ValidationLayer)})
	c.Assert(cfg.Device.Select, qt.IsTrue)

	bc, err := cfg.BootstrapConfig()
	c.Assert(err, qt.IsNil)
	c.Assert(bc.Application.Name, qt.Equals, "vkboot")
	c.Assert(bc.Application.Engine(), qt.Equals, core.DefaultEngineName)
	c.Assert(bc.Application.APIVersion, qt.Equals, core.Version{Major: 1})
	c.Assert(bc.Layers(), qt.IsNil)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{{
		name: "bootstrap.yaml",
		content: `
window:
  width: 800
  height: 600
  title: yaml
diagnostics:
  enabled: true
device:
  types: [discrete]
`,
	}, {
		name: "bootstrap.toml",
		content: `
[window]
width = 800
height = 600
title = "toml"

[diagnostics]
enabled = true

[device]
types = ["discrete"]
`,
	}, {
		name: "bootstrap.json",
		content: `{
	"window": {"width": 800, "height": 600, "title": "json"},
	"diagnostics": {"enabled": true},
	"device": {"types": ["discrete"]}
}`,
	}}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := qt.New(t)

			cfg, err := config.Load(writeFile(c, test.name, test.content))
			c.Assert(err, qt.IsNil)
			c.Assert(cfg.Window.Width, qt.Equals, uint32(800))
			c.Assert(cfg.Window.Height, qt.Equals, uint32(600))
			c.Assert(cfg.Window.Title, qt.Equals, filepath.Ext(test.name)[1:])
			c.Assert(cfg.Device.Types, qt.DeepEquals, []string{"discrete"})

			// Untouched keys keep their defaults
			c.Assert(cfg.Platform, qt.Equals, "sdl")
			c.Assert(cfg.Device.Select, qt.IsTrue)

			bc, err := cfg.BootstrapConfig()
			c.Assert(err, qt.IsNil)
			c.Assert(bc.Layers(), qt.DeepEquals, []core.LayerName{core.ValidationLayer})
		})
	}
}

func TestLoadErrors(t *testing.T) {
	c := qt.New(t)

	_, err := config.Load("")
	c.Assert(err, qt.ErrorMatches, "empty config path")

	_, err = config.Load(writeFile(c, "bootstrap.ini", "width=1"))
	c.Assert(err, qt.ErrorMatches, "unsupported config extension: .ini")

	_, err = config.Load(filepath.Join(c.TempDir(), "missing.yaml"))
	c.Assert(os.IsNotExist(err), qt.IsTrue)

	_, err = config.Load(writeFile(c, "broken.json", "{"))
	c.Assert(err, qt.ErrorMatches, ".*broken.json: .*")
}

func TestBootstrapConfigInvalid(t *testing.T) {
	c := qt.New(t)

	cfg, err := config.Default()
	c.Assert(err, qt.IsNil)
	cfg.Application.Version = "1.x"
	_, err = cfg.BootstrapConfig()
	c.Assert(err, qt.ErrorIs, core.ErrInvalidConfiguration)

	cfg, err = config.Default()
	c.Assert(err, qt.IsNil)
	cfg.Device.Features = []string{"rayTracing"}
	_, err = cfg.BootstrapConfig()
	c.Assert(err, qt.ErrorIs, core.ErrInvalidConfiguration)
	c.Assert(err, qt.ErrorMatches, `unknown device feature "rayTracing": invalid configuration`)
}

func TestParseVersion(t *testing.T) {
	c := qt.New(t)

	tests := []struct {
		in   string
		want core.Version
		ok   bool
	}{
		{"", core.Version{}, true},
		{"1", core.Version{Major: 1}, true},
		{"1.2", core.Version{Major: 1, Minor: 2}, true},
		{"1.2.3", core.Version{Major: 1, Minor: 2, Patch: 3}, true},
		{"1.2.3.4", core.Version{}, false},
		{"1.-2", core.Version{}, false},
		{"1024.0.0", core.Version{}, false},
	}
	for _, test := range tests {
		v, err := config.ParseVersion(test.in)
		if !test.ok {
			c.Assert(err, qt.ErrorIs, core.ErrInvalidConfiguration, qt.Commentf("%q", test.in))
			continue
		}
		c.Assert(err, qt.IsNil, qt.Commentf("%q", test.in))
		c.Assert(v, qt.Equals, test.want)
	}
}

func TestApplyEnv(t *testing.T) {
	envy.Temp(func() {
		c := qt.New(t)

		envy.Set(config.EnvPlatform, "glfw")
		envy.Set(config.EnvTitle, "from env")
		envy.Set(config.EnvWidth, "640")
		envy.Set(config.EnvHeight, "480")
		envy.Set(config.EnvDiagnostics, "true")
		envy.Set(config.EnvLayers, "VK_LAYER_A, VK_LAYER_B")

		cfg, err := config.Default()
		c.Assert(err, qt.IsNil)
		c.Assert(cfg.ApplyEnv(), qt.IsNil)
		c.Assert(cfg.Platform, qt.Equals, "glfw")
		c.Assert(cfg.Window, qt.DeepEquals, config.Window{Width: 640, Height: 480, Title: "from env"})

		bc, err := cfg.BootstrapConfig()
		c.Assert(err, qt.IsNil)
		c.Assert(bc.Layers(), qt.DeepEquals, []core.LayerName{"VK_LAYER_A", "VK_LAYER_B"})
	})
}

func TestApplyEnvInvalid(t *testing.T) {
	envy.Temp(func() {
		c := qt.New(t)

		cfg, err := config.Default()
		c.Assert(err, qt.IsNil)

		envy.Set(config.EnvDiagnostics, "sometimes")
		c.Assert(cfg.ApplyEnv(), qt.ErrorMatches, "VKBOOT_DIAGNOSTICS: .*")

		envy.Set(config.EnvDiagnostics, "")
		envy.Set(config.EnvWidth, "wide")
		c.Assert(cfg.ApplyEnv(), qt.ErrorMatches, "VKBOOT_WIDTH: .*")
	})
}
