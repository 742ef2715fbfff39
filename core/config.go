// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"github.com/pkg/errors"
)

// ValidationLayer is the Khronos validation layer, the usual
// diagnostics layer.
const ValidationLayer LayerName = "VK_LAYER_KHRONOS_validation"

// BootstrapConfig defines how a Context is bootstrapped
type BootstrapConfig struct {
	Application ApplicationDescriptor
	Window      WindowConfiguration
	Time        TimeConfiguration
	Device      DeviceConfiguration

	// EnableDiagnostics turns on the RequestedLayers. If any of them
	// is unavailable the bootstrap fails
	EnableDiagnostics bool
	RequestedLayers   []LayerName
}

// WindowConfiguration is used to configure the window
type WindowConfiguration struct {
	Width  uint32
	Height uint32
	Title  string
}

// TimeConfiguration is used to configure time services
type TimeConfiguration struct {
	// EventPollDelay is the delay between event polls in milliseconds.
	// To poll continuously, set to 0
	EventPollDelay int
}

// DeviceConfiguration is used to configure physical device selection
type DeviceConfiguration struct {
	// Select enables physical device selection. When off, the context
	// runs with an instance only
	Select bool

	// Types accepts devices of any of these types, empty accepts all.
	// Names as in DeviceType.String
	Types []string

	// Features the device must support, e.g. "geometryShader"
	Features []string
}

// Layers returns the layers to enable, none unless diagnostics are on.
func (c BootstrapConfig) Layers() []LayerName {
	if !c.EnableDiagnostics {
		return nil
	}
	return c.RequestedLayers
}

// Validate checks the configuration for values the bootstrap cannot use.
func (c BootstrapConfig) Validate() error {
	if c.Window.Width == 0 || c.Window.Height == 0 {
		return errors.WithMessagef(ErrInvalidConfiguration, "window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.Title == "" {
		return errors.WithMessage(ErrInvalidConfiguration, "empty window title")
	}
	if c.Time.EventPollDelay < 0 {
		return errors.WithMessagef(ErrInvalidConfiguration, "negative event poll delay %d", c.Time.EventPollDelay)
	}
	if c.EnableDiagnostics {
		if len(c.RequestedLayers) == 0 {
			return errors.WithMessage(ErrInvalidConfiguration, "diagnostics enabled without layers")
		}
		for _, layer := range c.RequestedLayers {
			if layer == "" {
				return errors.WithMessage(ErrInvalidConfiguration, "empty layer name")
			}
		}
	}
	if _, err := c.Device.Predicate(); err != nil {
		return err
	}
	return nil
}

// Predicate builds the selection predicate described by the configuration.
func (c DeviceConfiguration) Predicate() (SelectionPredicate, error) {
	var predicates []SelectionPredicate

	if len(c.Types) > 0 {
		types := make([]DeviceType, 0, len(c.Types))
		for _, name := range c.Types {
			t, ok := ParseDeviceType(name)
			if !ok {
				return nil, errors.WithMessagef(ErrInvalidConfiguration, "unknown device type %q", name)
			}
			types = append(types, t)
		}
		predicates = append(predicates, OfType(types...))
	}

	if len(c.Features) > 0 {
		var required DeviceFeatures
		for _, name := range c.Features {
			if !setFeature(&required, name) {
				return nil, errors.WithMessagef(ErrInvalidConfiguration, "unknown device feature %q", name)
			}
		}
		predicates = append(predicates, HasFeatures(required))
	}

	if len(predicates) == 0 {
		return AnyDevice, nil
	}
	return AllOf(predicates...), nil
}

func setFeature(f *DeviceFeatures, name string) bool {
	switch name {
	case "geometryShader":
		f.GeometryShader = true
	case "tessellationShader":
		f.TessellationShader = true
	case "samplerAnisotropy":
		f.SamplerAnisotropy = true
	case "multiViewport":
		f.MultiViewport = true
	case "shaderFloat64":
		f.ShaderFloat64 = true
	case "wideLines":
		f.WideLines = true
	default:
		return false
	}
	return true
}
