// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package platform provides the windowing layers a context can be
// bootstrapped on. All calls must be made from the main OS thread.
package platform

import (
	"github.com/pkg/errors"

	"github.com/devblok/vkboot/core"
)

// Platform names
const (
	SDLName  = "sdl"
	GLFWName = "glfw"
)

// Names lists the available platforms, the first one is the default
var Names = []string{SDLName, GLFWName}

// New returns the windowing platform with the given name.
// An empty name selects the default.
func New(name string) (core.Platform, error) {
	switch name {
	case "", SDLName:
		return NewSDL(), nil
	case GLFWName:
		return NewGLFW(), nil
	}
	return nil, errors.Errorf("unknown platform %q, expected one of %v", name, Names)
}

func extensionNames(names []string) []core.ExtensionName {
	extensions := make([]core.ExtensionName, len(names))
	for i, name := range names {
		extensions[i] = core.ExtensionName(name)
	}
	return extensions
}
