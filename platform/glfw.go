// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package platform

import (
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"

	"github.com/devblok/vkboot/core"
)

// NewGLFW creates a GLFW windowing platform
func NewGLFW() *GLFW {
	return &GLFW{}
}

// GLFW is the GLFW windowing platform. It manages a single window.
type GLFW struct {
	window *glfw.Window
}

// Init implements interface
func (g *GLFW) Init() error {
	if err := glfw.Init(); err != nil {
		return errors.Wrap(err, "glfw.Init()")
	}

	if !glfw.VulkanSupported() {
		glfw.Terminate()
		return errors.New("glfw.VulkanSupported(): Vulkan loader not found")
	}
	return nil
}

// CreateWindow implements interface
func (g *GLFW) CreateWindow(width, height uint32, title string) (core.Window, error) {
	if g.window != nil {
		return nil, errors.New("glfw: window already created")
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	window, err := glfw.CreateWindow(int(width), int(height), title, nil, nil)
	if err != nil {
		return nil, errors.Wrap(err, "glfw.CreateWindow()")
	}
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	g.window = window
	return &glfwWindow{platform: g, window: window}, nil
}

// RequiredInstanceExtensions implements interface
func (g *GLFW) RequiredInstanceExtensions() ([]core.ExtensionName, error) {
	if g.window == nil {
		return nil, errors.New("glfw: required extensions queried without a window")
	}

	names := g.window.GetRequiredInstanceExtensions()
	if names == nil {
		return nil, errors.New("glfw.GetRequiredInstanceExtensions(): no surface extensions available")
	}
	return extensionNames(names), nil
}

// ProcAddr implements interface
func (g *GLFW) ProcAddr() unsafe.Pointer {
	return glfw.GetVulkanGetInstanceProcAddress()
}

// PollEvents implements interface
func (g *GLFW) PollEvents() {
	glfw.PollEvents()
}

// Shutdown implements interface
func (g *GLFW) Shutdown() {
	glfw.Terminate()
}

type glfwWindow struct {
	platform *GLFW
	window   *glfw.Window
}

func (w *glfwWindow) ShouldClose() bool {
	return w.window.ShouldClose()
}

func (w *glfwWindow) Destroy() {
	w.window.Destroy()
	w.platform.window = nil
}
