// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package platform

import (
	"unsafe"

	"github.com/pkg/errors"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/devblok/vkboot/core"
)

// NewSDL creates an SDL2 windowing platform
func NewSDL() *SDL {
	return &SDL{}
}

// SDL is the SDL2 windowing platform. It manages a single window.
type SDL struct {
	window *sdlWindow
}

// Init implements interface
func (s *SDL) Init() error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return errors.Wrap(err, "sdl.Init()")
	}

	if err := sdl.VulkanLoadLibrary(""); err != nil {
		sdl.Quit()
		return errors.Wrap(err, "sdl.VulkanLoadLibrary()")
	}
	return nil
}

// CreateWindow implements interface
func (s *SDL) CreateWindow(width, height uint32, title string) (core.Window, error) {
	if s.window != nil {
		return nil, errors.New("sdl: window already created")
	}

	window, err := sdl.CreateWindow(title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(width),
		int32(height),
		sdl.WINDOW_VULKAN)
	if err != nil {
		return nil, errors.Wrap(err, "sdl.CreateWindow()")
	}

	s.window = &sdlWindow{platform: s, window: window}
	return s.window, nil
}

// RequiredInstanceExtensions implements interface
func (s *SDL) RequiredInstanceExtensions() ([]core.ExtensionName, error) {
	var window *sdl.Window
	if s.window != nil {
		window = s.window.window
	}

	names := window.VulkanGetInstanceExtensions()
	if names == nil {
		reason := "no extensions reported"
		if err := sdl.GetError(); err != nil {
			reason = err.Error()
		}
		return nil, errors.New("sdl.VulkanGetInstanceExtensions(): " + reason)
	}
	return extensionNames(names), nil
}

// ProcAddr implements interface
func (s *SDL) ProcAddr() unsafe.Pointer {
	return sdl.VulkanGetVkGetInstanceProcAddr()
}

// PollEvents drains the event queue. Quit events, closing the
// window and pressing escape all mark the window for closing.
func (s *SDL) PollEvents() {
	var event sdl.Event
	for event = sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if s.window == nil {
			continue
		}
		switch et := event.(type) {
		case *sdl.KeyboardEvent:
			if et.Keysym.Sym == sdl.K_ESCAPE {
				s.window.close = true
			}
		case *sdl.WindowEvent:
			if et.Event == sdl.WINDOWEVENT_CLOSE {
				s.window.close = true
			}
		case *sdl.QuitEvent:
			s.window.close = true
		}
	}
}

// Shutdown implements interface
func (s *SDL) Shutdown() {
	sdl.VulkanUnloadLibrary()
	sdl.Quit()
}

type sdlWindow struct {
	platform *SDL
	window   *sdl.Window
	close    bool
}

func (w *sdlWindow) ShouldClose() bool {
	return w.close
}

func (w *sdlWindow) Destroy() {
	w.window.Destroy()
	w.platform.window = nil
}
