// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// State is a stage of the context lifecycle
type State int

// Context lifecycle states, in acquisition order
const (
	StateUninitialized State = iota
	StateWindowOpen
	StateInstanceReady
	StateDeviceSelected
	StateRunning
	StateTornDown
)

var stateNames = [...]string{
	StateUninitialized:  "uninitialized",
	StateWindowOpen:     "window-open",
	StateInstanceReady:  "instance-ready",
	StateDeviceSelected: "device-selected",
	StateRunning:        "running",
	StateTornDown:       "torn-down",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// Option configures a Context
type Option func(*Context)

// WithLogger sets the logger the context reports its progress to
func WithLogger(logger log.FieldLogger) Option {
	return func(c *Context) {
		c.log = logger
	}
}

// NewContext creates a context in the uninitialized state.
// Nothing is acquired until Bootstrap or the individual steps are called.
func NewContext(cfg BootstrapConfig, platform Platform, driver Driver, opts ...Option) (*Context, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Context{
		configuration: cfg,
		platform:      platform,
		driver:        driver,
		log:           log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Context owns the window, instance and selected device. It must
// only be used from the goroutine that created it, which is expected
// to be locked to its OS thread.
type Context struct {
	configuration BootstrapConfig
	platform      Platform
	driver        Driver
	log           log.FieldLogger

	state         State
	platformReady bool
	window        Window
	instance      InstanceHandle
	device        *PhysicalDeviceCandidate
}

// State returns the current lifecycle state
func (c *Context) State() State {
	return c.state
}

// Window returns the borrowed window, nil before StateWindowOpen
func (c *Context) Window() Window {
	return c.window
}

// Instance returns the instance handle, nil before StateInstanceReady
func (c *Context) Instance() InstanceHandle {
	return c.instance
}

// Device returns the selected physical device, if any
func (c *Context) Device() (PhysicalDeviceCandidate, bool) {
	if c.device == nil {
		return PhysicalDeviceCandidate{}, false
	}
	return *c.device, true
}

// Bootstrap runs every acquisition step in order. Device selection
// is run only when the configuration asks for it. On failure every
// handle acquired so far is released before the error is returned.
func (c *Context) Bootstrap() error {
	if err := c.OpenWindow(); err != nil {
		return err
	}
	if err := c.CreateInstance(); err != nil {
		return err
	}
	if !c.configuration.Device.Select {
		return nil
	}

	predicate, err := c.configuration.Device.Predicate()
	if err != nil {
		c.unwind()
		return err
	}
	return c.SelectDevice(predicate)
}

// OpenWindow initialises the windowing platform and opens the window
func (c *Context) OpenWindow() error {
	if c.state != StateUninitialized {
		return c.invalidState("OpenWindow")
	}

	if err := c.platform.Init(); err != nil {
		return failure(ErrPlatformInit, err)
	}
	c.platformReady = true

	wc := c.configuration.Window
	window, err := c.platform.CreateWindow(wc.Width, wc.Height, wc.Title)
	if err != nil {
		c.unwind()
		return failure(ErrWindowCreation, err)
	}
	c.window = window
	c.state = StateWindowOpen

	c.log.WithFields(log.Fields{
		"state":  c.state,
		"width":  wc.Width,
		"height": wc.Height,
	}).Debug("Window opened")
	return nil
}

// CreateInstance loads the driver and creates the instance with the
// extensions the windowing platform requires. Validation layers are
// enabled only when diagnostics are configured.
func (c *Context) CreateInstance() error {
	if c.state != StateWindowOpen {
		return c.invalidState("CreateInstance")
	}

	if err := c.driver.Load(c.platform.ProcAddr()); err != nil {
		c.unwind()
		return failure(ErrDriverLoad, err)
	}

	extensions, err := c.platform.RequiredInstanceExtensions()
	if err != nil {
		c.unwind()
		return failure(ErrRequiredExtensions, err)
	}

	factory := NewInstanceFactory(c.driver, NewLayerRegistry(c.driver))
	layers := c.configuration.Layers()
	instance, err := factory.CreateInstance(c.configuration.Application, extensions, c.configuration.EnableDiagnostics, layers)
	if err != nil {
		c.unwind()
		return err
	}
	c.instance = instance
	c.state = StateInstanceReady

	c.log.WithFields(log.Fields{
		"state":      c.state,
		"extensions": extensions,
		"layers":     layers,
	}).Info("Instance created")
	return nil
}

// SelectDevice picks the first physical device accepted by the predicate
func (c *Context) SelectDevice(predicate SelectionPredicate) error {
	if c.state != StateInstanceReady {
		return c.invalidState("SelectDevice")
	}

	device, err := NewDeviceSelector(c.driver).Select(c.instance, predicate)
	if err != nil {
		c.unwind()
		return err
	}
	c.device = &device
	c.state = StateDeviceSelected

	c.log.WithFields(log.Fields{
		"state":  c.state,
		"device": device.Properties.Name,
		"type":   device.Properties.Type,
		"index":  device.Index,
	}).Info("Physical device selected")
	return nil
}

// Run polls window events until the window is asked to close or ctx
// is cancelled, then tears the context down. If the configuration asks
// for device selection, Run refuses to start without a device.
func (c *Context) Run(ctx context.Context) error {
	switch {
	case c.state == StateDeviceSelected:
	case c.state == StateInstanceReady && !c.configuration.Device.Select:
	default:
		return c.invalidState("Run")
	}
	c.state = StateRunning
	defer c.Destroy()

	c.log.WithField("state", c.state).Debug("Event loop started")

	timeService := NewTime(c.configuration.Time)
	defer timeService.Stop()

EventLoop:
	for {
		select {
		case <-ctx.Done():
			c.log.Debug("Event loop cancelled")
			break EventLoop
		case <-timeService.EventTicker().C:
			c.platform.PollEvents()
			if c.window.ShouldClose() {
				break EventLoop
			}
		}
	}

	c.log.Debug("Event loop exited")
	return nil
}

// Destroy releases everything the context holds, in reverse order
// of acquisition. It is safe to call more than once.
func (c *Context) Destroy() {
	if c.state == StateTornDown {
		return
	}
	c.unwind()
	c.state = StateTornDown
	c.log.WithField("state", c.state).Debug("Context destroyed")
}

// unwind releases held handles and returns the context to
// the uninitialized state. Physical devices are not owned.
func (c *Context) unwind() {
	c.device = nil
	if c.instance != nil {
		c.driver.DestroyInstance(c.instance)
		c.instance = nil
	}
	if c.window != nil {
		c.window.Destroy()
		c.window = nil
	}
	if c.platformReady {
		c.platform.Shutdown()
		c.platformReady = false
	}
	c.state = StateUninitialized
}

func (c *Context) invalidState(step string) error {
	return errors.WithMessagef(ErrInvalidState, "%s in state %s", step, c.state)
}

// bootstrapError attaches the underlying cause to a bootstrap error
type bootstrapError struct {
	err   error
	cause error
}

func failure(err, cause error) error {
	return &bootstrapError{err: err, cause: cause}
}

func (e *bootstrapError) Error() string {
	return e.err.Error() + ": " + e.cause.Error()
}

func (e *bootstrapError) Cause() error {
	return e.cause
}

func (e *bootstrapError) Unwrap() []error {
	return []error{e.err, e.cause}
}
