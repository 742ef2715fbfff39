// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"errors"
	"unsafe"

	"github.com/devblok/vkboot/core"
)

// recorder keeps the order in which fakes were called
type recorder struct {
	calls []string
}

func (r *recorder) record(call string) {
	r.calls = append(r.calls, call)
}

func (r *recorder) count(call string) int {
	var n int
	for _, c := range r.calls {
		if c == call {
			n++
		}
	}
	return n
}

type fakeDevice struct {
	name     string
	kind     core.DeviceType
	features core.DeviceFeatures
}

type fakeDriver struct {
	rec *recorder

	loadErr         error
	layers          []core.LayerName
	layerStatus     core.Status
	createStatus    core.Status
	enumerateStatus core.Status
	devices         []fakeDevice

	loadedWith       unsafe.Pointer
	createInfos      []core.InstanceCreateInfo
	layerQueries     int
	liveInstances    int
	destroyedHandles []core.InstanceHandle
}

func (d *fakeDriver) Load(procAddr unsafe.Pointer) error {
	d.rec.record("driver.Load")
	d.loadedWith = procAddr
	return d.loadErr
}

func (d *fakeDriver) EnumerateInstanceLayers() ([]core.LayerName, core.Status) {
	d.layerQueries++
	if d.layerStatus.Failed() {
		return nil, d.layerStatus
	}
	return d.layers, core.StatusSuccess
}

func (d *fakeDriver) CreateInstance(info core.InstanceCreateInfo) (core.InstanceHandle, core.Status) {
	d.rec.record("driver.CreateInstance")
	d.createInfos = append(d.createInfos, info)
	if d.createStatus != core.StatusSuccess {
		return nil, d.createStatus
	}
	d.liveInstances++
	return "instance", core.StatusSuccess
}

func (d *fakeDriver) DestroyInstance(instance core.InstanceHandle) {
	d.rec.record("driver.DestroyInstance")
	d.liveInstances--
	d.destroyedHandles = append(d.destroyedHandles, instance)
}

func (d *fakeDriver) EnumeratePhysicalDevices(core.InstanceHandle) ([]core.PhysicalDeviceHandle, core.Status) {
	d.rec.record("driver.EnumeratePhysicalDevices")
	if d.enumerateStatus.Failed() {
		return nil, d.enumerateStatus
	}
	handles := make([]core.PhysicalDeviceHandle, len(d.devices))
	for i := range d.devices {
		handles[i] = d.devices[i].name
	}
	return handles, core.StatusSuccess
}

func (d *fakeDriver) device(handle core.PhysicalDeviceHandle) fakeDevice {
	for _, dev := range d.devices {
		if dev.name == handle.(string) {
			return dev
		}
	}
	panic("unknown device handle")
}

func (d *fakeDriver) PhysicalDeviceProperties(handle core.PhysicalDeviceHandle) core.DeviceProperties {
	dev := d.device(handle)
	return core.DeviceProperties{
		Name: dev.name,
		Type: dev.kind,
	}
}

func (d *fakeDriver) PhysicalDeviceFeatures(handle core.PhysicalDeviceHandle) core.DeviceFeatures {
	return d.device(handle).features
}

type fakePlatform struct {
	rec *recorder

	initErr    error
	windowErr  error
	extensions []core.ExtensionName
	extErr     error
	procAddr   unsafe.Pointer

	// closeAfter is the number of polls after which the window asks to close
	closeAfter int
	polls      int
	window     *fakeWindow
}

func (p *fakePlatform) Init() error {
	p.rec.record("platform.Init")
	return p.initErr
}

func (p *fakePlatform) CreateWindow(width, height uint32, title string) (core.Window, error) {
	p.rec.record("platform.CreateWindow")
	if p.windowErr != nil {
		return nil, p.windowErr
	}
	p.window = &fakeWindow{platform: p, width: width, height: height, title: title}
	return p.window, nil
}

func (p *fakePlatform) RequiredInstanceExtensions() ([]core.ExtensionName, error) {
	p.rec.record("platform.RequiredInstanceExtensions")
	return p.extensions, p.extErr
}

func (p *fakePlatform) ProcAddr() unsafe.Pointer {
	return p.procAddr
}

func (p *fakePlatform) PollEvents() {
	p.polls++
}

func (p *fakePlatform) Shutdown() {
	p.rec.record("platform.Shutdown")
}

type fakeWindow struct {
	platform *fakePlatform
	width    uint32
	height   uint32
	title    string
}

func (w *fakeWindow) ShouldClose() bool {
	return w.platform.polls >= w.platform.closeAfter
}

func (w *fakeWindow) Destroy() {
	w.platform.rec.record("window.Destroy")
}

var (
	integratedNoFeature = fakeDevice{name: "A", kind: core.DeviceTypeIntegratedGPU}
	discreteFeature     = fakeDevice{name: "B", kind: core.DeviceTypeDiscreteGPU, features: core.DeviceFeatures{GeometryShader: true}}
	discreteNoFeature   = fakeDevice{name: "C", kind: core.DeviceTypeDiscreteGPU}
)

var errFake = errors.New("fake failure")

func newFakes() (*recorder, *fakePlatform, *fakeDriver) {
	rec := &recorder{}
	platform := &fakePlatform{
		rec:        rec,
		extensions: []core.ExtensionName{"VK_KHR_surface", "VK_KHR_xlib_surface"},
		closeAfter: 3,
	}
	driver := &fakeDriver{
		rec:     rec,
		layers:  []core.LayerName{"VK_LAYER_MESA_overlay", core.ValidationLayer},
		devices: []fakeDevice{integratedNoFeature, discreteFeature, discreteNoFeature},
	}
	return rec, platform, driver
}

func testConfig() core.BootstrapConfig {
	return core.BootstrapConfig{
		Application: core.ApplicationDescriptor{
			Name:       "vkboot test",
			Version:    core.Version{Major: 1},
			APIVersion: core.Version{Major: 1},
		},
		Window: core.WindowConfiguration{
			Width:  800,
			Height: 600,
			Title:  "vkboot",
		},
		RequestedLayers: []core.LayerName{core.ValidationLayer},
	}
}
