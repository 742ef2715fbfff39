// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package core bootstraps a graphics context: it opens a window, loads the
// driver, creates an API instance with optional validation layers, selects a
// physical device and runs the event loop until the window closes.
// All handles are released in reverse order of acquisition.
package core

import (
	"fmt"
	"unsafe"
)

// LayerName identifies an instance layer, such as "VK_LAYER_KHRONOS_validation".
type LayerName string

// ExtensionName identifies an instance extension, such as "VK_KHR_surface".
type ExtensionName string

// InstanceHandle is the driver's opaque instance handle.
type InstanceHandle interface{}

// PhysicalDeviceHandle is the driver's opaque physical device handle.
type PhysicalDeviceHandle interface{}

// Version is a major.minor.patch version triple.
type Version struct {
	Major uint32
	Minor uint32
	Patch uint32
}

// Pack encodes the version the way the driver expects it.
func (v Version) Pack() uint32 {
	return v.Major<<22 | v.Minor<<12 | v.Patch
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// UnpackVersion decodes a version previously encoded with Pack.
func UnpackVersion(packed uint32) Version {
	return Version{
		Major: packed >> 22,
		Minor: (packed >> 12) & 0x3ff,
		Patch: packed & 0xfff,
	}
}

// DefaultEngineName is used when an ApplicationDescriptor leaves EngineName empty.
const DefaultEngineName = "No Engine"

// ApplicationDescriptor describes the application to the driver.
type ApplicationDescriptor struct {
	Name          string
	Version       Version
	EngineName    string
	EngineVersion Version
	APIVersion    Version
}

// Engine returns the engine name, falling back to DefaultEngineName.
func (a ApplicationDescriptor) Engine() string {
	if a.EngineName == "" {
		return DefaultEngineName
	}
	return a.EngineName
}

// InstanceCreateInfo is everything the driver needs to create an instance.
type InstanceCreateInfo struct {
	Application ApplicationDescriptor
	Extensions  []ExtensionName
	Layers      []LayerName
}

// DeviceType is the kind of a physical device, with the driver's numbering.
type DeviceType int32

// Known physical device types
const (
	DeviceTypeOther DeviceType = iota
	DeviceTypeIntegratedGPU
	DeviceTypeDiscreteGPU
	DeviceTypeVirtualGPU
	DeviceTypeCPU
)

var deviceTypeNames = map[DeviceType]string{
	DeviceTypeOther:         "other",
	DeviceTypeIntegratedGPU: "integrated",
	DeviceTypeDiscreteGPU:   "discrete",
	DeviceTypeVirtualGPU:    "virtual",
	DeviceTypeCPU:           "cpu",
}

func (t DeviceType) String() string {
	if name, ok := deviceTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("DeviceType(%d)", int32(t))
}

// ParseDeviceType is the inverse of DeviceType.String.
func ParseDeviceType(s string) (DeviceType, bool) {
	for t, name := range deviceTypeNames {
		if name == s {
			return t, true
		}
	}
	return DeviceTypeOther, false
}

// DeviceProperties are the static properties of a physical device.
type DeviceProperties struct {
	Name          string
	Type          DeviceType
	VendorID      uint32
	DeviceID      uint32
	DriverVersion uint32
	APIVersion    Version
}

// DeviceFeatures are the optional capabilities a physical device reports.
type DeviceFeatures struct {
	GeometryShader     bool `json:"geometryShader"`
	TessellationShader bool `json:"tessellationShader"`
	SamplerAnisotropy  bool `json:"samplerAnisotropy"`
	MultiViewport      bool `json:"multiViewport"`
	ShaderFloat64      bool `json:"shaderFloat64"`
	WideLines          bool `json:"wideLines"`
}

// PhysicalDeviceCandidate is an enumerated physical device together
// with its queried properties. It is never mutated.
type PhysicalDeviceCandidate struct {
	// Index is the position in the driver's enumeration order
	Index      int
	Handle     PhysicalDeviceHandle
	Properties DeviceProperties
	Features   DeviceFeatures
}

// LayerEnumerator lists the instance layers of the current environment.
type LayerEnumerator interface {
	EnumerateInstanceLayers() ([]LayerName, Status)
}

// InstanceCreator creates and destroys API instances.
type InstanceCreator interface {
	CreateInstance(info InstanceCreateInfo) (InstanceHandle, Status)
	DestroyInstance(InstanceHandle)
}

// DeviceEnumerator lists and queries the physical devices of an instance.
type DeviceEnumerator interface {
	EnumeratePhysicalDevices(InstanceHandle) ([]PhysicalDeviceHandle, Status)
	PhysicalDeviceProperties(PhysicalDeviceHandle) DeviceProperties
	PhysicalDeviceFeatures(PhysicalDeviceHandle) DeviceFeatures
}

// Driver is the graphics driver layer the context is built on.
type Driver interface {
	LayerEnumerator
	InstanceCreator
	DeviceEnumerator

	// Load resolves the driver entry points. The procAddr is the
	// windowing layer's instance proc address loader, nil means
	// the system default loader.
	Load(procAddr unsafe.Pointer) error
}

// Window is a platform window borrowed from the windowing layer.
type Window interface {
	// ShouldClose reports whether the window was asked to close
	ShouldClose() bool

	// Destroy destroys the window
	Destroy()
}

// Platform describes the windowing layer. Init must succeed
// before any other call, Shutdown is the last call made.
type Platform interface {
	Init() error
	CreateWindow(width, height uint32, title string) (Window, error)

	// RequiredInstanceExtensions returns the extensions instance must
	// enable so that the windowing layer can present to its windows
	RequiredInstanceExtensions() ([]ExtensionName, error)

	// ProcAddr returns the instance proc address loader,
	// nil if the platform leaves loading to the driver
	ProcAddr() unsafe.Pointer

	PollEvents()
	Shutdown()
}
