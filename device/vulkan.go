// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device

import (
	"errors"
	"unsafe"

	vk "github.com/devblok/vulkan"

	"github.com/devblok/vkboot/core"
)

var _ core.Driver = (*Vulkan)(nil)

// NewVulkan creates a Vulkan driver. It has to be loaded before use.
func NewVulkan() *Vulkan {
	return &Vulkan{}
}

// Vulkan implements core.Driver on top of the Vulkan API
type Vulkan struct{}

// Load implements interface
func (v *Vulkan) Load(procAddr unsafe.Pointer) error {
	if procAddr == nil {
		if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
			return errors.New("vk.SetDefaultGetInstanceProcAddr(): " + err.Error())
		}
	} else {
		vk.SetGetInstanceProcAddr(procAddr)
	}

	if err := vk.Init(); err != nil {
		return errors.New("vk.Init(): " + err.Error())
	}
	return nil
}

// EnumerateInstanceLayers implements interface
func (v *Vulkan) EnumerateInstanceLayers() ([]core.LayerName, core.Status) {
	var count uint32
	if ret := core.Status(vk.EnumerateInstanceLayerProperties(&count, nil)); ret.Failed() {
		return nil, ret
	}
	layers := make([]vk.LayerProperties, count)
	if ret := core.Status(vk.EnumerateInstanceLayerProperties(&count, layers)); ret.Failed() {
		return nil, ret
	}

	names := make([]core.LayerName, 0, count)
	for _, layer := range layers[:count] {
		layer.Deref()
		names = append(names, core.LayerName(vk.ToString(layer.LayerName[:])))
	}
	return names, core.StatusSuccess
}

// CreateInstance implements interface
func (v *Vulkan) CreateInstance(info core.InstanceCreateInfo) (core.InstanceHandle, core.Status) {
	extensions := make([]string, len(info.Extensions))
	for i, ext := range info.Extensions {
		extensions[i] = string(ext)
	}
	layers := make([]string, len(info.Layers))
	for i, layer := range info.Layers {
		layers[i] = string(layer)
	}

	instanceInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        applicationInfo(info.Application),
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: safeStrings(extensions),
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     safeStrings(layers),
	}

	var instance vk.Instance
	if ret := core.Status(vk.CreateInstance(&instanceInfo, nil, &instance)); ret != core.StatusSuccess {
		return nil, ret
	}
	vk.InitInstance(instance)
	return instance, core.StatusSuccess
}

// DestroyInstance implements interface
func (v *Vulkan) DestroyInstance(instance core.InstanceHandle) {
	vk.DestroyInstance(instance.(vk.Instance), nil)
}

// EnumeratePhysicalDevices implements interface
func (v *Vulkan) EnumeratePhysicalDevices(instance core.InstanceHandle) ([]core.PhysicalDeviceHandle, core.Status) {
	var deviceCount uint32
	if ret := core.Status(vk.EnumeratePhysicalDevices(instance.(vk.Instance), &deviceCount, nil)); ret.Failed() {
		return nil, ret
	}
	availableDevices := make([]vk.PhysicalDevice, deviceCount)
	if ret := core.Status(vk.EnumeratePhysicalDevices(instance.(vk.Instance), &deviceCount, availableDevices)); ret.Failed() {
		return nil, ret
	}

	handles := make([]core.PhysicalDeviceHandle, deviceCount)
	for i := range handles {
		handles[i] = availableDevices[i]
	}
	return handles, core.StatusSuccess
}

// PhysicalDeviceProperties implements interface
func (v *Vulkan) PhysicalDeviceProperties(device core.PhysicalDeviceHandle) core.DeviceProperties {
	var properties vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(device.(vk.PhysicalDevice), &properties)
	properties.Deref()
	return propertiesFromVulkan(properties)
}

// PhysicalDeviceFeatures implements interface
func (v *Vulkan) PhysicalDeviceFeatures(device core.PhysicalDeviceHandle) core.DeviceFeatures {
	var features vk.PhysicalDeviceFeatures
	vk.GetPhysicalDeviceFeatures(device.(vk.PhysicalDevice), &features)
	features.Deref()
	return featuresFromVulkan(features)
}

// DeviceInfo gathers everything the driver reports about a physical device.
// Failed extension or layer queries mark the info as Invalid.
func (v *Vulkan) DeviceInfo(candidate core.PhysicalDeviceCandidate) PhysicalDeviceInfo {
	device := candidate.Handle.(vk.PhysicalDevice)
	info := newPhysicalDeviceInfo(candidate)

	// Get extension info
	var numDeviceExtensions uint32
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(device, "", &numDeviceExtensions, nil)); err != nil {
		info.Invalid = true
	}
	deviceExt := make([]vk.ExtensionProperties, numDeviceExtensions)
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(device, "", &numDeviceExtensions, deviceExt)); err != nil {
		info.Invalid = true
	}
	for _, ext := range deviceExt {
		ext.Deref()
		info.Extensions = append(info.Extensions, vk.ToString(ext.ExtensionName[:]))
	}

	// Get layers info
	var numDeviceLayers uint32
	if err := vk.Error(vk.EnumerateDeviceLayerProperties(device, &numDeviceLayers, nil)); err != nil {
		info.Invalid = true
	}
	deviceLayers := make([]vk.LayerProperties, numDeviceLayers)
	if err := vk.Error(vk.EnumerateDeviceLayerProperties(device, &numDeviceLayers, deviceLayers)); err != nil {
		info.Invalid = true
	}
	for _, layer := range deviceLayers {
		layer.Deref()
		info.Layers = append(info.Layers, vk.ToString(layer.LayerName[:]))
	}

	// Get memory info
	var memoryProperties vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(device, &memoryProperties)
	memoryProperties.Deref()
	for iMem := uint32(0); iMem < memoryProperties.MemoryHeapCount; iMem++ {
		memoryProperties.MemoryHeaps[iMem].Deref()
		info.Memory += uint64(memoryProperties.MemoryHeaps[iMem].Size)
	}
	return info
}

func applicationInfo(app core.ApplicationDescriptor) *vk.ApplicationInfo {
	return &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		PApplicationName:   safeString(app.Name),
		ApplicationVersion: app.Version.Pack(),
		PEngineName:        safeString(app.Engine()),
		EngineVersion:      app.EngineVersion.Pack(),
		ApiVersion:         app.APIVersion.Pack(),
	}
}

func propertiesFromVulkan(p vk.PhysicalDeviceProperties) core.DeviceProperties {
	return core.DeviceProperties{
		Name:          vk.ToString(p.DeviceName[:]),
		Type:          core.DeviceType(p.DeviceType),
		VendorID:      p.VendorID,
		DeviceID:      p.DeviceID,
		DriverVersion: p.DriverVersion,
		APIVersion:    core.UnpackVersion(p.ApiVersion),
	}
}

func featuresFromVulkan(f vk.PhysicalDeviceFeatures) core.DeviceFeatures {
	return core.DeviceFeatures{
		GeometryShader:     f.GeometryShader == vk.True,
		TessellationShader: f.TessellationShader == vk.True,
		SamplerAnisotropy:  f.SamplerAnisotropy == vk.True,
		MultiViewport:      f.MultiViewport == vk.True,
		ShaderFloat64:      f.ShaderFloat64 == vk.True,
		WideLines:          f.WideLines == vk.True,
	}
}
