// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// Bootstrap errors. None of them are retried, the only way out is to
// run the whole bootstrap again with a different configuration.
var (
	ErrPlatformInit                = errors.New("windowing platform initialisation failed")
	ErrWindowCreation              = errors.New("window creation failed")
	ErrDriverLoad                  = errors.New("graphics driver could not be loaded")
	ErrRequiredExtensions          = errors.New("required instance extensions are unknown")
	ErrValidationLayersUnavailable = errors.New("validation layers requested, but not available")
	ErrNoSuitableHardware          = errors.New("no physical devices with driver support found")
	ErrNoMatchingDevice            = errors.New("no physical device matches the selection criteria")
	ErrInvalidConfiguration        = errors.New("invalid configuration")
	ErrInvalidState                = errors.New("invalid context state")
)

// Status is a driver result code.
type Status int32

// Driver result codes
const (
	StatusSuccess                   Status = 0
	StatusNotReady                  Status = 1
	StatusTimeout                   Status = 2
	StatusIncomplete                Status = 5
	StatusErrorOutOfHostMemory      Status = -1
	StatusErrorOutOfDeviceMemory    Status = -2
	StatusErrorInitializationFailed Status = -3
	StatusErrorDeviceLost           Status = -4
	StatusErrorLayerNotPresent      Status = -6
	StatusErrorExtensionNotPresent  Status = -7
	StatusErrorFeatureNotPresent    Status = -8
	StatusErrorIncompatibleDriver   Status = -9
)

var statusNames = map[Status]string{
	StatusSuccess:                   "VK_SUCCESS",
	StatusNotReady:                  "VK_NOT_READY",
	StatusTimeout:                   "VK_TIMEOUT",
	StatusIncomplete:                "VK_INCOMPLETE",
	StatusErrorOutOfHostMemory:      "VK_ERROR_OUT_OF_HOST_MEMORY",
	StatusErrorOutOfDeviceMemory:    "VK_ERROR_OUT_OF_DEVICE_MEMORY",
	StatusErrorInitializationFailed: "VK_ERROR_INITIALIZATION_FAILED",
	StatusErrorDeviceLost:           "VK_ERROR_DEVICE_LOST",
	StatusErrorLayerNotPresent:      "VK_ERROR_LAYER_NOT_PRESENT",
	StatusErrorExtensionNotPresent:  "VK_ERROR_EXTENSION_NOT_PRESENT",
	StatusErrorFeatureNotPresent:    "VK_ERROR_FEATURE_NOT_PRESENT",
	StatusErrorIncompatibleDriver:   "VK_ERROR_INCOMPATIBLE_DRIVER",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("VkResult(%d)", int32(s))
}

// Failed reports whether the status is an error code.
// Positive codes such as StatusIncomplete are not failures.
func (s Status) Failed() bool {
	return s < 0
}

// InstanceCreationError is returned when the driver refuses to create an instance.
type InstanceCreationError struct {
	Code Status
}

func (e *InstanceCreationError) Error() string {
	return "vk.CreateInstance(): " + e.Code.String()
}

// StatusError is a failed driver query other than instance creation.
type StatusError struct {
	Op   string
	Code Status
}

func (e *StatusError) Error() string {
	return e.Op + "(): " + e.Code.String()
}
