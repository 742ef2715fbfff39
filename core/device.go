// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

// SelectionPredicate accepts or rejects a physical device candidate.
// It must be a pure function of the candidate.
type SelectionPredicate func(PhysicalDeviceCandidate) bool

// AnyDevice accepts every candidate.
func AnyDevice(PhysicalDeviceCandidate) bool {
	return true
}

// OfType accepts candidates of any of the given types.
func OfType(types ...DeviceType) SelectionPredicate {
	return func(c PhysicalDeviceCandidate) bool {
		for _, t := range types {
			if c.Properties.Type == t {
				return true
			}
		}
		return false
	}
}

// DiscreteGPU accepts discrete GPUs.
func DiscreteGPU(c PhysicalDeviceCandidate) bool {
	return c.Properties.Type == DeviceTypeDiscreteGPU
}

// HasFeatures accepts candidates that report every feature set in required.
func HasFeatures(required DeviceFeatures) SelectionPredicate {
	return func(c PhysicalDeviceCandidate) bool {
		have := c.Features
		return (!required.GeometryShader || have.GeometryShader) &&
			(!required.TessellationShader || have.TessellationShader) &&
			(!required.SamplerAnisotropy || have.SamplerAnisotropy) &&
			(!required.MultiViewport || have.MultiViewport) &&
			(!required.ShaderFloat64 || have.ShaderFloat64) &&
			(!required.WideLines || have.WideLines)
	}
}

// AllOf accepts candidates accepted by every predicate.
func AllOf(predicates ...SelectionPredicate) SelectionPredicate {
	return func(c PhysicalDeviceCandidate) bool {
		for _, p := range predicates {
			if !p(c) {
				return false
			}
		}
		return true
	}
}

// AnyOf accepts candidates accepted by at least one predicate.
func AnyOf(predicates ...SelectionPredicate) SelectionPredicate {
	return func(c PhysicalDeviceCandidate) bool {
		for _, p := range predicates {
			if p(c) {
				return true
			}
		}
		return false
	}
}

// NewDeviceSelector creates a selector backed by the given enumerator.
func NewDeviceSelector(enumerator DeviceEnumerator) DeviceSelector {
	return DeviceSelector{enumerator: enumerator}
}

// DeviceSelector enumerates physical devices and picks one of them.
type DeviceSelector struct {
	enumerator DeviceEnumerator
}

// Candidates lists the physical devices of the instance in enumeration
// order along with their properties and features. An instance with no
// devices yields ErrNoSuitableHardware.
func (s DeviceSelector) Candidates(instance InstanceHandle) ([]PhysicalDeviceCandidate, error) {
	handles, status := s.enumerator.EnumeratePhysicalDevices(instance)
	if status.Failed() {
		return nil, &StatusError{Op: "vk.EnumeratePhysicalDevices", Code: status}
	}
	if len(handles) == 0 {
		return nil, ErrNoSuitableHardware
	}

	candidates := make([]PhysicalDeviceCandidate, len(handles))
	for i, handle := range handles {
		candidates[i] = PhysicalDeviceCandidate{
			Index:      i,
			Handle:     handle,
			Properties: s.enumerator.PhysicalDeviceProperties(handle),
			Features:   s.enumerator.PhysicalDeviceFeatures(handle),
		}
	}
	return candidates, nil
}

// Select returns the first candidate, in enumeration order, accepted by
// the predicate. Candidates are not scored: callers wanting a preference
// order compose predicates or sort the result of Candidates themselves.
func (s DeviceSelector) Select(instance InstanceHandle, predicate SelectionPredicate) (PhysicalDeviceCandidate, error) {
	candidates, err := s.Candidates(instance)
	if err != nil {
		return PhysicalDeviceCandidate{}, err
	}
	return FirstMatch(candidates, predicate)
}

// FirstMatch returns the first candidate accepted by the predicate.
func FirstMatch(candidates []PhysicalDeviceCandidate, predicate SelectionPredicate) (PhysicalDeviceCandidate, error) {
	if len(candidates) == 0 {
		return PhysicalDeviceCandidate{}, ErrNoSuitableHardware
	}
	if predicate == nil {
		predicate = AnyDevice
	}
	for _, c := range candidates {
		if predicate(c) {
			return c, nil
		}
	}
	return PhysicalDeviceCandidate{}, ErrNoMatchingDevice
}
