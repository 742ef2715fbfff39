// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

// NewLayerRegistry creates a registry backed by the given enumerator.
func NewLayerRegistry(enumerator LayerEnumerator) LayerRegistry {
	return LayerRegistry{enumerator: enumerator}
}

// LayerRegistry answers which instance layers the environment provides.
type LayerRegistry struct {
	enumerator LayerEnumerator
}

// Available returns the layers the environment provides, in the order
// the driver reports them.
func (r LayerRegistry) Available() ([]LayerName, error) {
	layers, status := r.enumerator.EnumerateInstanceLayers()
	if status.Failed() {
		return nil, &StatusError{Op: "vk.EnumerateInstanceLayerProperties", Code: status}
	}
	return layers, nil
}

// Supported reports whether every requested layer is available.
// A failed enumeration counts as nothing being available.
func (r LayerRegistry) Supported(requested []LayerName) bool {
	available, err := r.Available()
	if err != nil {
		return false
	}

	for _, name := range requested {
		found := false
		for _, layer := range available {
			if layer == name {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
