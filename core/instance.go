// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

// NewInstanceFactory creates an instance factory. The registry
// is consulted only when layers are enabled.
func NewInstanceFactory(creator InstanceCreator, registry LayerRegistry) InstanceFactory {
	return InstanceFactory{
		creator:  creator,
		registry: registry,
	}
}

// InstanceFactory creates API instances.
type InstanceFactory struct {
	creator  InstanceCreator
	registry LayerRegistry
}

// CreateInstance creates exactly one instance or nothing at all.
// Requested layers that are not available are an error, they
// are never silently dropped.
func (f InstanceFactory) CreateInstance(app ApplicationDescriptor, extensions []ExtensionName, enableLayers bool, layers []LayerName) (InstanceHandle, error) {
	info := InstanceCreateInfo{
		Application: app,
		Extensions:  extensions,
	}

	if enableLayers {
		if !f.registry.Supported(layers) {
			return nil, ErrValidationLayersUnavailable
		}
		info.Layers = layers
	}

	instance, status := f.creator.CreateInstance(info)
	if status != StatusSuccess {
		return nil, &InstanceCreationError{Code: status}
	}
	return instance, nil
}
