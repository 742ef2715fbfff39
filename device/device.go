// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package device implements the graphics driver layer and
// reports on the physical devices it exposes.
package device

import (
	"fmt"

	"github.com/devblok/vkboot/core"
)

// PhysicalDeviceInfo describes available physical properties of a rendering device
type PhysicalDeviceInfo struct {
	Index         int                 `json:"index"`
	ID            uint32              `json:"id"`
	VendorID      uint32              `json:"vendorId"`
	DriverVersion uint32              `json:"driverVersion"`
	APIVersion    string              `json:"apiVersion"`
	Name          string              `json:"name"`
	Type          string              `json:"type"`
	Invalid       bool                `json:"invalid"`
	Extensions    []string            `json:"extensions"`
	Layers        []string            `json:"layers"`
	Memory        uint64              `json:"memory"`
	Features      core.DeviceFeatures `json:"features"`
}

func newPhysicalDeviceInfo(c core.PhysicalDeviceCandidate) PhysicalDeviceInfo {
	return PhysicalDeviceInfo{
		Index:         c.Index,
		ID:            c.Properties.DeviceID,
		VendorID:      c.Properties.VendorID,
		DriverVersion: c.Properties.DriverVersion,
		APIVersion:    c.Properties.APIVersion.String(),
		Name:          c.Properties.Name,
		Type:          c.Properties.Type.String(),
		Features:      c.Features,
	}
}

func (i PhysicalDeviceInfo) String() string {
	return fmt.Sprintf("#%d %s (%s, vendor 0x%04x, device 0x%04x)", i.Index, i.Name, i.Type, i.VendorID, i.ID)
}

func safeString(s string) string {
	return fmt.Sprintf("%s\x00", s)
}

func safeStrings(sgs []string) []string {
	safe := []string{}
	for _, s := range sgs {
		safe = append(safe, safeString(s))
	}
	return safe
}
