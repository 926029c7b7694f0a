package mda

import (
	"errors"

	"github.com/shimmeringbee/da"
)

// Sentinel errors returned by capability guard clauses.
var DeviceDoesNotBelongToGatewayError = errors.New("device does not belong to gateway")
var DeviceDoesNotHaveCapability = errors.New("device does not have capability")

func deviceDoesNotBelongToGateway(gateway da.Gateway, device da.Device) bool {
	return device.Gateway() != gateway
}

func deviceHasCapability(device da.Device, capability da.Capability) bool {
	return isCapabilityInSlice(device.Capabilities(), capability)
}

func isCapabilityInSlice(haystack []da.Capability, needle da.Capability) bool {
	for _, straw := range haystack {
		if straw == needle {
			return true
		}
	}

	return false
}
