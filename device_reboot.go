package mda

import (
	"context"
	"fmt"

	"github.com/shimmeringbee/da"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/mda/capabilities"
)

// MeshtasticDeviceReboot issues remote reboots to mesh nodes.
type MeshtasticDeviceReboot struct {
	gateway *MeshtasticGateway
}

func (c *MeshtasticDeviceReboot) Capability() da.Capability {
	return capabilities.DeviceRebootFlag
}

func (c *MeshtasticDeviceReboot) Name() string {
	return capabilities.Names[capabilities.DeviceRebootFlag]
}

// Reboot asks the node behind the device to restart after a short delay,
// giving the radio time to acknowledge the command first.
func (c *MeshtasticDeviceReboot) Reboot(ctx context.Context, device da.Device) error {
	if deviceDoesNotBelongToGateway(c.gateway, device) {
		return DeviceDoesNotBelongToGatewayError
	}

	if !deviceHasCapability(device, capabilities.DeviceRebootFlag) {
		return DeviceDoesNotHaveCapability
	}

	iDev := c.gateway.getDevice(device.Identifier())
	if iDev == nil || iDev.node == nil {
		return fmt.Errorf("unable to find mesh node in mda, likely old device")
	}

	c.gateway.logger.LogInfo(ctx, "Rebooting mesh node.", logwrap.Datum("NodeID", iDev.node.nodeID.String()))

	return c.gateway.provider.Reboot(ctx, iDev.node.nodeID, capabilities.DefaultRebootDelay)
}

var _ capabilities.DeviceReboot = (*MeshtasticDeviceReboot)(nil)
var _ da.BasicCapability = (*MeshtasticDeviceReboot)(nil)
