package mda

import (
	"context"
	"sync"
	"testing"

	"github.com/shimmeringbee/da"
	dacapabilities "github.com/shimmeringbee/da/capabilities"
	"github.com/shimmeringbee/mda/capabilities"
	"github.com/shimmeringbee/mda/meshtastic"
	"github.com/stretchr/testify/assert"
)

func TestInternalDevice_Contract(t *testing.T) {
	t.Run("can be assigned to a da.Device", func(t *testing.T) {
		iDev := &internalDevice{mutex: &sync.RWMutex{}}
		var i interface{} = iDev
		_, ok := i.(da.Device)
		assert.True(t, ok)
	})
}

func TestInternalDevice_Capability(t *testing.T) {
	t.Run("returns nil for a capability the device does not carry", func(t *testing.T) {
		gw, _, _ := generateGatewayWithNode()
		defer gw.Stop(context.Background())

		chatDev := gw.getDevice(DirectMessageChatIdentifier{EntryID: testEntryID, Gateway: gw.gatewayNode})

		assert.Nil(t, chatDev.Capability(capabilities.DeviceRebootFlag))
		assert.Nil(t, chatDev.Capability(dacapabilities.ProductInformationFlag))
	})

	t.Run("returns the device scoped product information instance", func(t *testing.T) {
		gw, _, iNode := generateGatewayWithNode()
		defer gw.Stop(context.Background())

		c := iNode.device.Capability(dacapabilities.ProductInformationFlag)
		assert.NotNil(t, c)

		_, ok := c.(dacapabilities.ProductInformation)
		assert.True(t, ok)
	})

	t.Run("returns the gateway's shared implementation for chat and reboot", func(t *testing.T) {
		gw, _, iNode := generateGatewayWithNode()
		defer gw.Stop(context.Background())

		assert.Same(t, gw.Capability(capabilities.DeviceRebootFlag), iNode.device.Capability(capabilities.DeviceRebootFlag))

		chatDev := gw.getDevice(DirectMessageChatIdentifier{EntryID: testEntryID, Gateway: gw.gatewayNode})
		assert.Same(t, gw.Capability(capabilities.ChatFlag), chatDev.Capability(capabilities.ChatFlag))
	})
}

func TestIdentifiers(t *testing.T) {
	t.Run("render the entry scoped forms hosts key devices by", func(t *testing.T) {
		assert.Equal(t, "entry_node_32", NodeIdentifier{EntryID: "entry", Node: meshtastic.NodeID(0x20)}.String())
		assert.Equal(t, "entry_chat_channel_16_1", ChannelChatIdentifier{EntryID: "entry", Gateway: 0x10, Channel: 1}.String())
		assert.Equal(t, "entry_chat_dm_16", DirectMessageChatIdentifier{EntryID: "entry", Gateway: 0x10}.String())
	})
}
