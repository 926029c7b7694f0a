package mda

import (
	"context"
	"testing"

	"github.com/shimmeringbee/mda/meshtastic"
	"github.com/stretchr/testify/assert"
)

func TestMeshtasticGateway_persistNode(t *testing.T) {
	t.Run("round trips a node through the persistence section", func(t *testing.T) {
		gw, _ := generateTestGateway()
		defer gw.Stop(context.Background())

		node := meshtastic.Node{
			ID: 0x20,
			User: meshtastic.User{
				LongName:      "Remote Node",
				ShortName:     "RN",
				HardwareModel: "TBEAM",
			},
		}

		gw.persistNode(node)

		nodes := gw.nodeListFromPersistence()
		assert.Len(t, nodes, 1)
		assert.Equal(t, node, nodes[0])
	})
}

func TestMeshtasticGateway_persistChannel(t *testing.T) {
	t.Run("round trips a channel, dropping the pre shared key", func(t *testing.T) {
		gw, _ := generateTestGateway()
		defer gw.Stop(context.Background())

		gw.persistChannel(meshtastic.Channel{
			Index: 1,
			Role:  meshtastic.ChannelRoleSecondary,
			Settings: meshtastic.ChannelSettings{
				Name:          "LongFast",
				PSK:           []byte{0x01, 0x02},
				UplinkEnabled: true,
			},
		})

		channels := gw.channelListFromPersistence()
		assert.Len(t, channels, 1)
		assert.Equal(t, meshtastic.ChannelIndex(1), channels[0].Index)
		assert.Equal(t, meshtastic.ChannelRoleSecondary, channels[0].Role)
		assert.Equal(t, "LongFast", channels[0].Settings.Name)
		assert.True(t, channels[0].Settings.UplinkEnabled)
		assert.Nil(t, channels[0].Settings.PSK)
	})
}

func TestMeshtasticGateway_providerLoad(t *testing.T) {
	t.Run("recreates devices from the persisted snapshot", func(t *testing.T) {
		gw, _ := generateTestGateway()
		defer gw.Stop(context.Background())

		gw.persistNode(meshtastic.Node{ID: 0x20, User: meshtastic.User{LongName: "Remote Node"}})
		gw.persistChannel(meshtastic.Channel{Index: 0, Role: meshtastic.ChannelRolePrimary})

		gw.providerLoad(context.Background())

		assert.NotNil(t, gw.getDevice(NodeIdentifier{EntryID: testEntryID, Node: 0x20}))
		assert.NotNil(t, gw.getDevice(ChannelChatIdentifier{EntryID: testEntryID, Gateway: gw.gatewayNode, Channel: 0}))
	})
}
