package mda

import (
	"context"

	"github.com/shimmeringbee/mda/meshtastic"
)

const testEntryID = "entry"

func generateTestGateway() (*MeshtasticGateway, *meshtastic.MockProvider) {
	provider := &meshtastic.MockProvider{}

	gw := New(testEntryID, provider)
	gw.gatewayNode = meshtastic.NodeID(0x10)

	return gw, provider
}

// generateGatewayWithNode returns a gateway with its own node enumerated, as
// it would be after Start.
func generateGatewayWithNode() (*MeshtasticGateway, *meshtastic.MockProvider, *internalNode) {
	gw, provider := generateTestGateway()

	iNode := gw.updateNode(context.Background(), meshtastic.Node{
		ID: gw.gatewayNode,
		User: meshtastic.User{
			LongName:      "Gateway Node",
			ShortName:     "GW",
			HardwareModel: "HELTEC_V3",
		},
	})

	gw.self = iNode.device

	return gw, provider, iNode
}

func channelIndex(i meshtastic.ChannelIndex) *meshtastic.ChannelIndex {
	return &i
}
