package mda

import (
	"fmt"
	"sync"

	"github.com/shimmeringbee/da"
	dacapabilities "github.com/shimmeringbee/da/capabilities"
	"github.com/shimmeringbee/mda/capabilities"
	"github.com/shimmeringbee/mda/meshtastic"
)

// NodeIdentifier identifies the device representing a mesh node.
type NodeIdentifier struct {
	EntryID string
	Node    meshtastic.NodeID
}

func (i NodeIdentifier) String() string {
	return fmt.Sprintf("%s_node_%d", i.EntryID, uint32(i.Node))
}

// ChannelChatIdentifier identifies the chat device for a channel slot on the
// gateway node.
type ChannelChatIdentifier struct {
	EntryID string
	Gateway meshtastic.NodeID
	Channel meshtastic.ChannelIndex
}

func (i ChannelChatIdentifier) String() string {
	return fmt.Sprintf("%s_chat_channel_%d_%d", i.EntryID, uint32(i.Gateway), i.Channel)
}

// DirectMessageChatIdentifier identifies the gateway's direct message chat
// device.
type DirectMessageChatIdentifier struct {
	EntryID string
	Gateway meshtastic.NodeID
}

func (i DirectMessageChatIdentifier) String() string {
	return fmt.Sprintf("%s_chat_dm_%d", i.EntryID, uint32(i.Gateway))
}

type internalDevice struct {
	// Immutable, no locking required.
	gateway    *MeshtasticGateway
	identifier da.Identifier
	node       *internalNode
	mutex      *sync.RWMutex

	productInformation *productInformation
	chat               *chatState

	// Mutable, locking must be obtained first.
	capabilities []da.Capability
}

func (d *internalDevice) Gateway() da.Gateway {
	return d.gateway
}

func (d *internalDevice) Identifier() da.Identifier {
	return d.identifier
}

func (d *internalDevice) Capabilities() []da.Capability {
	d.mutex.RLock()
	defer d.mutex.RUnlock()

	return append([]da.Capability(nil), d.capabilities...)
}

// Capability returns the device scoped product information instance for its
// flag, and the gateway's shared implementation for everything else.
func (d *internalDevice) Capability(capability da.Capability) da.BasicCapability {
	if !deviceHasCapability(d, capability) {
		return nil
	}

	if capability == dacapabilities.ProductInformationFlag {
		return d.productInformation
	}

	return d.gateway.Capability(capability)
}

func (d *internalDevice) addCapability(capability da.Capability) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if !isCapabilityInSlice(d.capabilities, capability) {
		d.capabilities = append(d.capabilities, capability)
	}
}

var _ da.Device = (*internalDevice)(nil)

// chatState is the destination descriptor and per-chat state of a chat
// device. A nil channel means the chat transmits as broadcast.
type chatState struct {
	channel *meshtastic.ChannelIndex
	name    string
	role    meshtastic.ChannelRole

	compose string
	history []capabilities.ChatMessage
}
