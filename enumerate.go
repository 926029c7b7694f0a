package mda

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shimmeringbee/da"
	dacapabilities "github.com/shimmeringbee/da/capabilities"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/mda/capabilities"
	"github.com/shimmeringbee/mda/meshtastic"
	"github.com/shimmeringbee/mda/rules"
	"github.com/shimmeringbee/retry"
)

const DefaultNetworkTimeout = 3000 * time.Millisecond
const DefaultNetworkRetries = 5

// ruleCapabilityFlags maps rule output capability names onto da capability
// flags attached to node devices. Chat capabilities are handled separately,
// as they create devices of their own.
var ruleCapabilityFlags = map[string]da.Capability{
	rules.CapabilityDeviceReboot:    capabilities.DeviceRebootFlag,
	rules.CapabilityNodeInformation: dacapabilities.ProductInformationFlag,
}

// enumerate builds devices from the radio's node and channel snapshots. The
// semaphore keeps a second enumeration from starting while one is running;
// provider events are serialised separately by the single provider loop
// goroutine.
func (m *MeshtasticGateway) enumerate(pctx context.Context, gatewayNode meshtastic.Node) error {
	if err := m.enumerationSem.Acquire(pctx, 1); err != nil {
		return fmt.Errorf("failed to acquire enumeration semaphore: %w", err)
	}
	defer m.enumerationSem.Release(1)

	ctx, end := m.logger.Segment(pctx, "Enumerating mesh.")
	defer end()

	m.updateNode(ctx, gatewayNode)

	var nodes map[meshtastic.NodeID]meshtastic.Node

	if err := retry.Retry(ctx, DefaultNetworkTimeout, DefaultNetworkRetries, func(rctx context.Context) error {
		n, err := m.provider.Nodes(rctx)
		if err == nil {
			nodes = n
		}
		return err
	}); err != nil {
		return fmt.Errorf("failed to query mesh nodes: %w", err)
	}

	for _, n := range nodes {
		if n.ID == gatewayNode.ID {
			continue
		}

		m.updateNode(ctx, n)
	}

	var channels []meshtastic.Channel

	if err := retry.Retry(ctx, DefaultNetworkTimeout, DefaultNetworkRetries, func(rctx context.Context) error {
		c, err := m.provider.Channels(rctx)
		if err == nil {
			channels = c
		}
		return err
	}); err != nil {
		return fmt.Errorf("failed to query channels: %w", err)
	}

	for _, c := range channels {
		m.updateChannel(ctx, c)
	}

	return nil
}

// updateNode creates or refreshes the node and its device, attaching the
// capabilities the rule engine grants.
func (m *MeshtasticGateway) updateNode(ctx context.Context, n meshtastic.Node) *internalNode {
	iNode, created := m.createNode(n.ID)

	iNode.mutex.Lock()
	iNode.node = n
	iNode.mutex.Unlock()

	if created {
		m.logger.LogInfo(ctx, "New mesh node.", logwrap.Datum("NodeID", n.ID.String()))
	}

	out, err := m.ruleEngine.Execute(rules.Input{Node: ruleInputForNode(n, n.ID == m.gatewayNode)})
	if err != nil {
		m.logger.LogError(ctx, "Failed to execute rules for node.", logwrap.Err(err), logwrap.Datum("NodeID", n.ID.String()))
		return iNode
	}

	var flags []da.Capability

	for name := range out.Capabilities {
		if flag, ok := ruleCapabilityFlags[name]; ok {
			flags = append(flags, flag)
		}
	}

	m.createNodeDevice(iNode, flags)

	if _, ok := out.Capabilities[rules.CapabilityDirectMessageChat]; ok {
		id := DirectMessageChatIdentifier{EntryID: m.entryID, Gateway: n.ID}
		m.createChatDevice(ctx, id, &chatState{name: "Direct Message Chat"})
	}

	if err := m.callbacks.Call(ctx, internalNodeUpdate{node: iNode}); err != nil {
		m.logger.LogWarn(ctx, "Internal node update callback failed.", logwrap.Err(err), logwrap.Datum("NodeID", n.ID.String()))
	}

	m.persistNode(n)

	return iNode
}

// updateChannel creates the chat device for a channel slot, if the rule
// engine grants it one. Disabled channels get nothing under the default
// rules.
func (m *MeshtasticGateway) updateChannel(ctx context.Context, c meshtastic.Channel) {
	out, err := m.ruleEngine.Execute(rules.Input{Channel: ruleInputForChannel(c)})
	if err != nil {
		m.logger.LogError(ctx, "Failed to execute rules for channel.", logwrap.Err(err), logwrap.Datum("Channel", int(c.Index)))
		return
	}

	if _, ok := out.Capabilities[rules.CapabilityChannelChat]; !ok {
		m.logger.LogInfo(ctx, "Channel produces no chat device.", logwrap.Datum("Channel", int(c.Index)), logwrap.Datum("Role", string(c.Role)))
		return
	}

	index := c.Index
	id := ChannelChatIdentifier{EntryID: m.entryID, Gateway: m.gatewayNode, Channel: c.Index}
	m.createChatDevice(ctx, id, &chatState{
		channel: &index,
		name:    channelChatName(c),
		role:    c.Role,
	})

	m.persistChannel(c)
}

func (m *MeshtasticGateway) createNodeDevice(iNode *internalNode, flags []da.Capability) *internalDevice {
	id := NodeIdentifier{EntryID: m.entryID, Node: iNode.nodeID}

	m.devicesLock.Lock()

	iDev, found := m.devices[id]
	if !found {
		iDev = &internalDevice{
			gateway:            m,
			identifier:         id,
			node:               iNode,
			mutex:              &sync.RWMutex{},
			productInformation: newProductInformation(),
		}

		m.devices[id] = iDev
	}

	m.devicesLock.Unlock()

	for _, flag := range flags {
		iDev.addCapability(flag)
	}

	if !found {
		iNode.mutex.Lock()
		iNode.device = iDev
		iNode.mutex.Unlock()

		m.sendEvent(da.DeviceAdded{Device: iDev})
	}

	return iDev
}

func (m *MeshtasticGateway) createChatDevice(ctx context.Context, id da.Identifier, state *chatState) *internalDevice {
	m.devicesLock.Lock()

	iDev, found := m.devices[id]
	if !found {
		iDev = &internalDevice{
			gateway:      m,
			identifier:   id,
			mutex:        &sync.RWMutex{},
			capabilities: []da.Capability{capabilities.ChatFlag},
			chat:         state,
		}

		m.devices[id] = iDev
	}

	m.devicesLock.Unlock()

	if found {
		// Refresh the descriptor, but never the chat's history or compose
		// value.
		iDev.mutex.Lock()
		iDev.chat.channel = state.channel
		iDev.chat.name = state.name
		iDev.chat.role = state.role
		iDev.mutex.Unlock()
	} else {
		m.logger.LogInfo(ctx, "New chat device.", logwrap.Datum("Identifier", id.String()), logwrap.Datum("Name", state.name))
		m.sendEvent(da.DeviceAdded{Device: iDev})
	}

	return iDev
}

func channelChatName(c meshtastic.Channel) string {
	name := c.Settings.Name

	if name == "" {
		switch c.Role {
		case meshtastic.ChannelRolePrimary:
			name = "Primary"
		case meshtastic.ChannelRoleSecondary:
			name = "Secondary"
		default:
			name = fmt.Sprintf("Channel %d", c.Index)
		}
	}

	return name + " Chat"
}

func ruleInputForNode(n meshtastic.Node, isGateway bool) *rules.InputNode {
	return &rules.InputNode{
		ID:            uint32(n.ID),
		LongName:      n.User.LongName,
		ShortName:     n.User.ShortName,
		HardwareModel: n.User.HardwareModel,
		IsGateway:     isGateway,
	}
}

func ruleInputForChannel(c meshtastic.Channel) *rules.InputChannel {
	return &rules.InputChannel{
		Index:           uint8(c.Index),
		Name:            c.Settings.Name,
		Role:            string(c.Role),
		UplinkEnabled:   c.Settings.UplinkEnabled,
		DownlinkEnabled: c.Settings.DownlinkEnabled,
	}
}
