package mda

import (
	"context"

	"github.com/shimmeringbee/da"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/mda/capabilities"
	"github.com/shimmeringbee/mda/meshtastic"
)

// MeshtasticChat sends and receives text messages for chat devices. A chat
// device either targets one channel slot or, for the direct message chat,
// broadcasts.
type MeshtasticChat struct {
	gateway *MeshtasticGateway
}

func (c *MeshtasticChat) Capability() da.Capability {
	return capabilities.ChatFlag
}

func (c *MeshtasticChat) Name() string {
	return capabilities.Names[capabilities.ChatFlag]
}

// Send transmits text on the device's destination. The compose value holds
// the text while transmission is in flight and is cleared once the send
// returns, whether or not it succeeded.
func (c *MeshtasticChat) Send(ctx context.Context, device da.Device, text string) error {
	if deviceDoesNotBelongToGateway(c.gateway, device) {
		return DeviceDoesNotBelongToGatewayError
	}

	if !deviceHasCapability(device, capabilities.ChatFlag) {
		return DeviceDoesNotHaveCapability
	}

	iDev := c.gateway.getDevice(device.Identifier())
	if iDev == nil || iDev.chat == nil {
		return DeviceDoesNotHaveCapability
	}

	iDev.mutex.Lock()
	iDev.chat.compose = text
	channel := iDev.chat.channel
	iDev.mutex.Unlock()

	defer func() {
		iDev.mutex.Lock()
		iDev.chat.compose = ""
		iDev.mutex.Unlock()
	}()

	if channel == nil {
		// Direct message chats have no destination node of their own, so the
		// radio broadcasts on the primary channel instead of replying to the
		// last sender.
		c.gateway.logger.LogWarn(ctx, "Direct message chat sending as broadcast.", logwrap.Datum("Identifier", device.Identifier().String()))
	}

	return c.gateway.provider.SendText(ctx, text, channel)
}

// Value returns the text currently being composed or transmitted, empty at
// rest.
func (c *MeshtasticChat) Value(ctx context.Context, device da.Device) (string, error) {
	if deviceDoesNotBelongToGateway(c.gateway, device) {
		return "", DeviceDoesNotBelongToGatewayError
	}

	if !deviceHasCapability(device, capabilities.ChatFlag) {
		return "", DeviceDoesNotHaveCapability
	}

	iDev := c.gateway.getDevice(device.Identifier())
	if iDev == nil || iDev.chat == nil {
		return "", DeviceDoesNotHaveCapability
	}

	iDev.mutex.RLock()
	defer iDev.mutex.RUnlock()

	return iDev.chat.compose, nil
}

// History returns the received messages for the device, oldest first.
func (c *MeshtasticChat) History(ctx context.Context, device da.Device) ([]capabilities.ChatMessage, error) {
	if deviceDoesNotBelongToGateway(c.gateway, device) {
		return nil, DeviceDoesNotBelongToGatewayError
	}

	if !deviceHasCapability(device, capabilities.ChatFlag) {
		return nil, DeviceDoesNotHaveCapability
	}

	iDev := c.gateway.getDevice(device.Identifier())
	if iDev == nil || iDev.chat == nil {
		return nil, DeviceDoesNotHaveCapability
	}

	iDev.mutex.RLock()
	defer iDev.mutex.RUnlock()

	history := make([]capabilities.ChatMessage, len(iDev.chat.history))
	copy(history, iDev.chat.history)

	return history, nil
}

// Info describes the device's destination.
func (c *MeshtasticChat) Info(ctx context.Context, device da.Device) (capabilities.ChatInfo, error) {
	if deviceDoesNotBelongToGateway(c.gateway, device) {
		return capabilities.ChatInfo{}, DeviceDoesNotBelongToGatewayError
	}

	if !deviceHasCapability(device, capabilities.ChatFlag) {
		return capabilities.ChatInfo{}, DeviceDoesNotHaveCapability
	}

	iDev := c.gateway.getDevice(device.Identifier())
	if iDev == nil || iDev.chat == nil {
		return capabilities.ChatInfo{}, DeviceDoesNotHaveCapability
	}

	iDev.mutex.RLock()
	defer iDev.mutex.RUnlock()

	var channel *meshtastic.ChannelIndex

	if iDev.chat.channel != nil {
		index := *iDev.chat.channel
		channel = &index
	}

	return capabilities.ChatInfo{
		Name:      iDev.chat.name,
		Channel:   channel,
		Broadcast: iDev.chat.channel == nil,
	}, nil
}

// receiveMessage appends an incoming message to the matching chat device's
// history. Channel messages route by channel index, direct messages route to
// the direct message chat only when addressed to the gateway node.
func (c *MeshtasticChat) receiveMessage(ctx context.Context, e meshtastic.MessageReceivedEvent) {
	var id da.Identifier

	if e.Channel != nil {
		id = ChannelChatIdentifier{EntryID: c.gateway.entryID, Gateway: c.gateway.gatewayNode, Channel: *e.Channel}
	} else {
		if e.To != c.gateway.gatewayNode {
			c.gateway.logger.LogInfo(ctx, "Ignoring direct message for another node.", logwrap.Datum("To", e.To.String()))
			return
		}

		id = DirectMessageChatIdentifier{EntryID: c.gateway.entryID, Gateway: c.gateway.gatewayNode}
	}

	iDev := c.gateway.getDevice(id)
	if iDev == nil || iDev.chat == nil {
		c.gateway.logger.LogWarn(ctx, "Received message for unknown chat.", logwrap.Datum("Identifier", id.String()))
		return
	}

	from := e.From.String()

	if iNode := c.gateway.getNode(e.From); iNode != nil {
		iNode.mutex.RLock()
		if iNode.node.User.LongName != "" {
			from = iNode.node.User.LongName
		}
		iNode.mutex.RUnlock()
	}

	message := capabilities.ChatMessage{
		From:      from,
		Message:   e.Message,
		Timestamp: e.Time,
	}

	iDev.mutex.Lock()
	iDev.chat.history = append(iDev.chat.history, message)
	if len(iDev.chat.history) > capabilities.ChatHistoryLength {
		iDev.chat.history = iDev.chat.history[1:]
	}
	iDev.mutex.Unlock()

	c.gateway.sendEvent(capabilities.ChatMessageUpdate{Device: iDev, Message: message})
}

var _ capabilities.Chat = (*MeshtasticChat)(nil)
var _ da.BasicCapability = (*MeshtasticChat)(nil)
