package capabilities

import (
	"context"
	"time"

	"github.com/shimmeringbee/da"
	"github.com/shimmeringbee/mda/meshtastic"
)

// Capability flags for Meshtastic specific capabilities, outside the range
// used by da's standard capabilities.
const (
	DeviceRebootFlag = da.Capability(0xff01)
	ChatFlag         = da.Capability(0xff02)
)

var Names = map[da.Capability]string{
	DeviceRebootFlag: "DeviceReboot",
	ChatFlag:         "Chat",
}

// DefaultRebootDelay is how long a node waits before rebooting after a
// reboot request has been accepted.
const DefaultRebootDelay = 5 * time.Second

// ChatHistoryLength is the maximum number of messages retained per chat
// device. The oldest message is evicted first.
const ChatHistoryLength = 50

// DeviceReboot is the capability of a node that can be asked to reboot. The
// request is fire and forget: it is issued once with DefaultRebootDelay,
// with no retry and no acknowledgement tracking.
type DeviceReboot interface {
	Reboot(ctx context.Context, device da.Device) error
}

// ChatMessage is a single entry in a chat device's history.
type ChatMessage struct {
	From      string
	Message   string
	Timestamp time.Time
}

// ChatInfo describes a chat device. Channel is nil for the direct message
// chat, which transmits as broadcast.
type ChatInfo struct {
	Name      string
	Channel   *meshtastic.ChannelIndex
	Broadcast bool
}

// Chat is the capability of a device representing a text conversation,
// either scoped to a channel or the gateway's direct message box.
//
// The direct message chat has no way to carry a destination, so Send on it
// broadcasts on the primary channel rather than targeting a peer.
type Chat interface {
	// Send transmits text on the chat's destination and clears the compose
	// value, whether or not the transmission succeeded.
	Send(ctx context.Context, device da.Device, text string) error
	// Value returns the current compose value.
	Value(ctx context.Context, device da.Device) (string, error)
	// History returns the retained messages in arrival order, oldest first,
	// at most ChatHistoryLength entries.
	History(ctx context.Context, device da.Device) ([]ChatMessage, error)
	// Info describes the chat's name and destination.
	Info(ctx context.Context, device da.Device) (ChatInfo, error)
}

// ChatMessageUpdate is sent on the gateway event stream when a received mesh
// message has been appended to a chat device's history.
type ChatMessageUpdate struct {
	Device  da.Device
	Message ChatMessage
}
