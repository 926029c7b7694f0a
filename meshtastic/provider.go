package meshtastic

import (
	"context"
	"time"
)

// Provider is the client for a Meshtastic radio. The radio protocol, framing
// and delivery behaviour are owned entirely by the implementation; mda only
// calls it.
type Provider interface {
	// OwnNode returns the node the provider is physically attached to, the
	// gateway between the mesh and the host.
	OwnNode(ctx context.Context) (Node, error)

	// Nodes returns the provider's current snapshot of known mesh nodes,
	// keyed by node ID. The snapshot includes the gateway node.
	Nodes(ctx context.Context) (map[NodeID]Node, error)

	// Channels returns the radio's configured channel slots, including
	// disabled ones.
	Channels(ctx context.Context) ([]Channel, error)

	// SendText transmits a text message. A nil channel broadcasts on the
	// primary channel.
	SendText(ctx context.Context, text string, channel *ChannelIndex) error

	// Reboot schedules a reboot of the given node after the delay.
	Reboot(ctx context.Context, node NodeID, delay time.Duration) error

	// ReadEvent returns the next event from the radio, blocking until one is
	// available or the context is cancelled. Events are the types declared
	// in events.go.
	ReadEvent(ctx context.Context) (interface{}, error)
}
