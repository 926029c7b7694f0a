package meshtastic

import "time"

// NodeUpdatedEvent is emitted when a node appears on the mesh or its user
// metadata changes.
type NodeUpdatedEvent struct {
	Node Node
}

// MessageReceivedEvent is emitted when a text message arrives from the mesh.
// Channel is nil for direct messages, in which case To carries the addressed
// node.
type MessageReceivedEvent struct {
	From    NodeID
	To      NodeID
	Channel *ChannelIndex
	Message string
	Time    time.Time
}
