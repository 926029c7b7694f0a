package mda

import (
	"context"
	"errors"

	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/mda/capabilities"
	"github.com/shimmeringbee/mda/meshtastic"
)

func (m *MeshtasticGateway) providerLoop() {
	for {
		event, err := m.provider.ReadEvent(m.ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				m.logger.LogInfo(m.ctx, "Provider event loop terminating.")
			} else {
				m.logger.LogError(m.ctx, "Failed to read event from provider.", logwrap.Err(err))
			}
			return
		}

		m.providerHandleEvent(m.ctx, event)

		select {
		case <-m.providerHandlerStop:
			return
		default:
		}
	}
}

// providerHandleEvent routes raw provider events to the devices they concern.
// Events which match no device are logged and dropped, they never create
// state.
func (m *MeshtasticGateway) providerHandleEvent(ctx context.Context, event interface{}) {
	switch e := event.(type) {
	case meshtastic.NodeUpdatedEvent:
		m.updateNode(ctx, e.Node)
	case meshtastic.MessageReceivedEvent:
		if chat, ok := m.capabilities[capabilities.ChatFlag].(*MeshtasticChat); ok {
			chat.receiveMessage(ctx, e)
		}
	default:
		m.logger.LogWarn(ctx, "Unknown event received from provider.", logwrap.Datum("Event", event))
	}
}
