package mda

import (
	"context"
	"fmt"

	"github.com/shimmeringbee/logwrap"
)

func (m *MeshtasticGateway) sendEvent(event interface{}) {
	select {
	case m.events <- event:
	default:
		m.logger.LogWarn(m.ctx, "Could not send event, channel buffer full.", logwrap.Datum("Event", fmt.Sprintf("%+v", event)))
	}
}

func (m *MeshtasticGateway) ReadEvent(ctx context.Context) (interface{}, error) {
	select {
	case e := <-m.events:
		return e, nil
	case <-ctx.Done():
		return nil, context.DeadlineExceeded
	}
}
