package mda

import (
	"log"

	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/logwrap/impl/golog"
)

func (m *MeshtasticGateway) WithGoLogger(parentLogger *log.Logger) {
	m.WithLogWrapLogger(logwrap.New(golog.Wrap(parentLogger)))
}

func (m *MeshtasticGateway) WithLogWrapLogger(lw logwrap.Logger) {
	m.logger = lw
}
