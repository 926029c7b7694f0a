package mda

import (
	"context"
	"strconv"

	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/mda/meshtastic"
	"github.com/shimmeringbee/persistence"
)

const (
	nodePersistenceRoot    = "node"
	channelPersistenceRoot = "channel"
)

// WithPersistence stores the mesh snapshot in the provided section, so the
// gateway presents its devices before the radio answers on the next start.
// Must be called before Start.
func (m *MeshtasticGateway) WithPersistence(s persistence.Section) {
	m.section = s
}

func (m *MeshtasticGateway) sectionForNode(id meshtastic.NodeID) persistence.Section {
	return m.section.Section(nodePersistenceRoot, strconv.FormatUint(uint64(id), 10))
}

func (m *MeshtasticGateway) persistNode(n meshtastic.Node) {
	s := m.sectionForNode(n.ID)

	s.Set("longname", n.User.LongName)
	s.Set("shortname", n.User.ShortName)
	s.Set("hardware", n.User.HardwareModel)
}

func (m *MeshtasticGateway) nodeListFromPersistence() []meshtastic.Node {
	var nodes []meshtastic.Node

	for _, key := range m.section.Section(nodePersistenceRoot).SectionKeys() {
		id, err := strconv.ParseUint(key, 10, 32)
		if err != nil {
			continue
		}

		s := m.section.Section(nodePersistenceRoot, key)

		longName, _ := s.String("longname")
		shortName, _ := s.String("shortname")
		hardware, _ := s.String("hardware")

		nodes = append(nodes, meshtastic.Node{
			ID: meshtastic.NodeID(id),
			User: meshtastic.User{
				LongName:      longName,
				ShortName:     shortName,
				HardwareModel: hardware,
			},
		})
	}

	return nodes
}

func (m *MeshtasticGateway) sectionForChannel(index meshtastic.ChannelIndex) persistence.Section {
	return m.section.Section(channelPersistenceRoot, strconv.Itoa(int(index)))
}

// persistChannel stores the channel descriptor. The pre shared key is
// deliberately not written out, the gateway never needs it again and the
// store may not be private.
func (m *MeshtasticGateway) persistChannel(c meshtastic.Channel) {
	s := m.sectionForChannel(c.Index)

	s.Set("name", c.Settings.Name)
	s.Set("role", string(c.Role))
	s.Set("uplink", c.Settings.UplinkEnabled)
	s.Set("downlink", c.Settings.DownlinkEnabled)
}

func (m *MeshtasticGateway) channelListFromPersistence() []meshtastic.Channel {
	var channels []meshtastic.Channel

	for _, key := range m.section.Section(channelPersistenceRoot).SectionKeys() {
		index, err := strconv.ParseUint(key, 10, 8)
		if err != nil {
			continue
		}

		s := m.section.Section(channelPersistenceRoot, key)

		name, _ := s.String("name")
		role, _ := s.String("role")
		uplink, _ := s.Bool("uplink")
		downlink, _ := s.Bool("downlink")

		channels = append(channels, meshtastic.Channel{
			Index: meshtastic.ChannelIndex(index),
			Role:  meshtastic.ChannelRole(role),
			Settings: meshtastic.ChannelSettings{
				Name:            name,
				UplinkEnabled:   uplink,
				DownlinkEnabled: downlink,
			},
		})
	}

	return channels
}

// providerLoad replays the persisted mesh snapshot through the same paths
// live provider data takes.
func (m *MeshtasticGateway) providerLoad(pctx context.Context) {
	ctx, end := m.logger.Segment(pctx, "Loading persisted mesh snapshot.")
	defer end()

	for _, n := range m.nodeListFromPersistence() {
		m.logger.LogInfo(ctx, "Restoring node from persistence.", logwrap.Datum("NodeID", n.ID.String()))
		m.updateNode(ctx, n)
	}

	for _, c := range m.channelListFromPersistence() {
		m.logger.LogInfo(ctx, "Restoring channel from persistence.", logwrap.Datum("Channel", int(c.Index)))
		m.updateChannel(ctx, c)
	}
}
