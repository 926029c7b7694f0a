package mda

import (
	"sync"

	"github.com/shimmeringbee/da"
	"github.com/shimmeringbee/mda/meshtastic"
)

type internalNode struct {
	// Immutable, no locking required.
	nodeID meshtastic.NodeID
	mutex  *sync.RWMutex

	// Mutable, locking must be obtained first.
	node   meshtastic.Node
	device *internalDevice
}

func (m *MeshtasticGateway) createNode(id meshtastic.NodeID) (*internalNode, bool) {
	m.nodesLock.Lock()
	defer m.nodesLock.Unlock()

	iNode, alreadyExists := m.nodes[id]
	if !alreadyExists {
		iNode = &internalNode{
			nodeID: id,
			mutex:  &sync.RWMutex{},
		}

		m.nodes[id] = iNode
	}

	return iNode, !alreadyExists
}

func (m *MeshtasticGateway) getNode(id meshtastic.NodeID) *internalNode {
	m.nodesLock.RLock()
	defer m.nodesLock.RUnlock()

	return m.nodes[id]
}

func (m *MeshtasticGateway) getNodes() []*internalNode {
	m.nodesLock.RLock()
	defer m.nodesLock.RUnlock()

	var nodes []*internalNode

	for _, iNode := range m.nodes {
		nodes = append(nodes, iNode)
	}

	return nodes
}

func (m *MeshtasticGateway) getDevice(identifier da.Identifier) *internalDevice {
	m.devicesLock.RLock()
	defer m.devicesLock.RUnlock()

	return m.devices[identifier]
}

func (m *MeshtasticGateway) getDevices() []*internalDevice {
	m.devicesLock.RLock()
	defer m.devicesLock.RUnlock()

	var devices []*internalDevice

	for _, iDev := range m.devices {
		devices = append(devices, iDev)
	}

	return devices
}
