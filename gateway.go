package mda

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/shimmeringbee/callbacks"
	"github.com/shimmeringbee/da"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/logwrap/impl/golog"
	"github.com/shimmeringbee/mda/capabilities"
	"github.com/shimmeringbee/mda/meshtastic"
	"github.com/shimmeringbee/mda/rules"
	"github.com/shimmeringbee/persistence"
	"github.com/shimmeringbee/persistence/impl/memory"
	"github.com/shimmeringbee/retry"
	"golang.org/x/sync/semaphore"
)

// MeshtasticGateway exposes a Meshtastic mesh as a da.Gateway: each known
// node becomes a device which can be rebooted, and each enabled channel,
// plus the gateway's direct message box, becomes a chat device.
type MeshtasticGateway struct {
	entryID  string
	provider meshtastic.Provider

	ctx       context.Context
	ctxCancel context.CancelFunc

	providerHandlerStop chan bool

	events       chan interface{}
	capabilities map[da.Capability]da.BasicCapability

	self        *internalDevice
	gatewayNode meshtastic.NodeID

	nodes     map[meshtastic.NodeID]*internalNode
	nodesLock *sync.RWMutex

	devices     map[da.Identifier]*internalDevice
	devicesLock *sync.RWMutex

	callbacks      callbacks.AdderCaller
	ruleEngine     *rules.Engine
	section        persistence.Section
	enumerationSem *semaphore.Weighted
	logger         logwrap.Logger
}

// New constructs a gateway for the given provider. The entry ID scopes every
// identifier the gateway mints, so two gateways on one host cannot collide.
func New(entryID string, provider meshtastic.Provider) *MeshtasticGateway {
	ctx, cancel := context.WithCancel(context.Background())

	gw := &MeshtasticGateway{
		entryID:  entryID,
		provider: provider,

		ctx:       ctx,
		ctxCancel: cancel,

		providerHandlerStop: make(chan bool, 1),

		events:       make(chan interface{}, 100),
		capabilities: map[da.Capability]da.BasicCapability{},

		nodes:     map[meshtastic.NodeID]*internalNode{},
		nodesLock: &sync.RWMutex{},

		devices:     map[da.Identifier]*internalDevice{},
		devicesLock: &sync.RWMutex{},

		callbacks:      callbacks.Create(),
		ruleEngine:     rules.Default(),
		section:        memory.New(),
		enumerationSem: semaphore.NewWeighted(1),
		logger:         logwrap.New(golog.Wrap(log.Default())),
	}

	gw.capabilities[capabilities.DeviceRebootFlag] = &MeshtasticDeviceReboot{gateway: gw}
	gw.capabilities[capabilities.ChatFlag] = &MeshtasticChat{gateway: gw}

	gw.callbacks.Add(gw.nodeInformationUpdate)

	return gw
}

// WithRuleEngine replaces the default capability rules. Must be called
// before Start.
func (m *MeshtasticGateway) WithRuleEngine(e *rules.Engine) {
	m.ruleEngine = e
}

// Start queries the radio for the gateway node, restores any persisted mesh
// snapshot, enumerates nodes and channels into devices and begins pumping
// provider events.
func (m *MeshtasticGateway) Start(pctx context.Context) error {
	ctx, end := m.logger.Segment(pctx, "Starting Meshtastic gateway.", logwrap.Datum("EntryID", m.entryID))
	defer end()

	var gatewayNode meshtastic.Node

	if err := retry.Retry(ctx, DefaultNetworkTimeout, DefaultNetworkRetries, func(rctx context.Context) error {
		n, err := m.provider.OwnNode(rctx)
		if err == nil {
			gatewayNode = n
		}
		return err
	}); err != nil {
		return fmt.Errorf("failed to query gateway node: %w", err)
	}

	m.gatewayNode = gatewayNode.ID
	m.logger.LogInfo(ctx, "Gateway node identified.", logwrap.Datum("NodeID", gatewayNode.ID.String()))

	m.providerLoad(ctx)

	if err := m.enumerate(ctx, gatewayNode); err != nil {
		return err
	}

	iDev := m.getDevice(NodeIdentifier{EntryID: m.entryID, Node: m.gatewayNode})
	if iDev == nil {
		return fmt.Errorf("gateway node device missing after enumeration")
	}
	m.self = iDev

	go m.providerLoop()

	return nil
}

func (m *MeshtasticGateway) Stop(_ context.Context) error {
	m.providerHandlerStop <- true
	m.ctxCancel()
	return nil
}

func (m *MeshtasticGateway) Capability(capability da.Capability) da.BasicCapability {
	return m.capabilities[capability]
}

func (m *MeshtasticGateway) Capabilities() []da.Capability {
	var caps []da.Capability

	for capability := range m.capabilities {
		caps = append(caps, capability)
	}

	return caps
}

func (m *MeshtasticGateway) Self() da.Device {
	return m.self
}

func (m *MeshtasticGateway) Devices() []da.Device {
	m.devicesLock.RLock()
	defer m.devicesLock.RUnlock()

	var devices []da.Device

	for _, iDev := range m.devices {
		devices = append(devices, iDev)
	}

	return devices
}

var _ da.Gateway = (*MeshtasticGateway)(nil)
