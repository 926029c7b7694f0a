package mda

import (
	"context"
	"sync"

	"github.com/shimmeringbee/da"
	dacapabilities "github.com/shimmeringbee/da/capabilities"
)

// productInformation is the device scoped product information capability of
// a node device, populated from the node's user metadata.
type productInformation struct {
	m    *sync.RWMutex
	info dacapabilities.ProductInfo
}

func newProductInformation() *productInformation {
	return &productInformation{m: &sync.RWMutex{}}
}

func (p *productInformation) Capability() da.Capability {
	return dacapabilities.ProductInformationFlag
}

func (p *productInformation) Name() string {
	return dacapabilities.StandardNames[dacapabilities.ProductInformationFlag]
}

func (p *productInformation) Get(_ context.Context) (dacapabilities.ProductInfo, error) {
	p.m.RLock()
	defer p.m.RUnlock()

	return p.info, nil
}

var _ dacapabilities.ProductInformation = (*productInformation)(nil)
var _ da.BasicCapability = (*productInformation)(nil)

// nodeInformationUpdate refreshes a node device's product information from
// the mesh node's user metadata, registered on the internal callbacks in
// New.
func (m *MeshtasticGateway) nodeInformationUpdate(_ context.Context, event internalNodeUpdate) error {
	iNode := event.node

	iNode.mutex.RLock()
	user := iNode.node.User
	iDev := iNode.device
	iNode.mutex.RUnlock()

	if iDev == nil || iDev.productInformation == nil {
		return nil
	}

	iDev.productInformation.m.Lock()
	iDev.productInformation.info = dacapabilities.ProductInfo{
		Name:         user.LongName,
		Manufacturer: user.HardwareModel,
	}
	iDev.productInformation.m.Unlock()

	return nil
}
