package mda

import (
	"context"
	"testing"

	"github.com/shimmeringbee/mda/meshtastic"
	"github.com/stretchr/testify/assert"
)

func TestMeshtasticGateway_createNode(t *testing.T) {
	t.Run("creates a node once and returns the existing entry thereafter", func(t *testing.T) {
		gw, _ := generateTestGateway()
		defer gw.Stop(context.Background())

		first, created := gw.createNode(0x20)
		assert.True(t, created)
		assert.NotNil(t, first)

		second, created := gw.createNode(0x20)
		assert.False(t, created)
		assert.Same(t, first, second)

		assert.Same(t, first, gw.getNode(0x20))
		assert.Len(t, gw.getNodes(), 1)
	})

	t.Run("getNode returns nil for an unknown node", func(t *testing.T) {
		gw, _ := generateTestGateway()
		defer gw.Stop(context.Background())

		assert.Nil(t, gw.getNode(0x99))
	})
}

func TestMeshtasticGateway_getDevices(t *testing.T) {
	t.Run("returns every tracked device", func(t *testing.T) {
		gw, _ := generateTestGateway()
		defer gw.Stop(context.Background())

		gw.updateNode(context.Background(), meshtastic.Node{ID: 0x20})
		gw.updateChannel(context.Background(), meshtastic.Channel{Index: 0, Role: meshtastic.ChannelRolePrimary})

		assert.Len(t, gw.getDevices(), 2)
	})
}
