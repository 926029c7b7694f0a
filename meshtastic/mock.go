package meshtastic

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) OwnNode(ctx context.Context) (Node, error) {
	args := m.Called(ctx)
	return args.Get(0).(Node), args.Error(1)
}

func (m *MockProvider) Nodes(ctx context.Context) (map[NodeID]Node, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[NodeID]Node), args.Error(1)
}

func (m *MockProvider) Channels(ctx context.Context) ([]Channel, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Channel), args.Error(1)
}

func (m *MockProvider) SendText(ctx context.Context, text string, channel *ChannelIndex) error {
	args := m.Called(ctx, text, channel)
	return args.Error(0)
}

func (m *MockProvider) Reboot(ctx context.Context, node NodeID, delay time.Duration) error {
	args := m.Called(ctx, node, delay)
	return args.Error(0)
}

func (m *MockProvider) ReadEvent(ctx context.Context) (interface{}, error) {
	args := m.Called(ctx)
	return args.Get(0), args.Error(1)
}
