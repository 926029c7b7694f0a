package rules

// Capability names rules may add or remove.
const (
	CapabilityDeviceReboot      = "DeviceReboot"
	CapabilityNodeInformation   = "NodeInformation"
	CapabilityChannelChat       = "ChannelChat"
	CapabilityDirectMessageChat = "DirectMessageChat"
)

// Default returns the stock rule set: every node can be rebooted and
// reports its information, every channel which is not disabled gets a chat,
// and the gateway node gets the direct message chat.
func Default() *Engine {
	e, err := New(
		Rule{
			Description: "all nodes reboot and report information",
			Filter:      `Node != nil`,
			Actions: Actions{
				Capabilities: Capabilities{
					Add: map[string]interface{}{
						CapabilityDeviceReboot:    nil,
						CapabilityNodeInformation: nil,
					},
				},
			},
		},
		Rule{
			Description: "enabled channels chat",
			Filter:      `Channel != nil && Channel.Role != "DISABLED"`,
			Actions: Actions{
				Capabilities: Capabilities{
					Add: map[string]interface{}{
						CapabilityChannelChat: nil,
					},
				},
			},
		},
		Rule{
			Description: "gateway node hosts direct message chat",
			Filter:      `Node != nil && Node.IsGateway`,
			Actions: Actions{
				Capabilities: Capabilities{
					Add: map[string]interface{}{
						CapabilityDirectMessageChat: nil,
					},
				},
			},
		},
	)
	if err != nil {
		panic(err)
	}

	return e
}
