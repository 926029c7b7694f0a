package meshtastic

import "fmt"

// NodeID is the numeric identifier of a node on the mesh. Rendered in the
// conventional Meshtastic form, e.g. !a1b2c3d4.
type NodeID uint32

func (n NodeID) String() string {
	return fmt.Sprintf("!%08x", uint32(n))
}

// ChannelIndex identifies one of the radio's configured channel slots.
type ChannelIndex uint8

type User struct {
	LongName      string
	ShortName     string
	HardwareModel string
}

type Node struct {
	ID   NodeID
	User User
}

type ChannelRole string

const (
	ChannelRoleDisabled  ChannelRole = "DISABLED"
	ChannelRolePrimary   ChannelRole = "PRIMARY"
	ChannelRoleSecondary ChannelRole = "SECONDARY"
)

type ChannelSettings struct {
	Name            string
	PSK             []byte
	UplinkEnabled   bool
	DownlinkEnabled bool
}

type Channel struct {
	Index    ChannelIndex
	Role     ChannelRole
	Settings ChannelSettings
}
