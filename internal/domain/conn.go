package domain

import "github.com/google/uuid"

type ConnID string

// NewConnID assigns a process-unique identifier at accept time.
func NewConnID() ConnID {
	return ConnID(uuid.NewString())
}

func (id ConnID) String() string { return string(id) }

// Protocol tells which wire protocol a connection speaks.
type Protocol int

const (
	ProtocolRooms Protocol = iota
	ProtocolDirectory
)

func (p Protocol) String() string {
	switch p {
	case ProtocolRooms:
		return "rooms"
	case ProtocolDirectory:
		return "directory"
	default:
		return "unknown"
	}
}
