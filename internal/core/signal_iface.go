package core

import (
	"errors"

	"github.com/dkeye/Rendezvous/internal/domain"
)

var (
	ErrBackpressure = errors.New("backpressure")
	ErrConnClosed   = errors.New("connection closed")
)

// Frame is a raw text payload.
type Frame []byte

// Connection abstracts an accepted signaling transport.
// Owned by the adapter; the adapter must Close() it.
// Send never blocks: it queues the message or fails.
type Connection interface {
	ID() domain.ConnID
	Protocol() domain.Protocol
	Send(msg domain.Message) error
	Close()
}
