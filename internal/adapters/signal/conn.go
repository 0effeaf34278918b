package signal

import (
	"sync"

	"github.com/dkeye/Rendezvous/internal/core"
	"github.com/dkeye/Rendezvous/internal/domain"
	"github.com/gorilla/websocket"
)

// WsSignalConn is one accepted websocket. It implements core.Connection.
type WsSignalConn struct {
	id     domain.ConnID
	proto  domain.Protocol
	conn   *websocket.Conn
	send   chan core.Frame
	encode func(domain.Message) (core.Frame, error)

	mu     sync.RWMutex
	closed bool
}

func newWsSignalConn(ws *websocket.Conn, proto domain.Protocol, buffer int) *WsSignalConn {
	c := &WsSignalConn{
		id:    domain.NewConnID(),
		proto: proto,
		conn:  ws,
		send:  make(chan core.Frame, buffer),
	}
	switch proto {
	case domain.ProtocolDirectory:
		c.encode = EncodeRelay
	default:
		c.encode = EncodeEvent
	}
	return c
}

func (c *WsSignalConn) ID() domain.ConnID         { return c.id }
func (c *WsSignalConn) Protocol() domain.Protocol { return c.proto }

func (c *WsSignalConn) Send(msg domain.Message) error {
	f, err := c.encode(msg)
	if err != nil {
		return err
	}
	return c.TrySend(f)
}

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return core.ErrConnClosed
	}
	select {
	case c.send <- f:
	default:
		return core.ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
}
