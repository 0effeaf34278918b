package orch

import (
	"sync"

	"github.com/dkeye/Rendezvous/internal/core"
	"github.com/dkeye/Rendezvous/internal/domain"
)

type fakeConn struct {
	id    domain.ConnID
	proto domain.Protocol

	mu     sync.Mutex
	msgs   []domain.Message
	full   bool
	closed bool
}

func newFakeConn(id string, proto domain.Protocol) *fakeConn {
	return &fakeConn{id: domain.ConnID(id), proto: proto}
}

func (c *fakeConn) ID() domain.ConnID         { return c.id }
func (c *fakeConn) Protocol() domain.Protocol { return c.proto }

func (c *fakeConn) Send(msg domain.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return core.ErrConnClosed
	}
	if c.full {
		return core.ErrBackpressure
	}
	c.msgs = append(c.msgs, msg)
	return nil
}

func (c *fakeConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *fakeConn) setFull(full bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.full = full
}

// events returns the room protocol events received, "log" excluded.
func (c *fakeConn) events() []domain.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []domain.Event
	for _, m := range c.msgs {
		if ev, ok := m.(domain.Event); ok && ev.Name != domain.EventLog {
			out = append(out, ev)
		}
	}
	return out
}

func (c *fakeConn) logs() []domain.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []domain.Event
	for _, m := range c.msgs {
		if ev, ok := m.(domain.Event); ok && ev.Name == domain.EventLog {
			out = append(out, ev)
		}
	}
	return out
}

func (c *fakeConn) relays() []domain.Relay {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []domain.Relay
	for _, m := range c.msgs {
		if r, ok := m.(domain.Relay); ok {
			out = append(out, r)
		}
	}
	return out
}

func (c *fakeConn) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = nil
}

func eventNames(evs []domain.Event) []domain.EventName {
	out := make([]domain.EventName, 0, len(evs))
	for _, ev := range evs {
		out = append(out, ev.Name)
	}
	return out
}

func (c *fakeConn) all() []domain.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Message(nil), c.msgs...)
}
