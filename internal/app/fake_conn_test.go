package app

import "github.com/dkeye/Rendezvous/internal/domain"

type stubConn struct {
	id    domain.ConnID
	proto domain.Protocol
}

func newStubConn(id string, proto domain.Protocol) *stubConn {
	return &stubConn{id: domain.ConnID(id), proto: proto}
}

func (c *stubConn) ID() domain.ConnID         { return c.id }
func (c *stubConn) Protocol() domain.Protocol { return c.proto }
func (c *stubConn) Send(domain.Message) error { return nil }
func (c *stubConn) Close()                    {}
