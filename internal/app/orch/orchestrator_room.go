package orch

import (
	"fmt"
	"net"
	"slices"

	"github.com/dkeye/Rendezvous/internal/core"
	"github.com/dkeye/Rendezvous/internal/domain"
	"github.com/rs/zerolog/log"
)

// CreateOrJoin puts the connection into room name, creating the room when
// it has no members. A third connection is turned away with "full".
func (o *Orchestrator) CreateOrJoin(id domain.ConnID, name domain.RoomName) {
	o.mu.Lock()
	defer o.mu.Unlock()

	conn, ok := o.Registry.FindByID(id)
	if !ok {
		return
	}
	logger := log.With().Str("module", "orch.room").Str("conn", id.String()).Str("room", string(name)).Logger()

	o.clientLog(conn, "Received request to create or join room "+string(name))
	if name == "" {
		logger.Warn().Err(domain.ErrRoomNameEmpty).Msg("create or join rejected")
		return
	}
	if current, ok := o.Registry.RoomOf(id); ok && current == name {
		logger.Info().Msg("already a member, ignoring")
		o.clientLog(conn, "Client ID "+id.String()+" is already in room "+string(name))
		return
	}

	room := o.Rooms.GetOrCreate(name)
	count := room.Count()
	o.clientLog(conn, fmt.Sprintf("Room %s now has %d client(s)", name, count))

	switch {
	case count == 0:
		o.leaveCurrentRoom(id)
		o.Rooms.Join(room, id)
		o.Registry.BindRoom(id, name)
		logger.Info().Msg("created room")
		o.clientLog(conn, "Client ID "+id.String()+" created room "+string(name))
		o.deliver(conn, domain.NewEvent(domain.EventCreated, string(name), id.String()))

	case count < domain.MaxRoomMembers:
		o.leaveCurrentRoom(id)
		logger.Info().Msg("joined room")
		o.clientLog(conn, "Client ID "+id.String()+" joined room "+string(name))
		for _, member := range room.Members() {
			o.deliverTo(member, domain.NewEvent(domain.EventJoin, string(name)))
		}
		o.Rooms.Join(room, id)
		o.Registry.BindRoom(id, name)
		o.deliver(conn, domain.NewEvent(domain.EventJoined, string(name), id.String()))
		for _, member := range room.Members() {
			o.deliverTo(member, domain.NewEvent(domain.EventReady, string(name)))
		}

	default:
		logger.Info().Int("count", count).Msg("room full")
		o.deliver(conn, domain.NewEvent(domain.EventFull, string(name)))
	}
}

// Broadcast is the global broadcast of the room protocol: the payload goes
// to every other room-protocol connection, whatever room they are in.
func (o *Orchestrator) Broadcast(id domain.ConnID, payload any) {
	o.mu.Lock()
	defer o.mu.Unlock()

	conn, ok := o.Registry.FindByID(id)
	if !ok {
		return
	}
	o.clientLog(conn, "Client said: ", payload)
	if !o.Options.GlobalBroadcast {
		log.Debug().Str("module", "orch.room").Str("conn", id.String()).Msg("global broadcast disabled, message dropped")
		return
	}
	peers := o.Registry.ByProtocol(domain.ProtocolRooms, id)
	for _, peer := range peers {
		o.deliver(peer, domain.NewEvent(domain.EventMessage, payload))
	}
	log.Debug().Str("module", "orch.room").Str("conn", id.String()).Int("sent_to", len(peers)).Msg("broadcast")
}

// IPAddrs reports every non-loopback IPv4 address of the host, one event
// per address.
func (o *Orchestrator) IPAddrs(id domain.ConnID) {
	addrs, err := o.Options.Addrs()
	if err != nil {
		log.Error().Err(err).Str("module", "orch.room").Msg("list interface addresses")
		return
	}
	found := FilterIPv4(addrs, o.Options.ExcludeAddrs)

	o.mu.Lock()
	defer o.mu.Unlock()
	conn, ok := o.Registry.FindByID(id)
	if !ok {
		return
	}
	for _, addr := range found {
		o.deliver(conn, domain.NewEvent(domain.EventIPAddr, addr))
	}
}

// Bye is informational only.
func (o *Orchestrator) Bye(id domain.ConnID) {
	log.Info().Str("module", "orch.room").Str("conn", id.String()).Msg("received bye")
}

// FilterIPv4 keeps non-loopback IPv4 addresses not listed in exclude.
func FilterIPv4(addrs []net.Addr, exclude []string) []string {
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		var ip net.IP
		switch v := a.(type) {
		case *net.IPNet:
			ip = v.IP
		case *net.IPAddr:
			ip = v.IP
		default:
			continue
		}
		ip4 := ip.To4()
		if ip4 == nil || ip4.IsLoopback() {
			continue
		}
		s := ip4.String()
		if slices.Contains(exclude, s) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func (o *Orchestrator) leaveCurrentRoom(id domain.ConnID) {
	current, ok := o.Registry.RoomOf(id)
	if !ok {
		return
	}
	o.Registry.ClearRoom(id)
	o.leaveRoom(id, current)
}

func (o *Orchestrator) leaveRoom(id domain.ConnID, name domain.RoomName) {
	room, ok := o.Rooms.Remove(name, id)
	if !ok || !o.Options.NotifyPeerLeft {
		return
	}
	for _, member := range room.Members() {
		o.deliverTo(member, domain.NewEvent(domain.EventPeerLeft, string(name)))
	}
}

func (o *Orchestrator) clientLog(conn core.Connection, args ...any) {
	if !o.Options.ClientLog {
		return
	}
	line := append([]any{"Message from server:"}, args...)
	o.deliver(conn, domain.NewEvent(domain.EventLog, line))
}
