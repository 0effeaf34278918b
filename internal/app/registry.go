package app

import (
	"sort"

	"github.com/dkeye/Rendezvous/internal/core"
	"github.com/dkeye/Rendezvous/internal/domain"
	"github.com/rs/zerolog/log"
)

type registryEntry struct {
	Conn      core.Connection
	RoomName  domain.RoomName
	Usernames map[domain.Username]struct{}
}

// Binding is a snapshot of the identity a connection held.
type Binding struct {
	Conn      core.Connection
	RoomName  domain.RoomName
	Usernames []domain.Username
}

// Registry maps live connections to their identity (room membership or
// usernames). It is the only place that mapping changes.
//
// Registry is not safe for concurrent use; the orchestrator serializes access.
type Registry struct {
	conns  map[domain.ConnID]*registryEntry
	byName map[domain.Username]domain.ConnID
}

func NewRegistry() *Registry {
	return &Registry{
		conns:  make(map[domain.ConnID]*registryEntry),
		byName: make(map[domain.Username]domain.ConnID),
	}
}

func (r *Registry) Register(conn core.Connection) domain.ConnID {
	id := conn.ID()
	r.conns[id] = &registryEntry{
		Conn:      conn,
		Usernames: make(map[domain.Username]struct{}),
	}
	log.Info().Str("module", "app.registry").Str("conn", id.String()).Str("proto", conn.Protocol().String()).Msg("registered connection")
	return id
}

// Unregister drops the connection and every name bound to it.
func (r *Registry) Unregister(id domain.ConnID) (Binding, bool) {
	e, ok := r.conns[id]
	if !ok {
		return Binding{}, false
	}
	delete(r.conns, id)

	names := make([]domain.Username, 0, len(e.Usernames))
	for name := range e.Usernames {
		if owner, ok := r.byName[name]; ok && owner == id {
			delete(r.byName, name)
		}
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	log.Info().Str("module", "app.registry").Str("conn", id.String()).Int("names", len(names)).Msg("unregistered connection")
	return Binding{Conn: e.Conn, RoomName: e.RoomName, Usernames: names}, true
}

func (r *Registry) FindByID(id domain.ConnID) (core.Connection, bool) {
	e, ok := r.conns[id]
	if !ok {
		return nil, false
	}
	return e.Conn, true
}

func (r *Registry) FindByUsername(name domain.Username) (core.Connection, bool) {
	if name == "" {
		return nil, false
	}
	id, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return r.FindByID(id)
}

// BindUsername attaches name to the connection. It fails when the name
// is already taken or the connection is unknown.
func (r *Registry) BindUsername(id domain.ConnID, name domain.Username) bool {
	e, ok := r.conns[id]
	if !ok {
		return false
	}
	if _, taken := r.byName[name]; taken {
		return false
	}
	r.byName[name] = id
	e.Usernames[name] = struct{}{}
	log.Info().Str("module", "app.registry").Str("conn", id.String()).Str("username", string(name)).Msg("bound username")
	return true
}

func (r *Registry) BindRoom(id domain.ConnID, room domain.RoomName) bool {
	e, ok := r.conns[id]
	if !ok {
		return false
	}
	e.RoomName = room
	log.Info().Str("module", "app.registry").Str("conn", id.String()).Str("room", string(room)).Msg("updated room")
	return true
}

func (r *Registry) ClearRoom(id domain.ConnID) {
	if e, ok := r.conns[id]; ok {
		e.RoomName = ""
	}
}

func (r *Registry) RoomOf(id domain.ConnID) (domain.RoomName, bool) {
	e, ok := r.conns[id]
	if !ok || e.RoomName == "" {
		return "", false
	}
	return e.RoomName, true
}

// ByProtocol lists connections speaking p, skipping except.
func (r *Registry) ByProtocol(p domain.Protocol, except domain.ConnID) []core.Connection {
	out := make([]core.Connection, 0, len(r.conns))
	for id, e := range r.conns {
		if id == except || e.Conn.Protocol() != p {
			continue
		}
		out = append(out, e.Conn)
	}
	return out
}

func (r *Registry) Len() int { return len(r.conns) }
