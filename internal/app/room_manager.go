package app

import (
	"slices"
	"sort"

	"github.com/dkeye/Rendezvous/internal/core"
	"github.com/dkeye/Rendezvous/internal/domain"
	"github.com/rs/zerolog/log"
)

// RoomHandle is a live room returned by GetOrCreate.
type RoomHandle struct {
	room *domain.Room
}

func (h *RoomHandle) Name() domain.RoomName { return h.room.Name }
func (h *RoomHandle) Count() int            { return len(h.room.Members) }
func (h *RoomHandle) Full() bool            { return len(h.room.Members) >= domain.MaxRoomMembers }
func (h *RoomHandle) Has(id domain.ConnID) bool {
	return slices.Contains(h.room.Members, id)
}

// Members returns a copy in join order.
func (h *RoomHandle) Members() []domain.ConnID {
	return slices.Clone(h.room.Members)
}

func (h *RoomHandle) add(id domain.ConnID) bool {
	if h.Full() || h.Has(id) {
		return false
	}
	h.room.Members = append(h.room.Members, id)
	return true
}

func (h *RoomHandle) remove(id domain.ConnID) bool {
	i := slices.Index(h.room.Members, id)
	if i < 0 {
		return false
	}
	h.room.Members = slices.Delete(h.room.Members, i, i+1)
	return true
}

// RoomManager keeps rooms that have at least one member.
// Not safe for concurrent use; the orchestrator serializes access.
type RoomManager struct {
	rooms map[domain.RoomName]*RoomHandle
}

func NewRoomManager() *RoomManager {
	return &RoomManager{rooms: make(map[domain.RoomName]*RoomHandle)}
}

// GetOrCreate returns the room, creating an empty one when absent.
// An empty room that never gets a member must be dropped with Forget.
func (m *RoomManager) GetOrCreate(name domain.RoomName) *RoomHandle {
	if h, ok := m.rooms[name]; ok {
		return h
	}
	h := &RoomHandle{room: &domain.Room{Name: name}}
	m.rooms[name] = h
	log.Debug().Str("module", "app.rooms").Str("room", string(name)).Msg("room created")
	return h
}

func (m *RoomManager) Get(name domain.RoomName) (*RoomHandle, bool) {
	h, ok := m.rooms[name]
	return h, ok
}

// Join adds id to the room. It reports false when the room is full
// or id is already a member.
func (m *RoomManager) Join(h *RoomHandle, id domain.ConnID) bool {
	if !h.add(id) {
		return false
	}
	log.Info().Str("module", "app.rooms").Str("room", string(h.Name())).Str("conn", id.String()).Int("count", h.Count()).Msg("member added")
	return true
}

// Remove takes id out of the room and drops the room once it is empty.
func (m *RoomManager) Remove(name domain.RoomName, id domain.ConnID) (*RoomHandle, bool) {
	h, ok := m.rooms[name]
	if !ok || !h.remove(id) {
		return nil, false
	}
	log.Info().Str("module", "app.rooms").Str("room", string(name)).Str("conn", id.String()).Int("count", h.Count()).Msg("member removed")
	m.Forget(name)
	return h, true
}

// Forget drops the room if it has no members.
func (m *RoomManager) Forget(name domain.RoomName) {
	if h, ok := m.rooms[name]; ok && h.Count() == 0 {
		delete(m.rooms, name)
		log.Debug().Str("module", "app.rooms").Str("room", string(name)).Msg("room dropped")
	}
}

func (m *RoomManager) List() []core.RoomInfo {
	out := make([]core.RoomInfo, 0, len(m.rooms))
	for name, h := range m.rooms {
		out = append(out, core.RoomInfo{Name: name, Members: h.Members()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
