// Package orch owns the registry, room and directory tables behind a single
// lock and implements the room and directory signaling operations on top.
package orch

import (
	"errors"
	"net"
	"sync"

	"github.com/dkeye/Rendezvous/internal/app"
	"github.com/dkeye/Rendezvous/internal/config"
	"github.com/dkeye/Rendezvous/internal/core"
	"github.com/dkeye/Rendezvous/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/wlynxg/anet"
)

// Options toggles protocol behaviour that differs between deployments.
type Options struct {
	// GlobalBroadcast enables the room protocol "message" event, which
	// reaches every other room-protocol connection regardless of room.
	GlobalBroadcast bool
	// NotifyPeerLeft sends "peer-left" to the remaining member when a
	// connection leaves its room.
	NotifyPeerLeft bool
	// ClientLog echoes server-side progress to the requester as "log" events.
	ClientLog bool
	// ExcludeAddrs are never reported by ipaddr.
	ExcludeAddrs []string
	// Addrs lists host addresses. Defaults to anet.InterfaceAddrs.
	Addrs func() ([]net.Addr, error)
}

// OptionsFrom maps the rooms and ipaddr config sections to Options.
func OptionsFrom(cfg *config.Config) Options {
	return Options{
		GlobalBroadcast: cfg.Rooms.GlobalBroadcast,
		NotifyPeerLeft:  cfg.Rooms.NotifyPeerLeft,
		ClientLog:       cfg.Rooms.ClientLog,
		ExcludeAddrs:    cfg.IPAddr.Exclude,
	}
}

type Orchestrator struct {
	Registry  *app.Registry
	Rooms     *app.RoomManager
	Directory *app.Directory
	Policy    app.Policy
	Options   Options

	mu sync.Mutex
}

func New(opts Options, policy app.Policy) *Orchestrator {
	if opts.Addrs == nil {
		opts.Addrs = anet.InterfaceAddrs
	}
	if policy == nil {
		policy = app.SimplePolicy{}
	}
	return &Orchestrator{
		Registry:  app.NewRegistry(),
		Rooms:     app.NewRoomManager(),
		Directory: app.NewDirectory(),
		Policy:    policy,
		Options:   opts,
	}
}

// Connect registers an accepted connection.
func (o *Orchestrator) Connect(conn core.Connection) domain.ConnID {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.Registry.Register(conn)
}

// Disconnect releases everything the connection held. It must be called
// once the transport reports closure, before the next frame from anyone
// else can observe the stale state.
func (o *Orchestrator) Disconnect(id domain.ConnID) {
	o.mu.Lock()
	defer o.mu.Unlock()

	binding, ok := o.Registry.Unregister(id)
	if !ok {
		return
	}
	if binding.RoomName != "" {
		o.leaveRoom(id, binding.RoomName)
	}
	removed := o.Directory.RemoveOwnedBy(id)
	log.Info().
		Str("module", "orch").
		Str("conn", id.String()).
		Str("room", string(binding.RoomName)).
		Int("users_removed", len(removed)).
		Msg("disconnected")
}

func (o *Orchestrator) RoomList() []core.RoomInfo {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.Rooms.List()
}

func (o *Orchestrator) Users() []core.UserInfo {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.Directory.List()
}

// deliver hands msg to conn and applies the back-pressure policy.
func (o *Orchestrator) deliver(conn core.Connection, msg domain.Message) {
	err := conn.Send(msg)
	if err == nil {
		return
	}
	logger := log.With().Str("module", "orch").Str("conn", conn.ID().String()).Str("kind", msg.Kind()).Logger()
	if !errors.Is(err, core.ErrBackpressure) {
		logger.Debug().Err(err).Msg("deliver failed")
		return
	}
	switch o.Policy.OnBackPressure(conn) {
	case app.KickMember:
		logger.Warn().Msg("slow consumer, closing connection")
		conn.Close()
	case app.DropFrame, app.NoAction:
		logger.Warn().Msg("slow consumer, frame dropped")
	}
}

func (o *Orchestrator) deliverTo(id domain.ConnID, msg domain.Message) {
	conn, ok := o.Registry.FindByID(id)
	if !ok {
		return
	}
	o.deliver(conn, msg)
}
