package app

import "github.com/dkeye/Rendezvous/internal/core"

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	KickMember
	DropFrame
)

// Policy decides what happens to a connection whose send queue is full.
type Policy interface {
	OnBackPressure(conn core.Connection) BackpressureAction
}

// SimplePolicy drops the frame and keeps the slow connection.
type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(core.Connection) BackpressureAction {
	return DropFrame
}

// StrictPolicy disconnects slow consumers.
type StrictPolicy struct{}

func (StrictPolicy) OnBackPressure(core.Connection) BackpressureAction {
	return KickMember
}

// PolicyFor maps the config value to a policy.
func PolicyFor(name string) Policy {
	if name == "kick" {
		return StrictPolicy{}
	}
	return SimplePolicy{}
}
