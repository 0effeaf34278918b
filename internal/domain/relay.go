package domain

import (
	"encoding/json"
	"errors"
)

var ErrUnknownRelayKind = errors.New("unknown relay kind")

type RelayKind string

const (
	KindSignIn         RelayKind = "SignIn"
	KindStartStreaming RelayKind = "StartStreaming"
	KindOffer          RelayKind = "Offer"
	KindAnswer         RelayKind = "Answer"
	KindIceCandidates  RelayKind = "IceCandidates"
	KindEndCall        RelayKind = "EndCall"
)

// Relay is the closed set of directory protocol messages.
// The unexported method keeps the set limited to the types below.
type Relay interface {
	Message
	Sender() Username
	Recipient() Username
	relay()
}

// SignIn registers Username on the sending connection. Data is the credential.
// Data on every kind is the raw JSON value of the frame's data field and is
// passed through untouched.
type SignIn struct {
	Username Username
	Data     json.RawMessage
}

type StartStreaming struct {
	Username Username
	Target   Username
	Data     json.RawMessage
}

type Offer struct {
	Username Username
	Target   Username
	Data     json.RawMessage
}

type Answer struct {
	Username Username
	Target   Username
	Data     json.RawMessage
}

type IceCandidates struct {
	Username Username
	Target   Username
	Data     json.RawMessage
}

type EndCall struct {
	Username Username
	Target   Username
}

func (SignIn) Kind() string         { return string(KindSignIn) }
func (StartStreaming) Kind() string { return string(KindStartStreaming) }
func (Offer) Kind() string          { return string(KindOffer) }
func (Answer) Kind() string         { return string(KindAnswer) }
func (IceCandidates) Kind() string  { return string(KindIceCandidates) }
func (EndCall) Kind() string        { return string(KindEndCall) }

func (m SignIn) Sender() Username         { return m.Username }
func (m StartStreaming) Sender() Username { return m.Username }
func (m Offer) Sender() Username          { return m.Username }
func (m Answer) Sender() Username         { return m.Username }
func (m IceCandidates) Sender() Username  { return m.Username }
func (m EndCall) Sender() Username        { return m.Username }

// SignIn has no recipient.
func (m SignIn) Recipient() Username         { return "" }
func (m StartStreaming) Recipient() Username { return m.Target }
func (m Offer) Recipient() Username          { return m.Target }
func (m Answer) Recipient() Username         { return m.Target }
func (m IceCandidates) Recipient() Username  { return m.Target }
func (m EndCall) Recipient() Username        { return m.Target }

func (SignIn) relay()         {}
func (StartStreaming) relay() {}
func (Offer) relay()          {}
func (Answer) relay()         {}
func (IceCandidates) relay()  {}
func (EndCall) relay()        {}
