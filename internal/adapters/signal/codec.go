package signal

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dkeye/Rendezvous/internal/core"
	"github.com/dkeye/Rendezvous/internal/domain"
)

var (
	ErrBadFrame    = errors.New("bad frame")
	ErrUnencodable = errors.New("message not encodable on this protocol")
)

// roomFrame is the room protocol envelope: a named event with
// positional arguments.
type roomFrame struct {
	Event string            `json:"event"`
	Args  []json.RawMessage `json:"args,omitempty"`
}

type roomFrameOut struct {
	Event string `json:"event"`
	Args  []any  `json:"args"`
}

// relayFrame is the directory protocol envelope.
type relayFrame struct {
	Type     string          `json:"type"`
	Username string          `json:"username,omitempty"`
	Target   string          `json:"target,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
}

// DecodeRoomFrame splits a room protocol frame into its event name and raw args.
func DecodeRoomFrame(data []byte) (domain.EventName, []json.RawMessage, error) {
	var f roomFrame
	if err := json.Unmarshal(data, &f); err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBadFrame, err)
	}
	if f.Event == "" {
		return "", nil, fmt.Errorf("%w: missing event", ErrBadFrame)
	}
	return domain.EventName(f.Event), f.Args, nil
}

// EncodeEvent serializes a room protocol event.
func EncodeEvent(msg domain.Message) (core.Frame, error) {
	ev, ok := msg.(domain.Event)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnencodable, msg.Kind())
	}
	args := ev.Args
	if args == nil {
		args = []any{}
	}
	return json.Marshal(roomFrameOut{Event: string(ev.Name), Args: args})
}

// DecodeRelay parses a directory frame into one of the relay kinds.
func DecodeRelay(data []byte) (domain.Relay, error) {
	var f relayFrame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadFrame, err)
	}
	user := domain.Username(f.Username)
	target := domain.Username(f.Target)

	switch domain.RelayKind(f.Type) {
	case domain.KindSignIn:
		return domain.SignIn{Username: user, Data: f.Data}, nil
	case domain.KindStartStreaming:
		return domain.StartStreaming{Username: user, Target: target, Data: f.Data}, nil
	case domain.KindOffer:
		return domain.Offer{Username: user, Target: target, Data: f.Data}, nil
	case domain.KindAnswer:
		return domain.Answer{Username: user, Target: target, Data: f.Data}, nil
	case domain.KindIceCandidates:
		return domain.IceCandidates{Username: user, Target: target, Data: f.Data}, nil
	case domain.KindEndCall:
		return domain.EndCall{Username: user, Target: target}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownRelayKind, f.Type)
	}
}

// EncodeRelay serializes a relay message. Empty fields are left out.
func EncodeRelay(msg domain.Message) (core.Frame, error) {
	var f relayFrame
	switch m := msg.(type) {
	case domain.SignIn:
		f = relayFrame{Username: string(m.Username), Data: m.Data}
	case domain.StartStreaming:
		f = relayFrame{Username: string(m.Username), Target: string(m.Target), Data: m.Data}
	case domain.Offer:
		f = relayFrame{Username: string(m.Username), Target: string(m.Target), Data: m.Data}
	case domain.Answer:
		f = relayFrame{Username: string(m.Username), Target: string(m.Target), Data: m.Data}
	case domain.IceCandidates:
		f = relayFrame{Username: string(m.Username), Target: string(m.Target), Data: m.Data}
	case domain.EndCall:
		f = relayFrame{Username: string(m.Username), Target: string(m.Target)}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnencodable, msg.Kind())
	}
	f.Type = msg.Kind()
	return json.Marshal(f)
}
