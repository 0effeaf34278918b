package orch

import (
	"encoding/json"

	"github.com/dkeye/Rendezvous/internal/domain"
	"github.com/rs/zerolog/log"
)

// HandleRelay applies one directory message sent by connection id.
// Messages for a target that is not signed in are dropped silently.
func (o *Orchestrator) HandleRelay(id domain.ConnID, msg domain.Relay) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, ok := o.Registry.FindByID(id); !ok {
		return
	}
	logger := log.With().
		Str("module", "orch.directory").
		Str("conn", id.String()).
		Str("kind", msg.Kind()).
		Str("username", string(msg.Sender())).
		Logger()

	_, signedIn := o.Registry.FindByUsername(msg.Sender())
	target, hasTarget := o.Registry.FindByUsername(msg.Recipient())

	var out domain.Relay
	switch m := msg.(type) {
	case domain.SignIn:
		if signedIn {
			logger.Debug().Msg("duplicate sign-in ignored")
			return
		}
		user, err := domain.NewUser(m.Username, credentialOf(m.Data), id)
		if err != nil {
			logger.Warn().Err(err).Msg("sign-in rejected")
			return
		}
		if !o.Directory.Add(user) {
			logger.Debug().Msg("duplicate sign-in ignored")
			return
		}
		o.Registry.BindUsername(id, user.Username)
		return
	case domain.StartStreaming:
		out = domain.StartStreaming{Username: m.Username, Target: m.Target, Data: m.Data}
	case domain.Offer:
		out = domain.Offer{Username: m.Username, Data: m.Data}
	case domain.Answer:
		out = domain.Answer{Username: m.Username, Data: m.Data}
	case domain.IceCandidates:
		out = domain.IceCandidates{Username: m.Username, Data: m.Data}
	case domain.EndCall:
		out = domain.EndCall{Username: m.Username}
	default:
		logger.Error().Err(domain.ErrUnknownRelayKind).Msg("unhandled relay")
		return
	}

	if !hasTarget {
		logger.Debug().Str("target", string(msg.Recipient())).Msg("target not signed in, dropped")
		return
	}
	o.deliver(target, out)
	logger.Debug().Str("target", string(msg.Recipient())).Msg("relayed")
}

// credentialOf returns the sign-in data as stored: the text of a JSON
// string, or the raw JSON for any other value.
func credentialOf(data json.RawMessage) string {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s
	}
	return string(data)
}
