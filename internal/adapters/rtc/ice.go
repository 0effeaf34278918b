// Package rtc describes the WebRTC parameters clients need. The server
// never opens a peer connection itself.
package rtc

import (
	"fmt"

	"github.com/dkeye/Rendezvous/internal/config"
	"github.com/pion/stun/v3"
	"github.com/pion/webrtc/v4"
)

func DefaultICEServers() []webrtc.ICEServer {
	return []webrtc.ICEServer{{URLs: []string{config.DefaultSTUN}}}
}

// ICEServers builds the server list handed to clients. Every URL must be a
// valid stun:, stuns:, turn: or turns: URI. Credentials are attached only
// when a username is configured. With no URLs configured the public
// default STUN server is used.
func ICEServers(cfg config.ICE) ([]webrtc.ICEServer, error) {
	if len(cfg.URLs) == 0 {
		return DefaultICEServers(), nil
	}
	for _, raw := range cfg.URLs {
		if _, err := stun.ParseURI(raw); err != nil {
			return nil, fmt.Errorf("ice url %q: %w", raw, err)
		}
	}
	server := webrtc.ICEServer{URLs: append([]string(nil), cfg.URLs...)}
	if cfg.Username != "" {
		server.Username = cfg.Username
		server.Credential = cfg.Credential
		server.CredentialType = webrtc.ICECredentialTypePassword
	}
	return []webrtc.ICEServer{server}, nil
}
