package rtc

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/dkeye/Rendezvous/internal/config"
	"github.com/pion/webrtc/v4"
)

func TestICEServers(t *testing.T) {
	servers, err := ICEServers(config.ICE{
		URLs:       []string{"stun:stun.example.org:3478", "turn:turn.example.org:3478?transport=udp"},
		Username:   "u",
		Credential: "p",
	})
	if err != nil {
		t.Fatalf("ICEServers: %v", err)
	}
	if len(servers) != 1 {
		t.Fatalf("got %d servers", len(servers))
	}
	s := servers[0]
	if len(s.URLs) != 2 || s.Username != "u" || s.Credential != "p" || s.CredentialType != webrtc.ICECredentialTypePassword {
		t.Fatalf("server = %+v", s)
	}
}

func TestICEServersRejectsBadInput(t *testing.T) {
	if _, err := ICEServers(config.ICE{URLs: []string{"http://not-ice"}}); err == nil {
		t.Fatalf("bad scheme accepted")
	}
}

func TestICEServersFallsBackToDefault(t *testing.T) {
	servers, err := ICEServers(config.ICE{Username: "ignored"})
	if err != nil {
		t.Fatalf("ICEServers: %v", err)
	}
	if len(servers) != 1 || len(servers[0].URLs) != 1 || servers[0].URLs[0] != config.DefaultSTUN {
		t.Fatalf("fallback = %+v", servers)
	}
	if servers[0].Username != "" {
		t.Fatalf("credentials attached to the public default: %+v", servers[0])
	}
}

const testSDP = "v=0\r\n" +
	"o=- 0 0 IN IP4 127.0.0.1\r\n" +
	"s=-\r\n" +
	"t=0 0\r\n" +
	"m=audio 9 UDP/TLS/RTP/SAVPF 111\r\n" +
	"c=IN IP4 0.0.0.0\r\n" +
	"m=video 9 UDP/TLS/RTP/SAVPF 96\r\n" +
	"c=IN IP4 0.0.0.0\r\n"

func TestDescribeSDP(t *testing.T) {
	obj, _ := json.Marshal(map[string]string{"type": "offer", "sdp": testSDP})
	sum, ok := DescribeSDP(obj)
	if !ok {
		t.Fatalf("object form not recognised")
	}
	if sum.Type != "offer" || !slices.Equal(sum.Media, []string{"audio", "video"}) {
		t.Fatalf("summary = %+v", sum)
	}

	bare, _ := json.Marshal(testSDP)
	if sum, ok := DescribeSDP(bare); !ok || len(sum.Media) != 2 {
		t.Fatalf("bare form = %+v %v", sum, ok)
	}

	for _, in := range []string{``, `42`, `"hello"`, `{"foo":1}`} {
		if _, ok := DescribeSDP(json.RawMessage(in)); ok {
			t.Errorf("%q recognised as SDP", in)
		}
	}
}
