package rtc

import (
	"encoding/json"

	"github.com/pion/sdp/v3"
)

// SDPSummary is what the relay logs about a session description. The
// payload itself is forwarded untouched.
type SDPSummary struct {
	Type  string
	Media []string
}

// DescribeSDP inspects an offer or answer payload, either a bare SDP string
// or a {"type","sdp"} object. ok is false when the payload is not SDP.
func DescribeSDP(data json.RawMessage) (SDPSummary, bool) {
	if len(data) == 0 {
		return SDPSummary{}, false
	}
	var desc struct {
		Type string `json:"type"`
		SDP  string `json:"sdp"`
	}
	if err := json.Unmarshal(data, &desc); err != nil || desc.SDP == "" {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil || raw == "" {
			return SDPSummary{}, false
		}
		desc.SDP = raw
	}

	var s sdp.SessionDescription
	if err := s.UnmarshalString(desc.SDP); err != nil {
		return SDPSummary{}, false
	}
	sum := SDPSummary{Type: desc.Type}
	for _, md := range s.MediaDescriptions {
		sum.Media = append(sum.Media, md.MediaName.Media)
	}
	return sum, true
}
