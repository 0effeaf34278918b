package orch

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/dkeye/Rendezvous/internal/domain"
)

func signIn(o *Orchestrator, c *fakeConn, name string) {
	o.HandleRelay(c.ID(), domain.SignIn{Username: domain.Username(name), Data: json.RawMessage(`"pw"`)})
}

func TestSignInDuplicateKeepsOriginalOwner(t *testing.T) {
	o := newTestOrch(Options{})
	a := connect(o, "a", domain.ProtocolDirectory)
	b := connect(o, "b", domain.ProtocolDirectory)

	signIn(o, a, "alice")
	signIn(o, b, "alice")

	conn, ok := o.Registry.FindByUsername("alice")
	if !ok || conn.ID() != "a" {
		t.Fatalf("alice should stay on a")
	}
	u, _ := o.Directory.Lookup("alice")
	if u.Owner != "a" || u.Credential != "pw" {
		t.Fatalf("user = %+v", u)
	}
	if len(a.relays())+len(b.relays()) != 0 {
		t.Fatalf("sign-in produced replies")
	}

	signIn(o, b, "bob")
	o.HandleRelay("b", domain.Offer{Username: "bob", Target: "alice", Data: json.RawMessage(`"sdp"`)})
	if got := a.relays(); len(got) != 1 || got[0].Sender() != "bob" {
		t.Fatalf("original owner got %v, want one offer from bob", got)
	}
	if got := b.relays(); len(got) != 0 {
		t.Fatalf("second connection got %v", got)
	}
}

func TestSignInCredentialStoredVerbatim(t *testing.T) {
	o := newTestOrch(Options{})
	cases := []struct {
		data json.RawMessage
		want string
	}{
		{json.RawMessage(`"pw1"`), "pw1"},
		{json.RawMessage(`"a \"quoted\" pw"`), `a "quoted" pw`},
		{json.RawMessage(`{"token":1}`), `{"token":1}`},
		{nil, ""},
	}
	for i, tc := range cases {
		c := connect(o, fmt.Sprintf("c%d", i), domain.ProtocolDirectory)
		name := domain.Username(fmt.Sprintf("user%d", i))
		o.HandleRelay(c.ID(), domain.SignIn{Username: name, Data: tc.data})
		u, ok := o.Directory.Lookup(name)
		if !ok {
			t.Fatalf("%s not signed in", name)
		}
		if u.Credential != tc.want {
			t.Errorf("%s: credential = %q, want %q", tc.data, u.Credential, tc.want)
		}
	}
}

func TestSignInEmptyUsernameRejected(t *testing.T) {
	o := newTestOrch(Options{})
	a := connect(o, "a", domain.ProtocolDirectory)

	signIn(o, a, "")
	if o.Directory.Len() != 0 {
		t.Fatalf("empty username was stored")
	}
}

func TestOfferRelayedWithoutTarget(t *testing.T) {
	o := newTestOrch(Options{})
	a := connect(o, "a", domain.ProtocolDirectory)
	b := connect(o, "b", domain.ProtocolDirectory)
	signIn(o, a, "alice")
	signIn(o, b, "bob")

	sdp := json.RawMessage(`{"type":"offer","sdp":"v=0"}`)
	o.HandleRelay("a", domain.Offer{Username: "alice", Target: "bob", Data: sdp})

	got := b.relays()
	if len(got) != 1 {
		t.Fatalf("bob got %d relays", len(got))
	}
	offer, ok := got[0].(domain.Offer)
	if !ok {
		t.Fatalf("bob got %T", got[0])
	}
	if offer.Username != "alice" || offer.Target != "" || string(offer.Data) != string(sdp) {
		t.Fatalf("forwarded offer = %+v", offer)
	}
	if len(a.relays()) != 0 {
		t.Fatalf("sender got an echo")
	}
}

func TestStartStreamingCarriesTarget(t *testing.T) {
	o := newTestOrch(Options{})
	a := connect(o, "a", domain.ProtocolDirectory)
	b := connect(o, "b", domain.ProtocolDirectory)
	signIn(o, a, "alice")
	signIn(o, b, "bob")

	o.HandleRelay("a", domain.StartStreaming{Username: "alice", Target: "bob", Data: json.RawMessage(`1`)})

	got := b.relays()
	if len(got) != 1 {
		t.Fatalf("bob got %d relays", len(got))
	}
	ss := got[0].(domain.StartStreaming)
	if ss.Username != "alice" || ss.Target != "bob" || string(ss.Data) != "1" {
		t.Fatalf("forwarded = %+v", ss)
	}
}

func TestAnswerIceAndEndCallShapes(t *testing.T) {
	o := newTestOrch(Options{})
	a := connect(o, "a", domain.ProtocolDirectory)
	b := connect(o, "b", domain.ProtocolDirectory)
	signIn(o, a, "alice")
	signIn(o, b, "bob")

	o.HandleRelay("b", domain.Answer{Username: "bob", Target: "alice", Data: json.RawMessage(`"ans"`)})
	o.HandleRelay("b", domain.IceCandidates{Username: "bob", Target: "alice", Data: json.RawMessage(`["c1"]`)})
	o.HandleRelay("b", domain.EndCall{Username: "bob", Target: "alice"})

	got := a.relays()
	if len(got) != 3 {
		t.Fatalf("alice got %d relays", len(got))
	}
	if ans := got[0].(domain.Answer); ans.Target != "" || string(ans.Data) != `"ans"` {
		t.Fatalf("answer = %+v", ans)
	}
	if ice := got[1].(domain.IceCandidates); ice.Target != "" || ice.Username != "bob" {
		t.Fatalf("ice = %+v", ice)
	}
	if end := got[2].(domain.EndCall); end != (domain.EndCall{Username: "bob"}) {
		t.Fatalf("endcall = %+v", end)
	}
}

func TestRelayToUnknownTargetDropped(t *testing.T) {
	o := newTestOrch(Options{})
	a := connect(o, "a", domain.ProtocolDirectory)
	signIn(o, a, "alice")

	o.HandleRelay("a", domain.Offer{Username: "alice", Target: "nobody", Data: json.RawMessage(`"x"`)})
	o.HandleRelay("a", domain.Offer{Username: "alice", Data: json.RawMessage(`"x"`)})

	if len(a.relays()) != 0 {
		t.Fatalf("dropped relay echoed to sender")
	}
}

func TestCloseReleasesAllUsernames(t *testing.T) {
	o := newTestOrch(Options{})
	c := connect(o, "c", domain.ProtocolDirectory)
	signIn(o, c, "carol")
	signIn(o, c, "carla")

	o.Disconnect("c")
	if o.Directory.Len() != 0 {
		t.Fatalf("users survived close: %v", o.Users())
	}

	d := connect(o, "d", domain.ProtocolDirectory)
	signIn(o, d, "carol")
	if conn, ok := o.Registry.FindByUsername("carol"); !ok || conn.ID() != "d" {
		t.Fatalf("carol not re-signed on d")
	}
}

func TestHandleRelayUnknownConnectionIgnored(t *testing.T) {
	o := newTestOrch(Options{})
	o.HandleRelay("ghost", domain.SignIn{Username: "x"})
	if o.Directory.Len() != 0 {
		t.Fatalf("unknown connection signed in")
	}
}

func TestConcurrentRelays(t *testing.T) {
	o := newTestOrch(Options{})
	const n = 20
	conns := make([]*fakeConn, n)
	for i := range conns {
		conns[i] = connect(o, fmt.Sprintf("c%d", i), domain.ProtocolDirectory)
		signIn(o, conns[i], fmt.Sprintf("u%d", i))
	}

	var wg sync.WaitGroup
	for i := range conns {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			from := domain.Username(fmt.Sprintf("u%d", i))
			to := domain.Username(fmt.Sprintf("u%d", (i+1)%n))
			for j := 0; j < 10; j++ {
				o.HandleRelay(conns[i].ID(), domain.IceCandidates{Username: from, Target: to, Data: json.RawMessage(`0`)})
			}
		}(i)
	}
	wg.Wait()

	for i, c := range conns {
		if got := len(c.relays()); got != 10 {
			t.Fatalf("conn %d got %d relays, want 10", i, got)
		}
	}
}
