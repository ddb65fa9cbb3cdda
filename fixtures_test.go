package dnswalker

import (
	"net"
	"strings"
	"testing"

	"github.com/miekg/dns"
)

// TestServer is a miekg/dns-backed authoritative server for an RFC 1035
// style zonefile, used to exercise the delegation-walking resolver against
// a real UDP exchange rather than a hand-rolled fake transport.
type TestServer struct {
	dns.Server
}

// NewTestServer starts a DNS server on addr:5354/udp serving zone (an RFC
// 1035 zonefile rooted at "."). It is shut down automatically when the test
// finishes.
func NewTestServer(t *testing.T, addr string, zone string) *TestServer {
	t.Helper()

	srv := &TestServer{}

	t.Logf("starting test name server on %s:5354/udp", addr)
	ln, err := net.ListenPacket("udp", addr+":5354")
	if err != nil {
		t.Fatal(err)
	}

	srv.Server = dns.Server{
		PacketConn: ln,
		Handler:    zoneHandler(t, zone, addr+".zone"),
	}

	done := make(chan struct{})
	t.Cleanup(func() {
		close(done)
		srv.Shutdown()
	})

	go func() {
		err := srv.ActivateAndServe()
		select {
		case <-done:
		default:
			if err != nil {
				t.Error(err)
			}
		}
	}()

	return srv
}

// NewSilentServer starts a UDP listener on addr:5354 that never replies,
// simulating a server that always times out.
func NewSilentServer(t *testing.T, addr string) {
	t.Helper()

	conn, err := net.ListenPacket("udp", addr+":5354")
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan struct{})
	t.Cleanup(func() {
		close(done)
		conn.Close()
	})

	go func() {
		buf := make([]byte, 512)
		for {
			_, _, err := conn.ReadFrom(buf)
			if err != nil {
				return
			}
			select {
			case <-done:
				return
			default:
			}
			// Read and discard: never responds, so the client always
			// times out against this server.
		}
	}()
}

// zoneHandler serves zone the way a single authoritative server holding
// both a parent apex and delegation records for the zones it has cut away
// would: an exact (qname, qtype) match is returned as an authoritative
// answer (with NS glue in Additional); failing that, the longest NS owner
// name enclosing qname is returned as a non-authoritative referral in the
// Authority section, with glue in Additional, so a caller walking
// delegations sees the same referral shape a real root or TLD server
// produces, because this resolver's ingest specifically inspects the
// authority section to discover delegations.
func zoneHandler(t *testing.T, zone, fname string) dns.Handler {
	zp := dns.NewZoneParser(strings.NewReader(strings.TrimSpace(zone)+"\n"), ".", fname)
	zp.SetIncludeAllowed(false)

	db := map[uint16]map[string][]dns.RR{}
	for {
		rr, ok := zp.Next()
		if !ok {
			break
		}
		hdr := rr.Header()
		if db[hdr.Rrtype] == nil {
			db[hdr.Rrtype] = map[string][]dns.RR{}
		}
		db[hdr.Rrtype][hdr.Name] = append(db[hdr.Rrtype][hdr.Name], rr)
	}
	if err := zp.Err(); err != nil {
		t.Fatal(err)
	}

	glue := func(m *dns.Msg, nsRecords []dns.RR) {
		for _, rr := range nsRecords {
			ns, ok := rr.(*dns.NS)
			if !ok {
				continue
			}
			m.Extra = append(m.Extra, db[dns.TypeA][ns.Ns]...)
			m.Extra = append(m.Extra, db[dns.TypeAAAA][ns.Ns]...)
		}
	}

	return dns.HandlerFunc(func(w dns.ResponseWriter, req *dns.Msg) {
		if len(req.Question) != 1 {
			m := new(dns.Msg)
			m.SetRcode(req, dns.RcodeFormatError)
			w.WriteMsg(m)
			return
		}

		q := req.Question[0]
		m := new(dns.Msg)
		m.SetReply(req)

		if answer := db[q.Qtype][q.Name]; len(answer) > 0 {
			m.Authoritative = true
			m.Answer = answer
			glue(m, answer)
			w.WriteMsg(m)
			return
		}

		if cut, nsRecords := closestCut(db, q.Name); nsRecords != nil {
			m.Authoritative = false
			m.Ns = nsRecords
			glue(m, nsRecords)
			_ = cut
			w.WriteMsg(m)
			return
		}

		m.SetRcode(req, dns.RcodeNameError)
		w.WriteMsg(m)
	})
}

// closestCut finds the longest NS-owner name in db that encloses name,
// returning its NS record set, or nil if none qualifies.
func closestCut(db map[uint16]map[string][]dns.RR, name string) (string, []dns.RR) {
	best := ""
	bestRecords := []dns.RR(nil)
	bestLabels := -1

	for owner, records := range db[dns.TypeNS] {
		if !dns.IsSubDomain(owner, name) {
			continue
		}
		if n := dns.CountLabel(owner); n > bestLabels {
			best, bestRecords, bestLabels = owner, records, n
		}
	}

	return best, bestRecords
}
