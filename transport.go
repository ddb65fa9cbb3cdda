package dnswalker

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/miekg/dns"
)

// DNSClient is the external collaborator ingest dispatches probes through.
// Wire-level encoding/decoding and UDP transport live entirely behind this
// interface; the core only ever sees a parsed *dns.Msg or a classified
// error.
type DNSClient interface {
	Query(ctx context.Context, server net.IP, name string, rtype RecordType) (*dns.Msg, error)
}

// TimeoutPolicy determines the round-trip timeout for a single query to a
// given server. Any non-positive duration means no timeout is applied.
//
// This resolver only varies timeout by destination, not by record type:
// that is the one knob its non-goals leave room for.
type TimeoutPolicy func(server net.IP) time.Duration

// DefaultTimeoutPolicy assumes low latency to addresses in privateNets and
// gives them 100ms, and gives every other address 1s.
func DefaultTimeoutPolicy() TimeoutPolicy {
	return func(server net.IP) time.Duration {
		for _, n := range privateNets {
			if n.Contains(server) {
				return 100 * time.Millisecond
			}
		}
		return 1 * time.Second
	}
}

var privateNets = mustParseCIDRs(
	"10.0.0.0/8",
	"127.0.0.0/8",
	"169.254.0.0/16",
	"172.16.0.0/12",
	"192.0.0.0/24",
	"192.0.2.0/24",
	"192.168.0.0/16",
	"198.18.0.0/15",
	"198.51.100.0/24",
	"203.0.113.0/24",
	"233.252.0.0/24",
	"::1/128",
	"2001:db8::/32",
	"fd00::/8",
	"fe80::/10",
)

func mustParseCIDRs(cidrs ...string) []*net.IPNet {
	nets := make([]*net.IPNet, len(cidrs))
	for i, cidr := range cidrs {
		_, n, err := net.ParseCIDR(cidr)
		if err != nil {
			panic(err)
		}
		nets[i] = n
	}
	return nets
}

// UDPClient is the concrete DNSClient used outside of tests: a thin
// wrapper around github.com/miekg/dns's synchronous UDP exchange,
// classifying the result into the taxonomy ingest expects.
type UDPClient struct {
	// TimeoutPolicy determines the per-query timeout. If nil,
	// DefaultTimeoutPolicy() is used.
	TimeoutPolicy TimeoutPolicy

	// Port is the destination port to query. If empty, "53" is used; tests
	// override this to talk to loopback fixture servers.
	Port string
}

// Query sends name/rtype/IN to server over UDP and returns the parsed
// response, or an error classified by isTimeout.
func (c *UDPClient) Query(ctx context.Context, server net.IP, name string, rtype RecordType) (*dns.Msg, error) {
	policy := c.TimeoutPolicy
	if policy == nil {
		policy = DefaultTimeoutPolicy()
	}

	if timeout := policy(server); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	m := new(dns.Msg)
	m.SetQuestion(canonicalName(name), rtype)
	m.RecursionDesired = false

	port := c.Port
	if port == "" {
		port = "53"
	}

	client := new(dns.Client)
	addr := net.JoinHostPort(server.String(), port)

	resp, _, err := client.ExchangeContext(ctx, m, addr)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// isTimeout reports whether err represents a transport timeout (as opposed
// to some other protocol or network failure).
func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return ne.Timeout()
	}
	return false
}
