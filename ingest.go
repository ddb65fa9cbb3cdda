package dnswalker

import (
	"context"

	"github.com/miekg/dns"
)

// QueryRecord dispatches one probe through client and folds the result back
// into the store (the "ingest" step). It never stores partial results:
// either every section of a successful response is folded in, or an error
// is returned before any mutation of the store happens for that response.
//
// A transport timeout is absorbed into the store as a TimeOut rentry and
// QueryRecord returns nil; any other transport or protocol error is
// returned as a *ResolverError and the store is left untouched for that
// probe.
func QueryRecord(ctx context.Context, s *Store, client DNSClient, p probe) error {
	resp, err := client.Query(ctx, p.Server.IP(), p.Name, p.Type)
	if err != nil {
		if isTimeout(err) {
			s.AddRentry(p.Name, TimeOutEntry(), p.Server.IP())
			return nil
		}
		return &ResolverError{Kind: TransportOther, Server: p.Server.String(), Name: p.Name, Type: p.Type, Err: err}
	}

	hasAnswer := false

	for _, rr := range resp.Answer {
		s.AddRecord(RData{RR: rr}, p.Server.IP())
		hasAnswer = true
	}

	for _, rr := range resp.Extra {
		s.AddRecord(RData{RR: rr}, p.Server.IP())
	}

	for _, rr := range resp.Ns {
		s.AddRecord(RData{RR: rr}, p.Server.IP())

		ns, ok := rr.(*dns.NS)
		if !ok {
			continue
		}

		if p.Zone != "" {
			s.AddDelegation(p.Name, p.Zone, rr.Header().Name, ns.Ns)
		}

		if s.IsAnswerTarget(p.Name, p.Type) {
			s.AddTarget(p.Name, p.Type, rr.Header().Name)
		}
	}

	if !hasAnswer {
		s.AddRentry(p.Name, NoEntryEntry(), p.Server.IP())
	}

	return nil
}

// perform drains the store's query queue and ingests each probe in FIFO
// order, so that planning for the next iteration only begins once every
// probe this pass generated has been dispatched.
func perform(ctx context.Context, s *Store, client DNSClient, onError func(error)) {
	for _, p := range s.drainQueue() {
		if err := QueryRecord(ctx, s, client, p); err != nil && onError != nil {
			onError(err)
		}
	}
}
