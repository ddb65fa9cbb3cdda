package dnswalker

import (
	"context"
)

// Resolver drives a Store's plan -> dispatch -> ingest fixed-point loop
// using a pluggable DNSClient. It owns the store exclusively for its
// lifetime; there is no background task or timer touching it.
type Resolver struct {
	// Client performs the actual DNS queries ingest dispatches. If nil,
	// a *UDPClient with DefaultTimeoutPolicy is used.
	Client DNSClient

	// OnTransportError, if set, is called for every probe that fails with
	// a non-timeout transport error. The action loop is never terminated
	// by a probe error; this is purely an observability hook.
	OnTransportError func(error)

	// MaxIterations bounds the action loop as a safety net against a
	// pathological delegation graph. Zero means unbounded, matching the
	// base design.
	MaxIterations int

	store *Store
}

// New returns a Resolver with an empty, unseeded Store.
func New() *Resolver {
	return &Resolver{store: NewStore()}
}

// Store returns the Resolver's underlying record store.
func (r *Resolver) Store() *Store { return r.store }

// AddRootHints seeds the store with bootstrap root-server records.
func (r *Resolver) AddRootHints(hints []RootHint) { r.store.AddRootHints(hints) }

// AddAnswerTarget registers (name, type) as one of the caller's asks.
func (r *Resolver) AddAnswerTarget(name string, rtype RecordType) {
	r.store.AddAnswerTarget(name, rtype)
}

// GetRecordSet returns the deduplicated, type-filtered record set for name.
func (r *Resolver) GetRecordSet(name string, rtype RecordType) []RData {
	return r.store.GetRecordSet(name, rtype)
}

// GetRecords returns the per-server entries known for name.
func (r *Resolver) GetRecords(name string) map[ServerKey]REntry {
	return r.store.GetRecords(name)
}

// FindClosestDomain returns the longest stored ancestor of name.
func (r *Resolver) FindClosestDomain(name string) string {
	return r.store.FindClosestDomain(name)
}

// ActionLoop drives plan -> dispatch -> ingest to a fixed point: it repeats
// until one full iteration (a planning pass followed by draining every
// probe it generated) produces no store mutation at all.
//
//	change_num <- -1
//	while change_num != store.change_num:
//	    change_num <- store.change_num
//	    planner.generate_queries()
//	    executor.perform_queries()
func (r *Resolver) ActionLoop(ctx context.Context) {
	client := r.Client
	if client == nil {
		client = &UDPClient{}
	}

	changeNum := int64(-1)
	iterations := 0

	for changeNum != r.store.ChangeNum() {
		changeNum = r.store.ChangeNum()

		GenerateQueries(r.store)
		perform(ctx, r.store, client, r.OnTransportError)

		iterations++
		if r.MaxIterations > 0 && iterations >= r.MaxIterations {
			return
		}
	}
}
