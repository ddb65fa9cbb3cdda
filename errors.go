package dnswalker

import "fmt"

// TransportErrorKind classifies a failure from the DNS client.
type TransportErrorKind int

const (
	// TransportTimeout means the server did not respond in time. Ingest
	// absorbs this into the store as a TimeOut rentry; it is never
	// surfaced to the action loop as an error.
	TransportTimeout TransportErrorKind = iota
	// TransportOther covers network-unreachable, malformed-reply, and
	// other protocol errors. It is fatal for the probe that triggered it,
	// but not for the action loop.
	TransportOther
)

// ResolverError wraps a transport failure with enough context to log it
// without corrupting store state; the base design does not retry.
type ResolverError struct {
	Kind   TransportErrorKind
	Server string
	Name   string
	Type   RecordType
	Err    error
}

func (e *ResolverError) Error() string {
	return fmt.Sprintf("query %s %s @%s: %v", recordTypeName(e.Type), e.Name, e.Server, e.Err)
}

func (e *ResolverError) Unwrap() error { return e.Err }
