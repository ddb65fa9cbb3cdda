package dnswalker

import (
	"strings"

	"github.com/miekg/dns"
)

// RecordType is a DNS resource record type, using the numeric values from
// github.com/miekg/dns so no re-encoding is needed at the ingest boundary.
type RecordType = uint16

// closedRecordTypes is the set of record types this resolver understands
// structurally. Records of any other type are stored opaquely (they are
// never lost) but are never considered "hashable" for dedup purposes and are
// skipped by get_record_set's unique-by-identity read path.
var closedRecordTypes = map[RecordType]bool{
	dns.TypeA:     true,
	dns.TypeAAAA:  true,
	dns.TypeNS:    true,
	dns.TypeCNAME: true,
	dns.TypeMX:    true,
	dns.TypeSOA:   true,
	dns.TypePTR:   true,
	dns.TypeSRV:   true,
	dns.TypeTXT:   true,
	dns.TypeCAA:   true,
	dns.TypeTLSA:  true,
	dns.TypeNULL:  true,
}

// IsHashable reports whether rtype belongs to the closed set of record types
// this resolver can structurally deduplicate.
func IsHashable(rtype RecordType) bool {
	return closedRecordTypes[rtype]
}

// RData is a single observed resource record's data, scoped to the name it
// was returned for. It wraps a dns.RR rather than re-inventing wire-level
// record encodings, since decoding those is an explicit external concern.
type RData struct {
	RR dns.RR
}

// Type returns the RData's resource record type.
func (d RData) Type() RecordType {
	return d.RR.Header().Rrtype
}

// Name returns the owner name this RData was recorded under.
func (d RData) Name() string {
	return d.RR.Header().Name
}

// rrValue renders rr with its header stripped, isolating the payload so that
// TTL and owner-name differences across servers never affect equality.
func rrValue(rr dns.RR) string {
	return strings.TrimPrefix(rr.String(), rr.Header().String())
}

// hashKey returns a comparable identity for dedup purposes, or ok=false if
// rdata's type falls outside the closed set and is therefore unhashable.
func (d RData) hashKey() (key string, ok bool) {
	if !IsHashable(d.Type()) {
		return "", false
	}
	return rrValue(d.RR), true
}

// Equal reports structural equality: same type, same payload, independent of
// TTL, owner name, or class.
func (d RData) Equal(other RData) bool {
	ak, aok := d.hashKey()
	bk, bok := other.hashKey()
	if !aok || !bok {
		return false
	}
	return d.Type() == other.Type() && ak == bk
}

// recordTypeName renders a RecordType the way dig/BIND do, falling back to
// the numeric form for types outside dns.TypeToString.
func recordTypeName(rtype RecordType) string {
	if name, ok := dns.TypeToString[rtype]; ok {
		return name
	}
	return dns.Type(rtype).String()
}
