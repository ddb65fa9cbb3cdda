package dnswalker

import (
	"net"
	"sort"
	"strconv"
	"sync"

	"github.com/miekg/dns"
)

// answerTarget is a (name, type) pair the caller wants resolved.
type answerTarget struct {
	name  string
	rtype RecordType
}

// target is an intermediate (name, type, zone) fact the planner tries to
// establish from every authoritative server of zone.
type target struct {
	name  string
	rtype RecordType
	zone  string
}

// delegationKey identifies a (name, zone) pair in the delegation ledger.
type delegationKey struct {
	name string
	zone string
}

// delegationEntry records one observed (authZone, authNS) pair.
type delegationEntry struct {
	authZone string
	authNS   string
}

// probe is an outstanding query the planner has enqueued: "ask server for
// (name, type), on behalf of zone".
type probe struct {
	Name   string
	Type   RecordType
	Server ServerKey
	Zone   string
}

func probeKey(name string, rtype RecordType, server ServerKey) string {
	return name + "\x00" + server.key() + "\x00" + strconv.Itoa(int(rtype))
}

// Store is the triply-indexed record database described by the data model:
// a Name -> ServerKey -> REntry map, the target sets, the delegation ledger,
// and the outstanding query queue, all mutated only through its own API and
// all bumping a single monotonic change counter.
//
// A Store's methods are safe for concurrent use, though the action loop
// that owns one never calls them concurrently.
type Store struct {
	mu sync.Mutex

	records map[string]map[ServerKey]REntry // name -> server -> REntry

	answerTargets map[answerTarget]bool
	targets       map[target]bool

	delegations map[delegationKey]map[delegationEntry]bool

	queue      []probe
	queueSeen  map[string]bool

	changeNum int64
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		records:       map[string]map[ServerKey]REntry{},
		answerTargets: map[answerTarget]bool{},
		targets:       map[target]bool{},
		delegations:   map[delegationKey]map[delegationEntry]bool{},
		queueSeen:     map[string]bool{},
	}
}

// ChangeNum returns the current value of the monotonic mutation counter.
func (s *Store) ChangeNum() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.changeNum
}

func (s *Store) bump() {
	s.changeNum++
}

// AddRootHints seeds the store with bootstrap A/AAAA records for each root
// server name under the Hint sentinel, plus a Hint-provided NS record set
// for the root zone naming each of those servers.
func (s *Store) AddRootHints(hints []RootHint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, h := range hints {
		name := canonicalName(h.Name)

		var rr dns.RR
		if ip4 := h.IP.To4(); ip4 != nil {
			a := new(dns.A)
			a.Hdr = dns.RR_Header{Name: name, Rrtype: dns.TypeA, Class: dns.ClassINET}
			a.A = ip4
			rr = a
		} else {
			aaaa := new(dns.AAAA)
			aaaa.Hdr = dns.RR_Header{Name: name, Rrtype: dns.TypeAAAA, Class: dns.ClassINET}
			aaaa.AAAA = h.IP.To16()
			rr = aaaa
		}
		s.upsertEntries(name, Hint, RData{RR: rr})

		ns := new(dns.NS)
		ns.Hdr = dns.RR_Header{Name: root, Rrtype: dns.TypeNS, Class: dns.ClassINET}
		ns.Ns = name
		s.upsertEntries(root, Hint, RData{RR: ns})
	}
}

// AddRecord upserts an observed RData into the (name, server) slot,
// following the monotone promotion rule: an existing TimeOut or NoEntry is
// replaced by Entries, and repeated Entries accumulate.
func (s *Store) AddRecord(rdata RData, serverIP net.IP) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.upsertEntries(canonicalName(rdata.Name()), ServerKeyFromIP(serverIP), rdata)
}

func (s *Store) upsertEntries(name string, server ServerKey, rdata RData) {
	s.setSlot(name, server, EntriesOf(rdata))
}

// AddRentry upserts a non-Entries observation (TimeOut or NoEntry) into the
// (name, server) slot, using the absorption rules in the REntry state
// machine. The Hint sentinel never holds TimeOut or NoEntry; callers must
// not pass Hint here.
func (s *Store) AddRentry(name string, rentry REntry, serverIP net.IP) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setSlot(canonicalName(name), ServerKeyFromIP(serverIP), rentry)
}

func (s *Store) setSlot(name string, server ServerKey, incoming REntry) {
	byServer := s.records[name]
	if byServer == nil {
		byServer = map[ServerKey]REntry{}
		s.records[name] = byServer
	}

	existing, had := byServer[server]

	if had {
		byServer[server] = mergeREntry(&existing, incoming)
	} else {
		byServer[server] = mergeREntry(nil, incoming)
	}

	s.bump()
}

// AddDelegation records an observed NS delegation: name was asked of zone,
// and the response named authNS as an authoritative server for authZone.
// This is a pure log entry; it has no effect on any record slot.
func (s *Store) AddDelegation(name, zone, authZone, authNS string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dk := delegationKey{name: canonicalName(name), zone: canonicalName(zone)}
	de := delegationEntry{authZone: canonicalName(authZone), authNS: canonicalName(authNS)}

	set := s.delegations[dk]
	if set == nil {
		set = map[delegationEntry]bool{}
		s.delegations[dk] = set
	}
	if !set[de] {
		set[de] = true
		s.bump()
	}
}

// AddAnswerTarget registers (name, type) as one of the caller's ultimate
// asks, and seeds a corresponding (name, type, .) entry in targets. It is
// idempotent: the change counter only advances if either set actually grew.
func (s *Store) AddAnswerTarget(name string, rtype RecordType) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = canonicalName(name)
	grew := s.insertAnswerTarget(name, rtype)
	grew = s.insertTarget(name, rtype, root) || grew

	if grew {
		s.bump()
	}
}

// AddTarget idempotently inserts (name, type, zone) into targets, bumping
// the change counter only on genuine growth.
func (s *Store) AddTarget(name string, rtype RecordType, zone string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.insertTarget(canonicalName(name), rtype, canonicalName(zone)) {
		s.bump()
	}
}

func (s *Store) insertAnswerTarget(name string, rtype RecordType) bool {
	at := answerTarget{name: name, rtype: rtype}
	if s.answerTargets[at] {
		return false
	}
	s.answerTargets[at] = true
	return true
}

func (s *Store) insertTarget(name string, rtype RecordType, zone string) bool {
	t := target{name: name, rtype: rtype, zone: zone}
	if s.targets[t] {
		return false
	}
	s.targets[t] = true
	return true
}

// IsAnswerTarget reports whether (name, type) is one of the caller's
// original asks.
func (s *Store) IsAnswerTarget(name string, rtype RecordType) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.answerTargets[answerTarget{name: canonicalName(name), rtype: rtype}]
}

// GetRecords returns a snapshot clone of the per-server entries known for
// name, or an empty map if name is unknown.
func (s *Store) GetRecords(name string) map[ServerKey]REntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = canonicalName(name)
	out := map[ServerKey]REntry{}

	for server, entry := range s.records[name] {
		out[server] = entry
	}

	return out
}

// GetRecordSet returns the union, across all servers, of RData for name
// filtered to rtype, deduplicated by structural identity. Records outside
// the closed, hashable record-type set are never returned here even if
// present in the store.
func (s *Store) GetRecordSet(name string, rtype RecordType) []RData {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = canonicalName(name)

	seen := map[string]bool{}
	var out []RData

	for _, entry := range s.records[name] {
		for _, rdata := range entry.Entries() {
			if rdata.Type() != rtype {
				continue
			}
			key, ok := rdata.hashKey()
			if !ok {
				continue
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, rdata)
		}
	}

	return out
}

// FindClosestDomain returns the stored name that is an ancestor of (or equal
// to) name and shares the most trailing labels with it, or the root zone if
// no stored name qualifies.
func (s *Store) FindClosestDomain(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = canonicalName(name)

	best := root
	bestLabels := -1

	for stored := range s.records {
		if !zoneOf(stored, name) {
			continue
		}
		if n := labelCount(stored); n > bestLabels {
			best = stored
			bestLabels = n
		}
	}

	return best
}

// sortedTargets returns the current target set as a slice ordered
// deterministically by (name, type, zone), for reproducible planning.
func (s *Store) sortedTargets() []target {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]target, 0, len(s.targets))
	for t := range s.targets {
		out = append(out, t)
	}

	sort.Slice(out, func(i, j int) bool { return targetLess(out[i], out[j]) })

	return out
}

func targetLess(a, b target) bool {
	if a.name != b.name {
		return nameLess(a.name, b.name)
	}
	if a.rtype != b.rtype {
		return a.rtype < b.rtype
	}
	return nameLess(a.zone, b.zone)
}

// enqueueProbe adds p to the outstanding query queue if it has never been
// enqueued before, bumping the change counter on genuine growth. This is the
// dedup-by-(name,type,server_ip) resolution of the planner's noted
// duplicate-enqueue issue: once a probe has been dispatched (successfully or
// not), it is never queued again.
func (s *Store) enqueueProbe(p probe) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := probeKey(p.Name, p.Type, p.Server)
	if s.queueSeen[key] {
		return false
	}
	s.queueSeen[key] = true
	s.queue = append(s.queue, p)
	s.bump()
	return true
}

// drainQueue removes and returns all currently queued probes, in FIFO order.
func (s *Store) drainQueue() []probe {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.queue
	s.queue = nil
	return out
}
