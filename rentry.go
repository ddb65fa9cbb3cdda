package dnswalker

// rentryKind distinguishes the three terminal states an (name, server) slot
// can hold.
type rentryKind int

const (
	kindEntries rentryKind = iota
	kindTimeOut
	kindNoEntry
)

// REntry is the tagged variant stored per (name, server) slot: either one or
// more observed RDatas, a recorded timeout, or an authoritative empty
// response.
type REntry struct {
	kind    rentryKind
	entries []RData
}

// TimeOutEntry returns an REntry recording that the server did not respond.
func TimeOutEntry() REntry { return REntry{kind: kindTimeOut} }

// NoEntryEntry returns an REntry recording an authoritative empty answer.
func NoEntryEntry() REntry { return REntry{kind: kindNoEntry} }

// EntriesOf returns an REntry holding the given RDatas.
func EntriesOf(rdata ...RData) REntry { return REntry{kind: kindEntries, entries: rdata} }

// IsTimeOut reports whether this slot recorded a transport timeout.
func (e REntry) IsTimeOut() bool { return e.kind == kindTimeOut }

// IsNoEntry reports whether this slot recorded an authoritative empty answer.
func (e REntry) IsNoEntry() bool { return e.kind == kindNoEntry }

// Entries returns the RDatas held by this slot, or nil if it is not in the
// Entries state.
func (e REntry) Entries() []RData {
	if e.kind != kindEntries {
		return nil
	}
	return e.entries
}

// merge folds an incoming observation into the existing slot state
// (possibly the zero value, meaning "no prior entry"), following the
// monotone promotion rule:
//
//	TimeOut ⊕ Entries(x)  = Entries(x)
//	NoEntry ⊕ Entries(x)  = Entries(x)
//	Entries(xs) ⊕ Entries(y) = Entries(xs ++ y)
//	TimeOut ⊕ NoEntry (either order) = NoEntry   (NoEntry wins, sticky)
func mergeREntry(existing *REntry, incoming REntry) REntry {
	if existing == nil {
		return incoming
	}

	switch {
	case incoming.kind == kindEntries:
		if existing.kind == kindEntries {
			return REntry{kind: kindEntries, entries: append(append([]RData{}, existing.entries...), incoming.entries...)}
		}
		return incoming

	case incoming.kind == kindTimeOut:
		switch existing.kind {
		case kindEntries:
			return *existing
		case kindNoEntry:
			return *existing // NoEntry absorbs a later TimeOut
		default:
			return incoming
		}

	case incoming.kind == kindNoEntry:
		switch existing.kind {
		case kindEntries:
			return *existing // an existing Entries state ignores a later NoEntry
		default:
			return incoming // NoEntry wins over TimeOut or an empty slot
		}
	}

	return incoming
}
