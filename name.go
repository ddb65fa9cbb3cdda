package dnswalker

import (
	"sort"
	"strings"

	"github.com/miekg/dns"
)

// canonicalName normalizes a DNS name the same way the rest of this package's
// miekg/dns-backed callers do: lower-cased, with a trailing dot.
func canonicalName(name string) string {
	return dns.CanonicalName(name)
}

// root is the distinguished root zone name.
const root = "."

// zoneOf reports whether parent is an ancestor of, or equal to, child.
// This is the A.zone_of(B) relation from the data model: it holds iff A
// encloses B in the DNS namespace.
func zoneOf(parent, child string) bool {
	return dns.IsSubDomain(canonicalName(parent), canonicalName(child))
}

// labelCount returns the number of labels in name, used to break ties
// between candidate enclosing zones by preferring the most specific one.
func labelCount(name string) int {
	return dns.CountLabel(canonicalName(name))
}

// nameLess orders two canonical names by their label sequence, read from the
// root label inward, so that iteration over a set of names is deterministic
// and groups names under a shared suffix together (e.g. "." sorts before
// "com.", which sorts near "example.com.").
func nameLess(a, b string) bool {
	la := reversedLabels(a)
	lb := reversedLabels(b)

	for i := 0; i < len(la) && i < len(lb); i++ {
		if la[i] != lb[i] {
			return la[i] < lb[i]
		}
	}

	return len(la) < len(lb)
}

func reversedLabels(name string) []string {
	labels := dns.SplitDomainName(strings.TrimSuffix(name, "."))
	out := make([]string, len(labels))
	for i, l := range labels {
		out[len(labels)-1-i] = l
	}
	return out
}

func sortNames(names []string) {
	sort.Slice(names, func(i, j int) bool { return nameLess(names[i], names[j]) })
}
