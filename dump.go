package dnswalker

import (
	"bytes"
	"fmt"
	"sort"
	"text/tabwriter"
)

// Dump returns a human-oriented snapshot of the store's delegations,
// targets, outstanding queue, and records. Its format is not part of any
// stability contract and may change between releases.
func (r *Resolver) Dump() string {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := &bytes.Buffer{}

	fmt.Fprintln(buf, "DELEGATIONS")
	dumpDelegations(buf, s)

	fmt.Fprintln(buf, "\nTARGETS")
	dumpTargets(buf, s)

	fmt.Fprintln(buf, "\nQUEUE")
	dumpQueue(buf, s)

	fmt.Fprintln(buf, "\nRECORDS")
	dumpRecords(buf, s)

	return buf.String()
}

func dumpDelegations(buf *bytes.Buffer, s *Store) {
	tw := tabwriter.NewWriter(buf, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	keys := make([]delegationKey, 0, len(s.delegations))
	for k := range s.delegations {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].name != keys[j].name {
			return nameLess(keys[i].name, keys[j].name)
		}
		return nameLess(keys[i].zone, keys[j].zone)
	})

	for _, k := range keys {
		for e := range s.delegations[k] {
			fmt.Fprintf(tw, "%s\tzone=%s\t-> %s\tNS %s\n", k.name, k.zone, e.authZone, e.authNS)
		}
	}
}

func dumpTargets(buf *bytes.Buffer, s *Store) {
	tw := tabwriter.NewWriter(buf, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	out := make([]target, 0, len(s.targets))
	for t := range s.targets {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return targetLess(out[i], out[j]) })

	for _, t := range out {
		answer := ""
		if s.answerTargets[answerTarget{name: t.name, rtype: t.rtype}] {
			answer = " (answer target)"
		}
		fmt.Fprintf(tw, "%s\t%s\tzone=%s%s\n", t.name, recordTypeName(t.rtype), t.zone, answer)
	}
}

func dumpQueue(buf *bytes.Buffer, s *Store) {
	tw := tabwriter.NewWriter(buf, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	for _, p := range s.queue {
		fmt.Fprintf(tw, "%s\t%s\t@%s\tzone=%s\n", p.Name, recordTypeName(p.Type), p.Server, p.Zone)
	}
}

func dumpRecords(buf *bytes.Buffer, s *Store) {
	tw := tabwriter.NewWriter(buf, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	names := make([]string, 0, len(s.records))
	for name := range s.records {
		names = append(names, name)
	}
	sortNames(names)

	for _, name := range names {
		servers := make([]ServerKey, 0, len(s.records[name]))
		for server := range s.records[name] {
			servers = append(servers, server)
		}
		sort.Slice(servers, func(i, j int) bool { return servers[i].less(servers[j]) })

		for _, server := range servers {
			entry := s.records[name][server]

			switch {
			case entry.IsTimeOut():
				fmt.Fprintf(tw, "%s\t@%s\tTIMEOUT\n", name, server)
			case entry.IsNoEntry():
				fmt.Fprintf(tw, "%s\t@%s\tNOENTRY\n", name, server)
			default:
				for _, rdata := range entry.Entries() {
					fmt.Fprintf(tw, "%s\t@%s\t%s\t%s\n", name, server, recordTypeName(rdata.Type()), rrValue(rdata.RR))
				}
			}
		}
	}
}
