package dnswalker

import "github.com/miekg/dns"

// GenerateQueries is the query planner: it scans the store's target set and
// enqueues the outstanding probes needed to close gaps. It reads the store
// (get_records, get_record_set) and only mutates it by enqueuing probes
// (which is itself the only write the planner performs), so two consecutive
// planning passes with no intervening ingest enqueue nothing new.
func GenerateQueries(s *Store) {
	for _, t := range s.sortedTargets() {
		nameRecords := s.GetRecords(t.name)
		zoneNS := s.GetRecordSet(t.zone, dns.TypeNS)

		for _, ns := range zoneNS {
			nsName, ok := ns.RR.(*dns.NS)
			if !ok {
				continue
			}

			nsIPs := s.GetRecordSet(nsName.Ns, dns.TypeA)
			if len(nsIPs) == 0 {
				// Missing glue: no probe for this NS in this pass. The
				// planner does not look up the NS's own A record; the target
				// is picked up by a later pass only once some response has
				// stored an A record for that NS name.
				continue
			}

			for _, ipRdata := range nsIPs {
				a, ok := ipRdata.RR.(*dns.A)
				if !ok {
					continue
				}

				server := ServerKeyFromIP(a.A)
				if _, answered := nameRecords[server]; answered {
					continue
				}

				s.enqueueProbe(probe{
					Name:   t.name,
					Type:   t.rtype,
					Server: server,
					Zone:   t.zone,
				})
			}
		}
	}
}
