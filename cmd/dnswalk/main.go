// Command dnswalk drives the delegation-walking resolver for a single
// caller-supplied name and prints what it learned.
package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"github.com/miekg/dns"

	"github.com/dnsdelegate/go-dns-walker"
)

type typeList []string

func (t *typeList) String() string { return strings.Join(*t, ",") }

func (t *typeList) Set(value string) error {
	*t = append(*t, value)
	return nil
}

func main() {
	var (
		name    = flag.String("name", "", "name to resolve (required)")
		timeout = flag.Duration("timeout", 30*time.Second, "overall wall-clock budget for the action loop")
		maxIter = flag.Int("max-iterations", 200, "safety bound on action-loop iterations (0 = unbounded)")
	)

	var types typeList
	flag.Var(&types, "type", "record type to resolve, may be repeated (default A)")
	flag.Parse()

	if *name == "" {
		log.Fatal("dnswalk: -name is required")
	}
	if len(types) == 0 {
		types = typeList{"A"}
	}

	r := dnswalker.New()
	r.MaxIterations = *maxIter
	r.OnTransportError = func(err error) {
		log.Printf("transport error: %v", err)
	}

	r.AddRootHints(dnswalker.IANARootHints)

	for _, t := range types {
		rtype, ok := dns.StringToType[strings.ToUpper(t)]
		if !ok {
			log.Fatalf("dnswalk: unsupported record type: %s", t)
		}
		r.AddAnswerTarget(*name, rtype)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	log.Printf("resolving %s for %s", types.String(), *name)
	r.ActionLoop(ctx)

	for _, t := range types {
		rtype := dns.StringToType[strings.ToUpper(t)]
		for _, rdata := range r.GetRecordSet(*name, rtype) {
			log.Printf("%s %s", t, rdata.RR.String())
		}
	}

	log.Print("\n" + r.Dump())
}
