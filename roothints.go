package dnswalker

import "net"

// RootHint is one (name, address) pair from the IANA root hints file.
type RootHint struct {
	Name string
	IP   net.IP
}

// IANARootHints is the static, ground-truth table of the 13 IANA root
// server hostnames, each paired with its IPv4 and IPv6 address (26 entries
// total). It mirrors the table the original source's root_hints() function
// builds from trust-dns's Name/IpAddr types.
var IANARootHints = []RootHint{
	{"a.root-servers.net.", net.ParseIP("198.41.0.4")},
	{"a.root-servers.net.", net.ParseIP("2001:503:ba3e::2:30")},
	{"b.root-servers.net.", net.ParseIP("199.9.14.201")},
	{"b.root-servers.net.", net.ParseIP("2001:500:200::b")},
	{"c.root-servers.net.", net.ParseIP("192.33.4.12")},
	{"c.root-servers.net.", net.ParseIP("2001:500:2::c")},
	{"d.root-servers.net.", net.ParseIP("199.7.91.13")},
	{"d.root-servers.net.", net.ParseIP("2001:500:2d::d")},
	{"e.root-servers.net.", net.ParseIP("192.203.230.10")},
	{"e.root-servers.net.", net.ParseIP("2001:500:a8::e")},
	{"f.root-servers.net.", net.ParseIP("192.5.5.241")},
	{"f.root-servers.net.", net.ParseIP("2001:500:2f::f")},
	{"g.root-servers.net.", net.ParseIP("192.112.36.4")},
	{"g.root-servers.net.", net.ParseIP("2001:500:12::d0d")},
	{"h.root-servers.net.", net.ParseIP("198.97.190.53")},
	{"h.root-servers.net.", net.ParseIP("2001:500:1::53")},
	{"i.root-servers.net.", net.ParseIP("192.36.148.17")},
	{"i.root-servers.net.", net.ParseIP("2001:7fe::53")},
	{"j.root-servers.net.", net.ParseIP("192.58.128.30")},
	{"j.root-servers.net.", net.ParseIP("2001:503:c27::2:30")},
	{"k.root-servers.net.", net.ParseIP("193.0.14.129")},
	{"k.root-servers.net.", net.ParseIP("2001:7fd::1")},
	{"l.root-servers.net.", net.ParseIP("199.7.83.42")},
	{"l.root-servers.net.", net.ParseIP("2001:500:9f::42")},
	{"m.root-servers.net.", net.ParseIP("202.12.27.33")},
	{"m.root-servers.net.", net.ParseIP("2001:dc3::35")},
}
