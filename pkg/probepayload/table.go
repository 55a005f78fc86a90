// Package probepayload is the runtime side of the generated payload tables:
// an immutable, ordered list of port-set/payload entries with lookup helpers.
package probepayload

import (
	"slices"
)

// Ports is an ordered sequence of port numbers. An empty Ports matches at
// the protocol level (for example ICMP) rather than on any port.
type Ports []uint16

// Contains reports whether port appears in p.
func (p Ports) Contains(port uint16) bool {
	return slices.Contains(p, port)
}

// ComparePorts orders port sets element-wise; a proper prefix sorts first,
// so the empty set is the minimum.
func ComparePorts(a, b Ports) int {
	return slices.Compare(a, b)
}

type Entry struct {
	Ports   Ports  `json:"ports"`
	Payload []byte `json:"payload"`
}

// Table is safe for concurrent use; it is never modified after New returns.
type Table struct {
	entries []Entry
}

// New builds a Table over entries, keeping their order. The emitted order is
// authoritative because Lookup returns the first match.
func New(entries []Entry) *Table {
	return &Table{entries: slices.Clone(entries)}
}

// Entries returns the entries in table order. Callers must not modify them.
func (t *Table) Entries() []Entry {
	return t.entries
}

func (t *Table) Len() int {
	return len(t.entries)
}

// Lookup returns the payload of the first entry whose port set contains port.
// Protocol-only entries never match.
func (t *Table) Lookup(port uint16) ([]byte, bool) {
	for _, e := range t.entries {
		if e.Ports.Contains(port) {
			return e.Payload, true
		}
	}
	return nil, false
}

// LookupAll returns the payloads of every entry containing port, in table order.
func (t *Table) LookupAll(port uint16) [][]byte {
	var payloads [][]byte
	for _, e := range t.entries {
		if e.Ports.Contains(port) {
			payloads = append(payloads, e.Payload)
		}
	}
	return payloads
}

// ProtocolOnly returns the entries with an empty port set.
func (t *Table) ProtocolOnly() []Entry {
	var out []Entry
	for _, e := range t.entries {
		if len(e.Ports) == 0 {
			out = append(out, e)
		}
	}
	return out
}
