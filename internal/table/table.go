// Package table joins derived port sets and payloads into the ordered
// port-set-to-payload table.
package table

import (
	"log/slog"
	"maps"
	"slices"

	"payloadgen/internal/model"
	"payloadgen/internal/parser"
	"payloadgen/pkg/probepayload"
)

// Table keeps its entries sorted by probepayload.ComparePorts with unique keys.
type Table struct {
	entries []probepayload.Entry
}

func New() *Table {
	return &Table{}
}

// Put inserts or replaces the entry keyed by ports. It reports whether an
// existing entry was replaced.
func (t *Table) Put(ports probepayload.Ports, payload []byte) bool {
	i, found := slices.BinarySearchFunc(t.entries, ports, func(e probepayload.Entry, key probepayload.Ports) int {
		return probepayload.ComparePorts(e.Ports, key)
	})
	if found {
		t.entries[i].Payload = payload
		return true
	}
	t.entries = slices.Insert(t.entries, i, probepayload.Entry{Ports: ports, Payload: payload})
	return false
}

func (t *Table) Get(ports probepayload.Ports) ([]byte, bool) {
	i, found := slices.BinarySearchFunc(t.entries, ports, func(e probepayload.Entry, key probepayload.Ports) int {
		return probepayload.ComparePorts(e.Ports, key)
	})
	if !found {
		return nil, false
	}
	return t.entries[i].Payload, true
}

// Entries returns the entries in ascending key order.
func (t *Table) Entries() []probepayload.Entry {
	return t.entries
}

func (t *Table) Len() int {
	return len(t.entries)
}

// Runtime converts the table into its immutable runtime form.
func (t *Table) Runtime() *probepayload.Table {
	return probepayload.New(t.entries)
}

type Stats struct {
	Joined      int // lines with both a port set and a payload
	Overwritten int // joined lines whose key replaced an earlier line's entry
	Orphaned    int // lines with a port set but no payload
}

// Assemble joins the derivations by line id in ascending order. A later line
// with an equal port set replaces the earlier payload. Lines without a payload
// are reported; lines without a port set are ignored silently.
func Assemble(d model.Derivations, report parser.Reporter) (*Table, Stats) {
	t := New()
	var stats Stats
	for _, id := range slices.Sorted(maps.Keys(d.Ports)) {
		ports := d.Ports[id]
		payload, ok := d.Payloads[id]
		if !ok {
			stats.Orphaned++
			report.Warn(parser.Warning{Line: id, Kind: parser.KindNoPayload, Text: parser.FormatSelector(ports), Err: parser.ErrNoPayload})
			continue
		}
		stats.Joined++
		if t.Put(ports, payload) {
			stats.Overwritten++
			slog.Debug("Port set redefined, keeping later payload", "line", int(id), "ports", parser.FormatSelector(ports))
		}
	}
	return t, stats
}
