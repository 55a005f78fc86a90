package probepayload

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleTable() *Table {
	return New([]Entry{
		{Ports: Ports{}, Payload: []byte{8, 0}},
		{Ports: Ports{7, 9}, Payload: []byte{0, 1}},
		{Ports: Ports{9, 53}, Payload: []byte("second")},
		{Ports: Ports{53}, Payload: []byte("DNS")},
	})
}

func TestComparePortsOrdersPrefixFirst(t *testing.T) {
	cases := []struct {
		a, b Ports
		want int
	}{
		{Ports{}, Ports{7, 9}, -1},
		{Ports{7, 9}, Ports{53}, -1},
		{Ports{7}, Ports{7, 9}, -1},
		{Ports{53}, Ports{53}, 0},
		{Ports{100}, Ports{53, 54}, 1},
	}
	for _, c := range cases {
		if got := ComparePorts(c.a, c.b); got != c.want {
			t.Fatalf("ComparePorts(%v, %v): expected %d, got %d", c.a, c.b, c.want, got)
		}
	}
}

func TestLookupIsFirstMatchWins(t *testing.T) {
	// Port 9 is in two entries; the earlier one must win.
	table := sampleTable()
	payload, ok := table.Lookup(9)
	if !ok {
		t.Fatalf("expected a payload for port 9")
	}
	if !bytes.Equal(payload, []byte{0, 1}) {
		t.Fatalf("expected first matching payload, got %v", payload)
	}

	all := table.LookupAll(9)
	if len(all) != 2 {
		t.Fatalf("expected 2 payloads for port 9, got %d", len(all))
	}
}

func TestLookupSkipsProtocolOnlyEntries(t *testing.T) {
	table := sampleTable()
	if _, ok := table.Lookup(0); ok {
		t.Fatalf("expected no payload for port 0")
	}
	only := table.ProtocolOnly()
	if len(only) != 1 || !bytes.Equal(only[0].Payload, []byte{8, 0}) {
		t.Fatalf("expected the icmp entry, got %#v", only)
	}
}

func TestNewDoesNotAliasCallerSlice(t *testing.T) {
	entries := []Entry{{Ports: Ports{1}, Payload: []byte{1}}}
	table := New(entries)
	entries[0] = Entry{Ports: Ports{2}}
	if table.Entries()[0].Ports[0] != 1 {
		t.Fatalf("expected table to keep its own entry list")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	table := sampleTable()
	data, err := table.MarshalJSON()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	loaded, err := LoadJSON(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if diff := cmp.Diff(table.Entries(), loaded.Entries()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadJSONRejectsGarbage(t *testing.T) {
	if _, err := LoadJSON(bytes.NewReader([]byte("{not json"))); err == nil {
		t.Fatalf("expected error for invalid document")
	}
}
