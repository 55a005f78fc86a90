package model

import "payloadgen/pkg/probepayload"

type Protocol string // "tcp", "udp", "icmp"

const (
	TCP  Protocol = "tcp"
	UDP  Protocol = "udp"
	ICMP Protocol = "icmp"
)

// LineID is the 1-based physical line number of a definition in the input.
type LineID int

type DefinitionLine struct {
	ID   LineID
	Text string // trimmed
}

// Derivations holds the two per-line mappings joined by the table assembler.
type Derivations struct {
	Ports    map[LineID]probepayload.Ports
	Payloads map[LineID][]byte
}

func NewDerivations() Derivations {
	return Derivations{
		Ports:    make(map[LineID]probepayload.Ports),
		Payloads: make(map[LineID][]byte),
	}
}

// Merge copies every entry of other into d.
func (d Derivations) Merge(other Derivations) {
	for id, ports := range other.Ports {
		d.Ports[id] = ports
	}
	for id, payload := range other.Payloads {
		d.Payloads[id] = payload
	}
}
