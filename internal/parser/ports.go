package parser

import (
	"fmt"
	"strconv"
	"strings"

	"payloadgen/internal/model"
	"payloadgen/pkg/probepayload"
)

// DecodePortSets derives the port set of every definition line. ICMP lines
// get an empty set. Lines with fewer than three fields are reported and
// skipped; unparsable selector segments are reported and contribute nothing.
func DecodePortSets(lines []model.DefinitionLine, report Reporter) map[model.LineID]probepayload.Ports {
	portSets := make(map[model.LineID]probepayload.Ports, len(lines))
	for _, line := range lines {
		parts := splitFields(line.Text)
		if isICMP(parts) {
			// ICMP has no ports; the empty set marks a protocol-level match.
			portSets[line.ID] = probepayload.Ports{}
			continue
		}
		if len(parts) < 3 {
			report.Warn(Warning{Line: line.ID, Kind: KindMalformedEntry, Text: line.Text, Err: ErrMalformedEntry})
			continue
		}

		ports, errs := ParseSelector(parts[1])
		for _, err := range errs {
			report.Warn(Warning{Line: line.ID, Kind: KindPortParse, Text: segmentOf(err), Err: err})
		}
		portSets[line.ID] = ports
	}
	return portSets
}

// SegmentError is returned by ParseSelector for a segment it could not parse.
type SegmentError struct {
	Segment string
	Err     error
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("%s %q: %v", ErrPortParse, e.Segment, e.Err)
}

func (e *SegmentError) Unwrap() []error {
	return []error{ErrPortParse, e.Err}
}

func segmentOf(err error) string {
	if se, ok := err.(*SegmentError); ok {
		return se.Segment
	}
	return ""
}

// ParseSelector expands a comma separated list of ports and inclusive
// "start-end" ranges. Ports keep selector order; an inverted range yields
// nothing. Bad segments are skipped and returned as errors.
func ParseSelector(selector string) (probepayload.Ports, []error) {
	ports := probepayload.Ports{}
	var errs []error
	for _, segment := range strings.Split(selector, ",") {
		if strings.Contains(segment, "-") {
			first, last, _ := strings.Cut(segment, "-")
			start, err := parsePort(first)
			if err != nil {
				errs = append(errs, &SegmentError{Segment: segment, Err: err})
				continue
			}
			end, err := parsePort(last)
			if err != nil {
				errs = append(errs, &SegmentError{Segment: segment, Err: err})
				continue
			}
			// Widen before iterating so end == 65535 terminates.
			for port := uint32(start); port <= uint32(end); port++ {
				ports = append(ports, uint16(port))
			}
			continue
		}

		port, err := parsePort(segment)
		if err != nil {
			errs = append(errs, &SegmentError{Segment: segment, Err: err})
			continue
		}
		ports = append(ports, port)
	}
	return ports, errs
}

func parsePort(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}

// FormatSelector renders ports in selector syntax, collapsing ascending runs
// of three or more consecutive ports into ranges. ParseSelector of the result
// yields ports again.
func FormatSelector(ports probepayload.Ports) string {
	var segments []string
	for i := 0; i < len(ports); {
		j := i
		for j+1 < len(ports) && uint32(ports[j+1]) == uint32(ports[j])+1 {
			j++
		}
		switch {
		case j-i >= 2:
			segments = append(segments, fmt.Sprintf("%d-%d", ports[i], ports[j]))
		case j == i+1:
			segments = append(segments, strconv.Itoa(int(ports[i])), strconv.Itoa(int(ports[j])))
		default:
			segments = append(segments, strconv.Itoa(int(ports[i])))
		}
		i = j + 1
	}
	return strings.Join(segments, ",")
}
