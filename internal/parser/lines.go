package parser

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"payloadgen/internal/model"
)

// Normalize splits data into definition lines. Blank lines and lines starting
// with '#' are dropped but still count towards the line numbering.
func Normalize(data string) []model.DefinitionLine {
	var lines []model.DefinitionLine
	for idx, raw := range strings.Split(data, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, model.DefinitionLine{ID: model.LineID(idx + 1), Text: line})
	}
	return lines
}

// splitFields splits a definition on its first two spaces. Everything after
// the second space, including further spaces, stays in the last field.
func splitFields(text string) []string {
	return strings.SplitN(text, " ", 3)
}

func isICMP(fields []string) bool {
	return model.Protocol(fields[0]) == model.ICMP
}

// ProtocolFilter keeps definition lines whose protocol token matches one of a
// set of glob patterns.
type ProtocolFilter struct {
	globs []glob.Glob
}

func NewProtocolFilter(patterns []string) (*ProtocolFilter, error) {
	f := &ProtocolFilter{}
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid protocol pattern %q: %w", pattern, err)
		}
		f.globs = append(f.globs, g)
	}
	return f, nil
}

// Match reports whether the protocol token of text is accepted. A filter
// without patterns accepts everything.
func (f *ProtocolFilter) Match(text string) bool {
	if len(f.globs) == 0 {
		return true
	}
	protocol := splitFields(text)[0]
	for _, g := range f.globs {
		if g.Match(protocol) {
			return true
		}
	}
	return false
}

// Apply returns the lines accepted by the filter. Line ids are unchanged.
func (f *ProtocolFilter) Apply(lines []model.DefinitionLine) []model.DefinitionLine {
	if len(f.globs) == 0 {
		return lines
	}
	var kept []model.DefinitionLine
	for _, line := range lines {
		if f.Match(line.Text) {
			kept = append(kept, line)
		}
	}
	return kept
}
