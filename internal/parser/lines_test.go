package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"payloadgen/internal/model"
)

func TestNormalizeDropsCommentsAndBlankLines(t *testing.T) {
	// Line ids are physical positions, so skipped lines leave gaps.
	data := "# header\n\n  tcp 80 GET  \r\n\t# indented comment\nicmp \\x08\\x00\n"
	got := Normalize(data)
	want := []model.DefinitionLine{
		{ID: 3, Text: "tcp 80 GET"},
		{ID: 5, Text: "icmp \\x08\\x00"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected lines (-want +got):\n%s", diff)
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	if lines := Normalize(""); len(lines) != 0 {
		t.Fatalf("expected no lines, got %#v", lines)
	}
}

func TestSplitFieldsKeepsSpacesInPayload(t *testing.T) {
	parts := splitFields("udp 53 hello world  again")
	if len(parts) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(parts))
	}
	if parts[2] != "hello world  again" {
		t.Fatalf("expected payload field to keep inner spaces, got %q", parts[2])
	}
}

func TestProtocolFilter(t *testing.T) {
	lines := Normalize("tcp 80 a\nudp 53 b\nicmp c\nudplite 9 d\n")

	f, err := NewProtocolFilter([]string{"udp*", "icmp"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	kept := f.Apply(lines)
	var ids []model.LineID
	for _, l := range kept {
		ids = append(ids, l.ID)
	}
	if diff := cmp.Diff([]model.LineID{2, 3, 4}, ids); diff != "" {
		t.Fatalf("unexpected kept lines (-want +got):\n%s", diff)
	}

	all, err := NewProtocolFilter(nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(all.Apply(lines)) != len(lines) {
		t.Fatalf("expected empty filter to keep every line")
	}
}

func TestProtocolFilterRejectsBadPattern(t *testing.T) {
	if _, err := NewProtocolFilter([]string{"[udp"}); err == nil {
		t.Fatalf("expected error for unterminated pattern")
	}
}
