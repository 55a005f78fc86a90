package probepayload

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Document is the JSON form of a table. Payloads are base64 encoded.
type Document struct {
	Entries []Entry `json:"entries"`
}

// LoadJSON reads a Document and builds a Table from it.
func LoadJSON(r io.Reader) (*Table, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode payload table: %w", err)
	}
	for i := range doc.Entries {
		if doc.Entries[i].Ports == nil {
			doc.Entries[i].Ports = Ports{}
		}
	}
	return New(doc.Entries), nil
}

// MarshalJSON renders the table as a Document.
func (t *Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(Document{Entries: t.entries})
}
