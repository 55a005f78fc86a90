package emit

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"payloadgen/pkg/probepayload"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSON renders entries as a probepayload.Document, loadable with
// probepayload.LoadJSON.
type JSON struct{}

func (JSON) Encode(entries []probepayload.Entry) ([]byte, error) {
	if entries == nil {
		entries = []probepayload.Entry{}
	}
	data, err := json.MarshalIndent(probepayload.Document{Entries: entries}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload table: %w", err)
	}
	return append(data, '\n'), nil
}
