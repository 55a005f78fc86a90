// Package emit serializes a port-payload table and persists it.
package emit

import (
	"context"

	"payloadgen/pkg/probepayload"
)

// Encoder renders entries, in the order given, into a loadable representation.
type Encoder interface {
	Encode(entries []probepayload.Entry) ([]byte, error)
}

// Sink persists entries. Order is preserved because consumers rely on
// first-match lookups over the stored list.
type Sink interface {
	Store(ctx context.Context, entries []probepayload.Entry) error
	String() string
}
