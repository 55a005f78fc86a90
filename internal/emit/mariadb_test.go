package emit

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"payloadgen/pkg/probepayload"
)

var dsn = "root:static@tcp(127.0.0.1:3306)/probe_payloads"

func TestMariaDBSinkStoresInOrder(t *testing.T) {
	sink, err := NewMariaDBSink(dsn)
	if err != nil {
		t.Skipf("MariaDB not reachable: %v", err)
	}
	defer sink.Close()

	ctx := context.Background()
	if err := sink.Store(ctx, []probepayload.Entry{{Ports: probepayload.Ports{1}, Payload: []byte("stale")}}); err != nil {
		t.Fatalf("failed to store: %v", err)
	}
	if err := sink.Store(ctx, sampleEntries()); err != nil {
		t.Fatalf("failed to store: %v", err)
	}

	entries, err := sink.Load(ctx)
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if diff := cmp.Diff(sampleEntries(), entries); diff != "" {
		t.Fatalf("stored entries mismatch (-want +got):\n%s", diff)
	}
}

func TestNewMariaDBSinkErrors(t *testing.T) {
	if _, err := NewMariaDBSink("invalid-dsn"); err == nil {
		t.Errorf("expected error for invalid DSN")
	}
}
