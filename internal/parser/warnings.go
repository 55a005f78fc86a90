package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"payloadgen/internal/model"
)

var (
	ErrMalformedEntry = errors.New("malformed entry")
	ErrPortParse      = errors.New("invalid port")
	ErrHexParse       = errors.New("invalid hex escape")
	ErrNoPayload      = errors.New("no payload for line")
)

type WarningKind string

const (
	KindMalformedEntry WarningKind = "malformed-entry"
	KindPortParse      WarningKind = "port-parse"
	KindHexParse       WarningKind = "hex-parse"
	KindNoPayload      WarningKind = "no-payload"
)

// Warning describes a definition line, or part of one, that was skipped.
type Warning struct {
	Line model.LineID
	Kind WarningKind
	Text string // offending line or segment
	Err  error
}

func (w Warning) Error() string {
	return fmt.Sprintf("line %d: %s: %q", w.Line, w.Err, w.Text)
}

func (w Warning) Unwrap() error {
	return w.Err
}

// Reporter receives per-entry warnings as they occur. Implementations must be
// safe for concurrent use.
type Reporter interface {
	Warn(w Warning)
}

type ReporterFunc func(Warning)

func (f ReporterFunc) Warn(w Warning) { f(w) }

// Discard drops every warning.
var Discard Reporter = ReporterFunc(func(Warning) {})

// LogReporter logs each warning at WARN level.
type LogReporter struct {
	Logger *slog.Logger
}

func (r LogReporter) Warn(w Warning) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("Skipping definition", "line", int(w.Line), "kind", string(w.Kind), "text", w.Text, "error", w.Err)
}

// Collector records warnings in arrival order and counts them per kind.
type Collector struct {
	mu       sync.Mutex
	warnings []Warning
	next     Reporter
}

// NewCollector returns a Collector that also forwards to next, if non-nil.
func NewCollector(next Reporter) *Collector {
	return &Collector{next: next}
}

func (c *Collector) Warn(w Warning) {
	c.mu.Lock()
	c.warnings = append(c.warnings, w)
	c.mu.Unlock()
	if c.next != nil {
		c.next.Warn(w)
	}
}

func (c *Collector) Warnings() []Warning {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Warning, len(c.warnings))
	copy(out, c.warnings)
	return out
}

func (c *Collector) Count(kind WarningKind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, w := range c.warnings {
		if w.Kind == kind {
			n++
		}
	}
	return n
}

func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.warnings)
}
