// Package pipeline runs the parse stages over a whole input file and
// assembles the resulting table.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"payloadgen/internal/model"
	"payloadgen/internal/parser"
	"payloadgen/internal/table"
)

type Options struct {
	// Workers is the number of goroutines deriving port sets and payloads.
	// Values below 2 decode on the calling goroutine.
	Workers int
	// Protocols restricts decoding to lines whose protocol matches one of
	// these glob patterns. Empty means all protocols.
	Protocols []string
	Reporter  parser.Reporter
	Logger    *slog.Logger
}

type Result struct {
	Table    *table.Table
	Stats    table.Stats
	Lines    int // definition lines after normalization and filtering
	Filtered int // definition lines dropped by the protocol filter
}

// Run parses data into a table. Per-entry problems go to opts.Reporter and
// never fail the run; errors are returned only for invalid options or a
// cancelled context.
func Run(ctx context.Context, data string, opts Options) (*Result, error) {
	report := opts.Reporter
	if report == nil {
		report = parser.Discard
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	filter, err := parser.NewProtocolFilter(opts.Protocols)
	if err != nil {
		return nil, err
	}

	all := parser.Normalize(data)
	lines := filter.Apply(all)
	logger.Debug("Normalized input", "definitions", len(all), "kept", len(lines))

	derivations, err := derive(ctx, lines, opts.Workers, report)
	if err != nil {
		return nil, err
	}
	logger.Info("Derived port sets and payloads", "port_sets", len(derivations.Ports), "payloads", len(derivations.Payloads))

	tbl, stats := table.Assemble(derivations, report)
	logger.Info("Assembled port-payload table", "entries", tbl.Len(), "joined", stats.Joined, "overwritten", stats.Overwritten, "orphaned", stats.Orphaned)

	return &Result{
		Table:    tbl,
		Stats:    stats,
		Lines:    len(lines),
		Filtered: len(all) - len(lines),
	}, nil
}

// derive runs both decoders, splitting lines into contiguous chunks when
// more than one worker is requested. Each line is independent, so the merged
// result does not depend on the worker count.
func derive(ctx context.Context, lines []model.DefinitionLine, workers int, report parser.Reporter) (model.Derivations, error) {
	if workers < 2 || len(lines) < 2 {
		return decodeChunk(lines, report), nil
	}

	chunkSize := (len(lines) + workers - 1) / workers
	var chunks [][]model.DefinitionLine
	for start := 0; start < len(lines); start += chunkSize {
		end := min(start+chunkSize, len(lines))
		chunks = append(chunks, lines[start:end])
	}

	results := make([]model.Derivations, len(chunks))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, chunk := range chunks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = decodeChunk(chunk, report)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.Derivations{}, fmt.Errorf("failed to derive definitions: %w", err)
	}

	merged := model.NewDerivations()
	for _, r := range results {
		merged.Merge(r)
	}
	return merged, nil
}

func decodeChunk(lines []model.DefinitionLine, report parser.Reporter) model.Derivations {
	return model.Derivations{
		Ports:    parser.DecodePortSets(lines, report),
		Payloads: parser.DecodePayloads(lines, report),
	}
}
