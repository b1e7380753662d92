// Package ingest turns a raw interaction log into a weighted directed graph.
//
// Rows are read once by a single reader and parsed by a pool of workers;
// parsing happens outside the graph lock, only the registry/edge mutation
// runs inside it. The first malformed row cancels the whole build and no
// graph is returned.
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cohortgraph/cohort/pkg/graph"
	"github.com/cohortgraph/cohort/pkg/logging"
	"github.com/cohortgraph/cohort/pkg/metrics"
)

// Builder constructs graphs from interaction-log row streams.
type Builder struct {
	workers int
	logger  logging.Logger
	metrics *metrics.Registry
}

// NewBuilder creates a builder. A non-positive worker count defaults to the
// number of CPUs; a nil logger discards output; a nil registry disables
// instrumentation.
func NewBuilder(workers int, logger logging.Logger, registry *metrics.Registry) *Builder {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Builder{
		workers: workers,
		logger:  logger.With(logging.Component("ingest")),
		metrics: registry,
	}
}

type rawRow struct {
	line   int
	fields []string
}

// Build consumes the CSV row stream from r and returns the finished graph.
// Edge weights in the result are independent of row order and worker
// scheduling. On any malformed row the whole call fails and partial work is
// discarded.
func (b *Builder) Build(ctx context.Context, r io.Reader) (*graph.Graph, error) {
	start := time.Now()

	g := graph.New()
	eg, ctx := errgroup.WithContext(ctx)

	rows := make(chan rawRow, b.workers*4)

	eg.Go(func() error {
		defer close(rows)

		cr := csv.NewReader(r)
		cr.FieldsPerRecord = -1 // column count is validated per row
		cr.TrimLeadingSpace = true

		for line := 1; ; line++ {
			fields, err := cr.Read()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return &RecordError{Line: line, Cause: fmt.Errorf("%w: %v", ErrMalformedRecord, err)}
			}
			select {
			case rows <- rawRow{line: line, fields: fields}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	for i := 0; i < b.workers; i++ {
		eg.Go(func() error {
			for row := range rows {
				rec, defaulted, err := ParseRecord(row.fields)
				if err != nil {
					if b.metrics != nil {
						b.metrics.MalformedRowsTotal.Inc()
					}
					if re, ok := err.(*RecordError); ok {
						re.Line = row.line
					}
					return err
				}
				if defaulted && len(row.fields) == 3 {
					if b.metrics != nil {
						b.metrics.InvalidWeightsTotal.Inc()
					}
					b.logger.Debug("weight fallback",
						logging.Int("line", row.line),
						logging.String("raw", row.fields[2]))
				}

				g.Upsert(rec.Source, rec.Target, rec.Weight)
				if b.metrics != nil {
					b.metrics.RowsIngestedTotal.Inc()
				}
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		b.logger.Error("build aborted", logging.Error(err))
		return nil, err
	}

	stats := g.GetStatistics()
	if b.metrics != nil {
		b.metrics.RecordBuild(time.Since(start), stats.NodeCount, stats.EdgeCount)
	}
	b.logger.Info("graph built",
		logging.Int("nodes", stats.NodeCount),
		logging.Int("edges", stats.EdgeCount),
		logging.Latency(time.Since(start)))

	return g, nil
}
