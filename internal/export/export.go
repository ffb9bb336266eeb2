package export

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/apache/arrow/go/v13/arrow/memory"

	"github.com/masmgr/gitlog2arrow/internal/columns"
	"github.com/masmgr/gitlog2arrow/internal/filter"
	"github.com/masmgr/gitlog2arrow/internal/git"
	"github.com/masmgr/gitlog2arrow/internal/output"
	"github.com/masmgr/gitlog2arrow/internal/schema"
)

// DefaultMaxCount is the row cap used when none is configured.
const DefaultMaxCount = 1024

var ErrInvalidMaxCount = errors.New("max count must be positive")

// Options configures one export.
type Options struct {
	Filter      filter.Config
	MaxCount    int
	TrimMessage bool
	Allocator   memory.Allocator // nil uses the default allocator
}

// Stats reports what an export did.
type Stats struct {
	Head     string
	Visited  int
	Accepted int
	Merges   int // accepted commits with more than one parent
	Roots    int // accepted commits without parents
}

// Run walks the ancestors of the source's head, keeps the commits accepted by
// the filter until MaxCount rows are collected, and writes them to w as one
// Arrow IPC stream with a single record batch.
func Run(ctx context.Context, src git.CommitSource, opts Options, w io.Writer) (Stats, error) {
	var stats Stats
	if opts.MaxCount <= 0 {
		return stats, fmt.Errorf("%w: %d", ErrInvalidMaxCount, opts.MaxCount)
	}

	head, err := src.Head(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to resolve head: %w", err)
	}
	stats.Head = head

	iter, err := src.Ancestors(ctx, head)
	if err != nil {
		return stats, fmt.Errorf("failed to walk history: %w", err)
	}
	defer iter.Close()

	acc := columns.New(opts.Allocator, opts.TrimMessage)
	defer acc.Release()

	for acc.Len() < opts.MaxCount {
		c, err := iter.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("failed to read commit: %w", err)
		}
		stats.Visited++

		if !opts.Filter.Accept(c) {
			continue
		}
		acc.AppendRow(c)
		if c.IsMerge() {
			stats.Merges++
		}
		if c.IsRoot() {
			stats.Roots++
		}
	}
	stats.Accepted = acc.Len()

	rec, err := acc.Finish()
	if err != nil {
		return stats, fmt.Errorf("failed to build record batch: %w", err)
	}
	defer rec.Release()

	sw := output.NewStreamWriter(w, schema.Commits(), opts.Allocator)
	if err := sw.Write(rec); err != nil {
		return stats, err
	}
	if err := sw.Close(); err != nil {
		return stats, err
	}

	return stats, nil
}
