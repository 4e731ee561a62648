package raquet

import (
	"fmt"
	"sync"

	"github.com/arloliu/raquet/internal/hash"
	"github.com/arloliu/raquet/internal/options"
	"github.com/arloliu/raquet/metadata"
	"github.com/arloliu/raquet/stats"
)

// StatsRow is one tile band to summarize.
type StatsRow struct {
	// Band is the band payload. Nil or empty yields an absent result.
	Band []byte
	// Metadata is the table metadata text.
	Metadata string
	// BandIndex selects the band within Metadata.
	BandIndex int
}

type batchConfig struct {
	onError     func(row int, err error)
	concurrency int
}

// BatchOption configures SummaryStatsBatch.
type BatchOption = options.Option[*batchConfig]

// WithConcurrency sets the number of goroutines computing rows. The default
// is 1, computing rows on the calling goroutine.
func WithConcurrency(n int) BatchOption {
	return options.New(func(c *batchConfig) error {
		if n < 1 {
			return fmt.Errorf("raquet: concurrency must be at least 1, got %d", n)
		}
		c.concurrency = n

		return nil
	})
}

// WithErrorHandler sets a function called once per failed row, after all
// rows are computed, in row order. It is never called concurrently.
func WithErrorHandler(fn func(row int, err error)) BatchOption {
	return options.NoError(func(c *batchConfig) {
		c.onError = fn
	})
}

// SummaryStatsBatch computes SummaryStatsFromMetadataBand for every row.
//
// The result slice has one entry per row, in row order. A failing row is
// absent in its own entry and does not affect any other row. Each distinct
// metadata text is parsed once per call; nothing is cached across calls.
//
// The returned error is non-nil only for an invalid option.
func SummaryStatsBatch(rows []StatsRow, opts ...BatchOption) ([]Result[stats.Stats], error) {
	cfg := &batchConfig{concurrency: 1}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	metas := parseDistinct(rows)
	results := make([]Result[stats.Stats], len(rows))

	compute := func(i int) {
		results[i] = summaryStatsFromMetadata(rows[i].Band, metas[i], rows[i].BandIndex)
	}

	if cfg.concurrency == 1 || len(rows) < 2 {
		for i := range rows {
			compute(i)
		}
	} else {
		fanOut(len(rows), cfg.concurrency, compute)
	}

	if cfg.onError != nil {
		for i, r := range results {
			if r.Err != nil {
				cfg.onError(i, r.Err)
			}
		}
	}

	return results, nil
}

// parseDistinct returns the parsed metadata of every row. Rows with
// identical text share one *TileMetadata.
func parseDistinct(rows []StatsRow) []*metadata.TileMetadata {
	type entry struct {
		text string
		meta *metadata.TileMetadata
	}

	seen := make(map[uint64]entry)
	metas := make([]*metadata.TileMetadata, len(rows))

	for i, row := range rows {
		key := hash.Fingerprint(row.Metadata)
		if e, ok := seen[key]; ok && e.text == row.Metadata {
			metas[i] = e.meta
			continue
		}

		meta := metadata.Parse(row.Metadata)
		if _, taken := seen[key]; !taken {
			seen[key] = entry{text: row.Metadata, meta: meta}
		}
		metas[i] = meta
	}

	return metas
}

// fanOut calls fn(i) for every i in [0,n) on at most workers goroutines and
// waits for all of them.
func fanOut(n, workers int, fn func(i int)) {
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for i := range n {
		wg.Add(1)
		sem <- struct{}{}

		go func() {
			defer func() {
				<-sem
				wg.Done()
			}()
			fn(i)
		}()
	}

	wg.Wait()
}
