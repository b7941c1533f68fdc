package springs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"crosswarped.com/springs/internal/ctxlog"
)

// Solver counts arrangements for a batch of records, both as written and
// unfolded.
type Solver struct {
	// Unfold is the number of copies in the unfolded pass. Zero means
	// DefaultUnfold.
	Unfold int

	// Workers bounds how many records are counted at once. Zero or one
	// counts them in order on the calling goroutine.
	Workers int
}

// Report holds the per-record counts of both passes, indexed like the input.
type Report struct {
	Base     []int
	Unfolded []int
}

func (r *Report) BaseTotal() int {
	return sum(r.Base)
}

func (r *Report) UnfoldedTotal() int {
	return sum(r.Unfolded)
}

// WriteTo writes one "<index> <count>" line per record for the base pass,
// then the same for the unfolded pass, then "<base total> <unfolded total>".
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	var written int64
	for _, counts := range [][]int{r.Base, r.Unfolded} {
		for i, c := range counts {
			n, err := fmt.Fprintf(w, "%d %d\n", i, c)
			written += int64(n)
			if err != nil {
				return written, err
			}
		}
	}
	n, err := fmt.Fprintf(w, "%d %d\n", r.BaseTotal(), r.UnfoldedTotal())
	written += int64(n)
	return written, err
}

// Solve runs both passes over records. It only fails if ctx is done before
// every record has been counted.
func (s Solver) Solve(ctx context.Context, records []Record) (*Report, error) {
	unfold := s.Unfold
	if unfold <= 0 {
		unfold = DefaultUnfold
	}

	log := ctxlog.FromContext(ctx)
	start := time.Now()

	report := &Report{
		Base:     make([]int, len(records)),
		Unfolded: make([]int, len(records)),
	}

	count := func(ctx context.Context, i int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec := records[i]
		report.Base[i] = rec.Arrangements()
		report.Unfolded[i] = rec.Unfold(unfold).Arrangements()
		if log.Enabled(ctx, slog.LevelDebug) {
			log.Debug("counted record",
				"index", i,
				"record", rec.DebugString(),
				"arrangements", report.Base[i],
				"unfolded", report.Unfolded[i])
		}
		return nil
	}

	if s.Workers <= 1 {
		for i := range records {
			if err := count(ctx, i); err != nil {
				return nil, err
			}
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.Workers)
		for i := range records {
			g.Go(func() error {
				return count(gctx, i)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	log.Info("solved records",
		"records", len(records),
		"unfold", unfold,
		"workers", max(s.Workers, 1),
		"total", report.BaseTotal(),
		"unfolded_total", report.UnfoldedTotal(),
		"duration", time.Since(start))
	return report, nil
}

func sum(counts []int) int {
	total := 0
	for _, c := range counts {
		total += c
	}
	return total
}
