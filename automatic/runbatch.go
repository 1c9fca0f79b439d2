package automatic

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/freecell/config"
)

// RunBatch solves n deals starting at firstSeed, saves the outcomes when
// a results database is configured, and writes a report to w.
func RunBatch(ctx context.Context, cfg *config.Config, w io.Writer, firstSeed uint64,
	n, foundations int) (*Report, error) {

	name := fmt.Sprintf("seeds-%d-%d", firstSeed, firstSeed+uint64(n)-1)
	return RunSeeds(ctx, cfg, w, SeedRange(firstSeed, n), foundations, name)
}

// RunSeeds is RunBatch for an explicit list of seeds. name goes into the
// batch label of the stored results.
func RunSeeds(ctx context.Context, cfg *config.Config, w io.Writer, seeds []uint64,
	foundations int, name string) (*Report, error) {

	runner := NewBatchRunner(cfg)
	runner.Foundations = foundations
	results, err := runner.RunSeeds(ctx, seeds)
	if err != nil {
		log.Err(err).Int("finished", len(results)).Msg("batch-interrupted")
	}
	if path := cfg.GetString(config.ConfigResultsDB); path != "" && len(results) > 0 {
		store, serr := OpenResultStore(path)
		if serr != nil {
			return nil, serr
		}
		defer store.Close()
		label := fmt.Sprintf("%s/%s/f%d", time.Now().UTC().Format(time.RFC3339), name,
			foundations)
		if serr := store.Save(context.Background(), label, results); serr != nil {
			return nil, serr
		}
		log.Info().Str("batch", label).Str("path", path).Msg("saved-batch-results")
	}
	report := NewReport(results)
	if werr := report.Write(w); werr != nil {
		return report, werr
	}
	return report, err
}
