package serp

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultBatchSize keeps batches safely under the backend's per-call limit.
const DefaultBatchSize = 20

// DefaultPause is the pacing delay after every batch, including the last.
const DefaultPause = 1 * time.Second

// Checker bulk-checks index status for a list of URLs. Each URL is queried as
// an exact phrase; a URL counts as indexed when any organic link contains it
// after trimming and trailing-slash stripping.
type Checker struct {
	Provider Provider
	// BatchSize caps URLs per backend call. Zero or negative means DefaultBatchSize.
	BatchSize int
	// Pause is slept after every batch to stay under backend rate limits.
	// Zero disables pacing.
	Pause time.Duration
}

// CheckIndexBulk partitions urls into consecutive batches preserving input
// order and folds per-batch verdicts into one map. Every input URL gets
// exactly one entry; a failed batch marks all of its members false and the
// run continues with the next batch.
func (c *Checker) CheckIndexBulk(ctx context.Context, urls []string) map[string]bool {
	size := c.BatchSize
	if size <= 0 {
		size = DefaultBatchSize
	}
	verdicts := make(map[string]bool, len(urls))
	for start := 0; start < len(urls); start += size {
		end := start + size
		if end > len(urls) {
			end = len(urls)
		}
		for u, indexed := range c.checkBatch(ctx, urls[start:end]) {
			verdicts[u] = indexed
		}
		if c.Pause > 0 {
			time.Sleep(c.Pause)
		}
	}
	return verdicts
}

// checkBatch resolves one batch to a partial verdict map. All members are
// seeded false up front so backend errors and short result arrays still leave
// every URL with an explicit verdict.
func (c *Checker) checkBatch(ctx context.Context, batch []string) map[string]bool {
	out := make(map[string]bool, len(batch))
	for _, u := range batch {
		out[u] = false
	}
	queries := make([]string, len(batch))
	for i, u := range batch {
		queries[i] = `"` + strings.TrimSpace(u) + `"`
	}
	sets, err := c.Provider.BatchSearch(ctx, queries)
	if err != nil {
		log.Warn().Err(err).Int("urls", len(batch)).Msg("batch index check failed; marking batch not indexed")
		return out
	}
	if len(sets) < len(batch) {
		log.Warn().Int("queries", len(batch)).Int("results", len(sets)).
			Msg("backend returned short result array; missing URLs default to not indexed")
	}
	for i, set := range sets {
		if i >= len(batch) {
			break
		}
		out[batch[i]] = anyLinkMatches(batch[i], set.Organic)
	}
	return out
}

func anyLinkMatches(url string, organic []Organic) bool {
	target := strings.TrimRight(strings.TrimSpace(url), "/")
	if target == "" {
		return false
	}
	for _, item := range organic {
		link := strings.TrimRight(strings.TrimSpace(item.Link), "/")
		// Substring, not exact: "a.com/page" also matches "a.com/page2".
		if strings.Contains(link, target) {
			return true
		}
	}
	return false
}
