package extract

import (
	"log/slog"
	"sort"

	"github.com/poiesic/sift/core"
)

type scoredDocument struct {
	index    int
	weighted float32
}

// scoreAndRank scores every document against the priority keywords and
// returns indices of the top n, best first. A document's weighted score is
// its highest similarity to any priority keyword multiplied by the profile
// weight, so it can exceed one. Documents at or above minScore qualify; when
// none qualify, all scored documents are ranked anyway so the result is
// never empty. A document whose every similarity computation fails is left
// out of the candidate set without aborting the rest.
func (e *Extractor) scoreAndRank(docs []core.Document, vectors [][]float32, minScore float32, n int, monitor Monitor) []int {
	scored := make([]scoredDocument, 0, len(docs))
	for i := range vectors {
		var best float32
		found := false
		for _, kw := range e.priorityEmb {
			sim, err := core.CosineSimilarity(vectors[i], kw)
			if err != nil {
				e.logger.Warn("similarity failed, skipping keyword",
					slog.Uint64("id", uint64(docs[i].ID())), slog.Any("error", err))
				continue
			}
			if !found || sim > best {
				best, found = sim, true
			}
		}
		if !found {
			continue
		}
		scored = append(scored, scoredDocument{index: i, weighted: best * e.weight})
	}

	qualified := make([]scoredDocument, 0, len(scored))
	for _, s := range scored {
		if s.weighted >= minScore {
			qualified = append(qualified, s)
		}
	}
	monitor.AfterScoring(len(qualified), len(scored))

	ranked := qualified
	if len(ranked) == 0 && len(scored) > 0 {
		monitor.Degraded(DegradeBelowMinScore)
		ranked = scored
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].weighted > ranked[b].weighted
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	indices := make([]int, 0, n)
	for _, s := range ranked[:n] {
		indices = append(indices, s.index)
	}
	return indices
}
