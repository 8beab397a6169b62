package extract

import (
	"log/slog"

	"github.com/poiesic/sift/core"
)

// filterExcluded drops documents whose similarity to any exclusion keyword
// strictly exceeds threshold. The document and vector slices stay parallel.
// A per-document similarity failure keeps that document. When the filter
// cannot run at all the input passes through and the monitor records
// DegradeExclusionFailed.
func (e *Extractor) filterExcluded(docs []core.Document, vectors [][]float32, threshold float32, monitor Monitor) ([]core.Document, [][]float32) {
	if len(e.excludeEmb) == 0 {
		return docs, vectors
	}
	if len(docs) != len(vectors) {
		e.logger.Warn("exclusion filter skipped, vector count mismatch",
			slog.Int("docs", len(docs)), slog.Int("vectors", len(vectors)))
		monitor.Degraded(DegradeExclusionFailed)
		return docs, vectors
	}

	keptDocs := make([]core.Document, 0, len(docs))
	keptVecs := make([][]float32, 0, len(vectors))
	for i := range docs {
		excluded := false
		for _, kw := range e.excludeEmb {
			sim, err := core.CosineSimilarity(vectors[i], kw)
			if err != nil {
				e.logger.Warn("exclusion similarity failed, keeping document",
					slog.Uint64("id", uint64(docs[i].ID())), slog.Any("error", err))
				continue
			}
			if sim > threshold {
				excluded = true
				break
			}
		}
		if !excluded {
			keptDocs = append(keptDocs, docs[i])
			keptVecs = append(keptVecs, vectors[i])
		}
	}
	return keptDocs, keptVecs
}
