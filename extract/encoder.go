package extract

import (
	"context"
	"fmt"

	"github.com/poiesic/sift/ai"
	"github.com/poiesic/sift/core"
)

// encodeDocuments embeds the derived text of every document in batches.
// The returned slice is parallel to docs. Any embedding failure aborts the
// whole pass since a partial embedding set cannot be ranked consistently.
func (e *Extractor) encodeDocuments(ctx context.Context, docs []core.Document, batchSize int) ([][]float32, error) {
	texts := make([]string, len(docs))
	for i := range docs {
		texts[i] = core.DeriveText(&docs[i])
	}

	vectors := make([][]float32, 0, len(docs))
	for start := 0; start < len(texts); start += batchSize {
		end := min(start+batchSize, len(texts))

		batch, err := e.embedder.EmbedTexts(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("embedding documents %d..%d: %w", start, end, err)
		}
		if len(batch) != end-start {
			return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(batch), end-start)
		}
		vectors = append(vectors, batch...)
	}
	return vectors, nil
}

// encodeKeywords embeds a keyword list, returning nil for an empty list.
func encodeKeywords(ctx context.Context, embedder ai.Embedder, keywords []string) ([][]float32, error) {
	if len(keywords) == 0 {
		return nil, nil
	}
	vectors, err := embedder.EmbedTexts(ctx, keywords)
	if err != nil {
		return nil, fmt.Errorf("embedding keywords: %w", err)
	}
	if len(vectors) != len(keywords) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d keywords", len(vectors), len(keywords))
	}
	return vectors, nil
}
