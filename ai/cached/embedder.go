package cached

import (
	"context"
	"errors"
	"log/slog"

	"github.com/poiesic/sift/ai"
	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/storage"
)

// Embedder decorates an ai.Embedder with a persistent vector cache.
// Texts are keyed by their content ID; only cache misses are sent to the
// delegate, in a single batch. Cache write failures are logged and ignored
// so a broken cache never blocks embedding.
type Embedder struct {
	delegate ai.Embedder
	repo     storage.VectorRepository
	model    string
	logger   *slog.Logger
}

var _ ai.Embedder = (*Embedder)(nil)

// Option configures an Embedder.
type Option func(*Embedder) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Embedder) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger.With("component", "cached-embedder")
		return nil
	}
}

// newEmbedder is an internal constructor that returns the concrete type.
func newEmbedder(delegate ai.Embedder, repo storage.VectorRepository, model string, opts ...Option) (*Embedder, error) {
	if delegate == nil {
		return nil, errors.New("delegate embedder required")
	}
	if repo == nil {
		return nil, errors.New("vector repository required")
	}
	if model == "" {
		return nil, errors.New("model name required")
	}

	e := &Embedder{
		delegate: delegate,
		repo:     repo,
		model:    model,
		logger:   slog.Default().With("component", "cached-embedder"),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// NewEmbedder creates a caching embedder for the given model name.
// The model name must match the delegate's configured embedding model, since
// it namespaces the cache.
//
// Returns ai.Embedder interface to enforce abstraction.
func NewEmbedder(delegate ai.Embedder, repo storage.VectorRepository, model string, opts ...Option) (ai.Embedder, error) {
	return newEmbedder(delegate, repo, model, opts...)
}

// EmbedText generates or retrieves the embedding for a single text.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return []float32{}, nil
	}
	return vectors[0], nil
}

// EmbedTexts generates or retrieves embeddings for multiple texts, preserving
// input order. Duplicate texts within one call are embedded once.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	ids := make([]core.ID, len(texts))
	for i, text := range texts {
		ids[i] = core.IDFromContent(text)
	}

	// Cache lookup failures degrade to embedding everything
	byID := make(map[core.ID][]float32, len(texts))
	cachedEntries, err := e.repo.GetVectors(ctx, e.model, ids...)
	if err != nil {
		e.logger.Warn("vector cache lookup failed, embedding full batch", "err", err)
	} else {
		for _, entry := range cachedEntries {
			byID[entry.Id] = entry.Vector
		}
	}

	// Collect texts missing from the cache, once per unique ID
	var missingTexts []string
	var missingIDs []core.ID
	seen := make(map[core.ID]bool)
	for i, id := range ids {
		if _, ok := byID[id]; !ok && !seen[id] {
			seen[id] = true
			missingTexts = append(missingTexts, texts[i])
			missingIDs = append(missingIDs, id)
		}
	}

	if len(missingTexts) > 0 {
		e.logger.Debug("embedding cache misses", "total", len(texts), "misses", len(missingTexts))

		vectors, err := e.delegate.EmbedTexts(ctx, missingTexts)
		if err != nil {
			return nil, err
		}
		if len(vectors) != len(missingTexts) {
			return nil, errors.New("embedding result count mismatch")
		}

		entries := make([]*core.VectorEntry, len(missingIDs))
		for i, id := range missingIDs {
			byID[id] = vectors[i]
			entries[i] = &core.VectorEntry{Id: id, Model: e.model, Vector: vectors[i]}
		}

		if err := e.repo.PutVectors(ctx, entries...); err != nil {
			e.logger.Warn("failed to store vectors in cache", "count", len(entries), "err", err)
		}
	}

	result := make([][]float32, len(texts))
	for i, id := range ids {
		result[i] = byID[id]
	}
	return result, nil
}
