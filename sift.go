// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package sift selects the documents most relevant to a named intent from
// batches of research material.
package sift

import (
	"context"
	"log/slog"

	"github.com/poiesic/sift/ai"
	"github.com/poiesic/sift/ai/cached"
	"github.com/poiesic/sift/ai/openai"
	"github.com/poiesic/sift/extract"
	"github.com/poiesic/sift/intent"
	"github.com/poiesic/sift/research"
	"github.com/poiesic/sift/storage"
	"github.com/poiesic/sift/storage/badger"
	"github.com/poiesic/sift/websearch"
)

// Workspace bundles the storage backend, embedding provider, and intent
// profiles behind one handle.
type Workspace struct {
	backend  *badger.Backend
	vectors  storage.VectorRepository
	docs     storage.DocumentRepository
	embedder ai.Embedder
	profiles intent.Store
	logger   *slog.Logger
}

// WorkspaceOption configures a Workspace.
type WorkspaceOption func(*workspaceOptions)

type workspaceOptions struct {
	aiConfig *ai.Config
	profiles intent.Store
	inMemory bool
}

// WithAIConfig overrides the embedding provider configuration.
func WithAIConfig(config *ai.Config) WorkspaceOption {
	return func(o *workspaceOptions) {
		o.aiConfig = config
	}
}

// WithProfiles replaces the builtin intent profiles.
func WithProfiles(store intent.Store) WorkspaceOption {
	return func(o *workspaceOptions) {
		o.profiles = store
	}
}

// WithInMemoryStorage keeps all state in memory. Intended for tests.
func WithInMemoryStorage() WorkspaceOption {
	return func(o *workspaceOptions) {
		o.inMemory = true
	}
}

// NewWorkspace opens storage at filePath and wires the embedding stack.
// Document texts are embedded through a cache backed by the same store.
func NewWorkspace(filePath string, opts ...WorkspaceOption) (*Workspace, error) {
	options := &workspaceOptions{
		aiConfig: ai.DefaultConfig(),
		profiles: intent.BuiltinStore(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	vectors, err := badger.NewVectorRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	docs, err := badger.NewDocumentRepository(backend)
	if err != nil {
		vectors.Close()
		backend.Close()
		return nil, err
	}

	embedder, err := openai.NewEmbedder(options.aiConfig)
	if err != nil {
		docs.Close()
		vectors.Close()
		backend.Close()
		return nil, err
	}

	cachedEmbedder, err := cached.NewEmbedder(embedder, vectors, options.aiConfig.EmbeddingModel)
	if err != nil {
		docs.Close()
		vectors.Close()
		backend.Close()
		return nil, err
	}

	return &Workspace{
		backend:  backend,
		vectors:  vectors,
		docs:     docs,
		embedder: cachedEmbedder,
		profiles: options.profiles,
		logger:   slog.Default(),
	}, nil
}

// Close releases storage resources.
func (w *Workspace) Close() error {
	if err := w.docs.Close(); err != nil {
		w.logger.Error("error closing document repository", "err", err)
		return err
	}
	if err := w.vectors.Close(); err != nil {
		w.logger.Error("error closing vector repository", "err", err)
		return err
	}
	if err := w.backend.Close(); err != nil {
		w.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// DocumentRepository exposes the persisted research documents.
func (w *Workspace) DocumentRepository() storage.DocumentRepository {
	return w.docs
}

// VectorRepository exposes the embedding cache.
func (w *Workspace) VectorRepository() storage.VectorRepository {
	return w.vectors
}

// Embedder returns the cache-backed embedder.
func (w *Workspace) Embedder() ai.Embedder {
	return w.embedder
}

// Profiles returns the intent profile store.
func (w *Workspace) Profiles() intent.Store {
	return w.profiles
}

// NewExtractor builds an extractor for the named intent using the
// workspace's embedder and profiles.
func (w *Workspace) NewExtractor(ctx context.Context, intentName string, opts ...extract.Option) (*extract.Extractor, error) {
	return extract.New(ctx, w.profiles, intentName, w.embedder, opts...)
}

// NewResearchPipeline builds a research pipeline around the given searcher,
// persisting fetched documents in the workspace.
func (w *Workspace) NewResearchPipeline(ctx context.Context, searcher websearch.Searcher, intentName string, opts ...research.Option) (*research.Pipeline, error) {
	extractor, err := w.NewExtractor(ctx, intentName)
	if err != nil {
		return nil, err
	}
	opts = append([]research.Option{research.WithDocumentRepository(w.docs)}, opts...)
	return research.NewPipeline(searcher, extractor, opts...)
}
