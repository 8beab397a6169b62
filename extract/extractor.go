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

package extract

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/sift/ai"
	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/intent"
)

// Extractor selects relevant documents for a single intent profile.
// It is safe for concurrent use: the keyword embeddings are computed at
// construction and never mutated afterwards.
type Extractor struct {
	profile  *intent.Profile
	embedder ai.Embedder
	weight   float32

	priorityEmb [][]float32
	excludeEmb  [][]float32

	logger *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor) error

// WithLogger sets the logger used for degradation warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		e.logger = logger
		return nil
	}
}

// New builds an Extractor for the named intent profile. The profile's
// keywords are embedded up front so construction fails fast when the intent
// is unknown or the embedding provider is unreachable.
func New(ctx context.Context, store intent.Store, intentName string, embedder ai.Embedder, opts ...Option) (*Extractor, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedder cannot be nil")
	}
	profile, err := store.Lookup(intentName)
	if err != nil {
		return nil, fmt.Errorf("looking up intent %q: %w", intentName, err)
	}

	e := &Extractor{
		profile:  profile,
		embedder: embedder,
		weight:   profile.EffectiveWeight(),
		logger:   slog.Default().With("component", "extractor", "intent", profile.Name),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	if e.priorityEmb, err = encodeKeywords(ctx, embedder, profile.HighPriority); err != nil {
		return nil, fmt.Errorf("intent %q: %w", profile.Name, err)
	}
	if e.excludeEmb, err = encodeKeywords(ctx, embedder, profile.Exclude); err != nil {
		return nil, fmt.Errorf("intent %q: %w", profile.Name, err)
	}
	return e, nil
}

// Profile returns the intent profile the extractor was built for.
func (e *Extractor) Profile() *intent.Profile {
	return e.profile
}

// Extract selects at most params.TopN relevant documents from docs. It never
// returns an error: every failure degrades to a documented fallback, and an
// unanticipated one yields an empty result.
func (e *Extractor) Extract(ctx context.Context, docs []core.Document, params Params) []core.Document {
	return e.ExtractWithMonitor(ctx, docs, params, nil)
}

// ExtractWithMonitor is Extract with observation hooks. A nil monitor is
// treated as a no-op monitor.
func (e *Extractor) ExtractWithMonitor(ctx context.Context, docs []core.Document, params Params, monitor Monitor) (selected []core.Document) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("extraction panicked", "panic", r)
			monitor.Degraded(DegradeUnexpected)
			selected = []core.Document{}
		}
	}()

	params = params.withDefaults()
	monitor.Start(len(docs))

	if len(docs) == 0 {
		monitor.Finish(nil)
		return []core.Document{}
	}

	topN := min(params.TopN, len(docs))

	if len(e.priorityEmb) == 0 && len(e.excludeEmb) == 0 {
		e.logger.Warn("no keywords configured, passing documents through")
		monitor.Degraded(DegradeNoKeywords)
		selected = append([]core.Document{}, docs[:topN]...)
		monitor.Finish(selected)
		return selected
	}

	vectors, err := e.encodeDocuments(ctx, docs, params.BatchSize)
	if err != nil {
		e.logger.Warn("document encoding failed, passing documents through", "error", err)
		monitor.Degraded(DegradeEncodeFailed)
		selected = append([]core.Document{}, docs[:topN]...)
		monitor.Finish(selected)
		return selected
	}
	monitor.AfterEncode(len(vectors))

	kept, keptVecs := e.filterExcluded(docs, vectors, params.ExclusionThreshold, monitor)
	monitor.AfterExclusion(len(kept), len(docs)-len(kept))
	if len(kept) == 0 {
		monitor.Finish(nil)
		return []core.Document{}
	}
	if topN > len(kept) {
		topN = len(kept)
	}

	// An exclusion-only profile has nothing to rank against. The surviving
	// documents are returned in input order.
	if len(e.priorityEmb) == 0 {
		selected = append([]core.Document{}, kept[:topN]...)
		monitor.Finish(selected)
		return selected
	}

	var indices []int
	if params.Cluster {
		var reason DegradeReason
		indices, reason = e.selectTopCluster(keptVecs, params.ClusterEps, params.ClusterMinSamples, topN, monitor)
		if reason != "" {
			e.logger.Warn("cluster selection unavailable, ranking instead", "reason", string(reason))
			monitor.Degraded(reason)
		}
	}
	if indices == nil {
		indices = e.scoreAndRank(kept, keptVecs, params.MinScore, topN, monitor)
	}

	selected = make([]core.Document, 0, len(indices))
	for _, i := range indices {
		selected = append(selected, kept[i])
	}
	monitor.Finish(selected)
	return selected
}

// ExtractTopN selects the topN highest ranked documents. A non-positive topN
// selects 3. It never returns an error and never panics.
func (e *Extractor) ExtractTopN(ctx context.Context, docs []core.Document, topN int) (selected []core.Document) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("top-n extraction panicked", "panic", r)
			selected = []core.Document{}
		}
	}()
	if topN <= 0 {
		topN = 3
	}
	params := DefaultParams()
	params.TopN = topN
	return e.Extract(ctx, docs, params)
}

// ExtractTopCluster selects up to topN documents from the densest group of
// candidates, falling back to ranked selection when no such group exists.
// A non-positive topN selects 5. It never returns an error and never panics.
func (e *Extractor) ExtractTopCluster(ctx context.Context, docs []core.Document, topN int) (selected []core.Document) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("cluster extraction panicked", "panic", r)
			selected = []core.Document{}
		}
	}()
	if topN <= 0 {
		topN = 5
	}
	params := DefaultParams()
	params.TopN = topN
	params.Cluster = true
	return e.Extract(ctx, docs, params)
}
