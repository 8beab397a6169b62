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

// Package research orchestrates web searches into relevance extraction.
package research

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/extract"
	"github.com/poiesic/sift/storage"
	"github.com/poiesic/sift/websearch"
)

// Pipeline fans research queries out to a search provider, filters and
// dedupes the hits, optionally persists them, and runs one relevance
// extraction pass over the combined result set.
type Pipeline struct {
	searcher  websearch.Searcher
	extractor *extract.Extractor
	documents storage.DocumentRepository

	pool        *ants.Pool
	maxAttempts int
	baseDelay   time.Duration
	reportEvery int
	logger      *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent searches.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithRetry sets how search failures are retried per query.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(p *Pipeline) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		p.maxAttempts = maxAttempts
		p.baseDelay = baseDelay
		return nil
	}
}

// WithDocumentRepository persists every deduped search hit before
// extraction. Persistence failures are logged, not fatal.
func WithDocumentRepository(repo storage.DocumentRepository) Option {
	return func(p *Pipeline) error {
		p.documents = repo
		return nil
	}
}

// WithReportInterval logs progress every n completed queries. Default 10.
func WithReportInterval(n int) Option {
	return func(p *Pipeline) error {
		if n < 1 {
			n = 1
		}
		p.reportEvery = n
		return nil
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a research pipeline around a searcher and an
// extractor.
func NewPipeline(searcher websearch.Searcher, extractor *extract.Extractor, opts ...Option) (*Pipeline, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if extractor == nil {
		return nil, ErrExtractorRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		searcher:    searcher,
		extractor:   extractor,
		pool:        pool,
		maxAttempts: 3,
		baseDelay:   time.Second,
		reportEvery: 10,
		logger:      slog.Default().With("component", "research"),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			p.Release()
			return nil, err
		}
	}
	return p, nil
}

// Release frees the worker pool. The pipeline cannot run afterwards.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// Report is the outcome of one pipeline run.
type Report struct {
	// Documents are the extracted documents, best first (or cluster order).
	Documents []core.Document

	// CompletedTopics lists the topics of queries whose search succeeded,
	// deduplicated in completion order.
	CompletedTopics []string

	// FailedQueries counts queries whose search failed after all retries.
	FailedQueries int
}

type queryOutcome struct {
	results []websearch.Result
	topic   string
	failed  bool
}

// Run executes every query, combines the filtered hits, and extracts the
// relevant documents with params. Individual query failures are absorbed
// into the report; Run errors only when the pool cannot accept work.
func (p *Pipeline) Run(ctx context.Context, queries []Query, params extract.Params) (*Report, error) {
	report := &Report{}
	if len(queries) == 0 {
		report.Documents = []core.Document{}
		return report, nil
	}

	outcomes := make([]queryOutcome, len(queries))
	tracker := newProgress(len(queries), p.reportEvery, p.logger)

	var wg sync.WaitGroup
	for i := range queries {
		wg.Add(1)
		q := queries[i]
		slot := &outcomes[i]
		task := func() {
			defer wg.Done()
			*slot = p.runQuery(ctx, q)
			tracker.completed(slot.failed)
		}
		if err := p.pool.Submit(task); err != nil {
			wg.Done()
			wg.Wait()
			return nil, err
		}
	}
	wg.Wait()

	var topics []string
	seen := make(map[string]struct{})
	docs := make([]core.Document, 0)
	for _, outcome := range outcomes {
		if outcome.failed {
			report.FailedQueries++
			continue
		}
		if outcome.topic != "" {
			topics = append(topics, outcome.topic)
		}
		for _, r := range outcome.results {
			if r.URL != "" {
				if _, dup := seen[r.URL]; dup {
					continue
				}
				seen[r.URL] = struct{}{}
			}
			docs = append(docs, r.Document())
		}
	}
	report.CompletedTopics = UpdateCompletedTopics(nil, topics)

	if p.documents != nil && len(docs) > 0 {
		p.persist(ctx, docs)
	}

	report.Documents = p.extractor.Extract(ctx, docs, params)
	return report, nil
}

// runQuery searches one query with retries and filters the hits on the
// subject name. A query that keeps failing is reported, never fatal.
func (p *Pipeline) runQuery(ctx context.Context, q Query) queryOutcome {
	if q.Text == "" {
		p.logger.Warn("skipping query with no text", slog.String("topic", q.Topic))
		return queryOutcome{failed: true}
	}

	composed := BuildQuery(q)

	var results []websearch.Result
	err := RetryWithBackoff(ctx, func() error {
		var searchErr error
		results, searchErr = p.searcher.Search(ctx, composed)
		return searchErr
	}, p.maxAttempts, p.baseDelay)
	if err != nil {
		p.logger.Warn("query failed after retries",
			slog.String("query", composed), slog.Any("error", err))
		return queryOutcome{failed: true}
	}

	return queryOutcome{
		results: FilterResults(results, q.Name),
		topic:   q.Topic,
	}
}

// persist writes documents through the repository, logging failures.
func (p *Pipeline) persist(ctx context.Context, docs []core.Document) {
	records := make([]*core.DocumentRecord, 0, len(docs))
	for i := range docs {
		records = append(records, &core.DocumentRecord{
			Title:  docs[i].Title,
			Text:   docs[i].Text,
			Fields: docs[i].Fields,
			URL:    docs[i].Fields["url"],
		})
	}
	if _, err := p.documents.AddDocumentRecords(ctx, records...); err != nil {
		p.logger.Warn("persisting search results failed", slog.Any("error", err))
	}
}
