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
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/sift/ai/mock"
	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/intent"
)

// Unit vectors for hand-crafted similarity setups. near90 has cosine
// similarity 0.9 with axisX.
var (
	axisX  = []float32{1, 0, 0}
	axisY  = []float32{0, 1, 0}
	axisZ  = []float32{0, 0, 1}
	negY   = []float32{0, -1, 0}
	near90 = []float32{0.9, 0.43589, 0}
	near70 = []float32{0.7, 0.71414, 0}
	near60 = []float32{0.6, 0.8, 0}
)

// tableEmbedder returns mock embeddings looked up by exact text.
func tableEmbedder(t *testing.T, table map[string][]float32) *mock.MockEmbedder {
	t.Helper()
	return &mock.MockEmbedder{
		EmbedTextsFunc: func(_ context.Context, texts []string) ([][]float32, error) {
			out := make([][]float32, len(texts))
			for i, text := range texts {
				v, ok := table[text]
				if !ok {
					return nil, fmt.Errorf("no embedding configured for %q", text)
				}
				out[i] = v
			}
			return out, nil
		},
	}
}

func textDocs(texts ...string) []core.Document {
	docs := make([]core.Document, len(texts))
	for i, text := range texts {
		docs[i] = core.Document{Text: text}
	}
	return docs
}

func docTexts(docs []core.Document) []string {
	texts := make([]string, len(docs))
	for i := range docs {
		texts[i] = docs[i].Text
	}
	return texts
}

func newTestExtractor(t *testing.T, profile *intent.Profile, table map[string][]float32) *Extractor {
	t.Helper()
	store := intent.NewStaticStore(profile)
	e, err := New(context.Background(), store, profile.Name, tableEmbedder(t, table))
	require.NoError(t, err)
	return e
}

func TestNew(t *testing.T) {
	t.Run("unknown intent fails fast", func(t *testing.T) {
		store := intent.NewStaticStore()
		_, err := New(context.Background(), store, "missing", mock.NewMockEmbedder())
		require.Error(t, err)
		assert.ErrorIs(t, err, intent.ErrUnknownIntent)
	})

	t.Run("keyword embedding failure fails fast", func(t *testing.T) {
		embedder := &mock.MockEmbedder{
			EmbedTextsFunc: func(_ context.Context, _ []string) ([][]float32, error) {
				return nil, errors.New("provider down")
			},
		}
		store := intent.NewStaticStore(&intent.Profile{Name: "p", HighPriority: []string{"x"}})
		_, err := New(context.Background(), store, "p", embedder)
		require.Error(t, err)
	})

	t.Run("nil embedder rejected", func(t *testing.T) {
		_, err := New(context.Background(), intent.BuiltinStore(), "news", nil)
		require.Error(t, err)
	})

	t.Run("keywords embedded once at construction", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		store := intent.NewStaticStore(&intent.Profile{
			Name:         "p",
			HighPriority: []string{"a", "b"},
			Exclude:      []string{"c"},
		})
		e, err := New(context.Background(), store, "p", embedder)
		require.NoError(t, err)
		assert.Len(t, e.priorityEmb, 2)
		assert.Len(t, e.excludeEmb, 1)
		assert.Equal(t, 2, embedder.CallCount())
	})
}

func TestExtractPassthrough(t *testing.T) {
	t.Run("empty input returns empty", func(t *testing.T) {
		e := newTestExtractor(t, &intent.Profile{Name: "p", HighPriority: []string{"kw"}},
			map[string][]float32{"kw": axisX})
		got := e.Extract(context.Background(), nil, DefaultParams())
		assert.Empty(t, got)
	})

	t.Run("no keywords returns first topN unmodified", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		store := intent.NewStaticStore(&intent.Profile{Name: "empty"})
		e, err := New(context.Background(), store, "empty", embedder)
		require.NoError(t, err)

		docs := textDocs("a", "b", "c", "d", "e", "f", "g", "h", "i", "j")
		params := DefaultParams()
		params.TopN = 3
		got := e.Extract(context.Background(), docs, params)
		assert.Equal(t, docs[:3], got)
		assert.Equal(t, 0, embedder.CallCount(), "no encoding should happen without keywords")
	})

	t.Run("encoding failure returns first topN unmodified", func(t *testing.T) {
		store := intent.NewStaticStore(&intent.Profile{Name: "p", HighPriority: []string{"kw"}})
		calls := 0
		embedder := &mock.MockEmbedder{
			EmbedTextsFunc: func(_ context.Context, texts []string) ([][]float32, error) {
				calls++
				if calls == 1 {
					return [][]float32{axisX}, nil
				}
				return nil, errors.New("provider down")
			},
		}
		e, err := New(context.Background(), store, "p", embedder)
		require.NoError(t, err)

		docs := textDocs("a", "b", "c", "d")
		params := DefaultParams()
		params.TopN = 2
		var mon recordingMonitor
		got := e.ExtractWithMonitor(context.Background(), docs, params, &mon)
		assert.Equal(t, docs[:2], got)
		assert.Contains(t, mon.reasons, DegradeEncodeFailed)
	})
}

func TestExtractRanked(t *testing.T) {
	profile := &intent.Profile{Name: "p", HighPriority: []string{"kw"}}
	table := map[string][]float32{
		"kw":   axisX,
		"best": axisX,  // sim 1.0
		"good": near90, // sim 0.9
		"ok":   near70, // sim 0.7
		"far":  axisY,  // sim 0.0
	}

	t.Run("orders by descending weighted similarity", func(t *testing.T) {
		e := newTestExtractor(t, profile, table)
		docs := textDocs("far", "ok", "best", "good")
		params := DefaultParams()
		params.TopN = 3
		got := e.Extract(context.Background(), docs, params)
		assert.Equal(t, []string{"best", "good", "ok"}, docTexts(got))
	})

	t.Run("output is a subsequence of input under full topN", func(t *testing.T) {
		e := newTestExtractor(t, profile, table)
		docs := textDocs("ok", "best", "far", "good")
		got := e.Extract(context.Background(), docs, DefaultParams())
		for _, doc := range got {
			assert.Contains(t, docs, doc)
		}
	})

	t.Run("ties keep input order", func(t *testing.T) {
		e := newTestExtractor(t, profile, map[string][]float32{
			"kw": axisX, "t1": near90, "t2": near90, "t3": near90,
		})
		docs := textDocs("t2", "t3", "t1")
		got := e.Extract(context.Background(), docs, DefaultParams())
		assert.Equal(t, []string{"t2", "t3", "t1"}, docTexts(got))
	})

	t.Run("low scores never empty the result", func(t *testing.T) {
		// Weighted scores are 0 for both documents, below MinScore 0.3.
		e := newTestExtractor(t, profile, map[string][]float32{
			"kw": axisX, "a": axisY, "b": axisZ,
		})
		docs := textDocs("a", "b")
		var mon recordingMonitor
		got := e.ExtractWithMonitor(context.Background(), docs, DefaultParams(), &mon)
		assert.Len(t, got, 2)
		assert.Contains(t, mon.reasons, DegradeBelowMinScore)
	})

	t.Run("minScore gates qualification on the weighted score", func(t *testing.T) {
		// near70 weighted is 1.4, near90 weighted is 1.8. A minScore between
		// them keeps only the higher one.
		e := newTestExtractor(t, profile, map[string][]float32{
			"kw": axisX, "hi": near90, "lo": near70,
		})
		docs := textDocs("lo", "hi")
		params := DefaultParams()
		params.MinScore = 1.5
		got := e.Extract(context.Background(), docs, params)
		assert.Equal(t, []string{"hi"}, docTexts(got))
	})
}

func TestExtractExclusion(t *testing.T) {
	profile := &intent.Profile{
		Name:         "p",
		HighPriority: []string{"kw"},
		Exclude:      []string{"spam"},
	}
	table := map[string][]float32{
		"kw":       axisX,
		"spam":     axisY,
		"clean1":   axisX,
		"clean2":   near90,
		"clean3":   []float32{0.8, 0.6, 0}, // exclusion sim exactly 0.6, kept
		"spammy1":  axisY,                  // exclusion sim 1.0
		"spammy2":  []float32{0, 0.8, 0.6}, // exclusion sim 0.8
		"boundary": []float32{0.8, 0.6, 0}, // exclusion sim exactly 0.6
	}

	t.Run("drops documents above the exclusion threshold", func(t *testing.T) {
		e := newTestExtractor(t, profile, table)
		docs := textDocs("clean1", "spammy1", "clean2", "spammy2", "clean3")
		var mon recordingMonitor
		got := e.ExtractWithMonitor(context.Background(), docs, DefaultParams(), &mon)
		assert.Equal(t, []string{"clean1", "clean2", "clean3"}, docTexts(got))
		assert.Equal(t, 3, mon.kept)
		assert.Equal(t, 2, mon.removed)
	})

	t.Run("threshold is strict, boundary documents survive", func(t *testing.T) {
		e := newTestExtractor(t, profile, table)
		docs := textDocs("boundary")
		got := e.Extract(context.Background(), docs, DefaultParams())
		assert.Equal(t, []string{"boundary"}, docTexts(got))
	})

	t.Run("all documents excluded returns empty", func(t *testing.T) {
		e := newTestExtractor(t, profile, table)
		docs := textDocs("spammy1", "spammy2")
		got := e.Extract(context.Background(), docs, DefaultParams())
		assert.Empty(t, got)
	})

	t.Run("exclusion-only profile keeps input order", func(t *testing.T) {
		e := newTestExtractor(t, &intent.Profile{Name: "p", Exclude: []string{"spam"}}, table)
		docs := textDocs("clean3", "spammy1", "clean1")
		got := e.Extract(context.Background(), docs, DefaultParams())
		assert.Equal(t, []string{"clean3", "clean1"}, docTexts(got))
	})
}

func TestExtractBatchedEncoding(t *testing.T) {
	profile := &intent.Profile{Name: "p", HighPriority: []string{"kw"}}
	table := map[string][]float32{
		"kw":   axisX,
		"doc0": axisX,             // sim 1.0
		"doc1": near90,            // sim 0.9
		"doc2": {0.8, 0.6, 0},     // sim 0.8
		"doc3": near70,            // sim 0.7
		"doc4": near60,            // sim 0.6
		"doc5": {0.5, 0.86603, 0}, // sim 0.5
		"doc6": axisY,             // sim 0.0
	}

	t.Run("documents are embedded in BatchSize chunks, order preserved", func(t *testing.T) {
		base := tableEmbedder(t, table)
		var batches []int
		embedder := &mock.MockEmbedder{
			EmbedTextsFunc: func(ctx context.Context, texts []string) ([][]float32, error) {
				batches = append(batches, len(texts))
				return base.EmbedTexts(ctx, texts)
			},
		}
		store := intent.NewStaticStore(profile)
		e, err := New(context.Background(), store, profile.Name, embedder)
		require.NoError(t, err)
		batches = nil // drop the keyword encoding call made at construction

		docs := textDocs("doc3", "doc0", "doc6", "doc1", "doc5", "doc2", "doc4")
		params := DefaultParams()
		params.BatchSize = 3
		params.TopN = len(docs)
		params.MinScore = 0

		got := e.Extract(context.Background(), docs, params)
		assert.Equal(t, []int{3, 3, 1}, batches)
		assert.Equal(t,
			[]string{"doc0", "doc1", "doc2", "doc3", "doc4", "doc5", "doc6"},
			docTexts(got))
	})

	t.Run("short batch from the embedder degrades to passthrough", func(t *testing.T) {
		calls := 0
		embedder := &mock.MockEmbedder{
			EmbedTextsFunc: func(_ context.Context, texts []string) ([][]float32, error) {
				calls++
				if calls == 1 { // the keyword encoding call at construction
					return [][]float32{axisX}, nil
				}
				return make([][]float32, len(texts)-1), nil
			},
		}
		store := intent.NewStaticStore(profile)
		e, err := New(context.Background(), store, profile.Name, embedder)
		require.NoError(t, err)

		docs := textDocs("a", "b", "c")
		var mon recordingMonitor
		got := e.ExtractWithMonitor(context.Background(), docs, DefaultParams(), &mon)
		assert.Equal(t, docs, got)
		assert.Contains(t, mon.reasons, DegradeEncodeFailed)
	})
}

func TestExtractCluster(t *testing.T) {
	profile := &intent.Profile{Name: "p", HighPriority: []string{"kw"}}

	t.Run("returns the dense group in ascending input order", func(t *testing.T) {
		// Five documents share one embedding, three outliers are mutually
		// distant. With eps 0.3 and minSamples 3 only the dense group
		// clusters.
		e := newTestExtractor(t, profile, map[string][]float32{
			"kw": axisX,
			"g1": axisX, "g2": axisX, "g3": axisX, "g4": axisX, "g5": axisX,
			"o1": axisY, "o2": axisZ, "o3": negY,
		})
		docs := textDocs("g1", "o1", "g2", "g3", "o2", "g4", "o3", "g5")
		got := e.ExtractTopCluster(context.Background(), docs, 5)
		assert.Equal(t, []string{"g1", "g2", "g3", "g4", "g5"}, docTexts(got))
	})

	t.Run("too few documents falls back to ranking", func(t *testing.T) {
		table := map[string][]float32{"kw": axisX, "a": near70, "b": near90}
		e := newTestExtractor(t, profile, table)
		docs := textDocs("a", "b")

		params := DefaultParams()
		params.TopN = 2
		ranked := e.Extract(context.Background(), docs, params)

		var mon recordingMonitor
		params.Cluster = true
		clustered := e.ExtractWithMonitor(context.Background(), docs, params, &mon)
		assert.Equal(t, ranked, clustered)
		assert.Contains(t, mon.reasons, DegradeTooFewForCluster)
	})

	t.Run("all noise falls back to ranking", func(t *testing.T) {
		e := newTestExtractor(t, profile, map[string][]float32{
			"kw": axisX, "a": axisX, "b": axisY, "c": axisZ,
		})
		docs := textDocs("a", "b", "c")
		params := DefaultParams()
		params.Cluster = true
		var mon recordingMonitor
		got := e.ExtractWithMonitor(context.Background(), docs, params, &mon)
		assert.NotEmpty(t, got)
		assert.Contains(t, mon.reasons, DegradeAllNoise)
		assert.Equal(t, "a", got[0].Text)
	})
}

func TestConvenienceWrappers(t *testing.T) {
	profile := &intent.Profile{Name: "p", HighPriority: []string{"kw"}}
	table := map[string][]float32{
		"kw": axisX, "a": axisX, "b": near90, "c": near70, "d": near60, "e": axisY,
	}

	t.Run("empty input returns empty", func(t *testing.T) {
		e := newTestExtractor(t, profile, table)
		assert.Empty(t, e.ExtractTopN(context.Background(), nil, 3))
		assert.Empty(t, e.ExtractTopCluster(context.Background(), nil, 5))
	})

	t.Run("non-positive topN uses wrapper defaults", func(t *testing.T) {
		e := newTestExtractor(t, profile, table)
		docs := textDocs("a", "b", "c", "d", "e")
		got := e.ExtractTopN(context.Background(), docs, 0)
		assert.Len(t, got, 3)
		got = e.ExtractTopCluster(context.Background(), docs, -1)
		assert.Len(t, got, 5)
	})

	t.Run("never panics on a panicking embedder", func(t *testing.T) {
		store := intent.NewStaticStore(profile)
		calls := 0
		embedder := &mock.MockEmbedder{
			EmbedTextsFunc: func(_ context.Context, texts []string) ([][]float32, error) {
				calls++
				if calls == 1 {
					return [][]float32{axisX}, nil
				}
				panic("embedder bug")
			},
		}
		e, err := New(context.Background(), store, "p", embedder)
		require.NoError(t, err)

		docs := textDocs("a", "b")
		assert.NotPanics(t, func() {
			got := e.ExtractTopN(context.Background(), docs, 2)
			assert.Empty(t, got)
		})
		assert.NotPanics(t, func() {
			got := e.ExtractTopCluster(context.Background(), docs, 2)
			assert.Empty(t, got)
		})
	})
}

// recordingMonitor captures monitor callbacks for assertions.
type recordingMonitor struct {
	started  int
	encoded  int
	kept     int
	removed  int
	reasons  []DegradeReason
	label    int
	size     int
	finished []core.Document
}

var _ Monitor = (*recordingMonitor)(nil)

func (m *recordingMonitor) Start(docCount int)       { m.started = docCount }
func (m *recordingMonitor) AfterEncode(embedded int) { m.encoded = embedded }
func (m *recordingMonitor) AfterExclusion(kept, removed int) {
	m.kept, m.removed = kept, removed
}
func (m *recordingMonitor) AfterScoring(_, _ int) {}
func (m *recordingMonitor) ClusterSelected(label, size int) {
	m.label, m.size = label, size
}
func (m *recordingMonitor) Degraded(reason DegradeReason) {
	m.reasons = append(m.reasons, reason)
}
func (m *recordingMonitor) Finish(selected []core.Document) { m.finished = selected }
