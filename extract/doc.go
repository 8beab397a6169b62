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


// Package extract selects the documents most relevant to an intent profile.
//
// An Extractor is bound to one intent profile at construction: the profile's
// priority and exclusion keywords are embedded once and cached, read-only,
// for the extractor's lifetime. Each call then encodes the candidate
// documents, drops the ones too similar to an exclusion keyword, and selects
// the rest either by ranked similarity to the priority keywords or by
// density clustering (largest coherent group wins).
//
// # Degradation over failure
//
// Extract never returns an error and never panics. Every failure mode has a
// documented fallback that returns strictly less refined but never corrupted
// output:
//
//   - no keywords configured, or document encoding fails: the first TopN
//     input documents, unmodified
//   - a single document's similarity cannot be computed: that document is
//     kept by the exclusion filter (fail-open) and skipped by the scorer
//   - no document clears MinScore: all documents ranked by raw score anyway
//   - clustering is underdetermined or fails: ranked selection instead
//   - anything unanticipated: an empty result
//
// Output ordering is always a subsequence of input ordering, except that
// ranked selection reorders by descending score (ties keep input order).
//
// # Usage
//
//	extractor, err := extract.New(ctx, intent.BuiltinStore(), "user_post", embedder)
//	if err != nil {
//	    log.Fatal(err) // unknown intent or keyword embedding failure
//	}
//
//	relevant := extractor.Extract(ctx, documents, extract.DefaultParams())
//	topCluster := extractor.ExtractTopCluster(ctx, documents, 5)
package extract
