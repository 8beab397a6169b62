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


// Package ai provides abstractions for the embedding services used in sift.
//
// The package defines the Embedder interface behind which all embedding
// providers sit, following the dependency inversion principle: the extraction
// logic depends on the abstraction, never on a concrete provider.
//
// # Implementation Packages
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/cached: Decorator that caches embeddings in a storage.VectorRepository
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewEmbedder, cached.NewEmbedder) return the
// ai.Embedder INTERFACE to enforce abstraction and prevent accidental
// coupling to concrete implementations.
//
//	embedder, err := openai.NewEmbedder(config)  // returns ai.Embedder
//
// Test utility constructors (mock.NewMockEmbedder) return CONCRETE types to
// enable test assertions and behavior injection via the mock's public fields
// (EmbedTextsFunc, CallCount, Reset, etc.).
//
//	mockEmbed := mock.NewMockEmbedder()  // returns *mock.MockEmbedder
//	count := mockEmbed.CallCount()       // test assertion
//
// # Usage Example
//
//	config := ai.DefaultConfig()
//	embedder, err := openai.NewEmbedder(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	vectors, err := embedder.EmbedTexts(ctx, []string{"first document", "second document"})
package ai
