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


// Package storage provides the storage abstraction layer for sift.
//
// This package defines repository interfaces that decouple storage
// implementation from extraction logic, plus the MUS serialization helpers
// shared by all backends.
//
// # Architecture
//
// The storage layer follows the Repository pattern:
//
//   - VectorRepository: cached embedding vectors, keyed by content ID + model
//   - DocumentRepository: persisted research documents with a date index
//
// # Constructor Return Type Pattern
//
// Public constructors in backend packages return these interfaces to enforce
// abstraction and enable alternative backends:
//
//	repo, err := badger.NewVectorRepository(backend)  // returns storage.VectorRepository
//
// Use in tests with in-memory storage:
//
//	vectorRepo, docRepo, backend, err := badger.NewMemoryRepositories()
//	defer backend.Close()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support concurrent
// access from multiple goroutines.
package storage
