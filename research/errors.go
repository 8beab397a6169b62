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

package research

import "errors"

var (
	// ErrSearcherRequired indicates a pipeline was built without a searcher.
	ErrSearcherRequired = errors.New("searcher is required")

	// ErrExtractorRequired indicates a pipeline was built without an
	// extractor.
	ErrExtractorRequired = errors.New("extractor is required")

	// ErrInvalidMaxAttempts indicates a retry was requested with a
	// non-positive attempt count.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")

	// ErrEmptyQuery indicates a query with no query text.
	ErrEmptyQuery = errors.New("query text cannot be empty")
)
