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


package core

import "errors"

// Domain errors
var (
	// ErrEmptyVector indicates a similarity computation received an empty vector.
	ErrEmptyVector = errors.New("empty vector")

	// ErrDimensionMismatch indicates two vectors have different dimensionality.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrInvalidDocumentRecord indicates a DocumentRecord failed validation.
	ErrInvalidDocumentRecord = errors.New("invalid document record")

	// ErrEmptyDocument indicates a document carries no derivable text.
	ErrEmptyDocument = errors.New("document has no text content")
)
