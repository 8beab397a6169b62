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

import "fmt"

// ValidateDocumentRecord validates a DocumentRecord according to domain rules.
//
// Validation rules:
//   - Some text must be derivable (Title, Text, or extension fields)
//
// NOT validated (populated by processors):
//   - Vector (can be empty until the record is embedded)
//   - Id (computed from content at insertion)
func ValidateDocumentRecord(record *DocumentRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidDocumentRecord)
	}

	doc := record.Document()
	if DeriveText(&doc) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocumentRecord, ErrEmptyDocument)
	}

	return nil
}
