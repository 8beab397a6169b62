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


package intent

import "errors"

var (
	// ErrUnknownIntent is returned when a profile lookup fails.
	// Extractor construction surfaces this immediately rather than silently
	// proceeding with empty keyword lists.
	ErrUnknownIntent = errors.New("unknown intent profile")

	// ErrNoProfiles is returned when a profile file contains no profiles.
	ErrNoProfiles = errors.New("no profiles defined")
)
