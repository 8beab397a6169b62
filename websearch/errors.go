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

package websearch

import "errors"

var (
	// ErrNoAPIKeys indicates the client was constructed without any usable
	// API key.
	ErrNoAPIKeys = errors.New("no search API keys configured")

	// ErrAllKeysFailed indicates every configured API key was tried and
	// every attempt failed.
	ErrAllKeysFailed = errors.New("all search API keys failed")

	// ErrEmptyQuery indicates a search was requested with an empty query.
	ErrEmptyQuery = errors.New("search query cannot be empty")
)
