// Package mock provides test double implementations of the ai interfaces.
//
// This package contains a mock implementation of ai.Embedder for use in unit
// tests. The mock allows tests to run without an external embedding service
// and enables controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	embedder := mock.NewMockEmbedder()
//	vectors, err := embedder.EmbedTexts(ctx, []string{"test"})
//
//	// Custom behavior injection
//	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
//	    return nil, errors.New("service unavailable")
//	}
//
//	// Check call counts
//	count := embedder.CallCount()
//
// # Default Behavior
//
// MockEmbedder returns deterministic unit-norm vectors derived from a hash of
// the input text, so similarity math over mock vectors is stable across runs.
package mock
