// Package cached provides an ai.Embedder decorator backed by a persistent
// vector cache.
//
// Repeated extraction runs over overlapping document sets are common in
// research workflows; caching embeddings by content ID avoids re-encoding
// identical text. Entries are namespaced by model name, so changing the
// embedding model invalidates nothing and collides with nothing.
package cached
