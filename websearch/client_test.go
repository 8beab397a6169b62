package websearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("requires at least one key", func(t *testing.T) {
		_, err := NewClient(nil)
		assert.ErrorIs(t, err, ErrNoAPIKeys)

		_, err = NewClient([]string{"", ""})
		assert.ErrorIs(t, err, ErrNoAPIKeys)
	})

	t.Run("skips empty keys", func(t *testing.T) {
		c, err := NewClient([]string{"", "key1", "", "key2"})
		require.NoError(t, err)
		assert.Equal(t, []string{"key1", "key2"}, c.keys)
	})

	t.Run("rejects invalid options", func(t *testing.T) {
		_, err := NewClient([]string{"k"}, WithMaxResults(0))
		assert.Error(t, err)
		_, err = NewClient([]string{"k"}, WithEndpoint(""))
		assert.Error(t, err)
	})
}

func TestClientSearch(t *testing.T) {
	t.Run("sends query and parses results", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer key1", r.Header.Get("Authorization"))

			var req searchRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "acme corp funding", req.Query)
			assert.Equal(t, "advanced", req.SearchDepth)
			assert.Equal(t, 20, req.MaxResults)
			assert.NotEmpty(t, req.StartDate)
			assert.NotEmpty(t, req.EndDate)

			json.NewEncoder(w).Encode(Response{Results: []Result{
				{URL: "https://example.com/a", Title: "A", Content: "acme raised", Score: 0.95},
				{URL: "https://example.com/b", Title: "B", Content: "other", Score: 0.5},
			}})
		}))
		defer server.Close()

		c, err := NewClient([]string{"key1"}, WithEndpoint(server.URL))
		require.NoError(t, err)

		results, err := c.Search(context.Background(), "acme corp funding")
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "https://example.com/a", results[0].URL)
		assert.InDelta(t, 0.95, results[0].Score, 1e-6)
	})

	t.Run("full search includes the synthesized answer", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			json.NewEncoder(w).Encode(Response{
				Answer:  "acme raised a series B",
				Results: []Result{{URL: "u", Score: 0.99}},
			})
		}))
		defer server.Close()

		c, err := NewClient([]string{"key1"}, WithEndpoint(server.URL))
		require.NoError(t, err)

		resp, err := c.SearchFull(context.Background(), "acme")
		require.NoError(t, err)
		assert.Equal(t, "acme raised a series B", resp.Answer)
		assert.Len(t, resp.Results, 1)
	})

	t.Run("fails over to the next key", func(t *testing.T) {
		var seen []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("Authorization")
			seen = append(seen, key)
			if key == "Bearer bad" {
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(Response{Error: "rate limited"})
				return
			}
			json.NewEncoder(w).Encode(Response{Results: []Result{{URL: "u", Score: 1}}})
		}))
		defer server.Close()

		c, err := NewClient([]string{"bad", "good"}, WithEndpoint(server.URL))
		require.NoError(t, err)

		results, err := c.Search(context.Background(), "q")
		require.NoError(t, err)
		assert.Len(t, results, 1)
		assert.Equal(t, []string{"Bearer bad", "Bearer good"}, seen)
	})

	t.Run("all keys failing returns ErrAllKeysFailed", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(Response{Error: "invalid key"})
		}))
		defer server.Close()

		c, err := NewClient([]string{"k1", "k2"}, WithEndpoint(server.URL))
		require.NoError(t, err)

		_, err = c.Search(context.Background(), "q")
		assert.ErrorIs(t, err, ErrAllKeysFailed)
		assert.Contains(t, err.Error(), "invalid key")
	})

	t.Run("empty query rejected", func(t *testing.T) {
		c, err := NewClient([]string{"k"})
		require.NoError(t, err)
		_, err = c.Search(context.Background(), "")
		assert.ErrorIs(t, err, ErrEmptyQuery)
	})

	t.Run("cancelled context stops failover", func(t *testing.T) {
		attempts := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			attempts++
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		c, err := NewClient([]string{"k1", "k2", "k3"}, WithEndpoint(server.URL))
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = c.Search(ctx, "q")
		require.Error(t, err)
		assert.LessOrEqual(t, attempts, 1)
	})
}

func TestResultDocument(t *testing.T) {
	r := Result{URL: "https://example.com", Title: "Title", Content: "Body", Score: 0.9}
	doc := r.Document()
	assert.Equal(t, "Title", doc.Title)
	assert.Equal(t, "Body", doc.Text)
	assert.Equal(t, "https://example.com", doc.Fields["url"])
}
