package websearch

import "github.com/poiesic/sift/core"

// Result is a single document returned by a web search provider.
type Result struct {
	URL     string  `json:"url"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Score   float32 `json:"score"`
}

// Document converts the result into a document suitable for relevance
// extraction. The source URL rides along in the fields map.
func (r *Result) Document() core.Document {
	return core.Document{
		Title:  r.Title,
		Text:   r.Content,
		Fields: map[string]string{"url": r.URL},
	}
}
