package research

import (
	"regexp"

	"github.com/poiesic/sift/websearch"
)

// MinResultScore is the API relevance score a search result must exceed to
// survive filtering.
const MinResultScore = 0.90

// FilterResults keeps results the search API scored above MinResultScore
// whose content mentions keyword as a whole word, case-insensitively. An
// empty keyword disables the mention check.
func FilterResults(results []websearch.Result, keyword string) []websearch.Result {
	var pattern *regexp.Regexp
	if keyword != "" {
		pattern = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(keyword) + `\b`)
	}

	kept := make([]websearch.Result, 0, len(results))
	for _, r := range results {
		if r.Score <= MinResultScore {
			continue
		}
		if pattern != nil && !pattern.MatchString(r.Content) {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// UpdateCompletedTopics appends topics not already present in completed,
// preserving order and skipping empties. The input slice is not mutated.
func UpdateCompletedTopics(completed []string, topics []string) []string {
	seen := make(map[string]struct{}, len(completed))
	for _, topic := range completed {
		seen[topic] = struct{}{}
	}

	out := append([]string(nil), completed...)
	for _, topic := range topics {
		if topic == "" {
			continue
		}
		if _, ok := seen[topic]; ok {
			continue
		}
		out = append(out, topic)
		seen[topic] = struct{}{}
	}
	return out
}
