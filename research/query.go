package research

import "fmt"

// MaxQueryLength is the longest search query string BuildQuery will emit.
// Longer compositions progressively drop context fields.
const MaxQueryLength = 400

// Query describes one research question about a subject.
type Query struct {
	// Name is the subject's display name.
	Name string `json:"name"`

	// Type categorizes the subject, for example "company" or "person".
	Type string `json:"type"`

	// PrimaryIdentifier disambiguates the subject, for example a ticker
	// symbol or an employer.
	PrimaryIdentifier string `json:"primary_identifier"`

	// Text is the question itself.
	Text string `json:"query"`

	// Topic labels the research topic this query covers. Optional; used for
	// completed-topic tracking.
	Topic string `json:"topic,omitempty"`
}

// BuildQuery composes a search query string from the parts, dropping context
// fields one at a time until the result fits MaxQueryLength. The question
// text always survives; identifier, type, and name are dropped in that
// order of preference.
func BuildQuery(q Query) string {
	full := fmt.Sprintf("%s ('%s' '%s') %s", q.Type, q.Name, q.PrimaryIdentifier, q.Text)
	if len(full) < MaxQueryLength {
		return full
	}

	withoutID := fmt.Sprintf("%s ('%s') %s", q.Type, q.Name, q.Text)
	if len(withoutID) < MaxQueryLength {
		return withoutID
	}

	withoutType := fmt.Sprintf("('%s') %s", q.Name, q.Text)
	if len(withoutType) < MaxQueryLength {
		return withoutType
	}

	withoutName := fmt.Sprintf("%s %s", q.Type, q.Text)
	if len(withoutName) < MaxQueryLength {
		return withoutName
	}

	return q.Text
}
