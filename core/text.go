package core

import (
	"slices"
	"strings"
)

// DeriveText produces the single text string a document is embedded under.
//
// Priority order:
//  1. Title and Text both present: "{Title}. {Text}"
//  2. Text alone
//  3. Title alone
//  4. All extension field values joined with a single space
//
// Extension fields are joined in key order so the result is deterministic.
// A document with no usable text yields the empty string; callers embed it
// anyway to keep index alignment with the rest of the batch.
func DeriveText(doc *Document) string {
	if doc == nil {
		return ""
	}

	switch {
	case doc.Title != "" && doc.Text != "":
		return doc.Title + ". " + doc.Text
	case doc.Text != "":
		return doc.Text
	case doc.Title != "":
		return doc.Title
	}

	if len(doc.Fields) == 0 {
		return ""
	}

	keys := make([]string, 0, len(doc.Fields))
	for k := range doc.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	values := make([]string, 0, len(keys))
	for _, k := range keys {
		if v := doc.Fields[k]; v != "" {
			values = append(values, v)
		}
	}
	return strings.Join(values, " ")
}
