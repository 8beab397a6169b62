package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveText(t *testing.T) {
	tests := []struct {
		name string
		doc  *Document
		want string
	}{
		{
			name: "title and text combined",
			doc:  &Document{Title: "OpenAI raises funding", Text: "The round was led by..."},
			want: "OpenAI raises funding. The round was led by...",
		},
		{
			name: "text only",
			doc:  &Document{Text: "just the body"},
			want: "just the body",
		},
		{
			name: "title only",
			doc:  &Document{Title: "just the headline"},
			want: "just the headline",
		},
		{
			name: "extension fields joined in key order",
			doc: &Document{Fields: map[string]string{
				"c": "third",
				"a": "first",
				"b": "second",
			}},
			want: "first second third",
		},
		{
			name: "empty extension values skipped",
			doc: &Document{Fields: map[string]string{
				"a": "kept",
				"b": "",
			}},
			want: "kept",
		},
		{
			name: "nothing derivable",
			doc:  &Document{},
			want: "",
		},
		{
			name: "nil document",
			doc:  nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveText(tt.doc))
		})
	}
}

func TestDeriveText_Deterministic(t *testing.T) {
	doc := &Document{Fields: map[string]string{
		"z": "last", "m": "middle", "a": "first", "q": "later",
	}}

	first := DeriveText(doc)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, DeriveText(doc))
	}
}
