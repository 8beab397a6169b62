package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "same content produces same ID",
			content: "test content",
		},
		{
			name:    "empty string",
			content: "",
		},
		{
			name:    "long content",
			content: "This is a much longer piece of content that should still hash consistently",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestDocument_ID(t *testing.T) {
	a := &Document{Title: "A post", Text: "about something"}
	b := &Document{Title: "A post", Text: "about something"}
	c := &Document{Title: "A different post", Text: "about something"}

	if a.ID() != b.ID() {
		t.Errorf("Document.ID() differs for identical content")
	}
	if a.ID() == c.ID() {
		t.Errorf("Document.ID() collides for different content")
	}
}

func TestDocumentRecord_Document(t *testing.T) {
	record := &DocumentRecord{
		Id:     42,
		Title:  "title",
		Text:   "text",
		Fields: map[string]string{"author": "someone"},
		URL:    "https://example.com/post",
	}

	doc := record.Document()
	if doc.Title != "title" || doc.Text != "text" {
		t.Errorf("Document() lost title/text: %+v", doc)
	}
	if doc.Fields["author"] != "someone" {
		t.Errorf("Document() lost extension fields: %+v", doc)
	}
}
