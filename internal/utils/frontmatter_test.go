package utils

import (
	"strings"
	"testing"
)

type testMeta struct {
	Title string   `yaml:"title"`
	Tags  []string `yaml:"tags,omitempty"`
}

func TestParseFrontmatter(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTitle string
		wantTags  []string
		wantBody  string
		wantErr   bool
	}{
		{
			name:      "title and tags",
			input:     "---\ntitle: Hello\ntags: [news, film]\n---\nBody text\n",
			wantTitle: "Hello",
			wantTags:  []string{"news", "film"},
			wantBody:  "Body text\n",
		},
		{
			name:      "blank line after delimiter is dropped",
			input:     "---\ntitle: Spaced\n---\n\nParagraph",
			wantTitle: "Spaced",
			wantBody:  "Paragraph",
		},
		{
			name:      "empty body",
			input:     "---\ntitle: Only meta\n---\n",
			wantTitle: "Only meta",
			wantBody:  "",
		},
		{
			name:    "missing opening delimiter",
			input:   "title: Hello\n---\nBody",
			wantErr: true,
		},
		{
			name:    "missing closing delimiter",
			input:   "---\ntitle: Hello\nBody",
			wantErr: true,
		},
		{
			name:    "invalid yaml",
			input:   "---\ntitle: [unclosed\n---\nBody",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var meta testMeta
			body, err := ParseFrontmatter([]byte(tt.input), &meta)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if meta.Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", meta.Title, tt.wantTitle)
			}
			if strings.Join(meta.Tags, ",") != strings.Join(tt.wantTags, ",") {
				t.Errorf("tags = %v, want %v", meta.Tags, tt.wantTags)
			}
			if body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestRenderFrontmatterRoundTrip(t *testing.T) {
	in := testMeta{Title: "Round: trip", Tags: []string{"a", "b"}}

	doc, err := RenderFrontmatter(in, "Some *markdown*\n")
	if err != nil {
		t.Fatalf("RenderFrontmatter: %v", err)
	}
	if !strings.HasPrefix(string(doc), "---\ntitle:") {
		t.Fatalf("unexpected document start: %q", doc)
	}

	var out testMeta
	body, err := ParseFrontmatter(doc, &out)
	if err != nil {
		t.Fatalf("ParseFrontmatter: %v", err)
	}
	if out.Title != in.Title {
		t.Errorf("title = %q, want %q", out.Title, in.Title)
	}
	if len(out.Tags) != 2 {
		t.Errorf("tags = %v, want 2 entries", out.Tags)
	}
	if body != "Some *markdown*\n" {
		t.Errorf("body = %q", body)
	}
}
