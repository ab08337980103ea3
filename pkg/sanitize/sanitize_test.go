package sanitize

import (
	"strings"
	"testing"
)

func TestHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		keeps string
		drops string
	}{
		{
			name:  "strips script tags",
			input: `<p>hello</p><script>alert(1)</script>`,
			keeps: "<p>hello</p>",
			drops: "script",
		},
		{
			name:  "strips event handlers",
			input: `<a href="#" onclick="steal()">link</a>`,
			keeps: "link",
			drops: "onclick",
		},
		{
			name:  "keeps formatting tags",
			input: `<strong>bold</strong> and <em>italic</em>`,
			keeps: "<strong>bold</strong>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HTML(tt.input)
			if tt.keeps != "" && !strings.Contains(got, tt.keeps) {
				t.Errorf("expected %q to survive, got %q", tt.keeps, got)
			}
			if tt.drops != "" && strings.Contains(got, tt.drops) {
				t.Errorf("expected %q to be stripped, got %q", tt.drops, got)
			}
		})
	}
}

func TestText(t *testing.T) {
	if got := Text("<p>plain <b>text</b></p>"); got != "plain text" {
		t.Errorf("Text = %q", got)
	}
}

func TestExcerpt(t *testing.T) {
	t.Run("short text untouched", func(t *testing.T) {
		if got := Excerpt("<p>short</p>", 50); got != "short" {
			t.Errorf("Excerpt = %q", got)
		}
	})
	t.Run("long text truncated with ellipsis", func(t *testing.T) {
		got := Excerpt("<p>"+strings.Repeat("word ", 50)+"</p>", 20)
		if !strings.HasSuffix(got, "...") {
			t.Errorf("expected ellipsis, got %q", got)
		}
		if len([]rune(got)) > 23 {
			t.Errorf("excerpt too long: %q", got)
		}
	})
}
