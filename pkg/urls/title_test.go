package urls

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleFromURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://example.com/2024/a-long-article-slug", "A Long Article Slug"},
		{"https://example.com/news/markets_rally_again?id=1#x", "Markets Rally Again"},
		{"https://example.com/news/the-slug/123", "The Slug"},
		{"https://example.com/long-story/%C3%A9t%C3%A9", "Long Story"},
		{"https://example.com/news/%C3%A9t%C3%A9s", "Étés"},
		{"https://example.com/a/b/2024", "https://example.com/a/b/2024"},
		{"https://example.com/", "https://example.com/"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, TitleFromURL(tt.in))
		})
	}
}

func TestTitleFromURLCapped(t *testing.T) {
	title := TitleFromURL("https://example.com/news/" + strings.Repeat("word-", 100))
	assert.LessOrEqual(t, len(title), 200)
}
