package urls

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsArticleURL(t *testing.T) {
	const origin = "https://example.com"

	tests := []struct {
		name      string
		candidate string
		want      bool
	}{
		{"foreign host", "https://other.com/news/big-story", false},
		{"host case insensitive", "https://EXAMPLE.com/news/big-story", true},
		{"tag beats news", "https://example.com/tag/news/big-story", false},
		{"category listing", "https://example.com/category/world", false},
		{"pagination", "https://example.com/page/2", false},
		{"search", "https://example.com/search?q=x", false},
		{"about page", "https://example.com/about-us", false},
		{"image asset", "https://example.com/news/photo.jpg", false},
		{"news marker", "https://example.com/news/1", true},
		{"story marker", "https://example.com/story/1", true},
		{"year marker", "https://example.com/2025/01/x", true},
		{"uppercase path", "https://example.com/NEWS/1", true},
		{"slug with hyphen", "https://example.com/world/markets-rally-again", true},
		{"long slug", "https://example.com/world/marketsrallyagaintoday", true},
		{"short last segment", "https://example.com/world/markets", false},
		{"single segment slug", "https://example.com/markets-rally-again", false},
		{"root", "https://example.com/", false},
		{"unparseable", "http://[::1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsArticleURL(tt.candidate, origin))
			// pure: same answer on repeat
			assert.Equal(t, tt.want, IsArticleURL(tt.candidate, origin))
		})
	}
}

func TestIsArticleURLOriginWithPath(t *testing.T) {
	assert.True(t, IsArticleURL("https://example.com/news/1", "https://example.com/world/"))
	assert.False(t, IsArticleURL("https://example.com:8080/news/1", "https://example.com"))
}
