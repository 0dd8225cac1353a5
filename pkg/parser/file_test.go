package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-crawler/pkg/domain"
)

func TestParseSourcesText(t *testing.T) {
	input := `# sources
https://news.ycombinator.com,news,technology

https://example.com,
https://example.org,blog
`
	sources, err := ParseSourcesText(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, sources, 3)

	assert.Equal(t, domain.Source{URL: "https://news.ycombinator.com", SpiderType: "news", Industry: "technology"}, sources[0])
	assert.Equal(t, domain.Source{URL: "https://example.com", SpiderType: "news", Industry: "general"}, sources[1])
	assert.Equal(t, "blog", sources[2].SpiderType)
}

func TestParseSourcesTextEmpty(t *testing.T) {
	_, err := ParseSourcesText(strings.NewReader("# only comments\n\n"))
	assert.ErrorIs(t, err, ErrNoItems)
}

func TestParseSourcesFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	content := `- url: https://techcrunch.com
  spider_type: news
  industry: technology
- https://www.theverge.com
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	sources, err := ParseSourcesFile(path)
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, "technology", sources[0].Industry)
	assert.Equal(t, domain.Source{URL: "https://www.theverge.com", SpiderType: "news", Industry: "general"}, sources[1])
}

func TestParseSourcesFileMissing(t *testing.T) {
	_, err := ParseSourcesFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
