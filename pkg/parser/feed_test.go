package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rssFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
<channel>
  <title>Example News</title>
  <item>
    <title>  First   story </title>
    <link>/news/first-story</link>
    <description><![CDATA[<p>Hello <b>world</b></p>]]></description>
    <pubDate>Mon, 02 Jun 2025 10:00:00 GMT</pubDate>
  </item>
  <item>
    <title>Second story</title>
    <link>https://example.com/news/second-story</link>
    <content:encoded><![CDATA[<div>Body only</div>]]></content:encoded>
  </item>
  <item>
    <title></title>
    <link>https://example.com/news/untitled</link>
  </item>
  <item>
    <title>No link</title>
  </item>
</channel>
</rss>`

const atomFixture = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Example Atom</title>
  <entry>
    <title>Atom entry</title>
    <link rel="alternate" href="https://example.com/2025/atom-entry"/>
    <summary>Short summary</summary>
    <updated>2025-06-02T10:00:00Z</updated>
  </entry>
</feed>`

func TestFeedParserRSS(t *testing.T) {
	items, err := NewFeedParser().Parse([]byte(rssFixture), "https://example.com/feed", 50)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "First story", items[0].Title)
	assert.Equal(t, "https://example.com/news/first-story", items[0].Link)
	assert.Equal(t, "Hello world", items[0].Description)
	assert.Equal(t, "Mon, 02 Jun 2025 10:00:00 GMT", items[0].Published)

	assert.Equal(t, "Body only", items[1].Description)
	assert.Empty(t, items[1].Published)
}

func TestFeedParserAtom(t *testing.T) {
	items, err := NewFeedParser().Parse([]byte(atomFixture), "https://example.com/atom.xml", 50)
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "https://example.com/2025/atom-entry", items[0].Link)
	assert.Equal(t, "Short summary", items[0].Description)
	assert.Equal(t, "2025-06-02T10:00:00Z", items[0].Published)
}

func TestFeedParserLimit(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?><rss version="2.0"><channel><title>x</title>`)
	for i := 0; i < 80; i++ {
		fmt.Fprintf(&b, `<item><title>Item %d</title><link>https://example.com/news/%d</link></item>`, i, i)
	}
	b.WriteString(`</channel></rss>`)

	items, err := NewFeedParser().Parse([]byte(b.String()), "https://example.com/rss", 50)
	require.NoError(t, err)
	assert.Len(t, items, 50)
	assert.Equal(t, "Item 49", items[49].Title)
}

func TestFeedParserRejectsHTML(t *testing.T) {
	_, err := NewFeedParser().Parse([]byte("<html><body>nope</body></html>"), "https://example.com/feed", 50)
	assert.Error(t, err)
}

func TestFeedParserEmptyChannel(t *testing.T) {
	_, err := NewFeedParser().Parse([]byte(`<rss version="2.0"><channel><title>x</title></channel></rss>`), "https://example.com/rss", 50)
	assert.ErrorIs(t, err, ErrNoItems)
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "a b & c", StripHTML("<p>a</p>\n<p>b &amp; c</p>"))
	assert.Equal(t, "plain text", StripHTML("  plain   text "))
}
