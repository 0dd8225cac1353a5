package parser

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"golang.org/x/net/html/charset"
)

// sitemapXML decodes both <urlset> and <sitemapindex> roots.
// Tags match on local names, so news:title matches "news>title".
type sitemapXML struct {
	Sitemaps []struct {
		Location string `xml:"loc"`
	} `xml:"sitemap"`
	URLs []struct {
		Location  string `xml:"loc"`
		NewsTitle string `xml:"news>title"`
	} `xml:"url"`
}

// ParseSitemap decodes a sitemap or sitemap index
func ParseSitemap(body []byte) (*SitemapDocument, error) {
	var raw sitemapXML
	decoder := xml.NewDecoder(bytes.NewReader(body))
	decoder.CharsetReader = charset.NewReaderLabel
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode sitemap XML: %w", err)
	}

	doc := &SitemapDocument{}
	for _, s := range raw.Sitemaps {
		if loc := strings.TrimSpace(s.Location); loc != "" {
			doc.Sitemaps = append(doc.Sitemaps, loc)
		}
	}
	for _, u := range raw.URLs {
		loc := strings.TrimSpace(u.Location)
		if loc == "" {
			continue
		}
		doc.URLs = append(doc.URLs, SitemapURL{
			Location:  loc,
			NewsTitle: strings.TrimSpace(u.NewsTitle),
		})
	}
	return doc, nil
}
