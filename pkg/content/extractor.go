package content

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"news-crawler/pkg/domain"
)

// metaDescriptionSelectors are checked in order before falling back to body text
var metaDescriptionSelectors = []string{
	`meta[name="description"]`,
	`meta[property="og:description"]`,
	`meta[name="twitter:description"]`,
}

// ExtractText extracts the main article text from HTML content
func ExtractText(htmlContent string) (string, error) {
	article, err := readability.FromReader(strings.NewReader(htmlContent), nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}

	return domain.CollapseSpace(article.TextContent), nil
}

// ExtractMetaDescription returns the page's declared summary, if any
func ExtractMetaDescription(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	for _, selector := range metaDescriptionSelectors {
		if content, exists := doc.Find(selector).First().Attr("content"); exists {
			if desc := domain.CollapseSpace(content); desc != "" {
				return desc, nil
			}
		}
	}
	return "", nil
}

// ExtractDescription prefers the meta description and falls back to the
// readable body text, capped to the article description length
func ExtractDescription(htmlContent string) (string, error) {
	desc, err := ExtractMetaDescription(htmlContent)
	if err == nil && desc != "" {
		return domain.Truncate(desc, domain.MaxDescriptionLength), nil
	}

	text, err := ExtractText(htmlContent)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", fmt.Errorf("description not found in HTML")
	}
	return domain.Truncate(text, domain.MaxDescriptionLength), nil
}
