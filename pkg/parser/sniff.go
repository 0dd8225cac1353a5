package parser

import (
	"bytes"
	"fmt"
	"strings"
)

const sniffWindow = 500

// IsXMLContentType reports whether a Content-Type value names an XML type
func IsXMLContentType(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "xml")
}

// LooksLikeFeed accepts a response as a feed candidate when the content type
// is XML, the body opens with an XML declaration, or an <rss tag appears
// within the first 500 bytes.
func LooksLikeFeed(contentType string, body []byte) bool {
	if IsXMLContentType(contentType) {
		return true
	}
	trimmed := bytes.TrimLeft(bytes.TrimPrefix(body, []byte("\xef\xbb\xbf")), " \t\r\n")
	if bytes.HasPrefix(trimmed, []byte("<?xml")) {
		return true
	}
	head := body
	if len(head) > sniffWindow {
		head = head[:sniffWindow]
	}
	return bytes.Contains(head, []byte("<rss"))
}

// CheckXML returns ErrNotXML unless contentType names an XML type
func CheckXML(contentType string) error {
	if !IsXMLContentType(contentType) {
		return fmt.Errorf("%w: content type %q", ErrNotXML, contentType)
	}
	return nil
}

// CheckFeed returns ErrNotXML when LooksLikeFeed rejects the response
func CheckFeed(contentType string, body []byte) error {
	if !LooksLikeFeed(contentType, body) {
		return fmt.Errorf("%w: content type %q", ErrNotXML, contentType)
	}
	return nil
}
