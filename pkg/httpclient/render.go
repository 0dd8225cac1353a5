package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"news-crawler/pkg/logger"
)

const DefaultRenderTimeout = 30 * time.Second

// Renderer loads pages in headless Chrome so that client-side rendered
// listings are visible to the DOM heuristics. Any rendering failure falls
// back to the plain HTTP fetcher.
type Renderer struct {
	fallback  Fetcher
	timeout   time.Duration
	allocOpts []chromedp.ExecAllocatorOption
	log       logger.Interface
}

// NewRenderer creates a new headless Chrome renderer
func NewRenderer(fallback Fetcher, timeout time.Duration, log logger.Interface) *Renderer {
	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}
	if log == nil {
		log = logger.NewNop()
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(BrowserUserAgent),
		chromedp.Flag("blink-settings", "imagesEnabled=false"),
	)
	return &Renderer{
		fallback:  fallback,
		timeout:   timeout,
		allocOpts: opts,
		log:       log.With("component", "renderer"),
	}
}

// Fetch renders url and returns the resulting document. The status code is
// taken from the main document response, so error pages stay non-2xx.
func (r *Renderer) Fetch(ctx context.Context, url string) (*Response, error) {
	resp, err := r.render(ctx, url)
	if err == nil {
		return resp, nil
	}

	r.log.Debug("Render failed, falling back to HTTP", "url", url, "error", err)
	if r.fallback == nil {
		return nil, err
	}
	return r.fallback.Fetch(ctx, url)
}

func (r *Renderer) render(ctx context.Context, url string) (*Response, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, r.allocOpts...)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, r.timeout)
	defer cancelTimeout()

	doc, err := chromedp.RunResponse(tabCtx, chromedp.Navigate(url))
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", url, err)
	}
	resp := documentResponse(url, doc)
	if !resp.IsSuccess() {
		return resp, nil
	}

	var html string
	err = chromedp.Run(tabCtx,
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", url, err)
	}
	resp.Body = []byte(html)
	return resp, nil
}

// documentResponse maps the browser's main document response onto a Response
// without a body. A missing document response counts as 200.
func documentResponse(requested string, doc *network.Response) *Response {
	resp := &Response{
		URL:        requested,
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"text/html; charset=utf-8"}},
	}
	if doc == nil {
		return resp
	}
	if doc.Status > 0 {
		resp.StatusCode = int(doc.Status)
	}
	if doc.URL != "" {
		resp.URL = doc.URL
	}
	if doc.MimeType != "" {
		resp.Header.Set("Content-Type", doc.MimeType)
	}
	return resp
}
