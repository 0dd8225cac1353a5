package httpclient

import (
	"context"
	"net/http"
)

// BlockedRetry repeats a fetch with a second header profile when the first
// one is refused with 403. Sites behind Cloudflare often block browser user
// agents but let CloudflareClient through.
type BlockedRetry struct {
	primary Fetcher
	retry   Fetcher
}

// NewBlockedRetry creates a fetcher that falls back to retry on 403
func NewBlockedRetry(primary, retry Fetcher) *BlockedRetry {
	return &BlockedRetry{primary: primary, retry: retry}
}

func (b *BlockedRetry) Fetch(ctx context.Context, url string) (*Response, error) {
	resp, err := b.primary.Fetch(ctx, url)
	if err != nil || resp.StatusCode != http.StatusForbidden || b.retry == nil {
		return resp, err
	}
	return b.retry.Fetch(ctx, url)
}
