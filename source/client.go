package source

import (
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

// BrowserUserAgent is sent with every request; some portals reject clients
// that do not look like a browser.
const BrowserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36"

// NewClient returns the HTTP client shared by all adapters. Requests are
// never retried.
func NewClient(timeout time.Duration) *resty.Client {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetRetryCount(0)
	client.SetHeader("User-Agent", BrowserUserAgent)
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		slog.Debug("response",
			"method", res.Request.Method,
			"url", res.Request.URL,
			"status", res.StatusCode(),
			"bytes", len(res.Body()),
			"elapsed", res.Time(),
		)
		return nil
	})
	return client
}
