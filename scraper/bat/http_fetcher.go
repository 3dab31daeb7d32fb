package bat

import (
	"context"
	"time"

	"auction-scraper/utils"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

type HTTPOptions struct {
	Timeout   time.Duration
	UserAgent string
	BypassCF  bool
}

// HTTPFetcher does one stateless GET per page.
type HTTPFetcher struct {
	http *resty.Client
}

func NewHTTPFetcher(opts HTTPOptions) *HTTPFetcher {
	client := resty.New()
	client.SetTimeout(opts.Timeout)
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = utils.RandomUserAgent()
	}
	client.SetHeader("User-Agent", userAgent)
	client.SetHeader("Accept", "text/html,application/xhtml+xml")
	if opts.BypassCF {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}

	return &HTTPFetcher{http: client}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	res, err := f.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return "", &RetrievalError{URL: url, Err: err}
	}

	if code := res.StatusCode(); code < 200 || code >= 300 {
		return "", &RetrievalError{URL: url, StatusCode: code}
	}

	return res.String(), nil
}
