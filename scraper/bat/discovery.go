package bat

import (
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DiscoverListingURLs collects links to listing pages on the same host as
// baseURL, without query strings, de-duplicated and sorted.
func DiscoverListingURLs(html, baseURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	host := ""
	if base, err := url.Parse(baseURL); err == nil {
		host = strings.TrimPrefix(base.Hostname(), "www.")
	}

	seen := make(map[string]bool)
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := cleanURL(a.AttrOr("href", ""), baseURL)
		if !strings.Contains(href, "/listing/") {
			return
		}
		u, err := url.Parse(href)
		if err != nil || !u.IsAbs() {
			return
		}
		if host != "" && strings.TrimPrefix(u.Hostname(), "www.") != host {
			return
		}
		seen[href] = true
	})

	urls := make([]string, 0, len(seen))
	for u := range seen {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return urls, nil
}
