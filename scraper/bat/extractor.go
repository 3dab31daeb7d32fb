package bat

import (
	"fmt"
	"net/url"
	"strings"

	"auction-scraper/models"
	"auction-scraper/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

// FragmentSelectors are the guesses for one listing summary on a results
// page, most specific first.
var FragmentSelectors = []string{
	"div.search-result",
	"div.listing-card",
	".auction-item",
	".group-item",
}

const DefaultMinFragments = 5

type ExtractOptions struct {
	// BaseURL resolves relative links. Empty keeps hrefs as they are.
	BaseURL string
	// MinFragments is the count a selector guess must reach to be accepted outright.
	MinFragments int
}

// ExtractListings pulls listing records out of a results page. Field parse
// failures leave the field empty; markup without any fragments yields an
// empty slice.
func ExtractListings(html string, opts ExtractOptions) ([]models.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	if opts.MinFragments <= 0 {
		opts.MinFragments = DefaultMinFragments
	}

	selector, cards := locateFragments(doc, opts.MinFragments)
	if cards.Length() == 0 {
		return []models.Listing{}, nil
	}
	utils.WithFields(logrus.Fields{"selector": selector}).Debugf("Found %d total cards", cards.Length())

	listings := make([]models.Listing, 0, cards.Length())
	cards.Each(func(_ int, card *goquery.Selection) {
		l := parseFragment(card, opts.BaseURL)
		if l.IsNull() {
			return
		}
		listings = append(listings, l)
	})

	return listings, nil
}

// locateFragments returns the first guess reaching min matches. When none
// does, the guess with the most matches wins, earlier guesses on ties.
func locateFragments(doc *goquery.Document, min int) (string, *goquery.Selection) {
	var (
		bestSel   string
		bestCards *goquery.Selection
	)
	for _, sel := range FragmentSelectors {
		cards := doc.Find(sel)
		if cards.Length() >= min {
			return sel, cards
		}
		if bestCards == nil || cards.Length() > bestCards.Length() {
			bestSel, bestCards = sel, cards
		}
		utils.Debug("'%s' yielded %d results, trying next guess", sel, cards.Length())
	}
	return bestSel, bestCards
}

func parseFragment(card *goquery.Selection, baseURL string) models.Listing {
	var l models.Listing

	link := card.Find("a[href]").First()
	if link.Length() > 0 {
		l.URL = cleanURL(link.AttrOr("href", ""), baseURL)
		l.Title = normalizeSpace(link.Text())
	}
	if l.Title == "" {
		l.Title = normalizeSpace(card.Find("h3").First().Text())
	}

	if price, status, ok := ParsePrice(spacedText(card)); ok {
		l.Price = models.IntPtr(price)
		l.Status = status
	}

	if miles, ok := ParseMileage(l.Title); ok {
		l.Mileage = models.IntPtr(miles)
	}

	l.Attributes = parseAttributes(card.Find("li"))
	return l
}

func parseAttributes(items *goquery.Selection) map[string]string {
	attrs := make(map[string]string)
	items.Each(func(_ int, li *goquery.Selection) {
		key, value, ok := ParseAttribute(spacedText(li))
		if !ok {
			return
		}
		if _, exists := attrs[key]; !exists {
			attrs[key] = value
		}
	})
	return attrs
}

// cleanURL resolves href against baseURL and drops the query string and fragment.
func cleanURL(href, baseURL string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if baseURL != "" && !u.IsAbs() {
		if base, err := url.Parse(baseURL); err == nil {
			u = base.ResolveReference(u)
		}
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
