package bat

import (
	"fmt"
	"regexp"
	"strings"

	"auction-scraper/models"

	"github.com/PuerkitoBio/goquery"
)

var milesItemRegex = regexp.MustCompile(`(?i)(\d[\d,]*(?:\.\d+)?)\s*(k\b)?\s*Miles\b`)

// ParseListingPage reads a single listing page. Like ExtractListings it never
// fails on missing fields, only on markup that cannot be parsed at all.
func ParseListingPage(pageURL, html string) (models.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return models.Listing{}, fmt.Errorf("failed to parse html: %w", err)
	}

	l := models.Listing{URL: cleanURL(pageURL, "")}

	l.Title = normalizeSpace(doc.Find("h1.post-title").First().Text())
	if l.Title == "" {
		l.Title = normalizeSpace(doc.Find("h1").First().Text())
	}

	parseInfoBar(doc.Find(".listing-available-info").First(), &l)

	essentials := doc.Find(".essentials li")
	l.Attributes = parseAttributes(essentials)

	if miles, ok := ParseMileage(l.Title); ok {
		l.Mileage = models.IntPtr(miles)
	} else if miles, ok := mileageFromEssentials(essentials); ok {
		l.Mileage = models.IntPtr(miles)
	}

	return l, nil
}

// parseInfoBar prefers a "Sold for"/"Bid to" phrase and falls back to the
// bold value span, which carries the amount without a marker.
func parseInfoBar(bar *goquery.Selection, l *models.Listing) {
	if bar.Length() == 0 {
		return
	}
	text := spacedText(bar)

	if price, status, ok := ParsePrice(text); ok {
		l.Price = models.IntPtr(price)
		l.Status = status
		return
	}

	value := spacedText(bar.Find("span.info-value").First())
	if !strings.Contains(value, "$") {
		return
	}
	price, ok := dollarsAfter(value)
	if !ok {
		return
	}
	l.Price = models.IntPtr(price)

	switch {
	case strings.Contains(text, "Sold"):
		l.Status = models.StatusSold
	case strings.Contains(text, "Bid"):
		l.Status = models.StatusBid
	}
}

// mileageFromEssentials prefers a "Mileage: ..." item, then any "... Miles"
// item, each in document order.
func mileageFromEssentials(items *goquery.Selection) (int, bool) {
	var (
		miles int
		found bool
	)
	items.EachWithBreak(func(_ int, li *goquery.Selection) bool {
		key, value, ok := ParseAttribute(spacedText(li))
		if ok && strings.EqualFold(key, "Mileage") {
			miles, found = parseMilesValue(value)
		}
		return !found
	})
	if found {
		return miles, true
	}

	items.EachWithBreak(func(_ int, li *goquery.Selection) bool {
		m := milesItemRegex.FindStringSubmatch(spacedText(li))
		if m == nil {
			return true
		}
		miles, found = scaleMiles(m[1], m[2])
		return !found
	})
	return miles, found
}
