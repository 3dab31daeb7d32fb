package bat

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"auction-scraper/models"
)

// Result markers as they appear on cards, checked in this order.
var priceMarkers = []struct {
	phrase string
	status models.SaleStatus
}{
	{"Sold for", models.StatusSold},
	{"Bid to", models.StatusBid},
}

var (
	whitespace   = regexp.MustCompile(`\s+`)
	leadingDigit = regexp.MustCompile(`^[0-9]+`)
	mileRegex    = regexp.MustCompile(`(\d[\d,]*(?:\.\d+)?)\s*([kK]?)-Mile`)
	milesRegex   = regexp.MustCompile(`(\d[\d,]*(?:\.\d+)?)\s*([kK]\b)?`)
	kilometres   = regexp.MustCompile(`(?i)kilomet|\bkms?\b`)
)

func normalizeSpace(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// ParsePrice finds a result marker in text and reads the dollar amount after it.
// ok is false when no marker is present or the amount is not a number.
func ParsePrice(text string) (price int, status models.SaleStatus, ok bool) {
	text = normalizeSpace(text)
	for _, m := range priceMarkers {
		idx := strings.LastIndex(text, m.phrase)
		if idx < 0 {
			continue
		}
		price, ok = dollarsAfter(text[idx+len(m.phrase):])
		if !ok {
			return 0, "", false
		}
		return price, m.status, true
	}
	return 0, "", false
}

// dollarsAfter reads "$12,345" style amounts: the token after the first "$"
// up to whitespace, thousands separators removed, cents and punctuation dropped.
func dollarsAfter(text string) (int, bool) {
	_, rest, found := strings.Cut(text, "$")
	if !found {
		return 0, false
	}
	token, _, _ := strings.Cut(rest, " ")
	token = strings.ReplaceAll(token, ",", "")

	digits := leadingDigit.FindString(token)
	if digits == "" {
		return 0, false
	}
	v, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseMileage reads "24k-Mile" or "12,000-Mile" out of a listing title.
func ParseMileage(title string) (int, bool) {
	m := mileRegex.FindStringSubmatch(title)
	if m == nil {
		return 0, false
	}
	return scaleMiles(m[1], m[2])
}

// parseMilesValue handles attribute values like "24k Miles" or "31,500 Miles Shown".
// Kilometre readings are not miles and are rejected.
func parseMilesValue(value string) (int, bool) {
	if kilometres.MatchString(value) {
		return 0, false
	}
	m := milesRegex.FindStringSubmatch(value)
	if m == nil {
		return 0, false
	}
	return scaleMiles(m[1], m[2])
}

func scaleMiles(number, suffix string) (int, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(number, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	if suffix != "" {
		v *= 1000
	}
	return int(math.Round(v)), true
}

// ParseAttribute splits a "Key: value" list item. Items without a colon or
// with an empty side are not attributes.
func ParseAttribute(text string) (key, value string, ok bool) {
	key, value, found := strings.Cut(normalizeSpace(text), ":")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if key == "" || value == "" {
		return "", "", false
	}
	return key, value, true
}
