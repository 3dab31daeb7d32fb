package bat

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// InspectClasses are container class names worth counting when the
// fragment guesses stop matching.
var InspectClasses = []string{
	"search-result",
	"listing-card",
	"auction-item",
	"content-main",
	"group-item",
	"auctions-list",
}

type SelectorCount struct {
	Class string
	Count int
}

type Inspection struct {
	Counts []SelectorCount
	// FirstCard is the outer HTML of the first fragment found, empty if none.
	FirstCard string
	// Snippet is the start of the page, enough to tell a block page from results.
	Snippet string
}

func Inspect(html string, snippetLen int) (Inspection, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Inspection{}, fmt.Errorf("failed to parse html: %w", err)
	}

	var ins Inspection
	for _, class := range InspectClasses {
		ins.Counts = append(ins.Counts, SelectorCount{
			Class: class,
			Count: doc.Find("." + class).Length(),
		})
	}

	_, cards := locateFragments(doc, DefaultMinFragments)
	if cards != nil && cards.Length() > 0 {
		ins.FirstCard, _ = goquery.OuterHtml(cards.First())
	}

	ins.Snippet = html
	if snippetLen > 0 && len(ins.Snippet) > snippetLen {
		n := snippetLen
		for n > 0 && !utf8.RuneStart(ins.Snippet[n]) {
			n--
		}
		ins.Snippet = ins.Snippet[:n]
	}
	return ins, nil
}
