package bat

import (
	"testing"
	"unicode/utf8"

	"auction-scraper/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingPage = `
<html><body>
<h1 class="post-title">  24k-Mile 2004 Honda S2000 </h1>
<div class="listing-available-info">
  <span class="info-label">Sold for</span> <span class="info-value">$35,500</span> <span>on 4/1/24</span>
</div>
<div class="essentials">
  <ul>
    <li>Chassis: JHMAP11424T000000</li>
    <li>24k Miles</li>
    <li>2.2-Liter F22C1 Inline-Four</li>
    <li>Seller: Private Party</li>
  </ul>
</div>
</body></html>`

func TestParseListingPage(t *testing.T) {
	l, err := ParseListingPage("https://bringatrailer.com/listing/2004-honda-s2000-41/?ref=x", listingPage)
	require.NoError(t, err)

	assert.Equal(t, "https://bringatrailer.com/listing/2004-honda-s2000-41/", l.URL)
	assert.Equal(t, "24k-Mile 2004 Honda S2000", l.Title)
	require.NotNil(t, l.Price)
	assert.Equal(t, 35500, *l.Price)
	assert.Equal(t, models.StatusSold, l.Status)
	require.NotNil(t, l.Mileage)
	assert.Equal(t, 24000, *l.Mileage)
	assert.Equal(t, map[string]string{
		"Chassis": "JHMAP11424T000000",
		"Seller":  "Private Party",
	}, l.Attributes)
}

func TestParseListingPageInfoValueOnly(t *testing.T) {
	html := `<h1>2002 Honda S2000</h1>
<div class="listing-available-info"><span class="info-value">$18,250</span></div>
<div class="essentials"><ul><li>Mileage: 61,000</li></ul></div>`

	l, err := ParseListingPage("https://bringatrailer.com/listing/b/", html)
	require.NoError(t, err)

	assert.Equal(t, "2002 Honda S2000", l.Title)
	require.NotNil(t, l.Price)
	assert.Equal(t, 18250, *l.Price)
	assert.Empty(t, l.Status)
	require.NotNil(t, l.Mileage)
	assert.Equal(t, 61000, *l.Mileage)
}

func TestParseListingPageMissingEverything(t *testing.T) {
	l, err := ParseListingPage("https://bringatrailer.com/listing/c/", "<html><body>blocked</body></html>")
	require.NoError(t, err)

	assert.Equal(t, "https://bringatrailer.com/listing/c/", l.URL)
	assert.Empty(t, l.Title)
	assert.Nil(t, l.Price)
	assert.Nil(t, l.Mileage)
	assert.Empty(t, l.Attributes)
}

func TestParseListingPageInfoBarPriceStopsAtElement(t *testing.T) {
	html := `<h1>2003 Honda S2000</h1>
<div class="listing-available-info"><span class="info-label">Sold for</span><span class="info-value">$21,000</span><span class="date">5/6/24</span></div>`

	l, err := ParseListingPage("https://bringatrailer.com/listing/d/", html)
	require.NoError(t, err)
	require.NotNil(t, l.Price)
	assert.Equal(t, 21000, *l.Price)
	assert.Equal(t, models.StatusSold, l.Status)
}

func TestParseListingPageKilometresAreNotMiles(t *testing.T) {
	html := `<h1>2001 Honda S2000</h1>
<div class="essentials"><ul><li>Mileage: 12,300 Kilometers Shown</li></ul></div>`

	l, err := ParseListingPage("https://bringatrailer.com/listing/e/", html)
	require.NoError(t, err)
	assert.Nil(t, l.Mileage)
	assert.Equal(t, "12,300 Kilometers Shown", l.Attributes["Mileage"])
}

func TestParseListingPageMileageFirstItemWins(t *testing.T) {
	html := `<h1>2005 Honda S2000</h1>
<div class="essentials"><ul>
  <li>48k Miles</li>
  <li>mileage: 51,000</li>
  <li>Mileage: 52,000</li>
</ul></div>`

	for i := 0; i < 20; i++ {
		l, err := ParseListingPage("https://bringatrailer.com/listing/f/", html)
		require.NoError(t, err)
		require.NotNil(t, l.Mileage)
		assert.Equal(t, 51000, *l.Mileage)
	}
}

func TestParseListingPageMileageFromMilesItem(t *testing.T) {
	html := `<h1>2006 Honda S2000</h1>
<div class="essentials"><ul><li>Chassis: X</li><li>24k Miles</li><li>31k Miles</li></ul></div>`

	l, err := ParseListingPage("https://bringatrailer.com/listing/g/", html)
	require.NoError(t, err)
	require.NotNil(t, l.Mileage)
	assert.Equal(t, 24000, *l.Mileage)
}

func TestDiscoverListingURLs(t *testing.T) {
	html := `
<a href="https://bringatrailer.com/listing/2004-honda-s2000-41/?bid=1">one</a>
<a href="https://bringatrailer.com/listing/2004-honda-s2000-41/">one again</a>
<a href="/listing/2001-honda-s2000-7/">relative</a>
<a href="https://bringatrailer.com/honda/s2000/">model page</a>
<a href="https://elsewhere.example/listing/fake/">other host</a>
<a>no href</a>`

	urls, err := DiscoverListingURLs(html, "https://bringatrailer.com")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://bringatrailer.com/listing/2001-honda-s2000-7/",
		"https://bringatrailer.com/listing/2004-honda-s2000-41/",
	}, urls)
}

func TestDiscoverListingURLsNone(t *testing.T) {
	urls, err := DiscoverListingURLs("<p>nothing</p>", "https://bringatrailer.com")
	require.NoError(t, err)
	assert.Empty(t, urls)
}

func TestInspect(t *testing.T) {
	html := page(
		searchCard("a", "A", "Sold for $1"),
		`<div class="listing-card"><a href="/listing/b/">B</a></div>`,
	)

	ins, err := Inspect(html, 20)
	require.NoError(t, err)

	counts := map[string]int{}
	for _, c := range ins.Counts {
		counts[c.Class] = c.Count
	}
	assert.Equal(t, 1, counts["search-result"])
	assert.Equal(t, 1, counts["listing-card"])
	assert.Equal(t, 0, counts["auctions-list"])
	assert.Len(t, ins.Snippet, 20)
	assert.Contains(t, ins.FirstCard, "search-result")
}

func TestInspectSnippetKeepsWholeRunes(t *testing.T) {
	html := "<p>ééé</p>"

	ins, err := Inspect(html, 5)
	require.NoError(t, err)
	assert.Equal(t, "<p>é", ins.Snippet)
	assert.True(t, utf8.ValidString(ins.Snippet))

	ins, err = Inspect(html, 6)
	require.NoError(t, err)
	assert.Equal(t, "<p>é", ins.Snippet)
}
