package services

import (
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"auction-scraper/models"

	"github.com/jedib0t/go-pretty/v6/table"
)

type Report struct {
	TotalListings    int
	SoldListings     int
	BidListings      int
	PricedListings   int
	AverageSoldPrice float64
	MinSoldPrice     int
	MaxSoldPrice     int
	AverageMileage   float64
	MostExpensive    []models.Listing
}

// GenerateReport summarises sold prices and mileage over the cleaned listings.
func GenerateReport(listings []models.Listing) Report {
	cleaned := CleanListings(listings)

	report := Report{TotalListings: len(cleaned)}
	if len(cleaned) == 0 {
		return report
	}

	var (
		priceSum     int
		mileageSum   int
		mileageCount int
		minPrice     = math.MaxInt
		maxPrice     = -1
		sold         []models.Listing
	)

	for _, l := range cleaned {
		if l.Price != nil {
			report.PricedListings++
		}

		switch l.Status {
		case models.StatusSold:
			report.SoldListings++
		case models.StatusBid:
			report.BidListings++
		}

		if l.Mileage != nil {
			mileageSum += *l.Mileage
			mileageCount++
		}

		if l.Status != models.StatusSold || l.Price == nil {
			continue
		}
		sold = append(sold, l)
		priceSum += *l.Price
		if *l.Price > maxPrice {
			maxPrice = *l.Price
		}
		if *l.Price < minPrice {
			minPrice = *l.Price
		}
	}

	if len(sold) > 0 {
		report.AverageSoldPrice = float64(priceSum) / float64(len(sold))
		report.MinSoldPrice = minPrice
		report.MaxSoldPrice = maxPrice
	}
	if mileageCount > 0 {
		report.AverageMileage = float64(mileageSum) / float64(mileageCount)
	}

	sort.SliceStable(sold, func(i, j int) bool {
		return *sold[i].Price > *sold[j].Price
	})
	if len(sold) > 5 {
		sold = sold[:5]
	}
	report.MostExpensive = sold

	return report
}

func WriteReport(out io.Writer, report Report) {
	summary := newTable(out)
	summary.SetTitle("Auction Market Summary")
	summary.AppendRows([]table.Row{
		{"Total Listings Scraped", report.TotalListings},
		{"With Price", report.PricedListings},
		{"Sold", report.SoldListings},
		{"Bid To (Unsold/Live)", report.BidListings},
		{"Average Sold Price", soldMoney(report, report.AverageSoldPrice)},
		{"Minimum Sold Price", soldMoney(report, float64(report.MinSoldPrice))},
		{"Maximum Sold Price", soldMoney(report, float64(report.MaxSoldPrice))},
		{"Average Mileage", int(math.Round(report.AverageMileage))},
	})
	summary.Render()

	if len(report.MostExpensive) == 0 {
		return
	}

	top := newTable(out)
	top.SetTitle("Top Sold Prices")
	top.AppendHeader(table.Row{"#", "Title", "Price", "Mileage"})
	for i, l := range report.MostExpensive {
		mileage := ""
		if l.Mileage != nil {
			mileage = formatCount(*l.Mileage)
		}
		top.AppendRow(table.Row{i + 1, truncateText(l.Title, 44), formatMoney(float64(*l.Price)), mileage})
	}
	top.Render()
}

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

// CleanListings trims text fields, drops null records and keeps the first
// listing seen for each URL.
func CleanListings(listings []models.Listing) []models.Listing {
	seen := make(map[string]bool)
	cleaned := make([]models.Listing, 0, len(listings))

	for _, l := range listings {
		l.Title = strings.TrimSpace(l.Title)
		l.URL = strings.TrimSpace(l.URL)

		if l.IsNull() {
			continue
		}

		if l.URL != "" {
			if seen[l.URL] {
				continue
			}
			seen[l.URL] = true
		}
		cleaned = append(cleaned, l)
	}

	return cleaned
}

// SoldOnly keeps listings that sold with a known price.
func SoldOnly(listings []models.Listing) []models.Listing {
	var sold []models.Listing
	for _, l := range listings {
		if l.Status == models.StatusSold && l.Price != nil {
			sold = append(sold, l)
		}
	}
	return sold
}

// AnyPriced reports whether at least one listing has a price.
func AnyPriced(listings []models.Listing) bool {
	for _, l := range listings {
		if l.HasPrice() {
			return true
		}
	}
	return false
}

// soldMoney renders n/a when no listing sold with a known price.
func soldMoney(report Report, v float64) string {
	if len(report.MostExpensive) == 0 {
		return "n/a"
	}
	return formatMoney(v)
}

func formatMoney(v float64) string {
	return "$" + formatCount(int(math.Round(v)))
}

// formatCount renders 35000 as "35,000".
func formatCount(v int) string {
	s := strconv.Itoa(v)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func truncateText(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
