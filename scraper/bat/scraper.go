package bat

import (
	"context"
	"errors"
	"fmt"

	"auction-scraper/config"
	"auction-scraper/models"
	"auction-scraper/utils"

	"github.com/sirupsen/logrus"
)

// Scraper runs the fetch and extract stages one page at a time.
type Scraper struct {
	cfg      *config.Config
	pages    Fetcher
	rendered Fetcher
	seenURLs map[string]bool
}

// NewScraper takes a fetcher for plain pages and one for client-rendered
// pages. Either may be nil when the matching mode is not used.
func NewScraper(cfg *config.Config, pages, rendered Fetcher) *Scraper {
	return &Scraper{
		cfg:      cfg,
		pages:    pages,
		rendered: rendered,
		seenURLs: make(map[string]bool),
	}
}

func (s *Scraper) markSeenIfNew(url string) bool {
	if s.seenURLs[url] {
		return false
	}
	s.seenURLs[url] = true
	return true
}

func (s *Scraper) extractOptions() ExtractOptions {
	return ExtractOptions{
		BaseURL:      s.cfg.BaseURL,
		MinFragments: s.cfg.MinFragments,
	}
}

// Search renders a results page in the browser and extracts every card on it.
func (s *Scraper) Search(ctx context.Context, searchURL string) ([]models.Listing, error) {
	if s.rendered == nil {
		return nil, errors.New("search needs a browser fetcher")
	}

	utils.Info("Opening %s...", searchURL)
	html, err := s.rendered.Fetch(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	utils.Info("Parsing HTML...")
	found, err := ExtractListings(html, s.extractOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to extract listings: %w", err)
	}

	listings := make([]models.Listing, 0, len(found))
	for _, l := range found {
		if l.URL != "" && !s.markSeenIfNew(l.URL) {
			continue
		}
		listings = append(listings, l)
	}

	utils.Success("Extracted %d listings from %s", len(listings), searchURL)
	return listings, nil
}

// Crawl fetches a model page, follows its listing links and parses each
// listing page. A listing that cannot be fetched is skipped.
func (s *Scraper) Crawl(ctx context.Context, seedURL string) ([]models.Listing, error) {
	if s.pages == nil {
		return nil, errors.New("crawl needs a page fetcher")
	}

	utils.Info("Connecting to %s...", seedURL)
	html, err := s.pages.Fetch(ctx, seedURL)
	if err != nil {
		return nil, err
	}

	listingURLs, err := DiscoverListingURLs(html, s.cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to discover listings: %w", err)
	}
	utils.Info("Found %d potential car listings", len(listingURLs))

	if s.cfg.MaxListings > 0 && len(listingURLs) > s.cfg.MaxListings {
		listingURLs = listingURLs[:s.cfg.MaxListings]
	}

	return s.scrapeListings(ctx, listingURLs)
}

func (s *Scraper) scrapeListings(ctx context.Context, listingURLs []string) ([]models.Listing, error) {
	results := make([]models.ScrapeResult, 0, len(listingURLs))

	for i, listingURL := range listingURLs {
		if i > 0 {
			if err := utils.Pause(ctx, s.cfg.RequestDelay); err != nil {
				return collect(results), err
			}
		}

		utils.Info("[%d/%d] Processing: %s", i+1, len(listingURLs), listingURL)
		results = append(results, s.scrapeListingPage(ctx, listingURL))
	}

	return collect(results), nil
}

func (s *Scraper) scrapeListingPage(ctx context.Context, listingURL string) models.ScrapeResult {
	if !s.markSeenIfNew(listingURL) {
		return models.ScrapeResult{URL: listingURL}
	}

	html, err := s.pages.Fetch(ctx, listingURL)
	if err != nil {
		return models.ScrapeResult{URL: listingURL, Error: err}
	}

	listing, err := ParseListingPage(listingURL, html)
	if err != nil {
		return models.ScrapeResult{URL: listingURL, Error: err}
	}

	utils.WithFields(logrus.Fields{
		"price":   formatOptional(listing.Price),
		"mileage": formatOptional(listing.Mileage),
	}).Infof("   -> Found: %s", listing.Title)
	return models.ScrapeResult{URL: listingURL, Listing: listing}
}

func collect(results []models.ScrapeResult) []models.Listing {
	var all []models.Listing
	failed := 0

	for _, result := range results {
		if result.Error != nil {
			utils.Error("Failed to scrape %s: %v", result.URL, result.Error)
			failed++
			continue
		}
		if !result.Listing.IsNull() {
			all = append(all, result.Listing)
		}
	}

	utils.Success("Listings scraped: %d | Failed: %d", len(all), failed)
	return all
}

// Inspect renders a page and reports what the fragment guesses see on it.
func (s *Scraper) Inspect(ctx context.Context, pageURL string) (Inspection, error) {
	if s.rendered == nil {
		return Inspection{}, errors.New("inspect needs a browser fetcher")
	}

	utils.Info("DEBUG: Opening %s...", pageURL)
	html, err := s.rendered.Fetch(ctx, pageURL)
	if err != nil {
		return Inspection{}, err
	}
	return Inspect(html, 500)
}

func formatOptional(v *int) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%d", *v)
}
