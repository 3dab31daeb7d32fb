package commands

import (
	"io"

	"auction-scraper/models"
	"auction-scraper/services"
	"auction-scraper/storage"
	"auction-scraper/utils"
)

// save cleans the listings, writes the CSV and prints the summary. When no
// listing has a price the file goes to a _debug path so selectors can be checked.
func save(out io.Writer, listings []models.Listing) error {
	cleaned := services.CleanListings(listings)
	if len(cleaned) == 0 {
		utils.Warn("No data collected.")
		return nil
	}

	path := cfg.CSVPath
	rows := cleaned
	switch {
	case !services.AnyPriced(cleaned):
		utils.Warn("No prices found in any listings. Check selector logic.")
		path = storage.DebugPath(cfg.CSVPath)
	case cfg.SoldOnly:
		rows = services.SoldOnly(cleaned)
		utils.Info("Summary: scraped %d cars, %d sold with a price", len(cleaned), len(rows))
	}

	if err := storage.NewCSVWriter(path).Write(rows); err != nil {
		return err
	}

	utils.Section("SCRAPE COMPLETE")
	services.WriteReport(out, services.GenerateReport(cleaned))
	return nil
}
