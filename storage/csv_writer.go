package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"auction-scraper/models"
	"auction-scraper/utils"
)

// CSVWriter saves listings to a CSV file, one row per listing.
type CSVWriter struct {
	path string
}

func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

type column struct {
	name  string
	value func(models.Listing) string
}

var baseColumns = []column{
	{"url", func(l models.Listing) string { return l.URL }},
	{"title", func(l models.Listing) string { return l.Title }},
	{"price", func(l models.Listing) string { return formatInt(l.Price) }},
	{"mileage", func(l models.Listing) string { return formatInt(l.Mileage) }},
	{"status", func(l models.Listing) string { return string(l.Status) }},
}

// Columns returns the header for listings: the base fields that at least one
// listing has, then attribute names in order of first appearance.
func Columns(listings []models.Listing) []string {
	var cols []string
	for _, c := range baseColumns {
		for _, l := range listings {
			if c.value(l) != "" {
				cols = append(cols, c.name)
				break
			}
		}
	}

	// attribute names never shadow a base field
	seen := make(map[string]bool)
	for _, c := range baseColumns {
		seen[c.name] = true
	}
	for _, l := range listings {
		for _, key := range sortedKeys(l.Attributes) {
			if !seen[key] {
				seen[key] = true
				cols = append(cols, key)
			}
		}
	}
	return cols
}

// Write saves all listings, creating the output directory if needed.
func (w *CSVWriter) Write(listings []models.Listing) error {
	if len(listings) == 0 {
		utils.Warn("No listings to write")
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return fmt.Errorf("could not create output dir: %w", err)
	}

	file, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	header := Columns(listings)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("csv write error: %w", err)
	}

	for _, l := range listings {
		if err := writer.Write(row(header, l)); err != nil {
			return fmt.Errorf("csv write error: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("csv write error: %w", err)
	}

	utils.Success("Saved %d listings → %s", len(listings), w.path)
	return nil
}

func row(header []string, l models.Listing) []string {
	record := make([]string, len(header))
	for i, name := range header {
		if c, ok := baseColumn(name); ok {
			record[i] = c.value(l)
			continue
		}
		record[i] = l.Attributes[name]
	}
	return record
}

func baseColumn(name string) (column, bool) {
	for _, c := range baseColumns {
		if c.name == name {
			return c, true
		}
	}
	return column{}, false
}

// DebugPath turns "out/cars.csv" into "out/cars_debug.csv".
func DebugPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_debug" + ext
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
