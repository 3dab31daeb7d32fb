package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"auction-scraper/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCSVWriterWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output", "cars.csv")
	listings := []models.Listing{
		{
			URL:        "https://bringatrailer.com/listing/a/",
			Title:      "24k-Mile 2004 Honda S2000, Berlina Black",
			Price:      models.IntPtr(12345),
			Mileage:    models.IntPtr(24000),
			Status:     models.StatusSold,
			Attributes: map[string]string{"Location": "Denver, CO", "Lot": "#1"},
		},
		{
			URL:        "https://bringatrailer.com/listing/b/",
			Title:      "2001 Honda S2000",
			Attributes: map[string]string{"Seller": "Private Party", "Location": "Austin, TX"},
		},
	}

	require.NoError(t, NewCSVWriter(path).Write(listings))

	records := readCSV(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"url", "title", "price", "mileage", "status", "Location", "Lot", "Seller"}, records[0])
	assert.Equal(t, []string{
		"https://bringatrailer.com/listing/a/",
		"24k-Mile 2004 Honda S2000, Berlina Black",
		"12345", "24000", "Sold", "Denver, CO", "#1", "",
	}, records[1])
	assert.Equal(t, []string{
		"https://bringatrailer.com/listing/b/",
		"2001 Honda S2000",
		"", "", "", "Austin, TX", "", "Private Party",
	}, records[2])
}

func TestColumnsOnlyEncounteredFields(t *testing.T) {
	listings := []models.Listing{
		{URL: "u1", Title: "t1"},
		{URL: "u2", Price: models.IntPtr(5), Attributes: map[string]string{"price": "shadowed", "Engine": "F20C"}},
	}
	assert.Equal(t, []string{"url", "title", "price", "Engine"}, Columns(listings))
}

func TestCSVWriterOneRowPerListing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.csv")
	var listings []models.Listing
	for i := 0; i < 7; i++ {
		listings = append(listings, models.Listing{URL: string(rune('a' + i)), Title: "car"})
	}

	require.NoError(t, NewCSVWriter(path).Write(listings))
	assert.Len(t, readCSV(t, path), len(listings)+1)
}

func TestCSVWriterEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, NewCSVWriter(path).Write(nil))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestDebugPath(t *testing.T) {
	assert.Equal(t, "s2000_data_debug.csv", DebugPath("s2000_data.csv"))
	assert.Equal(t, filepath.Join("out", "cars_debug.csv"), DebugPath(filepath.Join("out", "cars.csv")))
	assert.Equal(t, "cars_debug", DebugPath("cars"))
}
