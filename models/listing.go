package models

// SaleStatus is how an auction ended, as read from the listing text.
type SaleStatus string

const (
	StatusSold SaleStatus = "Sold"
	// StatusBid covers "Bid to" results: reserve not met or still live.
	StatusBid SaleStatus = "Bid"
)

// Listing is one vehicle auction as seen on a results page or a listing page.
// Optional numeric fields are nil when the text could not be parsed.
type Listing struct {
	URL        string
	Title      string
	Price      *int
	Mileage    *int
	Status     SaleStatus
	Attributes map[string]string
}

// IsNull reports whether the record carries nothing worth writing.
func (l Listing) IsNull() bool {
	return l.URL == "" && l.Title == ""
}

func (l Listing) HasPrice() bool {
	return l.Price != nil
}

type ScrapeResult struct {
	URL     string
	Listing Listing
	Error   error
}

// IntPtr is a small helper for building optional fields.
func IntPtr(v int) *int {
	return &v
}
