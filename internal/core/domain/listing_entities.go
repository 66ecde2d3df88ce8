package domain

// ResultSource marks the provenance of a SearchResult, so that callers can
// tell real extracted data apart from the synthetic demo fallback.
type ResultSource string

const (
	SourceExtracted ResultSource = "extracted"
	SourceSynthetic ResultSource = "synthetic"
)

// Listing is one normalized marketplace item extracted from a result page.
type Listing struct {
	// ID is unique within a single extraction run (page index + element
	// index + timestamp). It is not stable across runs.
	ID          string `json:"id"`
	Title       string `json:"title"`
	Price       string `json:"price"`
	Location    string `json:"location"`
	Description string `json:"description,omitempty"`

	// Images always holds at least one URL; a placeholder is substituted
	// when no real image could be resolved.
	Images []string `json:"images"`

	// Link is the absolute URL of the source ad. Empty when no anchor
	// matched inside the card.
	Link string `json:"link"`

	// PostedDate is an ISO calendar date (YYYY-MM-DD).
	PostedDate string `json:"posted_date,omitempty"`
	Category   string `json:"category,omitempty"`

	// Derived fields, present only when a numeric pattern matched in the
	// card text.
	SquareMeters string `json:"square_meters,omitempty"`
	Bedrooms     string `json:"bedrooms,omitempty"`
}

// Pagination describes which pages of a multi-page search produced listings.
// PagesLoaded holds the page numbers that yielded listings, in ascending
// order; pages skipped after a fetch failure leave gaps.
type Pagination struct {
	CurrentPages int   `json:"current_pages"`
	PagesLoaded  []int `json:"pages_loaded"`
}

// SearchResult is the aggregate returned for one search invocation.
type SearchResult struct {
	URL          string       `json:"url"`
	SearchQuery  string       `json:"search_query"`
	TotalResults int          `json:"total_results"`
	Listings     []Listing    `json:"listings"`
	LastUpdated  string       `json:"last_updated"`
	Source       ResultSource `json:"source"`
	Pagination   *Pagination  `json:"pagination,omitempty"`
}
