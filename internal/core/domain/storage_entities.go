package domain

// RecentSearch is one entry of the bounded most-recent-first search history.
type RecentSearch struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	SearchedAt   string `json:"searched_at"`
	TotalResults int    `json:"total_results"`
	MaxPages     int    `json:"max_pages"`
}

// SavedListing is a Listing bookmarked by the user, keyed by the listing ID.
type SavedListing struct {
	Listing
	SavedAt string `json:"saved_at"`
}
