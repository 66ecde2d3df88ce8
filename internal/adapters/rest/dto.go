package rest

// SearchRequestDTO is the body of POST /api/v1/search.
type SearchRequestDTO struct {
	URL      string `json:"url"`
	MaxPages int    `json:"max_pages"` // 0 means the configured default
}

// SavedStateDTO reports whether a listing is saved, both after a toggle and
// on direct lookup.
type SavedStateDTO struct {
	ID    string `json:"id"`
	Saved bool   `json:"saved"`
}
