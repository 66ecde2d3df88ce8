package constants

import (
	"net/url"
	"strings"
)

// AllowedDomains lists the OLX country domains the service is willing to
// fetch from. Both the relay endpoint and the search boundary validate
// against this set.
var AllowedDomains = []string{
	"olx.com.br",
	"olx.pl",
	"olx.pt",
	"olx.com.pe",
	"olx.com.ar",
}

// IsAllowedHost reports whether hostname belongs to one of the allowed OLX
// domains. Matching is exact domain-suffix, so "evil-olx.com.br.example.com"
// is rejected.
func IsAllowedHost(hostname string) bool {
	hostname = strings.ToLower(hostname)
	for _, domain := range AllowedDomains {
		if hostname == domain || strings.HasSuffix(hostname, "."+domain) {
			return true
		}
	}
	return false
}

// IsAllowedURL parses rawURL and checks its hostname against AllowedDomains.
func IsAllowedURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return IsAllowedHost(u.Hostname())
}

// Pagination: OLX addresses result pages with the "o" query parameter
// (?o=2, ?o=3, ...). Page 1 is the bare search URL.
const PageQueryParam = "o"

const MaxSearchPages = 10

// Storage keys of the two logical collections kept in the key-value store.
const (
	StorageKeyRecentSearches = "olx_recent_searches"
	StorageKeySavedListings  = "olx_saved_listings"
)

// MaxRecentSearches bounds the search history (most recent first).
const MaxRecentSearches = 10

// placeholderImages is the rotation pool used when a listing card yields no
// usable image. Picking by index keeps the fallback deterministic while
// avoiding a single repeated picture across a result set.
var placeholderImages = []string{
	"https://images.unsplash.com/photo-1649972904349-6e44c42644a7",
	"https://images.unsplash.com/photo-1488590528505-98d2b5aba04b",
	"https://images.unsplash.com/photo-1518770660439-4636190af475",
	"https://images.unsplash.com/photo-1461749280684-dccba630e2f6",
	"https://images.unsplash.com/photo-1486312338219-ce68d2c6f44d",
}

// PlaceholderImage returns the placeholder for the given rotation index.
func PlaceholderImage(index int) string {
	if index < 0 {
		index = -index
	}
	return placeholderImages[index%len(placeholderImages)]
}
