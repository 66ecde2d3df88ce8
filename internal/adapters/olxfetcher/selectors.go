package olxfetcher

import "regexp"

// containerSelectors locate the listing cards on a search-result page. They
// are tried in order and the first one that matches anything wins for the
// whole page, so a page is never assembled from a mix of card markups.
var containerSelectors = []string{
	// current OLX Brazil card markup
	".olx-adcard",
	".olx-adcard__content",
	// data-testid based markup
	`[data-testid*="ad-card"]`,
	`[data-testid*="listing"]`,
	// generic fallbacks, keeping advertising placeholders out
	`[class*="adcard"]:not([class*="advertising"]):not([class*="placeholder"])`,
	`a[href*="olx.com.br/"][href*="/item/"]`,
	`a[href*="olx.com.br/"][href*="/anuncio/"]`,
}

// Per-field selector chains, ordered from the most specific OLX markup to
// generic fallbacks. The first selector whose text is non-empty wins.
var (
	titleSelectors = []string{
		".olx-adcard__title",
		`[data-testid="ad-title"]`,
		".sc-heading",
		"h2", "h3", "h4",
		".title", ".listing-title",
		`[class*="title"]`,
	}

	priceSelectors = []string{
		".olx-adcard__price",
		`[data-testid="ad-price"]`,
		".sc-price",
		".price", ".listing-price",
		`[class*="price"]`,
	}

	locationSelectors = []string{
		".olx-adcard__location",
		`[data-testid="ad-location"]`,
		".sc-location",
		".location", ".listing-location",
		`[class*="location"]`,
	}

	dateSelectors = []string{
		".olx-adcard__date",
		`[data-testid="ad-date"]`,
		".sc-date",
		".date", ".listing-date",
		`[class*="date"]`,
		".olx-adcard__footer",
	}

	descriptionSelectors = []string{
		".olx-adcard__description",
		`[data-testid="ad-description"]`,
		".sc-description",
		".description",
	}

	linkSelectors = []string{
		`a[data-testid="adcard-link"]`,
		`a[data-testid="ad-link"]`,
		`a[href*="/anuncio/"]`,
		`a[href*="/item/"]`,
		"a[href]",
	}

	imageSelectors = []string{
		// OLX-specific markup first
		`img[data-testid*="ad-image"]`,
		`img[data-testid*="listing-image"]`,
		`img[src*="olx"]`,
		`img[data-src*="olx"]`,
		// lazy-loading patterns
		"img[data-src]",
		"img[data-original]",
		"img[data-lazy]",
		"img[srcset]",
		// generic fallbacks
		`img[src]:not([src=""]):not([src="/placeholder.svg"])`,
		"img",
	}
)

// Derived-field patterns, matched against the lowercased title plus full card
// text. The first matching pattern wins.
var (
	squareMeterPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\s*m²`),
		regexp.MustCompile(`(\d+)\s*metros?\s*quadrados?`),
		regexp.MustCompile(`(\d+)\s*m2`),
		regexp.MustCompile(`área:\s*(\d+)`),
	}

	bedroomPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\s*quartos?`),
		regexp.MustCompile(`(\d+)\s*dormitórios?`),
	}
)
