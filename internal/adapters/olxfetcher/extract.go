package olxfetcher

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Sterdizzy/ez-olx/internal/core/domain"
	"github.com/Sterdizzy/ez-olx/internal/core/port"
)

// ExtractPage parses a search-result page and returns every listing it can
// recover. It only ever returns real extracted listings; a page whose markup
// matches no known card layout yields an empty slice, and deciding what to do
// about that is the caller's business.
func ExtractPage(html []byte, pageURL string, page int, logger port.LoggerPort) ([]domain.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("ExtractPage: failed to parse HTML: %w", err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("ExtractPage: invalid page URL %q: %w", pageURL, err)
	}

	// The first container selector that matches anything wins for the whole
	// page, so every card on it is read with the same markup assumption.
	var cards *goquery.Selection
	usedSelector := ""
	for _, selector := range containerSelectors {
		found := doc.Find(selector)
		if found.Length() > 0 {
			cards = found
			usedSelector = selector
			break
		}
	}

	if cards == nil {
		logger.Warn("No listing cards matched any known selector", port.Fields{
			"url":  pageURL,
			"page": page,
		})
		return nil, nil
	}

	logger.Debug("Listing cards located", port.Fields{
		"selector": usedSelector,
		"count":    cards.Length(),
		"page":     page,
	})

	now := time.Now()
	var listings []domain.Listing
	cards.Each(func(index int, card *goquery.Selection) {
		listing, ok := extractListing(card, base, page, index, now)
		if !ok {
			logger.Debug("Card rejected: no title and no price", port.Fields{
				"page":  page,
				"index": index,
			})
			return
		}
		listings = append(listings, listing)
	})

	logger.Info("Page extracted", port.Fields{
		"url":      pageURL,
		"page":     page,
		"listings": len(listings),
	})

	return listings, nil
}

// firstText walks a selector chain and returns the trimmed text of the first
// selector that yields anything.
func firstText(card *goquery.Selection, selectors []string) string {
	for _, selector := range selectors {
		if text := strings.TrimSpace(card.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// firstPattern returns the first capture group of the first pattern that
// matches, or "".
func firstPattern(text string, patterns []*regexp.Regexp) string {
	for _, pattern := range patterns {
		if match := pattern.FindStringSubmatch(text); match != nil {
			return match[1]
		}
	}
	return ""
}

// firstLink walks the link selector chain and returns the first href,
// resolved against the page URL when relative.
func firstLink(card *goquery.Selection, base *url.URL) string {
	for _, selector := range linkSelectors {
		href, ok := card.Find(selector).First().Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			continue
		}
		href = strings.TrimSpace(href)
		if strings.HasPrefix(href, "http") {
			return href
		}
		resolved, err := base.Parse(href)
		if err != nil {
			continue
		}
		return resolved.String()
	}
	return ""
}

// extractListing reads one card. Cards with neither title nor price carry no
// usable information and are dropped.
func extractListing(card *goquery.Selection, base *url.URL, page, index int, now time.Time) (domain.Listing, bool) {
	title := firstText(card, titleSelectors)
	price := firstText(card, priceSelectors)
	if title == "" && price == "" {
		return domain.Listing{}, false
	}

	location := CleanLocation(firstText(card, locationSelectors))
	rawDate := firstText(card, dateSelectors)

	description := firstText(card, descriptionSelectors)
	if description == "" {
		description = title
	}

	// Derived fields are mined from the whole card text, since OLX folds
	// area and room counts into the title or description freely.
	fullText := strings.ToLower(title + " " + card.Text())

	squareMeters := ""
	if sqm := firstPattern(fullText, squareMeterPatterns); sqm != "" {
		squareMeters = sqm + "m²"
	}
	bedrooms := ""
	if rooms := firstPattern(fullText, bedroomPatterns); rooms != "" {
		bedrooms = rooms + " quartos"
	}

	if title == "" {
		title = "Untitled"
	}
	if price == "" {
		price = "Price not available"
	}
	if location == "" {
		location = "Location not available"
	}

	return domain.Listing{
		ID:           buildListingID(page, index, now),
		Title:        title,
		Price:        price,
		Location:     location,
		Description:  description,
		Images:       []string{resolveListingImage(card, index)},
		Link:         firstLink(card, base),
		PostedDate:   ParseListingDate(rawDate, now),
		Category:     "imovel",
		SquareMeters: squareMeters,
		Bedrooms:     bedrooms,
	}, true
}
