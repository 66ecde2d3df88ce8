package olxfetcher

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Sterdizzy/ez-olx/internal/constants"
)

// attrCandidates lists the <img> attributes that can carry the real image
// URL, most trustworthy first. Lazy-loaded cards keep the URL in a data-*
// attribute while src holds a placeholder.
func attrCandidates(img *goquery.Selection) []string {
	var candidates []string

	for _, attr := range []string{"data-src", "data-original", "data-lazy"} {
		if v, ok := img.Attr(attr); ok {
			candidates = append(candidates, v)
		}
	}
	if srcset, ok := img.Attr("srcset"); ok {
		// the first srcset candidate is "url descriptor"
		if fields := strings.Fields(strings.Split(srcset, ",")[0]); len(fields) > 0 {
			candidates = append(candidates, fields[0])
		}
	}
	if src, ok := img.Attr("src"); ok {
		candidates = append(candidates, src)
	}

	return candidates
}

// isValidImageURL rejects placeholder and tracking-pixel sources.
func isValidImageURL(url string) bool {
	return url != "" &&
		url != "/placeholder.svg" &&
		!strings.Contains(url, "data:image") &&
		!strings.Contains(url, "svg+xml") &&
		!strings.Contains(url, "blank.gif") &&
		!strings.Contains(url, "pixel.gif") &&
		!strings.Contains(url, "placeholder")
}

// findImageInSelection scans a card (or one of its neighbours) for the first
// usable image URL. Returns "" when nothing valid is found.
func findImageInSelection(sel *goquery.Selection) string {
	var found string

	for _, selector := range imageSelectors {
		sel.Find(selector).EachWithBreak(func(_ int, img *goquery.Selection) bool {
			for _, src := range attrCandidates(img) {
				src = strings.TrimSpace(src)
				if !isValidImageURL(src) {
					continue
				}
				if strings.HasPrefix(src, "//") {
					src = "https:" + src
				}
				found = src
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}

	return ""
}

// resolveListingImage finds the best image for a card. When the card itself
// carries none, the search widens to the parent and adjacent siblings, since
// OLX sometimes renders the photo outside the content block. A deterministic
// placeholder keeps the result non-empty.
func resolveListingImage(card *goquery.Selection, index int) string {
	if img := findImageInSelection(card); img != "" {
		return img
	}

	if parent := card.Parent(); parent.Length() > 0 {
		if img := findImageInSelection(parent); img != "" {
			return img
		}
	}
	if prev := card.Prev(); prev.Length() > 0 {
		if img := findImageInSelection(prev); img != "" {
			return img
		}
	}
	if next := card.Next(); next.Length() > 0 {
		if img := findImageInSelection(next); img != "" {
			return img
		}
	}

	return constants.PlaceholderImage(index)
}
