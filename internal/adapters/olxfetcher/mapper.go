package olxfetcher

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonPriceChars = regexp.MustCompile(`[^\d.,]`)

// ExtractPriceNumber converts a display price ("R$ 1.500,00", "4.500 PLN")
// into its numeric value. Separator roles are decided from how they combine:
// with both present the dot groups thousands and the comma marks decimals;
// a lone comma is a decimal mark only when at most two digits follow it.
// Strings without digits yield 0.
func ExtractPriceNumber(price string) float64 {
	cleaned := nonPriceChars.ReplaceAllString(price, "")
	if cleaned == "" {
		return 0
	}

	hasDot := strings.Contains(cleaned, ".")
	hasComma := strings.Contains(cleaned, ",")

	switch {
	case hasDot && hasComma:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	case hasComma:
		idx := strings.LastIndex(cleaned, ",")
		if len(cleaned)-idx-1 <= 2 {
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || value < 0 {
		return 0
	}
	return value
}

// Portuguese month names, keyed by their diacritic-free lowercase form so
// that "março" and "marco" resolve alike.
var portugueseMonths = map[string]time.Month{
	"jan": time.January, "janeiro": time.January,
	"fev": time.February, "fevereiro": time.February,
	"mar": time.March, "marco": time.March,
	"abr": time.April, "abril": time.April,
	"mai": time.May, "maio": time.May,
	"jun": time.June, "junho": time.June,
	"jul": time.July, "julho": time.July,
	"ago": time.August, "agosto": time.August,
	"set": time.September, "setembro": time.September,
	"out": time.October, "outubro": time.October,
	"nov": time.November, "novembro": time.November,
	"dez": time.December, "dezembro": time.December,
}

var absoluteDatePattern = regexp.MustCompile(`(\d{1,2})\s+de\s+([\p{L}]+)`)

var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func stripDiacritics(s string) string {
	out, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		return s
	}
	return out
}

// ParseListingDate normalizes an OLX card date ("Hoje, 14:02", "ontem",
// "3 de jul, 11:39", "15 de dezembro") into YYYY-MM-DD. Absolute dates get
// the current year, rolled back one year when that would land in the future.
// Anything unrecognized falls back to today.
func ParseListingDate(raw string, now time.Time) string {
	today := now.Format("2006-01-02")
	cleaned := strings.ToLower(strings.TrimSpace(raw))

	if strings.Contains(cleaned, "hoje") {
		return today
	}
	if strings.Contains(cleaned, "ontem") {
		return now.AddDate(0, 0, -1).Format("2006-01-02")
	}

	match := absoluteDatePattern.FindStringSubmatch(cleaned)
	if match == nil {
		return today
	}

	day, err := strconv.Atoi(match[1])
	if err != nil || day < 1 || day > 31 {
		return today
	}

	month, ok := portugueseMonths[stripDiacritics(match[2])]
	if !ok {
		return today
	}

	parsed := time.Date(now.Year(), month, day, 0, 0, 0, 0, now.Location())
	if parsed.After(now) {
		parsed = parsed.AddDate(-1, 0, 0)
	}
	return parsed.Format("2006-01-02")
}

var leadingNonLetters = regexp.MustCompile(`^[^a-zA-Z]*`)

// CleanLocation strips the icon glyphs and separators OLX prepends to the
// location text.
func CleanLocation(raw string) string {
	return strings.TrimSpace(leadingNonLetters.ReplaceAllString(strings.TrimSpace(raw), ""))
}

// buildListingID produces a stable-enough identifier for a card within one
// extraction run.
func buildListingID(page, index int, now time.Time) string {
	return fmt.Sprintf("olx-%d-%d-%d", page, index, now.UnixMilli())
}
