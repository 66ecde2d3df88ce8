package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Sterdizzy/ez-olx/internal/adapters/olxfetcher"
	"github.com/Sterdizzy/ez-olx/internal/contextkeys"
	"github.com/Sterdizzy/ez-olx/internal/core/domain"
)

// Offline helper for tuning the extraction selectors: run it over saved OLX
// result pages (./pages/*.html) and it reports how many listings each page
// yields and which fields actually got extracted versus defaulted.

// FieldCoverage counts, per page, how many listings carried a real value for
// each field.
type FieldCoverage struct {
	Listings     int
	Titles       int
	Prices       int
	Locations    int
	Links        int
	RealImages   int
	SquareMeters int
	Bedrooms     int
}

func coverageForListings(listings []domain.Listing) FieldCoverage {
	cov := FieldCoverage{Listings: len(listings)}
	for _, l := range listings {
		if l.Title != "Untitled" {
			cov.Titles++
		}
		if l.Price != "Price not available" {
			cov.Prices++
		}
		if l.Location != "Location not available" {
			cov.Locations++
		}
		if l.Link != "" {
			cov.Links++
		}
		if len(l.Images) > 0 && !isPlaceholder(l.Images[0]) {
			cov.RealImages++
		}
		if l.SquareMeters != "" {
			cov.SquareMeters++
		}
		if l.Bedrooms != "" {
			cov.Bedrooms++
		}
	}
	return cov
}

func isPlaceholder(url string) bool {
	return url == "" || strings.Contains(url, "unsplash") || strings.HasSuffix(url, ".svg")
}

func main() {
	outputFile, err := os.Create("olx_selector_report.txt")
	if err != nil {
		log.Fatalf("Failed to create report file: %v", err)
	}
	defer outputFile.Close()
	log.SetOutput(outputFile)

	files, err := filepath.Glob("./pages/*.html")
	if err != nil {
		log.Fatalf("Failed to find html files: %v", err)
	}
	if len(files) == 0 {
		log.Fatal("No HTML files found in 'pages' directory.")
	}
	fmt.Fprintf(outputFile, "Found %d pages to analyze (%s)\n\n", len(files), time.Now().Format("2006-01-02 15:04:05"))

	sort.Strings(files)

	logger := contextkeys.LoggerFromContext(context.Background())

	totals := FieldCoverage{}
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			log.Printf("Error reading file %s: %v", file, err)
			continue
		}

		listings, err := olxfetcher.ExtractPage(data, "https://www.olx.com.br/", 1, logger)
		if err != nil {
			log.Printf("Error extracting from %s: %v", file, err)
			continue
		}

		cov := coverageForListings(listings)
		totals.Listings += cov.Listings
		totals.Titles += cov.Titles
		totals.Prices += cov.Prices
		totals.Locations += cov.Locations
		totals.Links += cov.Links
		totals.RealImages += cov.RealImages
		totals.SquareMeters += cov.SquareMeters
		totals.Bedrooms += cov.Bedrooms

		fmt.Fprintf(outputFile, "%s\n", filepath.Base(file))
		printCoverage(outputFile, cov)
	}

	fmt.Fprintf(outputFile, "TOTALS\n")
	printCoverage(outputFile, totals)
}

func printCoverage(f *os.File, cov FieldCoverage) {
	fmt.Fprintf(f, "  listings:      %d\n", cov.Listings)
	fmt.Fprintf(f, "  titles:        %d\n", cov.Titles)
	fmt.Fprintf(f, "  prices:        %d\n", cov.Prices)
	fmt.Fprintf(f, "  locations:     %d\n", cov.Locations)
	fmt.Fprintf(f, "  links:         %d\n", cov.Links)
	fmt.Fprintf(f, "  real images:   %d\n", cov.RealImages)
	fmt.Fprintf(f, "  square meters: %d\n", cov.SquareMeters)
	fmt.Fprintf(f, "  bedrooms:      %d\n\n", cov.Bedrooms)
}
