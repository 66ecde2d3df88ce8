package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/Sterdizzy/ez-olx/internal/constants"
	"github.com/Sterdizzy/ez-olx/internal/contextkeys"
	"github.com/Sterdizzy/ez-olx/internal/core/domain"
	"github.com/Sterdizzy/ez-olx/internal/core/port"
	usecaseport "github.com/Sterdizzy/ez-olx/internal/core/port/usecases"
)

// SearchListingsUseCase runs a multi-page OLX search: it walks the result
// pages sequentially, aggregates whatever each page yields, and falls back to
// synthetic demo listings only when the whole run produced nothing real.
type SearchListingsUseCase struct {
	fetcher         port.OLXFetcherPort
	recentSearches  usecaseport.RecentSearchesUseCase
	defaultMaxPages int
	pageDelay       time.Duration
}

// NewSearchListingsUseCase creates the use case. defaultMaxPages is used when
// a request does not say how many pages to load. recentSearches may be nil
// when search history recording is not wanted.
func NewSearchListingsUseCase(
	fetcher port.OLXFetcherPort,
	recentSearches usecaseport.RecentSearchesUseCase,
	defaultMaxPages int,
	pageDelay time.Duration,
) *SearchListingsUseCase {
	if defaultMaxPages < 1 {
		defaultMaxPages = 3
	}
	if defaultMaxPages > constants.MaxSearchPages {
		defaultMaxPages = constants.MaxSearchPages
	}
	if pageDelay <= 0 {
		pageDelay = 1500 * time.Millisecond
	}
	return &SearchListingsUseCase{
		fetcher:         fetcher,
		recentSearches:  recentSearches,
		defaultMaxPages: defaultMaxPages,
		pageDelay:       pageDelay,
	}
}

// buildPageURL appends the page number to a search URL via the "o" query
// parameter, picking "?" or "&" depending on what the URL already carries.
// Page 1 is the search URL itself.
func buildPageURL(searchURL string, page int) string {
	if page <= 1 {
		return searchURL
	}
	separator := "?"
	if parsed, err := url.Parse(searchURL); err == nil && parsed.RawQuery != "" {
		separator = "&"
	}
	return searchURL + separator + constants.PageQueryParam + "=" + strconv.Itoa(page)
}

func (uc *SearchListingsUseCase) Execute(ctx context.Context, searchURL string, maxPages int, onProgress usecaseport.ProgressFunc) (*domain.SearchResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	searchLogger := logger.WithFields(port.Fields{"component": "SearchListingsUseCase"})

	parsedURL, err := url.Parse(searchURL)
	if err != nil || parsedURL.Host == "" {
		return nil, fmt.Errorf("Execute: %w: %q", domain.ErrInvalidSearchURL, searchURL)
	}
	if !constants.IsAllowedHost(parsedURL.Hostname()) {
		return nil, fmt.Errorf("Execute: %w: %s", domain.ErrDomainNotAllowed, parsedURL.Hostname())
	}

	if maxPages < 1 {
		maxPages = uc.defaultMaxPages
	}
	if maxPages > constants.MaxSearchPages {
		maxPages = constants.MaxSearchPages
	}

	searchLogger.Info("Starting multi-page search", port.Fields{
		"url":       searchURL,
		"max_pages": maxPages,
	})

	var allListings []domain.Listing
	var pagesLoaded []int

	for page := 1; page <= maxPages; page++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("Execute: search cancelled on page %d: %w", page, ctx.Err())
		default:
		}

		if onProgress != nil {
			onProgress(page, maxPages)
		}

		pageURL := buildPageURL(searchURL, page)
		listings, fetchErr := uc.fetcher.FetchListings(ctx, pageURL, page)
		if fetchErr != nil {
			// A transport failure on one page does not kill the run, the
			// next page may still respond.
			searchLogger.Warn("Page fetch failed, continuing with next page", port.Fields{
				"page":  page,
				"url":   pageURL,
				"error": fetchErr.Error(),
			})
			continue
		}

		if len(listings) == 0 {
			// An empty page means the result set is exhausted.
			searchLogger.Info("Empty page reached, stopping pagination", port.Fields{"page": page})
			break
		}

		allListings = append(allListings, listings...)
		pagesLoaded = append(pagesLoaded, page)

		if page < maxPages {
			delay := time.NewTimer(uc.pageDelay)
			select {
			case <-ctx.Done():
				delay.Stop()
				return nil, fmt.Errorf("Execute: search cancelled between pages: %w", ctx.Err())
			case <-delay.C:
			}
		}
	}

	source := domain.SourceExtracted
	if len(allListings) == 0 {
		searchLogger.Warn("No real listings extracted, substituting synthetic data", port.Fields{"url": searchURL})
		allListings = constants.SyntheticListings(searchURL)
		source = domain.SourceSynthetic
	}

	result := &domain.SearchResult{
		URL:          searchURL,
		SearchQuery:  parsedURL.RawQuery,
		TotalResults: len(allListings),
		Listings:     allListings,
		LastUpdated:  time.Now().Format(time.RFC3339),
		Source:       source,
		Pagination: &domain.Pagination{
			CurrentPages: maxPages,
			PagesLoaded:  pagesLoaded,
		},
	}

	if uc.recentSearches != nil {
		if _, recErr := uc.recentSearches.Add(ctx, searchURL, result.TotalResults, maxPages); recErr != nil {
			searchLogger.Warn("Failed to record recent search", port.Fields{"error": recErr.Error()})
		}
	}

	searchLogger.Info("Search finished", port.Fields{
		"url":          searchURL,
		"listings":     result.TotalResults,
		"pages_loaded": len(pagesLoaded),
		"source":       string(source),
	})

	return result, nil
}
