package usecases

import (
	"context"

	"github.com/Sterdizzy/ez-olx/internal/core/domain"
)

// ProgressFunc is invoked before each page fetch with the page about to be
// loaded and the total number of requested pages.
type ProgressFunc func(currentPage, totalPages int)

// SearchListingsUseCase runs a multi-page OLX search extraction.
type SearchListingsUseCase interface {
	// Execute fetches up to maxPages result pages sequentially and returns
	// the aggregated SearchResult. It never returns an empty result: when
	// extraction fails entirely, synthetic demo listings are substituted
	// and marked via SearchResult.Source.
	Execute(ctx context.Context, searchURL string, maxPages int, onProgress ProgressFunc) (*domain.SearchResult, error)
}
