package usecases

import (
	"context"

	"github.com/Sterdizzy/ez-olx/internal/core/domain"
)

// RecentSearchesUseCase manages the bounded most-recent-first search history.
type RecentSearchesUseCase interface {
	// Add records a search, deduplicating by URL and trimming the history
	// to its fixed capacity.
	Add(ctx context.Context, searchURL string, totalResults, maxPages int) (domain.RecentSearch, error)
	List(ctx context.Context) ([]domain.RecentSearch, error)
	Remove(ctx context.Context, searchID string) error
	Clear(ctx context.Context) error
}
