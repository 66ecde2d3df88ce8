package usecases

import (
	"context"

	"github.com/Sterdizzy/ez-olx/internal/core/domain"
)

// SavedListingsUseCase manages the set of listings the user bookmarked.
type SavedListingsUseCase interface {
	List(ctx context.Context) ([]domain.SavedListing, error)
	// Toggle saves the listing when absent and removes it when present.
	// It reports whether the listing is saved after the call.
	Toggle(ctx context.Context, listing domain.Listing) (saved bool, err error)
	IsSaved(ctx context.Context, listingID string) (bool, error)
	Remove(ctx context.Context, listingID string) error
	Clear(ctx context.Context) error
}
