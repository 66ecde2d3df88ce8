package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Sterdizzy/ez-olx/internal/constants"
	"github.com/Sterdizzy/ez-olx/internal/core/domain"
	"github.com/Sterdizzy/ez-olx/internal/core/port"
)

// SavedListingsUseCase keeps the user's bookmarked listings in the key-value
// store, keyed by listing ID.
type SavedListingsUseCase struct {
	store port.KeyValueStorePort
}

func NewSavedListingsUseCase(store port.KeyValueStorePort) *SavedListingsUseCase {
	return &SavedListingsUseCase{store: store}
}

func (uc *SavedListingsUseCase) load(ctx context.Context) ([]domain.SavedListing, error) {
	raw, err := uc.store.Get(ctx, constants.StorageKeySavedListings)
	if err != nil {
		return nil, fmt.Errorf("failed to load saved listings: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	var saved []domain.SavedListing
	if err := json.Unmarshal(raw, &saved); err != nil {
		return nil, nil
	}
	return saved, nil
}

func (uc *SavedListingsUseCase) save(ctx context.Context, listings []domain.SavedListing) error {
	raw, err := json.Marshal(listings)
	if err != nil {
		return fmt.Errorf("failed to marshal saved listings: %w", err)
	}
	if err := uc.store.Set(ctx, constants.StorageKeySavedListings, raw); err != nil {
		return fmt.Errorf("failed to persist saved listings: %w", err)
	}
	return nil
}

func (uc *SavedListingsUseCase) List(ctx context.Context) ([]domain.SavedListing, error) {
	saved, err := uc.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	if saved == nil {
		saved = []domain.SavedListing{}
	}
	return saved, nil
}

// Toggle saves the listing when it is not in the set and removes it when it
// is. The returned flag reports the state after the call.
func (uc *SavedListingsUseCase) Toggle(ctx context.Context, listing domain.Listing) (bool, error) {
	saved, err := uc.load(ctx)
	if err != nil {
		return false, fmt.Errorf("Toggle: %w", err)
	}

	remaining := make([]domain.SavedListing, 0, len(saved)+1)
	removed := false
	for _, s := range saved {
		if s.ID == listing.ID {
			removed = true
			continue
		}
		remaining = append(remaining, s)
	}

	if !removed {
		remaining = append(remaining, domain.SavedListing{
			Listing: listing,
			SavedAt: time.Now().Format(time.RFC3339),
		})
	}

	if err := uc.save(ctx, remaining); err != nil {
		return false, fmt.Errorf("Toggle: %w", err)
	}
	return !removed, nil
}

func (uc *SavedListingsUseCase) IsSaved(ctx context.Context, listingID string) (bool, error) {
	saved, err := uc.load(ctx)
	if err != nil {
		return false, fmt.Errorf("IsSaved: %w", err)
	}
	for _, s := range saved {
		if s.ID == listingID {
			return true, nil
		}
	}
	return false, nil
}

func (uc *SavedListingsUseCase) Remove(ctx context.Context, listingID string) error {
	saved, err := uc.load(ctx)
	if err != nil {
		return fmt.Errorf("Remove: %w", err)
	}

	remaining := saved[:0]
	for _, s := range saved {
		if s.ID != listingID {
			remaining = append(remaining, s)
		}
	}
	if len(remaining) == len(saved) {
		return fmt.Errorf("Remove: %w: %s", domain.ErrNotFound, listingID)
	}

	if err := uc.save(ctx, remaining); err != nil {
		return fmt.Errorf("Remove: %w", err)
	}
	return nil
}

func (uc *SavedListingsUseCase) Clear(ctx context.Context) error {
	if err := uc.store.Remove(ctx, constants.StorageKeySavedListings); err != nil {
		return fmt.Errorf("Clear: failed to clear saved listings: %w", err)
	}
	return nil
}
