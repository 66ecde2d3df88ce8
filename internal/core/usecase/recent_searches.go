package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Sterdizzy/ez-olx/internal/constants"
	"github.com/Sterdizzy/ez-olx/internal/core/domain"
	"github.com/Sterdizzy/ez-olx/internal/core/port"
)

// RecentSearchesUseCase keeps a most-recent-first search history in the
// key-value store, deduplicated by URL and capped at a fixed size.
type RecentSearchesUseCase struct {
	store port.KeyValueStorePort
}

func NewRecentSearchesUseCase(store port.KeyValueStorePort) *RecentSearchesUseCase {
	return &RecentSearchesUseCase{store: store}
}

func (uc *RecentSearchesUseCase) load(ctx context.Context) ([]domain.RecentSearch, error) {
	raw, err := uc.store.Get(ctx, constants.StorageKeyRecentSearches)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent searches: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	var searches []domain.RecentSearch
	if err := json.Unmarshal(raw, &searches); err != nil {
		// A corrupted payload is not worth failing the request over; the
		// history just starts fresh.
		return nil, nil
	}
	return searches, nil
}

func (uc *RecentSearchesUseCase) save(ctx context.Context, searches []domain.RecentSearch) error {
	raw, err := json.Marshal(searches)
	if err != nil {
		return fmt.Errorf("failed to marshal recent searches: %w", err)
	}
	if err := uc.store.Set(ctx, constants.StorageKeyRecentSearches, raw); err != nil {
		return fmt.Errorf("failed to persist recent searches: %w", err)
	}
	return nil
}

// Add prepends a search to the history. A repeated URL moves to the front
// instead of duplicating, and the history never exceeds its capacity.
func (uc *RecentSearchesUseCase) Add(ctx context.Context, searchURL string, totalResults, maxPages int) (domain.RecentSearch, error) {
	searches, err := uc.load(ctx)
	if err != nil {
		return domain.RecentSearch{}, fmt.Errorf("Add: %w", err)
	}

	entry := domain.RecentSearch{
		ID:           uuid.NewString(),
		URL:          searchURL,
		SearchedAt:   time.Now().Format(time.RFC3339),
		TotalResults: totalResults,
		MaxPages:     maxPages,
	}

	deduped := make([]domain.RecentSearch, 0, len(searches)+1)
	deduped = append(deduped, entry)
	for _, s := range searches {
		if s.URL == searchURL {
			continue
		}
		deduped = append(deduped, s)
	}
	if len(deduped) > constants.MaxRecentSearches {
		deduped = deduped[:constants.MaxRecentSearches]
	}

	if err := uc.save(ctx, deduped); err != nil {
		return domain.RecentSearch{}, fmt.Errorf("Add: %w", err)
	}
	return entry, nil
}

func (uc *RecentSearchesUseCase) List(ctx context.Context) ([]domain.RecentSearch, error) {
	searches, err := uc.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	if searches == nil {
		searches = []domain.RecentSearch{}
	}
	return searches, nil
}

func (uc *RecentSearchesUseCase) Remove(ctx context.Context, searchID string) error {
	searches, err := uc.load(ctx)
	if err != nil {
		return fmt.Errorf("Remove: %w", err)
	}

	remaining := searches[:0]
	for _, s := range searches {
		if s.ID != searchID {
			remaining = append(remaining, s)
		}
	}
	if len(remaining) == len(searches) {
		return fmt.Errorf("Remove: %w: %s", domain.ErrNotFound, searchID)
	}

	if err := uc.save(ctx, remaining); err != nil {
		return fmt.Errorf("Remove: %w", err)
	}
	return nil
}

func (uc *RecentSearchesUseCase) Clear(ctx context.Context) error {
	if err := uc.store.Remove(ctx, constants.StorageKeyRecentSearches); err != nil {
		return fmt.Errorf("Clear: failed to clear recent searches: %w", err)
	}
	return nil
}
