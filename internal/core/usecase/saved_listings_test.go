package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sterdizzy/ez-olx/internal/adapters/storage"
	"github.com/Sterdizzy/ez-olx/internal/core/domain"
)

func sampleListing(id string) domain.Listing {
	return domain.Listing{
		ID:       id,
		Title:    "Casa na praia",
		Price:    "R$ 450.000",
		Location: "Garopaba, Santa Catarina",
		Images:   []string{"https://img.olx.com.br/casa.webp"},
		Link:     "https://www.olx.com.br/anuncio/casa-" + id,
	}
}

func TestSavedListingsToggle(t *testing.T) {
	uc := NewSavedListingsUseCase(storage.NewMemoryKeyValueStore())
	ctx := context.Background()
	listing := sampleListing("olx-1-0-1")

	saved, err := uc.Toggle(ctx, listing)
	require.NoError(t, err)
	assert.True(t, saved)

	isSaved, err := uc.IsSaved(ctx, listing.ID)
	require.NoError(t, err)
	assert.True(t, isSaved)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, listing.ID, list[0].ID)
	assert.NotEmpty(t, list[0].SavedAt)

	// second toggle removes
	saved, err = uc.Toggle(ctx, listing)
	require.NoError(t, err)
	assert.False(t, saved)

	isSaved, err = uc.IsSaved(ctx, listing.ID)
	require.NoError(t, err)
	assert.False(t, isSaved)
}

func TestSavedListingsRemove(t *testing.T) {
	uc := NewSavedListingsUseCase(storage.NewMemoryKeyValueStore())
	ctx := context.Background()

	_, err := uc.Toggle(ctx, sampleListing("a"))
	require.NoError(t, err)
	_, err = uc.Toggle(ctx, sampleListing("b"))
	require.NoError(t, err)

	require.NoError(t, uc.Remove(ctx, "a"))

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].ID)

	err = uc.Remove(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSavedListingsClear(t *testing.T) {
	uc := NewSavedListingsUseCase(storage.NewMemoryKeyValueStore())
	ctx := context.Background()

	_, err := uc.Toggle(ctx, sampleListing("a"))
	require.NoError(t, err)

	require.NoError(t, uc.Clear(ctx))

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
