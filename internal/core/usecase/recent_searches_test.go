package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sterdizzy/ez-olx/internal/adapters/storage"
	"github.com/Sterdizzy/ez-olx/internal/core/domain"
)

func TestRecentSearchesAddAndList(t *testing.T) {
	uc := NewRecentSearchesUseCase(storage.NewMemoryKeyValueStore())
	ctx := context.Background()

	first, err := uc.Add(ctx, "https://www.olx.com.br/imoveis?q=casa", 12, 3)
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	second, err := uc.Add(ctx, "https://www.olx.com.br/imoveis?q=terreno", 5, 1)
	require.NoError(t, err)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "most recent first")
	assert.Equal(t, first.ID, list[1].ID)
}

func TestRecentSearchesDeduplicatesByURL(t *testing.T) {
	uc := NewRecentSearchesUseCase(storage.NewMemoryKeyValueStore())
	ctx := context.Background()

	_, err := uc.Add(ctx, "https://www.olx.com.br/imoveis?q=casa", 12, 3)
	require.NoError(t, err)
	_, err = uc.Add(ctx, "https://www.olx.com.br/imoveis?q=terreno", 5, 1)
	require.NoError(t, err)

	// repeating the first URL moves it to the front instead of duplicating
	repeat, err := uc.Add(ctx, "https://www.olx.com.br/imoveis?q=casa", 20, 5)
	require.NoError(t, err)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, repeat.ID, list[0].ID)
	assert.Equal(t, 20, list[0].TotalResults, "repeated search carries the fresh result count")
}

func TestRecentSearchesCapped(t *testing.T) {
	uc := NewRecentSearchesUseCase(storage.NewMemoryKeyValueStore())
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		_, err := uc.Add(ctx, fmt.Sprintf("https://www.olx.com.br/imoveis?page=%d", i), i, 1)
		require.NoError(t, err)
	}

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 10)
	assert.Equal(t, "https://www.olx.com.br/imoveis?page=14", list[0].URL)
	assert.Equal(t, "https://www.olx.com.br/imoveis?page=5", list[9].URL)
}

func TestRecentSearchesRemove(t *testing.T) {
	uc := NewRecentSearchesUseCase(storage.NewMemoryKeyValueStore())
	ctx := context.Background()

	entry, err := uc.Add(ctx, "https://www.olx.com.br/imoveis", 3, 1)
	require.NoError(t, err)

	require.NoError(t, uc.Remove(ctx, entry.ID))

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	err = uc.Remove(ctx, entry.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecentSearchesClear(t *testing.T) {
	uc := NewRecentSearchesUseCase(storage.NewMemoryKeyValueStore())
	ctx := context.Background()

	_, err := uc.Add(ctx, "https://www.olx.com.br/imoveis", 3, 1)
	require.NoError(t, err)

	require.NoError(t, uc.Clear(ctx))

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list, "List returns an empty slice, not nil")
}
