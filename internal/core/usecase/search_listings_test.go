package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sterdizzy/ez-olx/internal/adapters/storage"
	"github.com/Sterdizzy/ez-olx/internal/core/domain"
)

// stubFetcher serves canned per-page results and records which pages were
// requested.
type stubFetcher struct {
	pages        map[int][]domain.Listing
	pageErrors   map[int]error
	fetchedPages []int
}

func (f *stubFetcher) FetchListings(_ context.Context, _ string, page int) ([]domain.Listing, error) {
	f.fetchedPages = append(f.fetchedPages, page)
	if err, ok := f.pageErrors[page]; ok {
		return nil, err
	}
	return f.pages[page], nil
}

func (f *stubFetcher) FetchPage(_ context.Context, _ string) ([]byte, int, error) {
	return nil, 0, errors.New("not implemented")
}

func listingsForPage(page, count int) []domain.Listing {
	out := make([]domain.Listing, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, domain.Listing{
			ID:     fmt.Sprintf("olx-%d-%d-0", page, i),
			Title:  fmt.Sprintf("Listing %d on page %d", i, page),
			Price:  "R$ 100.000",
			Images: []string{"https://img.olx.com.br/x.webp"},
		})
	}
	return out
}

func newSearchUC(fetcher *stubFetcher) *SearchListingsUseCase {
	recent := NewRecentSearchesUseCase(storage.NewMemoryKeyValueStore())
	return NewSearchListingsUseCase(fetcher, recent, 3, time.Millisecond)
}

func TestSearchZeroMaxPagesUsesConfiguredDefault(t *testing.T) {
	fetcher := &stubFetcher{pages: map[int][]domain.Listing{
		1: listingsForPage(1, 2),
		2: listingsForPage(2, 2),
		3: listingsForPage(3, 2),
		4: listingsForPage(4, 2),
	}}
	uc := newSearchUC(fetcher)

	result, err := uc.Execute(context.Background(), "https://www.olx.com.br/imoveis", 0, nil)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, fetcher.fetchedPages)
	require.NotNil(t, result.Pagination)
	assert.Equal(t, []int{1, 2, 3}, result.Pagination.PagesLoaded)
	assert.Equal(t, 3, result.Pagination.CurrentPages)
}

func TestSearchStopsAtEmptyPage(t *testing.T) {
	fetcher := &stubFetcher{pages: map[int][]domain.Listing{
		1: listingsForPage(1, 2),
		2: listingsForPage(2, 3),
		// page 3 empty, pages 4-5 must never be fetched
		4: listingsForPage(4, 9),
	}}
	uc := newSearchUC(fetcher)

	result, err := uc.Execute(context.Background(), "https://www.olx.com.br/imoveis", 5, nil)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, fetcher.fetchedPages)
	assert.Equal(t, 5, result.TotalResults)
	assert.Equal(t, domain.SourceExtracted, result.Source)
	require.NotNil(t, result.Pagination)
	assert.Equal(t, 5, result.Pagination.CurrentPages)
	assert.Equal(t, []int{1, 2}, result.Pagination.PagesLoaded)
}

func TestSearchSkipsFailedPage(t *testing.T) {
	fetcher := &stubFetcher{
		pages: map[int][]domain.Listing{
			1: listingsForPage(1, 2),
			3: listingsForPage(3, 1),
		},
		pageErrors: map[int]error{2: errors.New("connection reset")},
	}
	uc := newSearchUC(fetcher)

	result, err := uc.Execute(context.Background(), "https://www.olx.com.br/imoveis", 3, nil)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, fetcher.fetchedPages)
	assert.Equal(t, 3, result.TotalResults)
	assert.Equal(t, []int{1, 3}, result.Pagination.PagesLoaded)
	assert.Equal(t, domain.SourceExtracted, result.Source)
}

func TestSearchSyntheticFallback(t *testing.T) {
	fetcher := &stubFetcher{
		pageErrors: map[int]error{1: errors.New("blocked"), 2: errors.New("blocked")},
	}
	uc := newSearchUC(fetcher)

	result, err := uc.Execute(context.Background(), "https://www.olx.com.br/imoveis", 2, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.SourceSynthetic, result.Source)
	assert.NotEmpty(t, result.Listings)
	assert.Empty(t, result.Pagination.PagesLoaded)
	// Brazilian domain gets the Brazilian canned set
	assert.Contains(t, result.Listings[0].Title, "Terreno")
}

func TestSearchProgressCallback(t *testing.T) {
	fetcher := &stubFetcher{pages: map[int][]domain.Listing{
		1: listingsForPage(1, 1),
		2: listingsForPage(2, 1),
	}}
	uc := newSearchUC(fetcher)

	var progress [][2]int
	_, err := uc.Execute(context.Background(), "https://www.olx.com.br/imoveis", 2, func(currentPage, totalPages int) {
		progress = append(progress, [2]int{currentPage, totalPages})
	})
	require.NoError(t, err)

	assert.Equal(t, [][2]int{{1, 2}, {2, 2}}, progress)
}

func TestSearchRejectsForeignDomain(t *testing.T) {
	uc := newSearchUC(&stubFetcher{})

	_, err := uc.Execute(context.Background(), "https://evil.example.com/?q=olx.com.br", 1, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDomainNotAllowed)
}

func TestSearchRejectsInvalidURL(t *testing.T) {
	uc := newSearchUC(&stubFetcher{})

	_, err := uc.Execute(context.Background(), "not a url", 1, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidSearchURL)
}

func TestSearchClampsMaxPages(t *testing.T) {
	fetcher := &stubFetcher{pages: map[int][]domain.Listing{1: listingsForPage(1, 1)}}
	uc := newSearchUC(fetcher)

	result, err := uc.Execute(context.Background(), "https://www.olx.com.br/imoveis", 99, nil)
	require.NoError(t, err)
	assert.Equal(t, 10, result.Pagination.CurrentPages)
}

func TestSearchCancellation(t *testing.T) {
	fetcher := &stubFetcher{pages: map[int][]domain.Listing{
		1: listingsForPage(1, 1),
		2: listingsForPage(2, 1),
	}}
	uc := newSearchUC(fetcher)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := uc.Execute(ctx, "https://www.olx.com.br/imoveis", 2, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildPageURL(t *testing.T) {
	tests := []struct {
		name      string
		searchURL string
		page      int
		want      string
	}{
		{"first page is the bare URL", "https://www.olx.com.br/imoveis", 1, "https://www.olx.com.br/imoveis"},
		{"no query uses question mark", "https://www.olx.com.br/imoveis", 2, "https://www.olx.com.br/imoveis?o=2"},
		{"existing query uses ampersand", "https://www.olx.com.br/imoveis?q=casa", 3, "https://www.olx.com.br/imoveis?q=casa&o=3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildPageURL(tt.searchURL, tt.page))
		})
	}
}
