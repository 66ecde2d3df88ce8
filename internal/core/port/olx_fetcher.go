package port

import (
	"context"

	"github.com/Sterdizzy/ez-olx/internal/core/domain"
)

// OLXFetcherPort groups every interaction with the OLX site. The core never
// talks to the network directly; it only sees this contract.
type OLXFetcherPort interface {
	// FetchListings downloads one search-result page and extracts its
	// listings. The page number is woven into the listing IDs. A transport
	// failure or non-2xx status is returned as an error; a page that
	// fetched fine but contains no extractable listings returns an empty
	// slice and no error.
	FetchListings(ctx context.Context, pageURL string, page int) ([]domain.Listing, error)

	// FetchPage returns the raw HTML body and upstream status code for
	// pageURL. Used by the relay endpoint so it shares the fetching
	// strategy (headers, rate limits, optional rendering proxy) with the
	// extraction path.
	FetchPage(ctx context.Context, pageURL string) (body []byte, statusCode int, err error)
}
