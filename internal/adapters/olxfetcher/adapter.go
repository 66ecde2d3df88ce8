package olxfetcher

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/extensions"

	"github.com/Sterdizzy/ez-olx/internal/constants"
	"github.com/Sterdizzy/ez-olx/internal/contextkeys"
	"github.com/Sterdizzy/ez-olx/internal/core/domain"
	"github.com/Sterdizzy/ez-olx/internal/core/port"
)

// browserHeaders mimic a real Chrome navigation. OLX sits behind Cloudflare
// and plain client requests get challenged.
var browserHeaders = map[string]string{
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.7",
	"Accept-Language":           "pt-BR,pt;q=0.9,en-US;q=0.8,en;q=0.7",
	"DNT":                       "1",
	"Upgrade-Insecure-Requests": "1",
	"Sec-Fetch-Dest":            "document",
	"Sec-Fetch-Mode":            "navigate",
	"Sec-Fetch-Site":            "none",
	"Sec-Fetch-User":            "?1",
	"Cache-Control":             "max-age=0",
	"Referer":                   "https://www.olx.com.br/",
}

// OLXFetcherAdapter is responsible for all traffic to OLX. A parent collector
// carries the rate limits; every request runs on a clone so per-request
// callbacks do not accumulate.
type OLXFetcherAdapter struct {
	collector      *colly.Collector
	scrapingBeeKey string
}

// NewOLXFetcherAdapter builds the adapter. When scrapingBeeKey is non-empty
// the page requests are routed through the ScrapingBee rendering proxy, which
// is far more reliable against Cloudflare than direct fetches.
func NewOLXFetcherAdapter(scrapingBeeKey string) (*OLXFetcherAdapter, error) {
	c := colly.NewCollector(colly.AllowURLRevisit())

	// Inherited by every clone. The second rule keeps the same pacing when
	// requests are routed through ScrapingBee instead of hitting OLX
	// directly.
	err := c.Limits([]*colly.LimitRule{
		{
			DomainGlob:  "*olx.*",
			Parallelism: 1,
			RandomDelay: 2 * time.Second,
		},
		{
			DomainGlob:  "*scrapingbee.com*",
			Parallelism: 1,
			RandomDelay: 2 * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("OLXFetcherAdapter: failed to set limit rules: %w", err)
	}

	extensions.RandomUserAgent(c)
	extensions.Referer(c)

	return &OLXFetcherAdapter{
		collector:      c,
		scrapingBeeKey: scrapingBeeKey,
	}, nil
}

// requestURL wraps pageURL in a ScrapingBee API call when a key is
// configured, otherwise returns it unchanged.
func (a *OLXFetcherAdapter) requestURL(pageURL string) string {
	if a.scrapingBeeKey == "" {
		return pageURL
	}
	return fmt.Sprintf("https://app.scrapingbee.com/api/v1/?api_key=%s&url=%s&render_js=false",
		url.QueryEscape(a.scrapingBeeKey), url.QueryEscape(pageURL))
}

// FetchPage downloads one OLX page and returns its raw body and HTTP status.
func (a *OLXFetcherAdapter) FetchPage(ctx context.Context, pageURL string) ([]byte, int, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	fetchLogger := logger.WithFields(port.Fields{"component": "OLXFetcherAdapter(FetchPage)"})

	if !constants.IsAllowedURL(pageURL) {
		return nil, 0, fmt.Errorf("FetchPage: %w: %s", domain.ErrDomainNotAllowed, pageURL)
	}

	collector := a.collector.Clone()

	var body []byte
	var statusCode int
	var criticalError error

	collector.OnRequest(func(r *colly.Request) {
		for key, value := range browserHeaders {
			r.Headers.Set(key, value)
		}
		fetchLogger.Info("Making request to fetch page", port.Fields{"url": pageURL})
	})

	collector.OnResponse(func(r *colly.Response) {
		if criticalError != nil || body != nil {
			return
		}
		body = r.Body
		statusCode = r.StatusCode
	})

	collector.OnError(func(r *colly.Response, err error) {
		statusCode = r.StatusCode
		fetchLogger.Error("Failed to fetch page", err, port.Fields{
			"url":    pageURL,
			"status": r.StatusCode,
		})
		criticalError = fmt.Errorf("FetchPage: request to %s failed with status %d: %w", pageURL, r.StatusCode, err)
	})

	visitErr := collector.Visit(a.requestURL(pageURL))
	collector.Wait()

	if criticalError != nil {
		return nil, statusCode, criticalError
	}
	if body == nil {
		if visitErr != nil {
			return nil, statusCode, fmt.Errorf("FetchPage: request to %s could not be started: %w", pageURL, visitErr)
		}
		return nil, statusCode, fmt.Errorf("FetchPage: no response received for %s", pageURL)
	}
	return body, statusCode, nil
}

// FetchListings downloads one search-result page and extracts its listings.
func (a *OLXFetcherAdapter) FetchListings(ctx context.Context, pageURL string, page int) ([]domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	body, _, err := a.FetchPage(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("FetchListings: %w", err)
	}

	listings, err := ExtractPage(body, pageURL, page, logger)
	if err != nil {
		return nil, fmt.Errorf("FetchListings: %w", err)
	}
	return listings, nil
}
