package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sterdizzy/ez-olx/internal/core/domain"
	"github.com/Sterdizzy/ez-olx/internal/core/port/usecases"
)

// stubSearchUC returns a canned result and records the arguments it was
// called with.
type stubSearchUC struct {
	result   *domain.SearchResult
	err      error
	gotURL   string
	gotPages int
}

func (s *stubSearchUC) Execute(_ context.Context, searchURL string, maxPages int, _ usecases.ProgressFunc) (*domain.SearchResult, error) {
	s.gotURL = searchURL
	s.gotPages = maxPages
	return s.result, s.err
}

func TestHandleSearch(t *testing.T) {
	stub := &stubSearchUC{result: &domain.SearchResult{
		URL:          "https://www.olx.com.br/imoveis",
		TotalResults: 1,
		Listings:     []domain.Listing{{ID: "olx-1-0-1", Title: "Casa"}},
		Source:       domain.SourceExtracted,
	}}
	handlers := NewSearchHandlers(stub)

	body := `{"url": "https://www.olx.com.br/imoveis", "max_pages": 3}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handlers.HandleSearch(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://www.olx.com.br/imoveis", stub.gotURL)
	assert.Equal(t, 3, stub.gotPages)

	var result domain.SearchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, domain.SourceExtracted, result.Source)
	assert.Equal(t, 1, result.TotalResults)
}

func TestHandleSearchMissingURL(t *testing.T) {
	handlers := NewSearchHandlers(&stubSearchUC{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader(`{"max_pages": 2}`))
	rec := httptest.NewRecorder()
	handlers.HandleSearch(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSearchEmptyBody(t *testing.T) {
	handlers := NewSearchHandlers(&stubSearchUC{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader(""))
	rec := httptest.NewRecorder()
	handlers.HandleSearch(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSearchDomainErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid url", fmt.Errorf("Execute: %w: %q", domain.ErrInvalidSearchURL, "x"), http.StatusBadRequest},
		{"foreign domain", fmt.Errorf("Execute: %w: evil.example", domain.ErrDomainNotAllowed), http.StatusForbidden},
		{"internal failure", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlers := NewSearchHandlers(&stubSearchUC{err: tt.err})

			body := `{"url": "https://www.olx.com.br/imoveis"}`
			req := httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader(body))
			rec := httptest.NewRecorder()
			handlers.HandleSearch(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
