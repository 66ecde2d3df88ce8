package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Sterdizzy/ez-olx/internal/contextkeys"
	"github.com/Sterdizzy/ez-olx/internal/core/domain"
	"github.com/Sterdizzy/ez-olx/internal/core/port"
	"github.com/Sterdizzy/ez-olx/internal/core/port/usecases"
)

type SearchHandlers struct {
	searchUC usecases.SearchListingsUseCase
}

func NewSearchHandlers(searchUC usecases.SearchListingsUseCase) *SearchHandlers {
	return &SearchHandlers{searchUC: searchUC}
}

// HandleSearch handles POST /api/v1/search.
func (h *SearchHandlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleSearch"})

	var reqDTO SearchRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		if err == io.EOF {
			logger.Error("Failed to decode request body", err, nil)
			WriteJSONError(w, http.StatusBadRequest, "Request body is empty")
			return
		}
		WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if reqDTO.URL == "" {
		WriteJSONError(w, http.StatusBadRequest, "Field 'url' is required")
		return
	}

	result, err := h.searchUC.Execute(r.Context(), reqDTO.URL, reqDTO.MaxPages, nil)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidSearchURL):
			WriteJSONError(w, http.StatusBadRequest, "Field 'url' is not a valid URL")
		case errors.Is(err, domain.ErrDomainNotAllowed):
			WriteJSONError(w, http.StatusForbidden, "Only OLX domains are allowed")
		default:
			logger.Error("Search failed", err, port.Fields{"url": reqDTO.URL})
			WriteJSONError(w, http.StatusInternalServerError, "Search failed")
		}
		return
	}

	RespondWithJSON(w, http.StatusOK, result)
}
