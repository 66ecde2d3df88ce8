package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Sterdizzy/ez-olx/internal/contextkeys"
	"github.com/Sterdizzy/ez-olx/internal/contracts"
	"github.com/Sterdizzy/ez-olx/internal/core/domain"
	"github.com/Sterdizzy/ez-olx/internal/core/port"
	"github.com/Sterdizzy/ez-olx/internal/core/port/usecases"
)

type StorageHandlers struct {
	recentUC usecases.RecentSearchesUseCase
	savedUC  usecases.SavedListingsUseCase
}

func NewStorageHandlers(recentUC usecases.RecentSearchesUseCase, savedUC usecases.SavedListingsUseCase) *StorageHandlers {
	return &StorageHandlers{
		recentUC: recentUC,
		savedUC:  savedUC,
	}
}

// HandleListRecentSearches handles GET /api/v1/searches/recent.
func (h *StorageHandlers) HandleListRecentSearches(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleListRecentSearches"})

	searches, err := h.recentUC.List(r.Context())
	if err != nil {
		logger.Error("Failed to list recent searches", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to list recent searches")
		return
	}

	RespondWithJSON(w, http.StatusOK, searches)
}

// HandleRemoveRecentSearch handles DELETE /api/v1/searches/recent/{searchID}.
func (h *StorageHandlers) HandleRemoveRecentSearch(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleRemoveRecentSearch"})

	searchID := chi.URLParam(r, "searchID")
	if searchID == "" {
		WriteJSONError(w, http.StatusBadRequest, "Search ID is required")
		return
	}

	if err := h.recentUC.Remove(r.Context(), searchID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			WriteJSONError(w, http.StatusNotFound, "Search not found")
			return
		}
		logger.Error("Failed to remove recent search", err, port.Fields{"search_id": searchID})
		WriteJSONError(w, http.StatusInternalServerError, "Failed to remove recent search")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleClearRecentSearches handles DELETE /api/v1/searches/recent.
func (h *StorageHandlers) HandleClearRecentSearches(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleClearRecentSearches"})

	if err := h.recentUC.Clear(r.Context()); err != nil {
		logger.Error("Failed to clear recent searches", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to clear recent searches")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleListSavedListings handles GET /api/v1/listings/saved.
func (h *StorageHandlers) HandleListSavedListings(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleListSavedListings"})

	saved, err := h.savedUC.List(r.Context())
	if err != nil {
		logger.Error("Failed to list saved listings", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to list saved listings")
		return
	}

	RespondWithJSON(w, http.StatusOK, saved)
}

// HandleToggleSavedListing handles POST /api/v1/listings/saved/toggle. The
// body is a full listing payload, validated against the saved-listing schema
// before it is accepted.
func (h *StorageHandlers) HandleToggleSavedListing(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleToggleSavedListing"})

	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 {
		WriteJSONError(w, http.StatusBadRequest, "Request body is empty")
		return
	}

	if err := contracts.ValidateSavedListing(body); err != nil {
		logger.Warn("Listing payload rejected by schema", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid listing payload: %v", err))
		return
	}

	var listing domain.Listing
	if err := json.Unmarshal(body, &listing); err != nil {
		WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid listing payload: %v", err))
		return
	}

	saved, err := h.savedUC.Toggle(r.Context(), listing)
	if err != nil {
		logger.Error("Failed to toggle saved listing", err, port.Fields{"listing_id": listing.ID})
		WriteJSONError(w, http.StatusInternalServerError, "Failed to toggle saved listing")
		return
	}

	RespondWithJSON(w, http.StatusOK, SavedStateDTO{ID: listing.ID, Saved: saved})
}

// HandleIsListingSaved handles GET /api/v1/listings/saved/{listingID}.
func (h *StorageHandlers) HandleIsListingSaved(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleIsListingSaved"})

	listingID := chi.URLParam(r, "listingID")
	if listingID == "" {
		WriteJSONError(w, http.StatusBadRequest, "Listing ID is required")
		return
	}

	saved, err := h.savedUC.IsSaved(r.Context(), listingID)
	if err != nil {
		logger.Error("Failed to check saved listing", err, port.Fields{"listing_id": listingID})
		WriteJSONError(w, http.StatusInternalServerError, "Failed to check saved listing")
		return
	}

	RespondWithJSON(w, http.StatusOK, SavedStateDTO{ID: listingID, Saved: saved})
}

// HandleRemoveSavedListing handles DELETE /api/v1/listings/saved/{listingID}.
func (h *StorageHandlers) HandleRemoveSavedListing(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleRemoveSavedListing"})

	listingID := chi.URLParam(r, "listingID")
	if listingID == "" {
		WriteJSONError(w, http.StatusBadRequest, "Listing ID is required")
		return
	}

	if err := h.savedUC.Remove(r.Context(), listingID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			WriteJSONError(w, http.StatusNotFound, "Listing not found")
			return
		}
		logger.Error("Failed to remove saved listing", err, port.Fields{"listing_id": listingID})
		WriteJSONError(w, http.StatusInternalServerError, "Failed to remove saved listing")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleClearSavedListings handles DELETE /api/v1/listings/saved.
func (h *StorageHandlers) HandleClearSavedListings(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleClearSavedListings"})

	if err := h.savedUC.Clear(r.Context()); err != nil {
		logger.Error("Failed to clear saved listings", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to clear saved listings")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
