package rest

import (
	"net/http"

	"github.com/Sterdizzy/ez-olx/internal/constants"
	"github.com/Sterdizzy/ez-olx/internal/contextkeys"
	"github.com/Sterdizzy/ez-olx/internal/core/port"
)

// maxErrorDetails caps how much of an upstream error body is echoed back.
const maxErrorDetails = 200

// ProxyHandler relays OLX pages to browser clients that cannot fetch them
// directly because of CORS.
type ProxyHandler struct {
	fetcher port.OLXFetcherPort
}

func NewProxyHandler(fetcher port.OLXFetcherPort) *ProxyHandler {
	return &ProxyHandler{fetcher: fetcher}
}

// HandleProxy handles GET /api/v1/proxy?url=<olx-url>.
func (h *ProxyHandler) HandleProxy(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleProxy"})

	targetURL := r.URL.Query().Get("url")
	if targetURL == "" {
		WriteJSONError(w, http.StatusBadRequest, "URL parameter is required")
		return
	}

	// The relay only talks to OLX, anything else would make it an open proxy.
	if !constants.IsAllowedURL(targetURL) {
		WriteJSONError(w, http.StatusForbidden, "Only OLX domains are allowed")
		return
	}

	logger.Info("Proxying request", port.Fields{"target_url": targetURL})

	body, statusCode, err := h.fetcher.FetchPage(r.Context(), targetURL)
	if err != nil {
		if statusCode >= 400 {
			details := err.Error()
			if len(details) > maxErrorDetails {
				details = details[:maxErrorDetails]
			}
			RespondWithJSON(w, statusCode, map[string]interface{}{
				"error":   "Failed to fetch: " + http.StatusText(statusCode),
				"status":  statusCode,
				"details": details,
			})
			return
		}
		logger.Error("Proxy fetch failed", err, port.Fields{"target_url": targetURL})
		WriteJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("Proxy fetch succeeded", port.Fields{
		"target_url":  targetURL,
		"html_length": len(body),
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
