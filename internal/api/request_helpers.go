package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/shop-api/internal/domain"
)

// getPathID extracts a positive integer ID from the URL path parameters.
// Routes constrain IDs to digits; this also rejects values that overflow.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s %q", domain.ErrInvalidID, paramName, pathParam)
	}

	return id, nil
}

// handlePathID writes a 404 and reports false when the ID is unusable.
func handlePathID(w http.ResponseWriter, r *http.Request, paramName string) (int64, bool) {
	id, err := getPathID(r, paramName)
	if err != nil {
		respondWithServiceError(w, r, err)
		return 0, false
	}
	return id, true
}
