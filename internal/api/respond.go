package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/shop-api/internal/api/shared"
	"github.com/phrazzld/shop-api/internal/domain"
)

// respondWithServiceError writes the response for an error returned by a
// service or request helper.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		shared.RespondWithValidationError(w, r, verr)
		return
	}

	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetErrorMessage(err), err)
}

// decodeRequest decodes the body into v and runs its validation tags.
// It writes the error response and reports false when v is unusable.
func decodeRequest(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := decodeBody(w, r, v); err != nil {
		return false
	}

	if err := shared.ValidateRequest(v); err != nil {
		respondWithServiceError(w, r, err)
		return false
	}
	return true
}

// decodeBody decodes without validating. On failure the response is written.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	err := shared.DecodeJSON(r, v)
	if errors.Is(err, shared.ErrInvalidJSON) {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidJSON, err)
		return err
	}
	if err != nil {
		respondWithServiceError(w, r, err)
		return err
	}
	return nil
}
