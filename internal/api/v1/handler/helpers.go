package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"vendorhub/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

const maxJSONBody = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeAndValidate reads a JSON body into dst and runs struct validation.
// It writes the 400 response itself and reports whether the handler may continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, validate *validator.Validate, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// actorOrFail returns the tenant actor placed in the context by TenantMiddleware.
func actorOrFail(w http.ResponseWriter, r *http.Request) (service.Actor, bool) {
	actor, ok := service.ActorFrom(r.Context())
	if !ok || actor.OrganizationID == "" {
		http.Error(w, "Unauthorized: organization not resolved", http.StatusUnauthorized)
		return service.Actor{}, false
	}
	return actor, true
}

// writeError maps service errors onto status codes.
func writeError(w http.ResponseWriter, logger zerolog.Logger, err error, msg string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		http.Error(w, verr.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrSubscriptionNotFound),
		errors.Is(err, service.ErrVendorNotFound),
		errors.Is(err, service.ErrDocumentNotFound),
		errors.Is(err, service.ErrMemberNotFound),
		errors.Is(err, service.ErrOrganizationNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrNoOrganization):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, service.ErrAlreadyInOrganization), errors.Is(err, service.ErrVendorHasSubscriptions):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, service.ErrUnsupportedFileType):
		http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
	case errors.Is(err, service.ErrFileTooLarge):
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
	default:
		logger.Error().Err(err).Msg(msg)
		http.Error(w, msg, http.StatusInternalServerError)
	}
}
