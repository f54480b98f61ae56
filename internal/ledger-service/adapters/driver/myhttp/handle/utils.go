package handle

import (
	"encoding/json"
	"errors"
	"net/http"

	"courier-ledger/internal/ledger-service/core/myerrors"
)

// jsonResponse writes the given data as a JSON-encoded HTTP response with the given status code.
func jsonResponse(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// JsonError writes an error response as JSON with the specified HTTP status code.
func JsonError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
		"code":  code,
	})
}

// statusFor maps the ledger's sentinel errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, myerrors.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, myerrors.ErrAlreadyRegistered):
		return http.StatusConflict
	case errors.Is(err, myerrors.ErrNotRegistered):
		return http.StatusNotFound
	case errors.Is(err, myerrors.ErrInvalidZone),
		errors.Is(err, myerrors.ErrInvalidRate),
		errors.Is(err, myerrors.ErrDriverInactive),
		errors.Is(err, myerrors.ErrMustBeInactive),
		errors.Is(err, myerrors.ErrInvalidRating):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
