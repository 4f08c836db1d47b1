package httputil

import (
	"encoding/json"
	"io"
	"net/http"

	errs "github.com/matzehuels/gridglob/pkg/errors"
)

// DefaultMaxBody is the request body limit used when none is given.
const DefaultMaxBody = 4 << 20

// ErrorBody is the JSON shape of an error response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the code and message of a failed request.
type ErrorDetail struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

// StatusFor maps an error to the HTTP status a handler should answer with.
func StatusFor(err error) int {
	switch errs.GetCode(err) {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidFormat, errs.ErrCodeUnsupported, errs.ErrCodeInvalidID:
		return http.StatusBadRequest
	case errs.ErrCodeDuplicateID:
		return http.StatusUnprocessableEntity
	}
	if errs.IsInputError(err) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// WriteError writes err as an [ErrorBody]. Errors without a code are
// reported as INTERNAL_ERROR, and their text is not exposed.
func WriteError(w http.ResponseWriter, err error) error {
	code, msg := errs.GetCode(err), errs.Describe(err)
	if code == "" {
		code, msg = errs.ErrCodeInternal, http.StatusText(http.StatusInternalServerError)
	}
	return WriteJSON(w, StatusFor(err), ErrorBody{Error: ErrorDetail{Code: code, Message: msg}})
}

// LimitBody caps the request body at limit bytes (DefaultMaxBody when
// limit <= 0). Reads past the cap fail.
func LimitBody(w http.ResponseWriter, r *http.Request, limit int64) io.ReadCloser {
	if limit <= 0 {
		limit = DefaultMaxBody
	}
	return http.MaxBytesReader(w, r.Body, limit)
}
