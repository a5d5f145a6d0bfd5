package errors

import (
	"encoding/json"
	"net/http"
)

type HTTPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// HTTPErrorFor maps an application error to its HTTP representation.
func HTTPErrorFor(err error) *HTTPError {
	var (
		validationErr *ValidationError
		duplicateErr  *DuplicateCodeError
		notFoundErr   *NotFoundError
	)
	switch {
	case As(err, &duplicateErr):
		return &HTTPError{Code: http.StatusUnprocessableEntity, Message: duplicateErr.Error()}
	case As(err, &validationErr):
		return &HTTPError{Code: http.StatusBadRequest, Message: validationErr.Error()}
	case As(err, &notFoundErr):
		return &HTTPError{Code: http.StatusNotFound, Message: notFoundErr.Error()}
	default:
		return &HTTPError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	}
}

// HandleHTTPError handles http errors
func HandleHTTPError(w http.ResponseWriter, err error) {
	httpErr := HTTPErrorFor(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpErr.Code)
	json.NewEncoder(w).Encode(httpErr)
}
