package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := fmt.Errorf("approve: %w", NewStorageError("transition status", cause))

	var storageErr *StorageError
	require.True(t, As(err, &storageErr))
	assert.Equal(t, "transition status", storageErr.Op)
	assert.True(t, Is(err, cause))
}

func TestHandleHTTPError(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{NewValidationError(ErrInvalidDateRange), http.StatusBadRequest},
		{NewDuplicateCodeError("TN000001"), http.StatusUnprocessableEntity},
		{fmt.Errorf("get: %w", NewNotFoundError("project", "p-1")), http.StatusNotFound},
		{NewStorageError("find transactions", fmt.Errorf("boom")), http.StatusInternalServerError},
	}

	for _, c := range cases {
		rec := httptest.NewRecorder()
		HandleHTTPError(rec, c.err)

		assert.Equal(t, c.code, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var body HTTPError
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, c.code, body.Code)
	}
}
