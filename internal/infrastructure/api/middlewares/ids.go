package middlewares

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mufasadev/finance-analytics/internal/errors"
	http2 "github.com/mufasadev/finance-analytics/internal/infrastructure/api/http"
	"github.com/mufasadev/finance-analytics/pkg/log"
)

// TransactionIDValidationMiddleware validates the transaction id path parameter.
func TransactionIDValidationMiddleware(next http.Handler) http.Handler {
	return uuidParamMiddleware(http2.TransactionIDParam, errors.ErrTransactionIDRequired, errors.ErrInvalidTransactionID)(next)
}

// ProjectIDValidationMiddleware validates the project id path parameter.
func ProjectIDValidationMiddleware(next http.Handler) http.Handler {
	return uuidParamMiddleware(http2.ProjectIDParam, errors.ErrProjectIDRequired, errors.ErrInvalidProjectID)(next)
}

func uuidParamMiddleware(param, requiredMsg, invalidMsg string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := log.GetLogger()
			id := chi.URLParam(r, param)

			if id == "" {
				logger.Error().Msg(requiredMsg)
				errors.HandleHTTPError(w, errors.NewValidationError(requiredMsg))
				return
			}

			if _, err := uuid.Parse(id); err != nil {
				logger.Error().Str(param, id).Msg(invalidMsg)
				errors.HandleHTTPError(w, errors.NewValidationError(invalidMsg))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
