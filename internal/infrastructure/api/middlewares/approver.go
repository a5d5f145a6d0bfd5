package middlewares

import (
	"net/http"
	"strings"

	"github.com/mufasadev/finance-analytics/internal/errors"
	http2 "github.com/mufasadev/finance-analytics/internal/infrastructure/api/http"
	"github.com/mufasadev/finance-analytics/pkg/log"
)

// ApproverValidationMiddleware requires the approver header on approval routes.
func ApproverValidationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.TrimSpace(r.Header.Get(http2.ApproverIDHeader)) == "" {
			logger := log.GetLogger()
			logger.Error().Msg(errors.ErrApproverIDRequired)
			errors.HandleHTTPError(w, errors.NewValidationError(errors.ErrApproverIDRequired))
			return
		}

		next.ServeHTTP(w, r)
	})
}
