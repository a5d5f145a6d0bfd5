package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mufasadev/finance-analytics/internal/domain/models"
	apperrors "github.com/mufasadev/finance-analytics/internal/errors"
)

var maxDate = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// QueryDate parses a YYYY-MM-DD query parameter. A missing parameter yields nil.
func QueryDate(r *http.Request, name string) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return nil, apperrors.NewValidationErrorf("invalid %s %q, expected YYYY-MM-DD", name, raw)
	}
	return &t, nil
}

// QueryDateRange reads from/to. Without either the range is nil; a missing bound is open.
func QueryDateRange(r *http.Request) (*models.DateRange, error) {
	from, err := QueryDate(r, "from")
	if err != nil {
		return nil, err
	}
	to, err := QueryDate(r, "to")
	if err != nil {
		return nil, err
	}
	if from == nil && to == nil {
		return nil, nil
	}

	dr := &models.DateRange{To: maxDate}
	if from != nil {
		dr.From = *from
	}
	if to != nil {
		dr.To = *to
	}
	return dr, nil
}

// QueryInt parses an integer query parameter, returning def when it is absent.
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewValidationErrorf("invalid %s %q, expected an integer", name, raw)
	}
	return n, nil
}

// QueryType parses an optional transaction type.
func QueryType(r *http.Request) (*models.TransactionType, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("type"))
	if raw == "" {
		return nil, nil
	}
	typ, err := models.ParseTransactionType(raw)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	return &typ, nil
}

// QueryStatuses parses a comma separated status list.
func QueryStatuses(r *http.Request) ([]models.TransactionStatus, error) {
	var statuses []models.TransactionStatus
	for _, raw := range QueryList(r, "status") {
		status, err := models.ParseTransactionStatus(raw)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// QueryList splits a comma separated parameter, dropping empty items.
func QueryList(r *http.Request, name string) []string {
	var out []string
	for _, item := range strings.Split(r.URL.Query().Get(name), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
