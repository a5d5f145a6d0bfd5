package interactor

import (
	"unicode/utf8"

	apperrors "github.com/mufasadev/finance-analytics/internal/errors"
)

// Column widths of the ledger schema, in characters.
const (
	MaxCodeLength            = 20
	MaxCategoryLength        = 100
	MaxPaymentMethodLength   = 50
	MaxReferenceNumberLength = 100
	MaxActorLength           = 100
)

func checkLength(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return apperrors.NewValidationErrorf("%s must be at most %d characters", field, max)
	}
	return nil
}
