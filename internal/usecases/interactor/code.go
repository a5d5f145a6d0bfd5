package interactor

import (
	"context"
	"fmt"
	"time"

	"github.com/mufasadev/finance-analytics/internal/domain/models"
	"github.com/mufasadev/finance-analytics/internal/domain/repositories"
	apperrors "github.com/mufasadev/finance-analytics/internal/errors"
	"github.com/mufasadev/finance-analytics/pkg/log"
	"github.com/rs/zerolog"
)

const (
	codeDigits         = 6
	maxSequentialCode  = 999999999999
	fallbackCodeLayout = "20060102150405"

	// MaxCodeAttempts bounds how often a create regenerates a code lost to a concurrent create.
	MaxCodeAttempts = 10
)

// CodeGenerator hands out human-readable transaction codes such as TN000123.
type CodeGenerator struct {
	transactionRepository repositories.TransactionRepository
	logger                *zerolog.Logger
	now                   func() time.Time
}

func NewCodeGenerator(transactionRepository repositories.TransactionRepository) *CodeGenerator {
	l := log.GetLogger()
	return &CodeGenerator{
		transactionRepository: transactionRepository,
		logger:                &l,
		now:                   time.Now,
	}
}

// GenerateTransactionCode returns the prefix for typ followed by the highest existing
// suffix plus one, zero-padded to six digits and widening past 999999.
// Any lookup failure yields a timestamp based code instead.
func (g *CodeGenerator) GenerateTransactionCode(ctx context.Context, typ models.TransactionType) (string, error) {
	if _, err := models.ParseTransactionType(string(typ)); err != nil {
		return "", apperrors.NewValidationError(err.Error())
	}
	prefix := typ.CodePrefix()

	max, err := g.transactionRepository.MaxCodeSuffix(ctx, prefix)
	if err != nil || max >= maxSequentialCode {
		g.logger.Warn().Err(err).Str("prefix", prefix).Msg("falling back to timestamp transaction code")
		return prefix + g.now().Format(fallbackCodeLayout), nil
	}

	return fmt.Sprintf("%s%0*d", prefix, codeDigits, max+1), nil
}
