// Package validator is the final lenient pass over constructed transactions:
// permissible gaps are filled with defaults, invariant violators are dropped,
// and an all-rejected file is a terminal failure.
package validator

import (
	"fmt"
	"strings"

	"fjacquet/bank-csv/internal/logging"
	"fjacquet/bank-csv/internal/models"
)

// DefaultConfidence is assigned when an upstream strategy left no score.
const DefaultConfidence = 0.7

const maxReportedReasons = 5

// ValidationError is the terminal file-level failure raised when zero rows
// survive validation. It carries representative rejection reasons.
type ValidationError struct {
	Rejected int
	Reasons  []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("no valid transactions found (%d rows rejected): %s",
		e.Rejected, strings.Join(e.Reasons, "; "))
}

// Validator checks data-model invariants on fully built transactions.
type Validator struct {
	log             logging.Logger
	defaultCurrency string
}

func New(log logging.Logger, defaultCurrency string) *Validator {
	return &Validator{log: log, defaultCurrency: defaultCurrency}
}

// Validate fills permissible defaults, drops invariant violators, and
// returns the survivors with the rejected count. Zero survivors from a
// non-empty input is a *ValidationError.
func (v *Validator) Validate(txs []*models.Transaction) ([]*models.Transaction, int, error) {
	var (
		survivors []*models.Transaction
		reasons   []string
		rejected  int
	)

	for i, tx := range txs {
		v.fillDefaults(tx)
		if err := tx.Validate(); err != nil {
			rejected++
			if len(reasons) < maxReportedReasons {
				reasons = append(reasons, err.Error())
			}
			v.log.WithFields(
				logging.Field{Key: logging.FieldRow, Value: i},
				logging.Field{Key: logging.FieldReason, Value: err.Error()},
			).Debug("transaction rejected")
			continue
		}
		survivors = append(survivors, tx)
	}

	if len(survivors) == 0 {
		if len(reasons) == 0 {
			reasons = []string{"no transactions were produced"}
		}
		return nil, rejected, &ValidationError{Rejected: rejected, Reasons: reasons}
	}

	if rejected > 0 {
		v.log.WithFields(
			logging.Field{Key: logging.FieldRejected, Value: rejected},
			logging.Field{Key: "accepted", Value: len(survivors)},
		).Info("validation dropped rows")
	}
	return survivors, rejected, nil
}

// fillDefaults completes fields a lenient strategy may have left blank.
func (v *Validator) fillDefaults(tx *models.Transaction) {
	if strings.TrimSpace(tx.Currency) == "" {
		tx.Currency = v.defaultCurrency
	}
	tx.Currency = strings.ToUpper(tx.Currency)
	if tx.Confidence == 0 {
		tx.Confidence = DefaultConfidence
	}
	if tx.Type != models.TypeDebit && tx.Type != models.TypeCredit {
		tx.Type = models.DeriveType("", tx.Amount)
	}
	if strings.TrimSpace(tx.Category) == "" {
		tx.Category = models.DefaultCategory
	}
}
