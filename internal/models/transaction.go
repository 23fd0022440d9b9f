// Package models provides the data structures used throughout the application.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types.
const (
	TypeDebit  = "debit"
	TypeCredit = "credit"
)

// DefaultCategory is assigned when no category was supplied by the row or
// the categorizer.
const DefaultCategory = "other"

// Transaction is a fully normalized financial transaction. Every field is
// populated at construction time; a row either yields a complete Transaction
// or a failure, never a partial record.
type Transaction struct {
	Date        string          `csv:"Date"`            // YYYY-MM-DD
	Description string          `csv:"Description"`     // non-empty, trimmed
	Amount      decimal.Decimal `csv:"Amount"`          // signed, in Currency
	Currency    string          `csv:"Currency"`        // 3-letter uppercase code
	Type        string          `csv:"Type"`            // "debit" or "credit"
	Category    string          `csv:"Category"`        // free-form, default "other"
	Confidence  float64         `csv:"ConfidenceScore"` // [0.0, 1.0]
}

// IsDebit returns true if the transaction is outgoing money.
func (t *Transaction) IsDebit() bool {
	return t.Type == TypeDebit
}

// IsCredit returns true if the transaction is incoming money.
func (t *Transaction) IsCredit() bool {
	return t.Type == TypeCredit
}

// DeriveType maps an explicit type token (any case) to a transaction type,
// falling back to the sign of the amount when the token is not recognized.
func DeriveType(explicit string, amount decimal.Decimal) string {
	switch strings.ToLower(strings.TrimSpace(explicit)) {
	case "debit", "expense", "withdrawal", "dbit":
		return TypeDebit
	case "credit", "income", "deposit", "crdt":
		return TypeCredit
	}
	if amount.IsNegative() {
		return TypeDebit
	}
	return TypeCredit
}

// Validate reports the first data-model invariant this transaction violates,
// or nil. Used by the final validation pass.
func (t *Transaction) Validate() error {
	if _, err := time.Parse("2006-01-02", t.Date); err != nil {
		return fmt.Errorf("date %q is not a valid YYYY-MM-DD date", t.Date)
	}
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("description is empty")
	}
	if t.Type != TypeDebit && t.Type != TypeCredit {
		return fmt.Errorf("type %q is not debit or credit", t.Type)
	}
	if len(t.Currency) != 3 {
		return fmt.Errorf("currency %q is not a 3-letter code", t.Currency)
	}
	if t.Confidence < 0 || t.Confidence > 1 {
		return fmt.Errorf("confidence %v outside [0,1]", t.Confidence)
	}
	return nil
}

// FieldMap exposes the transaction as the flat string map of the output
// boundary.
func (t *Transaction) FieldMap() map[string]string {
	return map[string]string{
		"date":             t.Date,
		"description":      t.Description,
		"amount":           t.Amount.StringFixed(2),
		"currency":         t.Currency,
		"type":             t.Type,
		"category":         t.Category,
		"confidence_score": fmt.Sprintf("%.2f", t.Confidence),
	}
}
