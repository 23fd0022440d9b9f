package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDeriveType(t *testing.T) {
	tests := []struct {
		name     string
		explicit string
		amount   string
		want     string
	}{
		{"explicit debit", "debit", "100", TypeDebit},
		{"explicit credit", "credit", "-100", TypeCredit},
		{"expense alias", "Expense", "50", TypeDebit},
		{"withdrawal alias", "WITHDRAWAL", "50", TypeDebit},
		{"deposit alias", "deposit", "-50", TypeCredit},
		{"income alias", "income", "-50", TypeCredit},
		{"bank dbit code", "DBIT", "10", TypeDebit},
		{"bank crdt code", "CRDT", "10", TypeCredit},
		{"padded token", "  credit  ", "-10", TypeCredit},
		{"unknown negative by sign", "xfer", "-25.00", TypeDebit},
		{"unknown positive by sign", "xfer", "25.00", TypeCredit},
		{"empty negative by sign", "", "-1", TypeDebit},
		{"empty zero is credit", "", "0", TypeCredit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveType(tt.explicit, decimal.RequireFromString(tt.amount))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransactionValidate(t *testing.T) {
	valid := func() Transaction {
		return Transaction{
			Date:        "2024-01-15",
			Description: "Coffee shop",
			Amount:      decimal.RequireFromString("-4.50"),
			Currency:    "CHF",
			Type:        TypeDebit,
			Category:    DefaultCategory,
			Confidence:  0.9,
		}
	}

	t.Run("valid passes", func(t *testing.T) {
		tx := valid()
		assert.NoError(t, tx.Validate())
	})

	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr string
	}{
		{"bad date format", func(tx *Transaction) { tx.Date = "15/01/2024" }, "date"},
		{"impossible date", func(tx *Transaction) { tx.Date = "2024-02-30" }, "date"},
		{"blank description", func(tx *Transaction) { tx.Description = "   " }, "description"},
		{"unknown type", func(tx *Transaction) { tx.Type = "transfer" }, "type"},
		{"short currency", func(tx *Transaction) { tx.Currency = "E" }, "currency"},
		{"confidence above one", func(tx *Transaction) { tx.Confidence = 1.5 }, "confidence"},
		{"confidence negative", func(tx *Transaction) { tx.Confidence = -0.1 }, "confidence"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := valid()
			tt.mutate(&tx)
			err := tx.Validate()
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestTransactionTypeHelpers(t *testing.T) {
	debit := Transaction{Type: TypeDebit}
	credit := Transaction{Type: TypeCredit}

	assert.True(t, debit.IsDebit())
	assert.False(t, debit.IsCredit())
	assert.True(t, credit.IsCredit())
	assert.False(t, credit.IsDebit())
}

func TestTransactionFieldMap(t *testing.T) {
	tx := Transaction{
		Date:        "2024-03-01",
		Description: "Salary",
		Amount:      decimal.RequireFromString("5000"),
		Currency:    "CHF",
		Type:        TypeCredit,
		Category:    "income",
		Confidence:  0.9,
	}

	m := tx.FieldMap()
	assert.Equal(t, "2024-03-01", m["date"])
	assert.Equal(t, "Salary", m["description"])
	assert.Equal(t, "5000.00", m["amount"])
	assert.Equal(t, "CHF", m["currency"])
	assert.Equal(t, TypeCredit, m["type"])
	assert.Equal(t, "income", m["category"])
	assert.Equal(t, "0.90", m["confidence_score"])
}
