package validator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/bank-csv/internal/logging"
	"fjacquet/bank-csv/internal/models"
)

func validTx() *models.Transaction {
	return &models.Transaction{
		Date:        "2024-01-01",
		Description: "Coffee",
		Amount:      decimal.RequireFromString("-10.00"),
		Currency:    "USD",
		Type:        models.TypeDebit,
		Category:    "food",
		Confidence:  0.9,
	}
}

func TestValidatePassesGoodTransactions(t *testing.T) {
	v := New(logging.NewMockLogger(), "USD")

	survivors, rejected, err := v.Validate([]*models.Transaction{validTx(), validTx()})
	require.NoError(t, err)
	assert.Len(t, survivors, 2)
	assert.Equal(t, 0, rejected)
}

func TestValidateFillsDefaults(t *testing.T) {
	v := New(logging.NewMockLogger(), "CHF")

	tx := validTx()
	tx.Currency = ""
	tx.Confidence = 0
	tx.Type = "unknown"
	tx.Category = ""
	tx.Amount = decimal.RequireFromString("25.00")

	survivors, _, err := v.Validate([]*models.Transaction{tx})
	require.NoError(t, err)
	got := survivors[0]
	assert.Equal(t, "CHF", got.Currency)
	assert.Equal(t, DefaultConfidence, got.Confidence)
	assert.Equal(t, models.TypeCredit, got.Type, "type falls back to amount sign")
	assert.Equal(t, models.DefaultCategory, got.Category)
}

func TestValidateDropsViolators(t *testing.T) {
	v := New(logging.NewMockLogger(), "USD")

	bad := validTx()
	bad.Date = "not a date"
	noDesc := validTx()
	noDesc.Description = "   "

	survivors, rejected, err := v.Validate([]*models.Transaction{validTx(), bad, noDesc})
	require.NoError(t, err)
	assert.Len(t, survivors, 1)
	assert.Equal(t, 2, rejected)
}

func TestValidateAllRejected(t *testing.T) {
	v := New(logging.NewMockLogger(), "USD")

	bad := validTx()
	bad.Date = "garbage"

	_, rejected, err := v.Validate([]*models.Transaction{bad})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 1, rejected)
	assert.NotEmpty(t, verr.Reasons)
	assert.Contains(t, verr.Error(), "no valid transactions")
}

func TestValidateEmptyInput(t *testing.T) {
	v := New(logging.NewMockLogger(), "USD")

	_, _, err := v.Validate(nil)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"no transactions were produced"}, verr.Reasons)
}
