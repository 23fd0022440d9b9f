package pipeline

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"fjacquet/bank-csv/internal/models"
)

func tx(currency, amount, category string) *models.Transaction {
	return &models.Transaction{
		Currency: currency,
		Amount:   decimal.RequireFromString(amount),
		Category: category,
	}
}

func TestDeterminePrimaryCurrency(t *testing.T) {
	t.Run("frequency dominates", func(t *testing.T) {
		txs := []*models.Transaction{
			tx("CHF", "10.00", "other"),
			tx("CHF", "12.00", "other"),
			tx("CHF", "8.00", "other"),
			tx("EUR", "20.00", "other"),
		}
		assert.Equal(t, "CHF", determinePrimaryCurrency(txs))
	})

	t.Run("large value can outweigh a slim frequency edge", func(t *testing.T) {
		// EUR: freq 2/5, value 9900/10000. CHF: freq 3/5, value 100/10000.
		txs := []*models.Transaction{
			tx("CHF", "40.00", "other"),
			tx("CHF", "30.00", "other"),
			tx("CHF", "30.00", "other"),
			tx("EUR", "-4900.00", "other"),
			tx("EUR", "5000.00", "other"),
		}
		assert.Equal(t, "EUR", determinePrimaryCurrency(txs))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, "", determinePrimaryCurrency(nil))
	})
}

func TestSummarizeCategories(t *testing.T) {
	txs := []*models.Transaction{
		tx("USD", "-50.00", "groceries"),
		tx("USD", "-25.00", "groceries"),
		tx("USD", "3000.00", "income"),
	}
	stats := summarizeCategories(txs)
	assert.Equal(t, 2, stats["groceries"].Count)
	assert.True(t, stats["groceries"].Total.Equal(decimal.RequireFromString("-75.00")))
	assert.Equal(t, 1, stats["income"].Count)
}
