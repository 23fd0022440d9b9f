package pipeline

import (
	"github.com/shopspring/decimal"

	"fjacquet/bank-csv/internal/models"
)

// CategoryStat aggregates one category across a parsed sequence.
type CategoryStat struct {
	Count int
	Total decimal.Decimal
}

// determinePrimaryCurrency scores each currency by 70% transaction frequency
// and 30% absolute value share, returning the highest scorer.
func determinePrimaryCurrency(txs []*models.Transaction) string {
	if len(txs) == 0 {
		return ""
	}

	counts := map[string]int{}
	values := map[string]decimal.Decimal{}
	totalValue := decimal.Zero
	for _, tx := range txs {
		counts[tx.Currency]++
		abs := tx.Amount.Abs()
		values[tx.Currency] = values[tx.Currency].Add(abs)
		totalValue = totalValue.Add(abs)
	}

	best, bestScore := "", -1.0
	for currency, count := range counts {
		freqShare := float64(count) / float64(len(txs))
		valueShare := 0.0
		if totalValue.IsPositive() {
			valueShare, _ = values[currency].Div(totalValue).Float64()
		}
		score := 0.7*freqShare + 0.3*valueShare
		if score > bestScore {
			best, bestScore = currency, score
		}
	}
	return best
}

func summarizeCategories(txs []*models.Transaction) map[string]CategoryStat {
	stats := map[string]CategoryStat{}
	for _, tx := range txs {
		s := stats[tx.Category]
		s.Count++
		s.Total = s.Total.Add(tx.Amount)
		stats[tx.Category] = s
	}
	return stats
}
