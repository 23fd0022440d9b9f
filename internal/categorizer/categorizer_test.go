package categorizer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"fjacquet/bank-csv/internal/logging"
	"fjacquet/bank-csv/internal/models"
)

type stubLoader struct {
	categories []models.CategoryConfig
	err        error
}

func (s stubLoader) LoadCategories() ([]models.CategoryConfig, error) {
	return s.categories, s.err
}

func TestCategorizeKeywordMatch(t *testing.T) {
	c := NewDefaultCategorizer(logging.NewMockLogger())

	tests := []struct {
		description string
		want        string
	}{
		{"MIGROS Zurich", "groceries"},
		{"Monthly salary payment", "income"},
		{"Netflix subscription", "entertainment"},
		{"Uber trip downtown", "transport"},
		{"Something unrecognizable", models.DefaultCategory},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			category, confidence := c.Categorize(tt.description)
			assert.Equal(t, tt.want, category)
			if tt.want == models.DefaultCategory {
				assert.Zero(t, confidence)
			} else {
				assert.Equal(t, keywordConfidence, confidence)
			}
		})
	}
}

func TestCategorizeEmptyDescription(t *testing.T) {
	c := NewDefaultCategorizer(logging.NewMockLogger())
	category, confidence := c.Categorize("   ")
	assert.Equal(t, models.DefaultCategory, category)
	assert.Zero(t, confidence)
}

func TestNewKeywordCategorizerFromLoader(t *testing.T) {
	t.Run("configured categories win", func(t *testing.T) {
		loader := stubLoader{categories: []models.CategoryConfig{
			{Name: "pets", Keywords: []string{"vet"}},
		}}
		c := NewKeywordCategorizer(loader, logging.NewMockLogger())
		category, _ := c.Categorize("VET clinic visit")
		assert.Equal(t, "pets", category)
	})

	t.Run("loader failure falls back to defaults", func(t *testing.T) {
		loader := stubLoader{err: errors.New("boom")}
		c := NewKeywordCategorizer(loader, logging.NewMockLogger())
		category, _ := c.Categorize("MIGROS Zurich")
		assert.Equal(t, "groceries", category)
	})
}
