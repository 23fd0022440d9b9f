// Package categorizer assigns spending categories to transaction
// descriptions. The pipeline treats it as an injectable collaborator and
// calls it only when a row strategy produced no category of its own.
package categorizer

import (
	"strings"

	"fjacquet/bank-csv/internal/logging"
	"fjacquet/bank-csv/internal/models"
)

// Categorizer is the collaborator contract the pipeline consumes.
type Categorizer interface {
	Categorize(description string) (category string, confidence float64)
}

// keywordConfidence is the fixed confidence reported for a keyword hit.
const keywordConfidence = 0.8

// defaultCategories is the built-in keyword table, used when no YAML
// configuration overrides it.
var defaultCategories = []models.CategoryConfig{
	{Name: "income", Keywords: []string{"salary", "payroll", "wages", "deposit", "dividend", "refund"}},
	{Name: "groceries", Keywords: []string{"grocery", "supermarket", "market", "migros", "coop", "aldi", "lidl"}},
	{Name: "dining", Keywords: []string{"restaurant", "cafe", "coffee", "pizza", "bar", "takeaway", "kebab"}},
	{Name: "transport", Keywords: []string{"uber", "taxi", "fuel", "gas station", "parking", "transit", "railway", "sbb"}},
	{Name: "utilities", Keywords: []string{"electric", "water", "internet", "phone", "utility", "swisscom"}},
	{Name: "entertainment", Keywords: []string{"netflix", "spotify", "cinema", "movie", "steam", "concert"}},
	{Name: "shopping", Keywords: []string{"amazon", "store", "shop", "mall", "galaxus", "digitec"}},
	{Name: "healthcare", Keywords: []string{"pharmacy", "doctor", "hospital", "medical", "dentist"}},
	{Name: "housing", Keywords: []string{"rent", "mortgage", "lease", "landlord"}},
	{Name: "fees", Keywords: []string{"fee", "charge", "interest", "penalty"}},
	{Name: "transfer", Keywords: []string{"transfer", "twint", "wire", "sepa"}},
}

// KeywordCategorizer matches descriptions against category keyword lists,
// first configured category wins.
type KeywordCategorizer struct {
	categories []models.CategoryConfig
	log        logging.Logger
}

// CategoryLoader is the slice of the store this package needs.
type CategoryLoader interface {
	LoadCategories() ([]models.CategoryConfig, error)
}

// NewKeywordCategorizer builds a categorizer from the loader's categories,
// falling back to the built-in table when the loader has none.
func NewKeywordCategorizer(loader CategoryLoader, log logging.Logger) *KeywordCategorizer {
	categories, err := loader.LoadCategories()
	if err != nil {
		log.WithError(err).Warn("loading categories failed, using built-in table")
		categories = nil
	}
	if len(categories) == 0 {
		categories = defaultCategories
	}
	return &KeywordCategorizer{categories: categories, log: log}
}

// NewDefaultCategorizer builds a categorizer on the built-in keyword table.
func NewDefaultCategorizer(log logging.Logger) *KeywordCategorizer {
	return &KeywordCategorizer{categories: defaultCategories, log: log}
}

// Categorize returns the first category whose keyword appears in the
// description, case-insensitive. No match returns the default category with
// zero confidence.
func (c *KeywordCategorizer) Categorize(description string) (string, float64) {
	upper := strings.ToUpper(description)
	if strings.TrimSpace(upper) == "" {
		return models.DefaultCategory, 0
	}

	for _, category := range c.categories {
		for _, keyword := range category.Keywords {
			if strings.Contains(upper, strings.ToUpper(keyword)) {
				c.log.WithFields(
					logging.Field{Key: "keyword", Value: keyword},
					logging.Field{Key: "category", Value: category.Name},
				).Debug("description categorized by keyword")
				return category.Name, keywordConfidence
			}
		}
	}
	return models.DefaultCategory, 0
}
