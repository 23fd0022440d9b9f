// Package rowparser converts one table row into a Transaction through a
// ladder of five strategies of decreasing strictness and confidence. Every
// strategy swallows its own failures into a tagged Outcome; the ladder never
// returns an error.
package rowparser

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"fjacquet/bank-csv/internal/currencyutils"
	"fjacquet/bank-csv/internal/dateutils"
	"fjacquet/bank-csv/internal/logging"
	"fjacquet/bank-csv/internal/models"
)

// Strategy identifiers and their fixed confidence scores.
const (
	StrategyStandard  = "standard"
	StrategyFuzzy     = "fuzzy_column_matching"
	StrategyPattern   = "pattern_extraction"
	StrategyManual    = "manual_field_detection"
	StrategyEmergency = "emergency_fallback"
)

const (
	ConfidenceStandard  = 0.9
	ConfidenceFuzzy     = 0.7
	ConfidencePattern   = 0.6
	ConfidenceManual    = 0.5
	ConfidenceEmergency = 0.2
)

// UnknownDescription is used when no description can be extracted.
const UnknownDescription = "Unknown transaction"

var (
	dateShapeRe   = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2}|\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4})\b`)
	amountShapeRe = regexp.MustCompile(`[-+]?[€$£¥₹₽₱₩฿₿]?\s?\d[\d.,]*`)
	digitRe       = regexp.MustCompile(`\d`)
)

// Row is one table row together with the column-detector's field view of it.
type Row struct {
	Index  int
	Cells  []string
	Fields map[string]string
}

func (r Row) field(name string) string {
	return strings.TrimSpace(r.Fields[name])
}

// Ladder runs the five row strategies strictly in order.
type Ladder struct {
	log             logging.Logger
	defaultCurrency string
	now             func() time.Time
}

func NewLadder(log logging.Logger, defaultCurrency string) *Ladder {
	return &Ladder{log: log, defaultCurrency: defaultCurrency, now: time.Now}
}

type strategyFunc struct {
	name       string
	confidence float64
	run        func(Row) (*models.Transaction, error)
}

// Parse attempts each strategy in order, returning the first success and the
// full trace of attempts made. A row that defeats every strategy yields a
// failed Outcome, never an error.
func (l *Ladder) Parse(row Row) (models.Outcome, []models.Attempt) {
	strategies := []strategyFunc{
		{StrategyStandard, ConfidenceStandard, l.parseStandard},
		{StrategyFuzzy, ConfidenceFuzzy, l.parseFuzzy},
		{StrategyPattern, ConfidencePattern, l.parsePattern},
		{StrategyManual, ConfidenceManual, l.parseManual},
		{StrategyEmergency, ConfidenceEmergency, l.parseEmergency},
	}

	var trace []models.Attempt
	for _, s := range strategies {
		tx, err := l.attempt(s, row)
		if err != nil {
			trace = append(trace, models.Attempt{Strategy: s.name, Reason: err.Error()})
			continue
		}
		trace = append(trace, models.Attempt{Strategy: s.name, Success: true})
		tx.Confidence = s.confidence
		l.log.WithFields(
			logging.Field{Key: logging.FieldRow, Value: row.Index},
			logging.Field{Key: logging.FieldStrategy, Value: s.name},
			logging.Field{Key: logging.FieldConfidence, Value: s.confidence},
		).Debug("row parsed")
		return models.Succeed(s.name, s.confidence, tx), trace
	}

	l.log.WithField(logging.FieldRow, row.Index).Debug("all row strategies failed")
	return models.Fail(StrategyEmergency, "no strategy could parse the row"), trace
}

// attempt isolates a strategy run so an unexpected panic inside one strategy
// becomes a Failure instead of aborting the file.
func (l *Ladder) attempt(s strategyFunc, row Row) (tx *models.Transaction, err error) {
	defer func() {
		if r := recover(); r != nil {
			tx, err = nil, fmt.Errorf("internal failure: %v", r)
		}
	}()
	return s.run(row)
}

// parseStandard trusts the column mapping verbatim: date, description, and
// amount must all be present and parseable.
func (l *Ladder) parseStandard(row Row) (*models.Transaction, error) {
	date := row.field(models.FieldDate)
	desc := row.field(models.FieldDescription)
	rawAmount := row.field(models.FieldAmount)
	if date == "" || desc == "" || rawAmount == "" {
		return nil, fmt.Errorf("missing canonical field values")
	}

	parsedDate, err := dateutils.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}
	amount, currency, err := currencyutils.ParseAmount(rawAmount, l.defaultCurrency)
	if err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}
	if explicit := row.field(models.FieldCurrency); explicit != "" {
		currency = currencyutils.DetectCurrency(explicit, currency)
	}

	return &models.Transaction{
		Date:        dateutils.ToISODate(parsedDate),
		Description: desc,
		Amount:      amount,
		Currency:    currency,
		Type:        models.DeriveType(row.field(models.FieldType), amount),
		Category:    categoryOf(row),
	}, nil
}

// parseFuzzy reclassifies the raw cells by content and requires candidates
// for at least three distinct fields before building a transaction from the
// first candidate of each.
func (l *Ladder) parseFuzzy(row Row) (*models.Transaction, error) {
	candidates := classifyCells(row.Cells)
	if len(candidates) < 3 {
		return nil, fmt.Errorf("only %d field candidates found, need 3", len(candidates))
	}

	dateCell, ok := candidates[models.FieldDate]
	if !ok {
		return nil, fmt.Errorf("no date-like cell")
	}
	amountCell, ok := candidates[models.FieldAmount]
	if !ok {
		return nil, fmt.Errorf("no amount-like cell")
	}
	desc := candidates[models.FieldDescription]
	if desc == "" {
		desc = UnknownDescription
	}

	parsedDate, err := dateutils.ParseDate(dateCell)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}
	amount, currency, err := currencyutils.ParseAmount(amountCell, l.defaultCurrency)
	if err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}

	return &models.Transaction{
		Date:        dateutils.ToISODate(parsedDate),
		Description: desc,
		Amount:      amount,
		Currency:    currency,
		Type:        models.DeriveType(row.field(models.FieldType), amount),
		Category:    categoryOf(row),
	}, nil
}

// parsePattern extracts a date-shaped and an amount-shaped substring from
// the concatenated row text; the leftover text becomes the description.
func (l *Ladder) parsePattern(row Row) (*models.Transaction, error) {
	text := strings.Join(row.Cells, " ")

	dateMatch := dateShapeRe.FindString(text)
	if dateMatch == "" {
		return nil, fmt.Errorf("no date-shaped substring")
	}
	remainder := strings.Replace(text, dateMatch, " ", 1)

	amountMatch := amountShapeRe.FindString(remainder)
	if amountMatch == "" {
		return nil, fmt.Errorf("no amount-shaped substring")
	}
	remainder = strings.Replace(remainder, amountMatch, " ", 1)

	parsedDate, err := dateutils.ParseDate(dateMatch)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}
	amount, currency, err := currencyutils.ParseAmount(amountMatch, l.defaultCurrency)
	if err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}

	desc := strings.Join(strings.Fields(remainder), " ")
	if desc == "" {
		desc = UnknownDescription
	}

	return &models.Transaction{
		Date:        dateutils.ToISODate(parsedDate),
		Description: desc,
		Amount:      amount,
		Currency:    currency,
		Type:        models.DeriveType(row.field(models.FieldType), amount),
		Category:    categoryOf(row),
	}, nil
}

// parseManual needs only a date candidate and an amount candidate among the
// per-cell classifications, picking the first of each.
func (l *Ladder) parseManual(row Row) (*models.Transaction, error) {
	var dateCell, amountCell, descCell string
	for _, cell := range row.Cells {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		switch {
		case dateCell == "" && isDateLike(cell):
			dateCell = cell
		case amountCell == "" && isAmountLike(cell):
			amountCell = cell
		case descCell == "" && hasLetter(cell):
			descCell = cell
		}
	}
	if dateCell == "" {
		return nil, fmt.Errorf("no date candidate")
	}
	if amountCell == "" {
		return nil, fmt.Errorf("no amount candidate")
	}
	if descCell == "" {
		descCell = UnknownDescription
	}

	parsedDate, err := dateutils.ParseDate(dateCell)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}
	amount, currency, err := currencyutils.ParseAmount(amountCell, l.defaultCurrency)
	if err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}

	return &models.Transaction{
		Date:        dateutils.ToISODate(parsedDate),
		Description: descCell,
		Amount:      amount,
		Currency:    currency,
		Type:        models.DeriveType(row.field(models.FieldType), amount),
		Category:    categoryOf(row),
	}, nil
}

// parseEmergency salvages any row holding a numeric token. The date falls
// back to today and the description is fixed; only a row with no numbers at
// all defeats it.
func (l *Ladder) parseEmergency(row Row) (*models.Transaction, error) {
	var amountCell, dateCell string
	for _, cell := range row.Cells {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		if dateCell == "" && isDateLike(cell) {
			dateCell = cell
			continue
		}
		if amountCell == "" && digitRe.MatchString(cell) {
			if _, _, err := currencyutils.ParseAmount(cell, l.defaultCurrency); err == nil {
				amountCell = cell
			}
		}
	}
	if amountCell == "" {
		return nil, fmt.Errorf("no numeric token in row")
	}

	date := l.now()
	if dateCell != "" {
		if parsed, err := dateutils.ParseDate(dateCell); err == nil {
			date = parsed
		}
	}

	amount, currency, err := currencyutils.ParseAmount(amountCell, l.defaultCurrency)
	if err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}

	return &models.Transaction{
		Date:        dateutils.ToISODate(date),
		Description: UnknownDescription,
		Amount:      amount,
		Currency:    currency,
		Type:        models.DeriveType(row.field(models.FieldType), amount),
		Category:    categoryOf(row),
	}, nil
}

// categoryOf returns the row's explicit category, lowercased, or the
// default. The external categorizer may refine the default later.
func categoryOf(row Row) string {
	if c := strings.ToLower(row.field(models.FieldCategory)); c != "" {
		return c
	}
	return models.DefaultCategory
}

// classifyCells assigns each cell to the first field whose content signature
// it matches, keeping the first candidate per field.
func classifyCells(cells []string) map[string]string {
	candidates := map[string]string{}
	for _, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		switch {
		case candidates[models.FieldDate] == "" && isDateLike(cell):
			candidates[models.FieldDate] = cell
		case candidates[models.FieldAmount] == "" && isAmountLike(cell):
			candidates[models.FieldAmount] = cell
		case candidates[models.FieldDescription] == "" && isDescriptionLike(cell):
			candidates[models.FieldDescription] = cell
		}
	}
	return candidates
}

func isDateLike(cell string) bool {
	if !dateShapeRe.MatchString(cell) {
		return false
	}
	_, err := dateutils.ParseDate(cell)
	return err == nil
}

func isAmountLike(cell string) bool {
	if !digitRe.MatchString(cell) {
		return false
	}
	_, _, err := currencyutils.ParseAmount(cell, "USD")
	return err == nil
}

func isDescriptionLike(cell string) bool {
	return len([]rune(cell)) > 5 && hasLetter(cell)
}

func hasLetter(cell string) bool {
	for _, r := range cell {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
