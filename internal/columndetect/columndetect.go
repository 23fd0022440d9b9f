// Package columndetect maps table columns to the canonical transaction
// fields, first by header name, then by sampling column contents.
package columndetect

import (
	"regexp"
	"strings"
	"unicode"

	"fjacquet/bank-csv/internal/currencyutils"
	"fjacquet/bank-csv/internal/dateutils"
	"fjacquet/bank-csv/internal/logging"
	"fjacquet/bank-csv/internal/models"
)

const contentSampleSize = 10

// headerPatterns are tried per field in this order; the first unclaimed
// column whose header matches wins, and a column maps to at most one field.
var headerPatterns = []struct {
	field   string
	pattern *regexp.Regexp
}{
	{models.FieldDate, regexp.MustCompile(`(?i)\b(date|datum|fecha|booked|booking|posted|posting|valuta|time)\b`)},
	{models.FieldDescription, regexp.MustCompile(`(?i)\b(description|desc|details?|memo|narrative|payee|merchant|reference|text|label|libell[ée])\b`)},
	{models.FieldAmount, regexp.MustCompile(`(?i)\b(amount|amt|value|sum|total|debit|credit|montant|betrag|importe)\b`)},
	{models.FieldType, regexp.MustCompile(`(?i)\b(type|direction|dr/?cr|transaction.?type)\b`)},
	{models.FieldCurrency, regexp.MustCompile(`(?i)\b(currency|ccy|cur|devise|w[äa]hrung|iso.?code)\b`)},
	{models.FieldCategory, regexp.MustCompile(`(?i)\b(category|categor[iy]|cat[ée]gorie)\b`)},
}

// Assignment binds a canonical field to a column, recording whether the
// header name itself matched. Row strategies trust header-derived
// assignments verbatim; content-derived ones are advisory and leave the
// per-row classifiers to re-derive fields at lower confidence.
type Assignment struct {
	Index      int
	FromHeader bool
}

// Mapping holds field-to-column assignments. A missing field has no entry.
type Mapping map[string]Assignment

// Column returns the column index for a field and whether one was assigned.
func (m Mapping) Column(field string) (int, bool) {
	a, ok := m[field]
	return a.Index, ok
}

// HeaderFields returns only the assignments derived from header names.
func (m Mapping) HeaderFields() map[string]int {
	out := make(map[string]int, len(m))
	for field, a := range m {
		if a.FromHeader {
			out[field] = a.Index
		}
	}
	return out
}

// Detector assigns canonical fields to columns.
type Detector struct {
	log logging.Logger
}

func New(log logging.Logger) *Detector {
	return &Detector{log: log}
}

// Detect maps headers to canonical fields using header patterns, then falls
// back to content sampling for any field still unmapped.
func (d *Detector) Detect(headers []string, rows [][]string) Mapping {
	mapping := Mapping{}
	claimed := map[int]bool{}

	for _, hp := range headerPatterns {
		for col, header := range headers {
			if claimed[col] {
				continue
			}
			if hp.pattern.MatchString(strings.TrimSpace(header)) {
				mapping[hp.field] = Assignment{Index: col, FromHeader: true}
				claimed[col] = true
				break
			}
		}
	}

	d.detectByContent(mapping, claimed, headers, rows)

	fields := make([]logging.Field, 0, len(mapping))
	for field, a := range mapping {
		fields = append(fields, logging.Field{Key: field, Value: a.Index})
	}
	d.log.WithFields(fields...).Debug("column mapping resolved")
	return mapping
}

// detectByContent samples up to ten non-empty values per unclaimed column and
// assigns fields whose content signature clears its threshold: dates at 70%,
// amounts at 50%, descriptions by mean length and letter share.
func (d *Detector) detectByContent(mapping Mapping, claimed map[int]bool, headers []string, rows [][]string) {
	width := len(headers)
	if width == 0 && len(rows) > 0 {
		width = len(rows[0])
	}

	for col := 0; col < width; col++ {
		if claimed[col] {
			continue
		}
		samples := sampleColumn(rows, col)
		if len(samples) == 0 {
			continue
		}
		switch {
		case !hasField(mapping, models.FieldDate) && ratio(samples, isDateLike) >= 0.7:
			mapping[models.FieldDate] = Assignment{Index: col}
			claimed[col] = true
		case !hasField(mapping, models.FieldAmount) && ratio(samples, isAmountLike) >= 0.5:
			mapping[models.FieldAmount] = Assignment{Index: col}
			claimed[col] = true
		case !hasField(mapping, models.FieldDescription) && isDescriptionLike(samples):
			mapping[models.FieldDescription] = Assignment{Index: col}
			claimed[col] = true
		}
	}
}

func sampleColumn(rows [][]string, col int) []string {
	var samples []string
	for _, row := range rows {
		if len(samples) >= contentSampleSize {
			break
		}
		if col >= len(row) {
			continue
		}
		cell := strings.TrimSpace(row[col])
		if cell == "" {
			continue
		}
		samples = append(samples, cell)
	}
	return samples
}

func hasField(mapping Mapping, field string) bool {
	_, ok := mapping[field]
	return ok
}

func ratio(samples []string, match func(string) bool) float64 {
	hits := 0
	for _, s := range samples {
		if match(s) {
			hits++
		}
	}
	return float64(hits) / float64(len(samples))
}

func isDateLike(s string) bool {
	_, err := dateutils.ParseDate(s)
	return err == nil
}

func isAmountLike(s string) bool {
	_, _, err := currencyutils.ParseAmount(s, "USD")
	return err == nil
}

// isDescriptionLike requires a mean length above five and letters in at
// least 80% of sampled values.
func isDescriptionLike(samples []string) bool {
	totalLen, lettered := 0, 0
	for _, s := range samples {
		totalLen += len([]rune(s))
		for _, r := range s {
			if unicode.IsLetter(r) {
				lettered++
				break
			}
		}
	}
	mean := float64(totalLen) / float64(len(samples))
	return mean > 5 && float64(lettered)/float64(len(samples)) >= 0.8
}
