// Package sanitizer repairs common export defects in parsed tables before
// column detection runs. Every step is fail-open: a step that cannot improve
// the data leaves it alone, and an internal failure returns the input
// unchanged.
package sanitizer

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"fjacquet/bank-csv/internal/logging"
	"fjacquet/bank-csv/internal/models"
)

// ChangeReport summarizes what sanitization did to a table.
type ChangeReport struct {
	RowsRemoved      int
	ColumnsChanged   int
	EmptyCellsBefore int
	EmptyCellsAfter  int
	ShiftedRows      []int
}

const sampleSize = 10

var (
	letterRunRe    = regexp.MustCompile(`[A-Za-z]{3,}`)
	currencyCharRe = regexp.MustCompile(`[€$£¥₹₽₱₩฿₿]`)
	numericCellRe  = regexp.MustCompile(`^[+\-]?[\d.,]+$`)
	separatorRowRe = regexp.MustCompile(`^[-=_\s]+$`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
)

// Sanitizer applies a fixed sequence of repair steps to table rows.
type Sanitizer struct {
	log logging.Logger
}

func New(log logging.Logger) *Sanitizer {
	return &Sanitizer{log: log}
}

// Sanitize runs all repair steps in order and reports the changes made.
// Running it on its own output is a no-op.
func (s *Sanitizer) Sanitize(rows [][]string) (out [][]string, report ChangeReport) {
	defer func() {
		if r := recover(); r != nil {
			s.log.WithField(logging.FieldReason, r).Warn("sanitization failed, keeping rows unchanged")
			out = rows
			report = ChangeReport{}
		}
	}()

	report.EmptyCellsBefore = countEmptyCells(rows)

	report.ShiftedRows = detectShiftedRows(rows)
	rows, report.ColumnsChanged = mergeSplitCurrencyColumn(rows)
	rows = normalizeCells(rows)
	rows = cleanCells(rows)
	rows, report.RowsRemoved = dropJunkRows(rows)

	report.EmptyCellsAfter = countEmptyCells(rows)

	if report.RowsRemoved > 0 || report.ColumnsChanged > 0 || len(report.ShiftedRows) > 0 {
		s.log.WithFields(
			logging.Field{Key: "rows_removed", Value: report.RowsRemoved},
			logging.Field{Key: "columns_changed", Value: report.ColumnsChanged},
			logging.Field{Key: "shifted_rows", Value: len(report.ShiftedRows)},
		).Debug("sanitization changed table")
	}
	return rows, report
}

// detectShiftedRows flags rows whose first cell reads like text or money
// instead of a date. Detection only; the rows are left in place for the row
// ladder to handle.
func detectShiftedRows(rows [][]string) []int {
	var shifted []int
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		first := strings.TrimSpace(row[0])
		if first == "" {
			continue
		}
		if letterRunRe.MatchString(first) || currencyCharRe.MatchString(first) {
			shifted = append(shifted, i)
		}
	}
	return shifted
}

// mergeSplitCurrencyColumn rejoins amounts that a bad export split at the
// decimal separator, e.g. ...,"1.234","56". It fires only when the table has
// at least two majority-numeric columns and every sampled value in the last
// column is an integer in [0,99].
func mergeSplitCurrencyColumn(rows [][]string) ([][]string, int) {
	if len(rows) == 0 {
		return rows, 0
	}
	width := len(rows[0])
	if width < 2 || countNumericColumns(rows, width) < 2 {
		return rows, 0
	}
	if !lastColumnLooksLikeCents(rows, width) {
		return rows, 0
	}

	merged := make([][]string, 0, len(rows))
	for _, row := range rows {
		if len(row) < width {
			merged = append(merged, row)
			continue
		}
		joined := make([]string, width-1)
		copy(joined, row[:width-1])
		cents := strings.TrimSpace(row[width-1])
		if cents != "" {
			if len(cents) == 1 {
				cents = "0" + cents
			}
			joined[width-2] = strings.TrimSpace(row[width-2]) + "." + cents
		}
		merged = append(merged, joined)
	}
	return merged, 1
}

func countNumericColumns(rows [][]string, width int) int {
	numeric := 0
	for col := 0; col < width; col++ {
		sampled, matches := 0, 0
		for _, row := range rows {
			if sampled >= sampleSize {
				break
			}
			if col >= len(row) {
				continue
			}
			cell := strings.TrimSpace(row[col])
			if cell == "" {
				continue
			}
			sampled++
			if numericCellRe.MatchString(cell) && strings.ContainsAny(cell, "0123456789") {
				matches++
			}
		}
		if sampled > 0 && matches*2 >= sampled {
			numeric++
		}
	}
	return numeric
}

func lastColumnLooksLikeCents(rows [][]string, width int) bool {
	sampled := 0
	for _, row := range rows {
		if sampled >= sampleSize {
			break
		}
		if len(row) < width {
			continue
		}
		cell := strings.TrimSpace(row[width-1])
		if cell == "" {
			continue
		}
		sampled++
		n, err := strconv.Atoi(cell)
		if err != nil || n < 0 || n > 99 {
			return false
		}
	}
	return sampled > 0
}

// normalizeCells applies NFKC so fullwidth digits and currency glyphs fold
// onto their canonical forms before any pattern matching.
func normalizeCells(rows [][]string) [][]string {
	for _, row := range rows {
		for i, cell := range row {
			row[i] = norm.NFKC.String(cell)
		}
	}
	return rows
}

func cleanCells(rows [][]string) [][]string {
	for _, row := range rows {
		for i, cell := range row {
			cell = strings.TrimSpace(cell)
			cell = stripWrappingQuotes(cell)
			cell = whitespaceRe.ReplaceAllString(cell, " ")
			row[i] = strings.TrimSpace(cell)
		}
	}
	return rows
}

func stripWrappingQuotes(cell string) string {
	for len(cell) >= 2 {
		first, last := cell[0], cell[len(cell)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			cell = strings.TrimSpace(cell[1 : len(cell)-1])
			continue
		}
		break
	}
	return cell
}

// dropJunkRows removes rows that carry no transaction data: all-empty rows,
// visual separator rows, and header rows repeated mid-file.
func dropJunkRows(rows [][]string) ([][]string, int) {
	kept := make([][]string, 0, len(rows))
	removed := 0
	for _, row := range rows {
		if isJunkRow(row) {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	return kept, removed
}

func isJunkRow(row []string) bool {
	allEmpty := true
	for _, cell := range row {
		if cell != "" {
			allEmpty = false
			break
		}
	}
	if allEmpty {
		return true
	}
	if separatorRowRe.MatchString(strings.Join(row, "")) {
		return true
	}
	for _, cell := range row {
		if cell == "" {
			continue
		}
		return models.IsCanonicalField(strings.ToLower(cell))
	}
	return false
}

func countEmptyCells(rows [][]string) int {
	count := 0
	for _, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) == "" {
				count++
			}
		}
	}
	return count
}
