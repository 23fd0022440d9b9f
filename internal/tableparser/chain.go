package tableparser

import (
	"encoding/csv"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"fjacquet/bank-csv/internal/analyzer"
	"fjacquet/bank-csv/internal/logging"
)

// Strategy identifiers, recorded in attempt logs and CorruptionError.
const (
	StrategyStandard        = "standard"
	StrategyDelimiterDetect = "delimiter_detection"
	StrategyColumnRecovery  = "corrupted_column_recovery"
	StrategyManualMapping   = "manual_mapping"
	StrategyFinalRecovery   = "final_recovery"
)

const (
	headerScanRows    = 3
	numericSampleSize = 10
	minValidColumns   = 3
)

var numericContentRe = regexp.MustCompile(`^[+\-]?[\d.,]+$`)

// Chain tries whole-table strategies strictly in order and accepts the first
// structurally valid table. All strategies failing is the one case where the
// whole file is rejected.
type Chain struct {
	log              logging.Logger
	defaultDelimiter rune
}

func NewChain(log logging.Logger, defaultDelimiter rune) *Chain {
	if defaultDelimiter == 0 {
		defaultDelimiter = ','
	}
	return &Chain{log: log, defaultDelimiter: defaultDelimiter}
}

// Parse runs the strategy ladder. It returns the accepted table and the name
// of the strategy that produced it, or a *CorruptionError.
func (c *Chain) Parse(data []byte, summary analyzer.Summary) (Table, string, error) {
	text, err := analyzer.Decode(data, summary.Encoding)
	if err != nil {
		// Encoding was detected from the same bytes, so this is unexpected;
		// fall back to treating the bytes as UTF-8.
		c.log.WithError(err).Warn("decode failed, falling back to raw bytes")
		text = string(data)
	}

	strategies := []struct {
		name string
		skip bool
		run  func(string, analyzer.Summary) (Table, error)
	}{
		{StrategyStandard, false, c.parseStandard},
		{StrategyDelimiterDetect, false, c.parseWithDelimiterDetection},
		{StrategyColumnRecovery, !summary.Corrupted(), c.parseWithColumnRecovery},
		{StrategyManualMapping, false, c.parseWithManualMapping},
	}

	var attempts []string
	for _, s := range strategies {
		if s.skip {
			continue
		}
		attempts = append(attempts, s.name)
		table, err := s.run(text, summary)
		if err != nil {
			c.log.WithError(err).WithField(logging.FieldStrategy, s.name).Debug("table strategy failed")
			continue
		}
		if reason := c.invalidReason(table); reason != "" {
			c.log.WithFields(
				logging.Field{Key: logging.FieldStrategy, Value: s.name},
				logging.Field{Key: logging.FieldReason, Value: reason},
			).Debug("table strategy produced invalid table")
			continue
		}
		c.log.WithField(logging.FieldStrategy, s.name).Info("table parsed")
		return table, s.name, nil
	}

	// Unconditional last resort: accept any table with rows at all, without
	// the structural validity gate.
	attempts = append(attempts, StrategyFinalRecovery)
	table, err := c.parseWithManualMapping(text, summary)
	if err == nil && len(table.Rows) > 0 {
		c.log.WithField(logging.FieldStrategy, StrategyFinalRecovery).Warn("table accepted by final recovery pass")
		return table, StrategyFinalRecovery, nil
	}

	reason := "no strategy produced a valid table"
	if err != nil {
		reason = err.Error()
	}
	return Table{}, "", &CorruptionError{Attempts: attempts, Reason: reason}
}

func (c *Chain) parseStandard(text string, summary analyzer.Summary) (Table, error) {
	records, err := readCSV(text, c.defaultDelimiter)
	if err != nil {
		return Table{}, err
	}
	return buildTable(records, summary.HasHeader), nil
}

// parseWithDelimiterDetection retries once per ranked delimiter, accepting
// the first result with more than two columns.
func (c *Chain) parseWithDelimiterDetection(text string, summary analyzer.Summary) (Table, error) {
	for _, dc := range summary.Delimiters {
		if dc.Count == 0 {
			continue
		}
		records, err := readCSV(text, dc.Delimiter)
		if err != nil {
			continue
		}
		table := buildTable(records, summary.HasHeader)
		if table.Width() > 2 {
			return table, nil
		}
	}
	return Table{}, fmt.Errorf("no delimiter candidate yielded more than two columns")
}

// parseWithColumnRecovery parses headerless, then promotes the first of the
// leading rows whose cells are majority letter-bearing to be the header.
func (c *Chain) parseWithColumnRecovery(text string, summary analyzer.Summary) (Table, error) {
	records, err := readCSV(text, summary.BestDelimiter())
	if err != nil {
		return Table{}, err
	}
	if len(records) == 0 {
		return Table{}, fmt.Errorf("no rows")
	}

	headerIdx := -1
	for i := 0; i < len(records) && i < headerScanRows; i++ {
		if majorityLetterCells(records[i]) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return Table{Headers: synthesizeHeaders(len(records[0])), Rows: records}, nil
	}

	rows := make([][]string, 0, len(records)-1)
	rows = append(rows, records[:headerIdx]...)
	rows = append(rows, records[headerIdx+1:]...)
	return Table{Headers: trimHeaders(records[headerIdx]), Rows: rows}, nil
}

// parseWithManualMapping parses with defaults and performs only generic
// cleanup: drop fully-empty rows, trim header names.
func (c *Chain) parseWithManualMapping(text string, summary analyzer.Summary) (Table, error) {
	records, err := readCSV(text, c.defaultDelimiter)
	if err != nil {
		return Table{}, err
	}
	table := buildTable(records, summary.HasHeader)
	table.Headers = trimHeaders(table.Headers)

	rows := table.Rows[:0]
	for _, row := range table.Rows {
		empty := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				empty = false
				break
			}
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	table.Rows = rows
	return table, nil
}

// invalidReason applies the structural validity gate: non-empty, at least
// three columns, at least one majority-numeric column.
func (c *Chain) invalidReason(table Table) string {
	if len(table.Rows) == 0 {
		return "table has no data rows"
	}
	if table.Width() < minValidColumns {
		return fmt.Sprintf("table has %d columns, need at least %d", table.Width(), minValidColumns)
	}
	for col := 0; col < table.Width(); col++ {
		if majorityNumericColumn(table.Rows, col) {
			return ""
		}
	}
	return "no column contains numeric-looking content"
}

func readCSV(text string, delimiter rune) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv read: %w", err)
	}
	return records, nil
}

func buildTable(records [][]string, hasHeader bool) Table {
	if len(records) == 0 {
		return Table{}
	}
	if hasHeader {
		return Table{Headers: records[0], Rows: records[1:]}
	}
	return Table{Headers: synthesizeHeaders(len(records[0])), Rows: records}
}

func synthesizeHeaders(n int) []string {
	headers := make([]string, n)
	for i := range headers {
		headers[i] = fmt.Sprintf("column_%d", i+1)
	}
	return headers
}

func trimHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = strings.TrimSpace(h)
	}
	return out
}

func majorityLetterCells(row []string) bool {
	if len(row) == 0 {
		return false
	}
	lettered := 0
	for _, cell := range row {
		for _, r := range cell {
			if unicode.IsLetter(r) {
				lettered++
				break
			}
		}
	}
	return lettered*2 > len(row)
}

func majorityNumericColumn(rows [][]string, col int) bool {
	sampled, matches := 0, 0
	for _, row := range rows {
		if sampled >= numericSampleSize {
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
		if numericContentRe.MatchString(cell) && strings.ContainsAny(cell, "0123456789") {
			matches++
		}
	}
	return sampled > 0 && matches*2 >= sampled
}
