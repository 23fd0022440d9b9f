package analyzer

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"fjacquet/bank-csv/internal/logging"
)

// candidateDelimiters is the fixed set of delimiters considered, in
// tie-break order.
var candidateDelimiters = []rune{',', ';', '\t', '|'}

// sampleBytes bounds how much of the file is scanned for delimiter ranking.
const sampleBytes = 1000

// corruptionLines bounds how many leading lines are scanned for corruption
// indicators.
const corruptionLines = 10

// DelimiterCount pairs a candidate delimiter with its frequency in the
// leading sample.
type DelimiterCount struct {
	Delimiter rune
	Count     int
}

// Summary describes a raw export file before any parsing strategy runs.
type Summary struct {
	FileSize             int
	Encoding             string
	Delimiters           []DelimiterCount
	HasHeader            bool
	ColumnCount          int
	RowCount             int
	CorruptionIndicators []string
	SampleRows           [][]string
}

// BestDelimiter returns the highest-ranked delimiter, defaulting to comma
// when the sample contained none of the candidates.
func (s Summary) BestDelimiter() rune {
	if len(s.Delimiters) > 0 && s.Delimiters[0].Count > 0 {
		return s.Delimiters[0].Delimiter
	}
	return ','
}

// Corrupted reports whether any corruption indicator was observed.
func (s Summary) Corrupted() bool {
	return len(s.CorruptionIndicators) > 0
}

var (
	digitTripleRe  = regexp.MustCompile(`\d+,\d+,\d+`)
	// Excludes the punctuation that legitimately surrounds dates and
	// amounts so ISO dates and decimals do not read as corruption.
	mixedSymbolRe  = regexp.MustCompile(`[^\w\s.,\-/:+]+\d+[^\w\s.,\-/:+]+`)
	numericCellRe  = regexp.MustCompile(`^\d+$`)
	leadingDigitRe = regexp.MustCompile(`^\d`)
)

// Analyzer inspects raw export bytes without ever failing; undecodable or
// empty input yields a zero-valued summary.
type Analyzer struct {
	log logging.Logger
}

func New(log logging.Logger) *Analyzer {
	return &Analyzer{log: log}
}

// Analyze decodes a leading sample of the file and reports its encoding,
// ranked delimiters, header presence, and corruption indicators.
func (a *Analyzer) Analyze(data []byte) Summary {
	summary := Summary{FileSize: len(data)}
	if len(data) == 0 {
		return summary
	}

	summary.Encoding = DetectEncoding(data)
	text, err := Decode(data, summary.Encoding)
	if err != nil {
		a.log.WithError(err).Warn("analysis decode failed, returning partial summary")
		return summary
	}

	sample := text
	if len(sample) > sampleBytes {
		sample = sample[:sampleBytes]
	}

	summary.Delimiters = rankDelimiters(sample)
	lines := nonEmptyLines(text)
	summary.RowCount = len(lines)
	summary.CorruptionIndicators = findCorruptionIndicators(lines)

	if len(lines) > 0 {
		delim := string(summary.BestDelimiter())
		for i, line := range lines {
			if i >= 5 {
				break
			}
			summary.SampleRows = append(summary.SampleRows, strings.Split(line, delim))
		}
		summary.ColumnCount = len(summary.SampleRows[0])
		summary.HasHeader = looksLikeHeader(summary.SampleRows[0])
	}

	a.log.WithFields(
		logging.Field{Key: logging.FieldEncoding, Value: summary.Encoding},
		logging.Field{Key: logging.FieldDelimiter, Value: string(summary.BestDelimiter())},
		logging.Field{Key: "columns", Value: summary.ColumnCount},
		logging.Field{Key: "corruption_indicators", Value: len(summary.CorruptionIndicators)},
	).Debug("raw file analysis complete")

	return summary
}

// rankDelimiters counts each candidate in the sample and orders them by
// descending frequency, preserving candidate order on ties.
func rankDelimiters(sample string) []DelimiterCount {
	counts := make([]DelimiterCount, 0, len(candidateDelimiters))
	for _, d := range candidateDelimiters {
		counts = append(counts, DelimiterCount{Delimiter: d, Count: strings.Count(sample, string(d))})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// findCorruptionIndicators scans the first few lines for patterns that
// suggest shifted or merged cells rather than honest data.
func findCorruptionIndicators(lines []string) []string {
	var indicators []string
	columnCounts := map[int]bool{}

	limit := len(lines)
	if limit > corruptionLines {
		limit = corruptionLines
	}
	for i := 0; i < limit; i++ {
		line := lines[i]
		if digitTripleRe.MatchString(line) {
			indicators = append(indicators, "unquoted digit groups suggest shifted columns")
		}
		if mixedSymbolRe.MatchString(line) {
			indicators = append(indicators, "symbol and digit runs suggest merged cells")
		}
		first := strings.TrimSpace(strings.SplitN(line, ",", 2)[0])
		if i > 0 && numericCellRe.MatchString(first) {
			indicators = append(indicators, "numeric-only leading cell")
		}
		columnCounts[strings.Count(line, ",")+1] = true
	}
	if len(columnCounts) > 1 {
		indicators = append(indicators, "inconsistent column counts")
	}
	return dedupe(indicators)
}

// looksLikeHeader reports whether a row reads like column labels: mostly
// letters, no leading digits.
func looksLikeHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	labelish := 0
	for _, cell := range row {
		cell = strings.TrimSpace(cell)
		if cell == "" || leadingDigitRe.MatchString(cell) {
			continue
		}
		letters := 0
		for _, r := range cell {
			if unicode.IsLetter(r) {
				letters++
			}
		}
		if letters > 0 && letters*2 >= len([]rune(cell)) {
			labelish++
		}
	}
	return labelish*2 > len(row)
}

func dedupe(items []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}
