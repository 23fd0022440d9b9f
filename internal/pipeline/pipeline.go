// Package pipeline orchestrates the full parsing run: structural analysis,
// table strategy chain, sanitization, column detection, the per-row ladder,
// and final validation. Row failures are recorded and never abort the file;
// the only terminal failures are CorruptionError and ValidationError.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"fjacquet/bank-csv/internal/analyzer"
	"fjacquet/bank-csv/internal/cache"
	"fjacquet/bank-csv/internal/categorizer"
	"fjacquet/bank-csv/internal/columndetect"
	"fjacquet/bank-csv/internal/common"
	"fjacquet/bank-csv/internal/config"
	"fjacquet/bank-csv/internal/logging"
	"fjacquet/bank-csv/internal/models"
	"fjacquet/bank-csv/internal/rowparser"
	"fjacquet/bank-csv/internal/sanitizer"
	"fjacquet/bank-csv/internal/tableparser"
	"fjacquet/bank-csv/internal/validator"
)

// duplicateTTL bounds how long a file hash is remembered for duplicate
// detection.
const duplicateTTL = 24 * time.Hour

// Converter consumes this pipeline's output downstream; the pipeline itself
// never calls it.
type Converter interface {
	Convert(txs []*models.Transaction, targetCurrency string) ([]*models.Transaction, error)
}

// RowFailure records one row the ladder could not parse.
type RowFailure struct {
	Index  int
	Reason string
	Trace  []models.Attempt
}

// Result is the outcome of one file run.
type Result struct {
	Transactions    []*models.Transaction
	FileHash        string
	Duplicate       bool
	TableStrategy   string
	Columns         columndetect.Mapping
	SanitizerReport sanitizer.ChangeReport
	StrategyCounts  map[string]int
	Failures        []RowFailure
	Rejected        int
	PrimaryCurrency string
	Categories      map[string]CategoryStat
}

// Pipeline wires the components together. One instance is safe to reuse
// across files; each run is single-threaded and owns its intermediates.
type Pipeline struct {
	log      logging.Logger
	cfg      *config.Config
	analyzer *analyzer.Analyzer
	chain    *tableparser.Chain
	cleaner  *sanitizer.Sanitizer
	detector *columndetect.Detector
	ladder   *rowparser.Ladder
	checker  *validator.Validator
	catz     categorizer.Categorizer
	store    cache.Cache
}

// Option customizes a Pipeline's collaborators.
type Option func(*Pipeline)

// WithCategorizer replaces the default keyword categorizer.
func WithCategorizer(c categorizer.Categorizer) Option {
	return func(p *Pipeline) { p.catz = c }
}

// WithCache replaces the in-memory duplicate-detection cache.
func WithCache(c cache.Cache) Option {
	return func(p *Pipeline) { p.store = c }
}

func New(cfg *config.Config, log logging.Logger, opts ...Option) *Pipeline {
	delimiter := ','
	if cfg.CSV.Delimiter != "" {
		delimiter = rune(cfg.CSV.Delimiter[0])
	}
	p := &Pipeline{
		log:      log,
		cfg:      cfg,
		analyzer: analyzer.New(log),
		chain:    tableparser.NewChain(log, delimiter),
		cleaner:  sanitizer.New(log),
		detector: columndetect.New(log),
		ladder:   rowparser.NewLadder(log, cfg.Parsing.DefaultCurrency),
		checker:  validator.New(log, cfg.Parsing.DefaultCurrency),
		catz:     categorizer.NewDefaultCategorizer(log),
		store:    cache.NewMemory(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process validates and reads a file, then parses its content.
func (p *Pipeline) Process(ctx context.Context, path string) (*Result, error) {
	if err := common.ValidateFile(path, p.cfg.Parsing.MaxFileBytes); err != nil {
		return nil, fmt.Errorf("file %s rejected: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return p.ProcessBytes(ctx, data)
}

// ProcessBytes runs the full pipeline over raw content.
func (p *Pipeline) ProcessBytes(ctx context.Context, data []byte) (*Result, error) {
	result := &Result{
		FileHash:       common.HashBytes(data),
		StrategyCounts: map[string]int{},
	}
	if _, seen := p.store.Get(cacheKey(result.FileHash)); seen {
		result.Duplicate = true
		p.log.WithField("hash", result.FileHash).Warn("file content seen before")
	}

	summary := p.analyzer.Analyze(data)

	table, tableStrategy, err := p.chain.Parse(data, summary)
	if err != nil {
		return nil, err
	}
	result.TableStrategy = tableStrategy

	rows, report := p.cleaner.Sanitize(table.Rows)
	result.SanitizerReport = report

	mapping := p.detector.Detect(table.Headers, rows)
	result.Columns = mapping

	parsed, failures, counts, err := p.parseRows(ctx, rows, mapping)
	if err != nil {
		return nil, err
	}
	result.Failures = failures
	result.StrategyCounts = counts

	survivors, rejected, err := p.checker.Validate(parsed)
	if err != nil {
		return nil, err
	}
	result.Transactions = survivors
	result.Rejected = rejected
	result.PrimaryCurrency = determinePrimaryCurrency(survivors)
	result.Categories = summarizeCategories(survivors)

	p.store.Set(cacheKey(result.FileHash), "seen", duplicateTTL)

	p.log.WithFields(
		logging.Field{Key: "transactions", Value: len(survivors)},
		logging.Field{Key: logging.FieldRejected, Value: rejected},
		logging.Field{Key: "row_failures", Value: len(failures)},
		logging.Field{Key: logging.FieldStrategy, Value: tableStrategy},
	).Info("file processed")
	return result, nil
}

// parseRows runs the row ladder over the table in fixed-size batches,
// bounded by the configured row cap. Context cancellation is checked at
// batch boundaries.
func (p *Pipeline) parseRows(ctx context.Context, rows [][]string, mapping columndetect.Mapping) ([]*models.Transaction, []RowFailure, map[string]int, error) {
	limit := len(rows)
	if p.cfg.Parsing.MaxRows > 0 && limit > p.cfg.Parsing.MaxRows {
		p.log.WithFields(
			logging.Field{Key: "rows", Value: len(rows)},
			logging.Field{Key: "max_rows", Value: p.cfg.Parsing.MaxRows},
		).Warn("row cap reached, excess rows ignored")
		limit = p.cfg.Parsing.MaxRows
	}

	batchSize := p.cfg.Parsing.BatchSize
	if batchSize <= 0 {
		batchSize = limit
	}

	var (
		parsed   []*models.Transaction
		failures []RowFailure
	)
	counts := map[string]int{}
	headerFields := mapping.HeaderFields()
	for start := 0; start < limit; start += batchSize {
		if err := ctx.Err(); err != nil {
			return nil, nil, nil, fmt.Errorf("processing canceled: %w", err)
		}
		end := start + batchSize
		if end > limit {
			end = limit
		}
		for i := start; i < end; i++ {
			outcome, trace := p.ladder.Parse(rowFor(i, rows[i], headerFields))
			if !outcome.Success {
				failures = append(failures, RowFailure{Index: i, Reason: outcome.Reason, Trace: trace})
				continue
			}
			counts[outcome.Strategy]++
			tx := outcome.Transaction
			p.categorize(tx)
			parsed = append(parsed, tx)
		}
	}
	return parsed, failures, counts, nil
}

// categorize consults the external categorizer only when the row strategy
// left the default category, and never touches the strategy confidence.
func (p *Pipeline) categorize(tx *models.Transaction) {
	if tx.Category != models.DefaultCategory {
		return
	}
	if category, confidence := p.catz.Categorize(tx.Description); confidence > 0 {
		tx.Category = category
	}
}

// rowFor exposes only header-derived assignments as row fields. Columns
// mapped by content sampling alone are left for the per-row classifiers,
// which carry the lower confidence that guesswork deserves.
func rowFor(index int, cells []string, headerFields map[string]int) rowparser.Row {
	fields := make(map[string]string, len(headerFields))
	for field, col := range headerFields {
		if col < len(cells) {
			fields[field] = cells[col]
		}
	}
	return rowparser.Row{Index: index, Cells: cells, Fields: fields}
}

func cacheKey(hash string) string {
	return "filehash:" + hash
}
