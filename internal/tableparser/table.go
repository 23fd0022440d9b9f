// Package tableparser turns raw export bytes into a structurally plausible
// table by trying a fixed ladder of whole-table strategies.
package tableparser

import (
	"fmt"
	"strings"
)

// Table is the parsed tabular structure handed to sanitization and column
// detection. Headers are always present; synthesized names are used when the
// file had no header row.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Width returns the header count, falling back to the first row.
func (t Table) Width() int {
	if len(t.Headers) > 0 {
		return len(t.Headers)
	}
	if len(t.Rows) > 0 {
		return len(t.Rows[0])
	}
	return 0
}

// CorruptionError is the terminal file-level failure raised when every table
// strategy, including the final recovery pass, failed to produce a valid
// table. The file is rejected outright.
type CorruptionError struct {
	Attempts []string
	Reason   string
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("file is too corrupted to parse: %s (strategies tried: %s)",
		e.Reason, strings.Join(e.Attempts, ", "))
}
