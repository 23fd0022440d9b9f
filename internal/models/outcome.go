package models

// Outcome is the tagged result of a single parsing-strategy attempt, at table
// or row level. Expected failures are values, never errors thrown up the
// stack.
type Outcome struct {
	Success    bool
	Strategy   string
	Confidence float64
	Reason     string // set on failure

	Transaction *Transaction // set on row-level success
}

// Succeed builds a successful row outcome.
func Succeed(strategy string, confidence float64, tx *Transaction) Outcome {
	return Outcome{
		Success:     true,
		Strategy:    strategy,
		Confidence:  confidence,
		Transaction: tx,
	}
}

// Fail builds a failed outcome with a human-readable reason.
func Fail(strategy, reason string) Outcome {
	return Outcome{
		Strategy: strategy,
		Reason:   reason,
	}
}

// Attempt records one entry of a row's strategy trace, in attempt order.
type Attempt struct {
	Strategy string
	Success  bool
	Reason   string
}
