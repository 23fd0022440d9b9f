package logging

// Standardized field names for structured logging. Keeping these consistent
// makes pipeline logs easy to filter by stage, strategy, and row.
const (
	FieldFile       = "file_path"
	FieldStage      = "stage"
	FieldStrategy   = "strategy"
	FieldRow        = "row_index"
	FieldReason     = "reason"
	FieldDelimiter  = "delimiter"
	FieldEncoding   = "encoding"
	FieldConfidence = "confidence"
	FieldCurrency   = "currency"
	FieldCategory   = "category"
	FieldCount      = "count"
	FieldRejected   = "rejected"
	FieldError      = "error"
)
