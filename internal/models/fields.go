package models

// Canonical semantic fields that every row must ultimately populate.
const (
	FieldDate        = "date"
	FieldDescription = "description"
	FieldAmount      = "amount"
	FieldType        = "type"
	FieldCurrency    = "currency"
	FieldCategory    = "category"
)

// CanonicalFields lists the canonical field names in a stable order.
var CanonicalFields = []string{
	FieldDate,
	FieldDescription,
	FieldAmount,
	FieldType,
	FieldCurrency,
	FieldCategory,
}

// IsCanonicalField reports whether name (already lowercased) is one of the
// canonical fields.
func IsCanonicalField(name string) bool {
	for _, f := range CanonicalFields {
		if name == f {
			return true
		}
	}
	return false
}
