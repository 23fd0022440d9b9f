package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fjacquet/bank-csv/internal/logging"
)

func TestSanitizeDropsJunkRows(t *testing.T) {
	s := New(logging.NewMockLogger())

	rows := [][]string{
		{"2024-01-01", "Coffee", "10.00"},
		{"", "", ""},
		{"----", "----", "----"},
		{"Date", "Description", "Amount"},
		{"2024-01-02", "Lunch", "20.00"},
	}

	out, report := s.Sanitize(rows)
	assert.Len(t, out, 2)
	assert.Equal(t, 3, report.RowsRemoved)
	assert.Equal(t, "2024-01-01", out[0][0])
	assert.Equal(t, "2024-01-02", out[1][0])
}

func TestSanitizeCleansCells(t *testing.T) {
	s := New(logging.NewMockLogger())

	rows := [][]string{
		{`  "Coffee   shop"  `, "'2024-01-01'", "10.00"},
	}
	out, _ := s.Sanitize(rows)
	assert.Equal(t, "Coffee shop", out[0][0])
	assert.Equal(t, "2024-01-01", out[0][1])
}

func TestSanitizeNormalizesFullwidth(t *testing.T) {
	s := New(logging.NewMockLogger())

	// fullwidth digits and yen sign fold to ASCII digits and the canonical glyph
	rows := [][]string{{"2024-01-01", "Tokyo", "￥１２３４"}}
	out, _ := s.Sanitize(rows)
	assert.Equal(t, "¥1234", out[0][2])
}

func TestSanitizeShiftedRowDetectionOnly(t *testing.T) {
	s := New(logging.NewMockLogger())

	rows := [][]string{
		{"2024-01-01", "Coffee", "10.00"},
		{"Groceries", "2024-01-02", "20.00"},
	}
	out, report := s.Sanitize(rows)
	assert.Len(t, out, 2, "shifted rows are flagged, never removed")
	assert.Equal(t, []int{1}, report.ShiftedRows)
}

func TestSanitizeMergesSplitCurrencyColumn(t *testing.T) {
	s := New(logging.NewMockLogger())

	t.Run("cents column merged back", func(t *testing.T) {
		rows := [][]string{
			{"2024-01-01", "Rent", "1200", "50"},
			{"2024-01-02", "Gym", "45", "9"},
		}
		out, report := s.Sanitize(rows)
		assert.Equal(t, 1, report.ColumnsChanged)
		assert.Equal(t, []string{"2024-01-01", "Rent", "1200.50"}, out[0])
		assert.Equal(t, []string{"2024-01-02", "Gym", "45.09"}, out[1])
	})

	t.Run("untouched when last column is not cents", func(t *testing.T) {
		rows := [][]string{
			{"2024-01-01", "Rent", "1200.50", "120"},
			{"2024-01-02", "Gym", "45.90", "300"},
		}
		out, report := s.Sanitize(rows)
		assert.Equal(t, 0, report.ColumnsChanged)
		assert.Len(t, out[0], 4)
	})
}

func TestSanitizeIdempotent(t *testing.T) {
	s := New(logging.NewMockLogger())

	rows := [][]string{
		{"  2024-01-01 ", `"Coffee"`, "1200", "50"},
		{"", "", "", ""},
		{"2024-01-02", "Lunch", "20", "5"},
	}

	once, _ := s.Sanitize(rows)
	twice, report := s.Sanitize(clone(once))
	assert.Equal(t, once, twice)
	assert.Equal(t, 0, report.RowsRemoved)
	assert.Equal(t, 0, report.ColumnsChanged)
}

func TestSanitizeEmptyInput(t *testing.T) {
	s := New(logging.NewMockLogger())
	out, report := s.Sanitize(nil)
	assert.Empty(t, out)
	assert.Equal(t, ChangeReport{}, report)
}

func clone(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}
