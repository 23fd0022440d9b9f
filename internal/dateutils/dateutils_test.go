package dateutils

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"iso", "2024-01-15", "2024-01-15"},
		{"us slash", "01/15/2024", "2024-01-15"},
		{"eu slash falls through when month is impossible", "15/01/2024", "2024-01-15"},
		{"slash year first", "2024/01/15", "2024-01-15"},
		{"eu dash", "15-01-2024", "2024-01-15"},
		{"eu dot", "15.01.2024", "2024-01-15"},
		{"iso with time", "2024-01-15 10:30:00", "2024-01-15"},
		{"two digit year", "01/15/24", "2024-01-15"},
		{"month name", "Jan 15, 2024", "2024-01-15"},
		{"day month name year", "15 Jan 2024", "2024-01-15"},
		{"unpadded", "1/5/2024", "2024-01-05"},
		{"surrounding whitespace", "  2024-01-15  ", "2024-01-15"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ToISODate(got))
		})
	}
}

func TestParseDateAmbiguityResolvedByOrder(t *testing.T) {
	// Both readings are plausible; the US layout sits earlier in the list
	// and wins. Documented behavior, not a bug.
	got, err := ParseDate("03/04/2024")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", ToISODate(got))
}

func TestParseDateYearless(t *testing.T) {
	got, err := ParseDate("06/15")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%d-06-15", time.Now().Year()), ToISODate(got))
}

func TestParseDateFailures(t *testing.T) {
	for _, input := range []string{"", "   ", "not a date", "2024-13-45", "99/99/9999"} {
		t.Run(fmt.Sprintf("%q", input), func(t *testing.T) {
			_, err := ParseDate(input)
			assert.Error(t, err)
		})
	}
}

func TestToISODateZero(t *testing.T) {
	assert.Equal(t, "", ToISODate(time.Time{}))
}

func TestCleanDateString(t *testing.T) {
	assert.Equal(t, "15 Jan 2024", CleanDateString("  15   Jan\t2024 "))
}
