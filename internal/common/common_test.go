package common

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/bank-csv/internal/models"
)

func TestMarshalTransactionsCSV(t *testing.T) {
	txs := []*models.Transaction{
		{
			Date:        "2024-01-01",
			Description: "Coffee",
			Amount:      decimal.RequireFromString("-10.00"),
			Currency:    "USD",
			Type:        models.TypeDebit,
			Category:    "dining",
			Confidence:  0.9,
		},
	}
	out, err := MarshalTransactionsCSV(txs)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Date,Description,Amount,Currency,Type,Category,ConfidenceScore", lines[0])
	assert.Contains(t, lines[1], "2024-01-01")
	assert.Contains(t, lines[1], "Coffee")
}

func TestWriteTransactionsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	txs := []*models.Transaction{
		{
			Date:        "2024-01-01",
			Description: "Coffee",
			Amount:      decimal.RequireFromString("-10.00"),
			Currency:    "USD",
			Type:        models.TypeDebit,
			Category:    "dining",
			Confidence:  0.9,
		},
	}
	require.NoError(t, WriteTransactionsCSV(path, txs))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Coffee")
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	t.Run("accepts a normal csv", func(t *testing.T) {
		assert.NoError(t, ValidateFile(write("ok.csv", "a,b,c\n"), 1<<20))
	})

	t.Run("rejects empty file", func(t *testing.T) {
		err := ValidateFile(write("empty.csv", ""), 1<<20)
		assert.ErrorContains(t, err, "empty")
	})

	t.Run("rejects oversized file", func(t *testing.T) {
		err := ValidateFile(write("big.csv", strings.Repeat("x", 100)), 10)
		assert.ErrorContains(t, err, "exceeds limit")
	})

	t.Run("rejects unsupported extension", func(t *testing.T) {
		err := ValidateFile(write("doc.pdf", "content"), 1<<20)
		assert.ErrorContains(t, err, "unsupported file type")
	})

	t.Run("rejects missing file", func(t *testing.T) {
		assert.Error(t, ValidateFile(filepath.Join(dir, "nope.csv"), 1<<20))
	})
}

func TestHashBytes(t *testing.T) {
	a := HashBytes([]byte("hello"))
	b := HashBytes([]byte("hello"))
	c := HashBytes([]byte("world"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
