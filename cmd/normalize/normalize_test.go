package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fjacquet/bank-csv/cmd/normalize"
)

func TestNormalizeCommandMetadata(t *testing.T) {
	assert.Equal(t, "normalize", normalize.Cmd.Use)
	assert.Contains(t, normalize.Cmd.Short, "normalized transactions")
	assert.Contains(t, normalize.Cmd.Long, "bank or card export")
	assert.NotNil(t, normalize.Cmd.Run)
}
