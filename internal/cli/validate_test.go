package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSingleFileValid(t *testing.T) {
	result := validateSingleFile(filepath.Join("testdata", "bookings.csv"))

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 320, result.Rows)
	assert.Equal(t, 19, result.Columns)
	assert.Greater(t, result.Duration.Nanoseconds(), int64(0))
}

func TestValidateSingleFileMissing(t *testing.T) {
	result := validateSingleFile(filepath.Join("testdata", "missing.csv"))

	assert.False(t, result.Valid)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "opening dataset")
}

func TestValidateSingleFileBadHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b,c\n1,2,3\n"), 0644))

	result := validateSingleFile(path)

	assert.False(t, result.Valid)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "columns")
}

func TestValidateCommand(t *testing.T) {
	_, err := executeCommand(rootCmd, "validate", filepath.Join("testdata", "bookings.csv"))
	assert.NoError(t, err)
}

func TestValidateCommandRequiresArgs(t *testing.T) {
	_, err := executeCommand(rootCmd, "validate")
	assert.Error(t, err)
}
