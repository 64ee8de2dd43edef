package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExportFormat(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"json", FormatJSON},
		{"csv", FormatCSV},
		{"markdown", FormatMarkdown},
		{"JSON", FormatJSON},
		{"Markdown", FormatMarkdown},
	}

	for _, tt := range tests {
		got, err := ParseExportFormat(tt.name)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseExportFormat("xml")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParseImportFormat(t *testing.T) {
	got, err := ParseImportFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, got)

	got, err = ParseImportFormat("CSV")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, got)

	// Markdown is export-only
	_, err = ParseImportFormat("markdown")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}
