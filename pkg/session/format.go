package session

import (
	"fmt"
	"strings"
)

// Format identifies a serialization format for export and import.
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
)

// ParseExportFormat parses a format name for export. Unknown names fail with
// a validation error.
func ParseExportFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatMarkdown:
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: unsupported export format %q", ErrValidation, name)
	}
}

// ParseImportFormat parses a format name for import. Markdown is export-only.
func ParseImportFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: unsupported import format %q", ErrValidation, name)
	}
}
