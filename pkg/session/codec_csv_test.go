package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCSV(t *testing.T) {
	msgs := []Message{
		{Role: "user", Content: "hello", Timestamp: "2025-01-01T10:00:00Z"},
		{Role: "assistant", Content: "hi there"},
	}

	out, err := ExportCSV(msgs)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "role,content,timestamp", lines[0])
	assert.Equal(t, "user,hello,2025-01-01T10:00:00Z", lines[1])
	assert.Equal(t, "assistant,hi there,", lines[2])
}

func TestExportCSV_EmptySession(t *testing.T) {
	out, err := ExportCSV(nil)
	require.NoError(t, err)

	// Header row alone
	assert.Equal(t, "role,content,timestamp\n", out)
}

func TestExportCSV_QuotesSpecialCharacters(t *testing.T) {
	msgs := []Message{
		{Role: "user", Content: `say "hi", twice`},
		{Role: "assistant", Content: "line one\nline two"},
	}

	out, err := ExportCSV(msgs)
	require.NoError(t, err)

	assert.Contains(t, out, `"say ""hi"", twice"`)
	assert.Contains(t, out, "\"line one\nline two\"")

	// The quoting round-trips
	back, err := ImportCSV(out)
	require.NoError(t, err)
	require.Len(t, back, 2)
	assert.Equal(t, `say "hi", twice`, back[0].Content)
	assert.Equal(t, "line one\nline two", back[1].Content)
}

func TestImportCSV(t *testing.T) {
	data := "role,content,timestamp\nuser,hello,2025-01-01T10:00:00Z\nassistant,hi,\n"

	msgs, err := ImportCSV(data)
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	assert.Equal(t, "user", msgs[0].Role)
	assert.Equal(t, "hello", msgs[0].Content)
	assert.Equal(t, "2025-01-01T10:00:00Z", msgs[0].Timestamp)

	// Empty timestamp cell means no timestamp
	assert.Empty(t, msgs[1].Timestamp)
}

func TestImportCSV_WithoutTimestampColumn(t *testing.T) {
	data := "role,content\nuser,hello\n"

	msgs, err := ImportCSV(data)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "hello", msgs[0].Content)
	assert.Empty(t, msgs[0].Timestamp)
}

func TestImportCSV_HeaderOnly(t *testing.T) {
	msgs, err := ImportCSV("role,content,timestamp\n")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestImportCSV_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name:    "empty input",
			data:    "",
			wantErr: "missing CSV header",
		},
		{
			name:    "missing role column",
			data:    "content,timestamp\nhello,\n",
			wantErr: `missing required column "role"`,
		},
		{
			name:    "missing content column",
			data:    "role,timestamp\nuser,\n",
			wantErr: `missing required column "content"`,
		},
		{
			name:    "ragged rows",
			data:    "role,content,timestamp\nuser,hello\n",
			wantErr: "malformed CSV",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ImportCSV(tt.data)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCSVRoundTrip(t *testing.T) {
	original := []Message{
		{Role: "user", Content: "first", Timestamp: "2025-01-01T10:00:00Z"},
		{Role: "assistant", Content: "second"},
		{Role: "user", Content: "third, with comma"},
	}

	out, err := ExportCSV(original)
	require.NoError(t, err)

	back, err := ImportCSV(out)
	require.NoError(t, err)
	assert.Equal(t, original, back)
}
