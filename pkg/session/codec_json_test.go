package session

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportJSON(t *testing.T) {
	msgs := []Message{
		{Role: "user", Content: "hello", Timestamp: "2025-01-01T10:00:00Z"},
		{Role: "assistant", Content: "hi"},
	}

	out, err := ExportJSON(msgs)
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 2)

	assert.Equal(t, "user", decoded[0]["role"])
	assert.Equal(t, "2025-01-01T10:00:00Z", decoded[0]["timestamp"])

	// Absent timestamp omits the key entirely
	_, hasTimestamp := decoded[1]["timestamp"]
	assert.False(t, hasTimestamp)
}

func TestExportJSON_Empty(t *testing.T) {
	out, err := ExportJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", out)

	out, err = ExportJSON([]Message{})
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
}

func TestImportJSON(t *testing.T) {
	data := `[
		{"role": "user", "content": "hello", "timestamp": "2025-01-01T10:00:00Z"},
		{"role": "assistant", "content": "hi"}
	]`

	msgs, err := ImportJSON(data)
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	assert.Equal(t, "user", msgs[0].Role)
	assert.Equal(t, "hello", msgs[0].Content)
	assert.Equal(t, "2025-01-01T10:00:00Z", msgs[0].Timestamp)
	assert.Empty(t, msgs[1].Timestamp)
}

func TestImportJSON_EmptyArray(t *testing.T) {
	msgs, err := ImportJSON("[]")
	require.NoError(t, err)
	require.NotNil(t, msgs)
	assert.Empty(t, msgs)
}

func TestImportJSON_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name:    "malformed JSON",
			data:    `[{"role": "user"`,
			wantErr: "",
		},
		{
			name:    "not an array",
			data:    `{"role": "user", "content": "hi"}`,
			wantErr: "array",
		},
		{
			name:    "missing role",
			data:    `[{"content": "hi"}]`,
			wantErr: "role",
		},
		{
			name:    "missing content",
			data:    `[{"role": "user"}]`,
			wantErr: "content",
		},
		{
			name:    "non-string timestamp",
			data:    `[{"role": "user", "content": "hi", "timestamp": 12345}]`,
			wantErr: "timestamp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ImportJSON(tt.data)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			if tt.wantErr != "" {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestJSONRoundTrip_PreservesExtraFields(t *testing.T) {
	original := `[{"role": "user", "content": "hi", "timestamp": "2025-01-01T10:00:00Z", "model": "claude-3-5-sonnet", "tokens": 42}]`

	msgs, err := ImportJSON(original)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Contains(t, msgs[0].Extra, "model")
	require.Contains(t, msgs[0].Extra, "tokens")

	out, err := ExportJSON(msgs)
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "claude-3-5-sonnet", decoded[0]["model"])
	assert.Equal(t, float64(42), decoded[0]["tokens"])
	assert.Equal(t, "2025-01-01T10:00:00Z", decoded[0]["timestamp"])
}

func TestMessageMarshalJSON_StableKeyOrder(t *testing.T) {
	msg := Message{
		Role:      "user",
		Content:   "hi",
		Timestamp: "2025-01-01T10:00:00Z",
		Extra: map[string]json.RawMessage{
			"zeta":  json.RawMessage(`1`),
			"alpha": json.RawMessage(`2`),
		},
	}

	first, err := json.Marshal(msg)
	require.NoError(t, err)

	// Byte-identical across repeated marshals
	for i := 0; i < 5; i++ {
		again, err := json.Marshal(msg)
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}

	assert.Equal(t, `{"role":"user","content":"hi","timestamp":"2025-01-01T10:00:00Z","alpha":2,"zeta":1}`, string(first))
}
