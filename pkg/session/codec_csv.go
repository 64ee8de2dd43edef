package session

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
)

// csvHeader is the fixed export header. It is emitted even for an empty
// message sequence, and an absent timestamp becomes an empty field rather
// than a dropped column.
var csvHeader = []string{"role", "content", "timestamp"}

// ExportCSV serializes messages as RFC 4180 CSV. Fields containing commas,
// quotes or newlines are quoted by the writer.
func ExportCSV(msgs []Message) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, msg := range msgs {
		if err := w.Write([]string{msg.Role, msg.Content, msg.Timestamp}); err != nil {
			return "", fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.String(), nil
}

// ImportCSV parses CSV text whose header row must contain role and content
// columns. The timestamp column is optional; an empty cell leaves the message
// without a timestamp. Structural errors fail closed as validation errors.
func ImportCSV(data string) ([]Message, error) {
	records, err := csv.NewReader(strings.NewReader(data)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: malformed CSV: %v", ErrValidation, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: missing CSV header row", ErrValidation)
	}

	roleIdx, contentIdx, timestampIdx := -1, -1, -1
	for i, column := range records[0] {
		switch strings.TrimSpace(column) {
		case "role":
			roleIdx = i
		case "content":
			contentIdx = i
		case "timestamp":
			timestampIdx = i
		}
	}
	if roleIdx < 0 {
		return nil, fmt.Errorf("%w: missing required column %q", ErrValidation, "role")
	}
	if contentIdx < 0 {
		return nil, fmt.Errorf("%w: missing required column %q", ErrValidation, "content")
	}

	msgs := make([]Message, 0, len(records)-1)
	for _, rec := range records[1:] {
		msg := Message{Role: rec[roleIdx], Content: rec[contentIdx]}
		if timestampIdx >= 0 && rec[timestampIdx] != "" {
			msg.Timestamp = rec[timestampIdx]
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}
