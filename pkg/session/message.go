package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Message represents a single conversation turn. Messages are immutable once
// appended; nothing in this package mutates one in place.
//
// Timestamp is an ISO-8601 string and the empty string means "no timestamp":
// the JSON encoding omits the key entirely and the CSV encoding writes an
// empty field. Extra holds any fields beyond the fixed shape that were
// present on import, so a re-export reproduces the original payload.
type Message struct {
	Role      string
	Content   string
	Timestamp string
	Extra     map[string]json.RawMessage
}

// MarshalJSON encodes the message with a stable key order (role, content,
// timestamp, then extra fields sorted by name). The timestamp key is omitted
// when unset.
func (m Message) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	writeField := func(key string, value interface{}) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(key)
		if err != nil {
			return err
		}
		valueJSON, err := json.Marshal(value)
		if err != nil {
			return err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		buf.Write(valueJSON)
		return nil
	}

	if err := writeField("role", m.Role); err != nil {
		return nil, err
	}
	if err := writeField("content", m.Content); err != nil {
		return nil, err
	}
	if m.Timestamp != "" {
		if err := writeField("timestamp", m.Timestamp); err != nil {
			return nil, err
		}
	}

	extraKeys := make([]string, 0, len(m.Extra))
	for key := range m.Extra {
		extraKeys = append(extraKeys, key)
	}
	sort.Strings(extraKeys)
	for _, key := range extraKeys {
		if err := writeField(key, m.Extra[key]); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a message object, keeping unknown fields in Extra.
func (m *Message) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("failed to decode message object: %w", err)
	}

	*m = Message{}
	for key, raw := range fields {
		switch key {
		case "role":
			if err := json.Unmarshal(raw, &m.Role); err != nil {
				return fmt.Errorf("failed to decode role: %w", err)
			}
		case "content":
			if err := json.Unmarshal(raw, &m.Content); err != nil {
				return fmt.Errorf("failed to decode content: %w", err)
			}
		case "timestamp":
			if err := json.Unmarshal(raw, &m.Timestamp); err != nil {
				return fmt.Errorf("failed to decode timestamp: %w", err)
			}
		default:
			if m.Extra == nil {
				m.Extra = make(map[string]json.RawMessage)
			}
			m.Extra[key] = raw
		}
	}

	return nil
}
