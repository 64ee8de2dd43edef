package session

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// messageArraySchema is the JSON Schema an import payload must satisfy:
// a top-level array whose elements are objects carrying at least role and
// content. Extra properties are allowed and survive the round-trip.
const messageArraySchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["role", "content"],
    "properties": {
      "role": {
        "type": "string",
        "description": "Speaker role (user, assistant, system)"
      },
      "content": {
        "type": "string",
        "description": "Message text, may be empty"
      },
      "timestamp": {
        "type": "string",
        "description": "Optional ISO-8601 timestamp"
      }
    }
  }
}`

var messageSchemaLoader = gojsonschema.NewStringLoader(messageArraySchema)

// ExportJSON serializes messages as a JSON array, preserving array order and
// field presence: a message without a timestamp omits the key.
func ExportJSON(msgs []Message) (string, error) {
	if msgs == nil {
		msgs = []Message{}
	}

	data, err := json.MarshalIndent(msgs, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal messages: %w", err)
	}
	return string(data), nil
}

// ImportJSON parses a JSON array of message objects. It fails closed with a
// validation error when the payload is not an array, is malformed, or any
// element is missing role or content; the error names the offending field.
func ImportJSON(data string) ([]Message, error) {
	result, err := gojsonschema.Validate(messageSchemaLoader, gojsonschema.NewStringLoader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: malformed JSON: %v", ErrValidation, err)
	}

	if !result.Valid() {
		var errMsg string
		for i, schemaErr := range result.Errors() {
			if i > 0 {
				errMsg += "; "
			}
			errMsg += schemaErr.String()
		}
		return nil, fmt.Errorf("%w: %s", ErrValidation, errMsg)
	}

	var msgs []Message
	if err := json.Unmarshal([]byte(data), &msgs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if msgs == nil {
		msgs = []Message{}
	}
	return msgs, nil
}
