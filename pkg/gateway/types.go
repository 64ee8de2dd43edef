package gateway

// ServerOptions configures the gateway server
type ServerOptions struct {
	Port               int    // Server port (default: 3100)
	Host               string // Server host (default: "0.0.0.0")
	RateLimitPerMinute int    // Requests per minute per IP (default: 100)
	Model              ModelOptions
}

// ModelOptions carries the generation parameters passed to the provider on
// chat requests.
type ModelOptions struct {
	Name         string
	Temperature  float64
	MaxTokens    int
	SystemPrompt string
}

// chatRequest is the body of POST /v1/chat. An empty session id asks the
// gateway to mint a fresh one.
type chatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}

// appendRequest is the body of POST /v1/sessions/{id}/messages. Content is a
// pointer so "present but empty" and "absent" stay distinguishable.
type appendRequest struct {
	Role      string  `json:"role"`
	Content   *string `json:"content"`
	Timestamp string  `json:"timestamp,omitempty"`
}

type bulkDeleteRequest struct {
	SessionIDs []string `json:"session_ids"`
}

type errorResponse struct {
	Error string `json:"error"`
}
