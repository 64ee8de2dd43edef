package config

// Config represents the main Aruna configuration
type Config struct {
	// HTTP gateway
	Server ServerConfig `json:"server" mapstructure:"server"`

	// Model provider
	Model ModelConfig `json:"model" mapstructure:"model"`

	// Logging
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`

	// Data directory
	DataDir string `json:"data_dir" mapstructure:"data_dir"`
}

// ServerConfig holds HTTP gateway configuration
type ServerConfig struct {
	Host               string `json:"host" mapstructure:"host"`
	Port               int    `json:"port" mapstructure:"port"`
	RateLimitPerMinute int    `json:"rate_limit_per_minute" mapstructure:"rate_limit_per_minute"`
}

// ModelConfig holds model provider configuration. An empty provider disables
// the chat endpoint; session operations do not need a model.
type ModelConfig struct {
	Provider     string  `json:"provider" mapstructure:"provider"` // anthropic, openai
	APIKey       string  `json:"api_key" mapstructure:"api_key"`
	Name         string  `json:"name" mapstructure:"name"`
	Temperature  float64 `json:"temperature" mapstructure:"temperature"`
	MaxTokens    int     `json:"max_tokens" mapstructure:"max_tokens"`
	SystemPrompt string  `json:"system_prompt" mapstructure:"system_prompt"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level   string `json:"level" mapstructure:"level"`
	File    string `json:"file" mapstructure:"file"`
	Console bool   `json:"console" mapstructure:"console"`
	Pretty  bool   `json:"pretty" mapstructure:"pretty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:               "0.0.0.0",
			Port:               3100,
			RateLimitPerMinute: 100,
		},
		Model: ModelConfig{
			Provider:    "",
			Name:        "claude-3-5-sonnet-20241022",
			Temperature: 0.7,
			MaxTokens:   4096,
		},
		Logging: LoggingConfig{
			Level:   "info",
			Console: true,
			Pretty:  true,
		},
	}
}
