// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "scholar-assistant/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// LLMConfig holds settings for the chat-completion API used for
// follow-up questions, parameter extraction, and suggestions.
type LLMConfig struct {
	HTTPConfig `yaml:",inline"`

	// Model is the chat model identifier (default "llama-3.3-70b-versatile").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the chat API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Temperature is the sampling temperature (default 0.2).
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// MaxTokens caps the completion length (default 1024).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`
}

// PrimoConfig holds settings for the library discovery API.
type PrimoConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the root of the Primo REST API
	// (e.g. "https://example.primo.exlibrisgroup.com/primaws/rest/pub").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// VID is the Primo view identifier (e.g. "01CALS_USB:01CALS_USB").
	VID string `json:"vid" yaml:"vid"`

	// Tab is the search tab (e.g. "Everything").
	Tab string `json:"tab" yaml:"tab"`

	// Scope is the search scope (e.g. "MyInst_and_CI").
	Scope string `json:"scope" yaml:"scope"`

	// Inst is the institution code.
	Inst string `json:"inst" yaml:"inst"`

	// DiscoveryBase is the root of the user-facing discovery UI, used to
	// build record permalinks when the API does not return one.
	DiscoveryBase string `json:"discovery_base" yaml:"discovery_base"`

	// MaxRetries is the number of retry attempts for throttled or failing
	// requests (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// SearchSettings holds defaults applied to every search.
type SearchSettings struct {
	// DefaultLimit is the result count used when the conversation does
	// not specify one (default 10).
	DefaultLimit int `json:"default_limit" yaml:"default_limit"`

	// Sort is the result ordering requested from the provider (default "rank").
	Sort string `json:"sort" yaml:"sort"`

	// Language is the language facet applied to every query (default "eng";
	// empty disables the facet).
	Language string `json:"language" yaml:"language"`
}

// HistoryConfig holds settings for the local search-history database.
type HistoryConfig struct {
	// Path is the SQLite database file (default "data/history.db").
	Path string `json:"path" yaml:"path"`

	// MaxRuns caps how many past runs Recent returns (default 20).
	MaxRuns int `json:"max_runs" yaml:"max_runs"`
}

// LoggingConfig holds settings for structured logging.
type LoggingConfig struct {
	// Level is the minimum level to emit: debug, info, warn, or error.
	Level string `json:"level" yaml:"level"`

	// Format is "json" or "console".
	Format string `json:"format" yaml:"format"`

	// Output is "stderr" or "stdout".
	Output string `json:"output" yaml:"output"`
}

// AppConfig groups all component configurations.
type AppConfig struct {
	LLM     LLMConfig      `json:"llm" yaml:"llm"`
	Primo   PrimoConfig    `json:"primo" yaml:"primo"`
	Search  SearchSettings `json:"search" yaml:"search"`
	History HistoryConfig  `json:"history" yaml:"history"`
	Logging LoggingConfig  `json:"logging" yaml:"logging"`
}
