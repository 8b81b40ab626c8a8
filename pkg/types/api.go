package types

// SummarizeRequest is the payload accepted by POST /summarize.
type SummarizeRequest struct {
	// Document to summarize. Required; whitespace is normalized before tokenization.
	// example: The quick brown fox jumps over the lazy dog. It was not amused.
	Text string `json:"text" example:"The quick brown fox jumps over the lazy dog. It was not amused."`
}

// SummarizeResponse is returned by POST /summarize on success.
type SummarizeResponse struct {
	// Generated summary text.
	// example: The quick brown fox jumps over the lazy dog.
	Summary string `json:"summary" example:"The quick brown fox jumps over the lazy dog."`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: No text provided
	Error string `json:"error" example:"No text provided"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Whether the model and tokenizer are loaded.
	// example: true
	Loaded bool `json:"loaded" example:"true"`
	// Loader state: unloaded, loading, ready or error.
	// example: ready
	State string `json:"state" example:"ready"`
	// Remote model repository identifier.
	// example: TheOCEAN/summarizer-portable
	RepoID string `json:"repo_id" example:"TheOCEAN/summarizer-portable"`
	// Repository revision fetched from the hub.
	// example: main
	Revision string `json:"revision" example:"main"`
	// Generation runtime bound to the model.
	// example: extractive
	Runtime string `json:"runtime" example:"extractive"`
	// Model architecture reported by config.json.
	// example: pegasus
	ModelType string `json:"model_type,omitempty" example:"pegasus"`
	// Number of load attempts since process start.
	// example: 1
	LoadAttempts uint64 `json:"load_attempts" example:"1"`
	// Last load error observed (if any).
	LastError string `json:"last_error,omitempty"`
	// Time the model became ready (unix seconds, 0 when not loaded).
	// example: 1700000000
	LoadedAtUnix int64 `json:"loaded_at_unix" example:"1700000000"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
