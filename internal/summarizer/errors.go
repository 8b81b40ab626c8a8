package summarizer

import "errors"

// Client-facing messages. Details stay in the logs.
const (
	MsgNoText        = "No text provided"
	MsgModelNotReady = "The summarization model could not be loaded. Please check the backend server logs for errors."
	MsgInternal      = "An internal error occurred on the server."
)

// LoadError signals that the model could not be fetched or bound.
// The API layer maps it to 503; the next request retries the load.
type LoadError struct {
	RepoID string
	Err    error
}

func (e *LoadError) Error() string { return "load model " + e.RepoID + ": " + e.Err.Error() }
func (e *LoadError) Unwrap() error { return e.Err }

// IsLoadError reports whether err indicates a failed model load (return 503).
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

// validationError signals unusable client input (return 400).
type validationError struct{ msg string }

func (e validationError) Error() string { return e.msg }

// ErrNoText is returned when the request carries no text to summarize.
var ErrNoText error = validationError{msg: MsgNoText}

// IsValidation reports whether err indicates invalid client input.
func IsValidation(err error) bool {
	var ve validationError
	return errors.As(err, &ve)
}

// InferenceError wraps a failure inside the tokenize/generate/detokenize stages.
type InferenceError struct {
	Stage string
	Err   error
}

func (e *InferenceError) Error() string { return e.Stage + ": " + e.Err.Error() }
func (e *InferenceError) Unwrap() error { return e.Err }

// IsInferenceError reports whether err happened while running the model.
func IsInferenceError(err error) bool {
	var ie *InferenceError
	return errors.As(err, &ie)
}

// dependencyUnavailableError signals a missing runtime dependency (e.g. llama.cpp
// not compiled in). It surfaces wrapped in a LoadError.
type dependencyUnavailableError struct{ msg string }

func (e dependencyUnavailableError) Error() string { return e.msg }

// ErrDependencyUnavailable constructs a dependencyUnavailableError.
func ErrDependencyUnavailable(msg string) error { return dependencyUnavailableError{msg: msg} }

// IsDependencyUnavailable reports whether err indicates a missing runtime dependency.
func IsDependencyUnavailable(err error) bool {
	var de dependencyUnavailableError
	return errors.As(err, &de)
}
