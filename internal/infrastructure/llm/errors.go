package llm

import "fmt"

// ConfigurationError means the client cannot be used at all, e.g. no API key.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return "llm configuration error: " + e.Message
}

// UpstreamError is a non-2xx answer from the provider.
// StatusCode is 0 when the request never got a response (dial error, timeout).
type UpstreamError struct {
	StatusCode int
	Detail     string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("llm upstream unreachable: %s", e.Detail)
	}
	return fmt.Sprintf("llm upstream error (status %d): %s", e.StatusCode, e.Detail)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// ResponseParseError means the provider answered but the content is not the expected JSON document.
type ResponseParseError struct {
	Reason  string
	Content string // truncated raw content, for logs
}

func (e *ResponseParseError) Error() string {
	return "llm response parse error: " + e.Reason
}
