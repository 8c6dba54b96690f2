package optimizer

import "fmt"

// GenerationError represents an LLM transport failure during resume
// generation (timeout, auth, rate limit). It propagates to the caller, which
// decides whether to retry, degrade to score-only mode, or fail the request.
type GenerationError struct {
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("resume generation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("resume generation failed: %s", e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// OptimizationError is reachable only when even the last-resort raw-text
// fallback cannot produce a minimal schema-valid object. It signals a
// programming bug, not a user-facing transient error.
type OptimizationError struct {
	Message string
	Cause   error
}

func (e *OptimizationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("optimization failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("optimization failed: %s", e.Message)
}

func (e *OptimizationError) Unwrap() error {
	return e.Cause
}
