// Package classify turns fetched URL content into ClassifiedDocument records
// using an LLM. Classification failures are recorded on the document rather
// than propagated; a broken URL must never sink an organization's run.
package classify

import "fmt"

// ClassificationError represents a failure in LLM document classification
type ClassificationError struct {
	Message string
	Cause   error
}

func (e *ClassificationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("classification error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("classification error: %s", e.Message)
}

func (e *ClassificationError) Unwrap() error {
	return e.Cause
}
