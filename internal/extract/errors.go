package extract

import "fmt"

// ListingError represents a failure to parse tile markup at all. Missing
// fields inside well-formed markup never produce one; those resolve to
// defaults instead.
type ListingError struct {
	Message string
	Cause   error
}

func (e *ListingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("listing extraction: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("listing extraction: %s", e.Message)
}

func (e *ListingError) Unwrap() error {
	return e.Cause
}
