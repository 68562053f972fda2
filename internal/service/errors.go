package service

import "fmt"

// ValidationError rejects a bulk edit before anything reaches the
// store. The whole batch is refused; there is no partial application.
type ValidationError struct {
	Invalid int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%d invalid records", e.Invalid)
}

// FetchError wraps a remote fetch failure. A sync that returns one has
// applied zero changes; retry policy belongs to the fetcher, not here.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("remote fetch failed: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
