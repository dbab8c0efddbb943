package internal

import "fmt"

// StoreError represents errors accessing the persistent store
type StoreError struct {
	Key string
	Op  string // "open", "load", "save"
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error: %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ResolveError represents a failure of the primary chat backend. The
// resolver recovers from it internally; it only surfaces in logs.
type ResolveError struct {
	Endpoint string
	Err      error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("resolve error [%s]: %v", e.Endpoint, e.Err)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during export
type ExportError struct {
	Format string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s]: %v", e.Format, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
