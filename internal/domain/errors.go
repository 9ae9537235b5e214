package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for storage failures
var (
	ErrInvalidPath         = errors.New("invalid path")
	ErrCorruptMetadata     = errors.New("corrupt metadata")
	ErrAllocationExhausted = errors.New("allocation exhausted")
	ErrIO                  = errors.New("i/o error")
)

// StorageError attaches the failing path to a storage failure.
// errors.Is matches both Kind and the wrapped cause.
type StorageError struct {
	Kind error
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Path)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *StorageError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// IOError wraps a filesystem failure for path
func IOError(path string, err error) error {
	return &StorageError{Kind: ErrIO, Path: path, Err: err}
}

// CorruptError marks path as holding an unparseable sidecar
func CorruptError(path string, err error) error {
	return &StorageError{Kind: ErrCorruptMetadata, Path: path, Err: err}
}
